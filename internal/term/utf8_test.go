package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func feedAll(d *UTF8Decoder, bytes []byte) []rune {
	var out []rune
	for _, b := range bytes {
		out = append(out, d.Feed(b)...)
	}
	return out
}

func TestUTF8DecoderASCII(t *testing.T) {
	var d UTF8Decoder
	out := feedAll(&d, []byte("Hi"))
	assert.Equal(t, []rune{'H', 'i'}, out)
}

func TestUTF8DecoderMultiByte(t *testing.T) {
	var d UTF8Decoder
	out := feedAll(&d, []byte("é")) // 0xC3 0xA9
	assert.Equal(t, []rune{'é'}, out)
}

// TestUTF8DecoderFallback is spec invariant 8: 0xC3 0x28 emits 0xC3 then 0x28.
func TestUTF8DecoderFallback(t *testing.T) {
	var d UTF8Decoder
	out := feedAll(&d, []byte{0xC3, 0x28})
	assert.Equal(t, []rune{0xC3, 0x28}, out)
}

func TestEncodeUTF8RoundTrip(t *testing.T) {
	for _, r := range []rune{'A', 0xE9, 0x4E2D, 0x1F600} {
		var dst []byte
		dst = EncodeUTF8(dst, uint32(r))

		var d UTF8Decoder
		out := feedAll(&d, dst)
		assert.Equal(t, []rune{r}, out)
	}
}
