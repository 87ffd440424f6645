package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedParser(p *Parser, runes []rune) []*Seq {
	var out []*Seq
	for _, r := range runes {
		seq, typ := p.Feed(r)
		if typ == SeqNone {
			continue
		}
		cp := *seq
		out = append(out, &cp)
	}
	return out
}

// TestParserCSIDispatch is spec scenario (e).
func TestParserCSIDispatch(t *testing.T) {
	p := NewParser()
	input := []rune{0x1B, '[', '1', ';', '2', 'H'}

	seqs := feedParser(p, input)
	require.NotEmpty(t, seqs)
	last := seqs[len(seqs)-1]

	assert.Equal(t, SeqCSI, last.Type)
	assert.Equal(t, CmdCUP, last.Command)
	assert.Equal(t, 2, last.NArgs)
	assert.Equal(t, 1, last.Args[0])
	assert.Equal(t, 2, last.Args[1])
	assert.Equal(t, uint32(0), last.Intermediates)
}

// TestParserUTF8FallbackInsideEscape is spec scenario (f).
func TestParserUTF8FallbackInsideEscape(t *testing.T) {
	var d UTF8Decoder
	var runes []rune
	for _, b := range []byte{0xC3, 0x28, 0x1B, 'c'} {
		runes = append(runes, d.Feed(b)...)
	}
	require.Equal(t, []rune{0xC3, 0x28, 0x1B, 'c'}, runes)

	p := NewParser()
	seqs := feedParser(p, runes)
	require.Len(t, seqs, 3)
	assert.Equal(t, SeqGraphic, seqs[0].Type)
	assert.Equal(t, SeqGraphic, seqs[1].Type)
	assert.Equal(t, SeqEscape, seqs[2].Type)
	assert.Equal(t, CmdRIS, seqs[2].Command)
}

// TestParserDeterminism is spec invariant 7.
func TestParserDeterminism(t *testing.T) {
	input := []rune{0x1B, '[', '3', '1', 'm', 'h', 'i', 0x0D, 0x0A}

	run := func() []SeqType {
		p := NewParser()
		var types []SeqType
		for _, r := range input {
			_, typ := p.Feed(r)
			if typ != SeqNone {
				types = append(types, typ)
			}
		}
		return types
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
}

func TestParserSCSDesignation(t *testing.T) {
	p := NewParser()
	input := []rune{0x1B, '(', '0'} // designate DEC special graphics to G0

	seqs := feedParser(p, input)
	require.Len(t, seqs, 1)
	assert.Equal(t, CmdSCS, seqs[0].Command)
	assert.Equal(t, CharsetDECSpecialGraphics, seqs[0].Charset)
}

func TestParserUnknownCSIFinalResolvesNone(t *testing.T) {
	p := NewParser()
	seqs := feedParser(p, []rune{0x1B, '[', '5', '~'})
	require.Len(t, seqs, 1)
	assert.Equal(t, CmdNone, seqs[0].Command)
}
