package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharRoundTrip(t *testing.T) {
	points := []uint32{'A', 0x0301, 0x0302, 0x0303}
	ch := CharSet(Char{}, points[0])
	for _, p := range points[1:] {
		ch = CharMerge(ch, p)
	}
	assert.Equal(t, points, ch.Points())
}

func TestCharPackBoundary(t *testing.T) {
	tests := []struct {
		name      string
		nMerges   int
		allocated bool
	}{
		{"one point", 0, false},
		{"two points", 1, false},
		{"three points", 2, false},
		{"four points", 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := CharSet(Char{}, 'A')
			for i := 0; i < tt.nMerges; i++ {
				ch = CharMerge(ch, 0x0300+uint32(i))
			}
			assert.Equal(t, tt.allocated, ch.IsAllocated())
		})
	}
}

func TestCharSameImpliesEqual(t *testing.T) {
	a := CharSet(Char{}, 'x')
	b := a
	require.True(t, a.Same(b))
	assert.True(t, a.Equal(b))
}

// TestCharCombiningOverflow is spec scenario (d): 64 distinct combining
// marks onto a base are all accepted; resolve returns 65 code points; the
// 65th merge is rejected and the Char is returned unchanged.
func TestCharCombiningOverflow(t *testing.T) {
	ch := CharSet(Char{}, 'A')
	for i := 0; i < 64; i++ {
		ch = CharMerge(ch, 0x0300+uint32(i))
	}
	require.Len(t, ch.Points(), 65)

	rejected := CharMerge(ch, 0x0300+64)
	assert.Len(t, rejected.Points(), 65)
	assert.True(t, rejected.Equal(ch))
}

func TestCharMergeOutOfRange(t *testing.T) {
	ch := CharSet(Char{}, 'A')
	unchanged := CharMerge(ch, UCS4Max+1)
	assert.True(t, unchanged.Same(ch))
}

func TestCharDupIsIndependent(t *testing.T) {
	ch := CharSet(Char{}, 'A')
	ch = CharMerge(ch, 0x0301)
	ch = CharMerge(ch, 0x0302)
	ch = CharMerge(ch, 0x0303) // boxed now
	dup := CharDup(ch)
	assert.True(t, dup.Equal(ch))
	assert.False(t, dup.Same(ch))
}

func TestCharLookupWidth(t *testing.T) {
	ascii := CharSet(Char{}, 'A')
	assert.Equal(t, 1, CharLookupWidth(ascii))

	wide := CharSet(Char{}, 0x4E2D) // CJK
	assert.Equal(t, 2, CharLookupWidth(wide))

	null := Char{}
	assert.Equal(t, 0, CharLookupWidth(null))
}
