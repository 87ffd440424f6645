package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cellChar(p *Page, x, y int) rune {
	cell := p.GetCell(x, y)
	if cell == nil {
		return 0
	}
	pts := cell.Ch.Points()
	if len(pts) == 0 {
		return 0
	}
	return rune(pts[0])
}

// TestPageScrollWithHistory is spec scenario (a).
func TestPageScrollWithHistory(t *testing.T) {
	p := NewPage(4, 4, DefaultAttr, 0)
	h := NewHistory(8)

	p.Write(0, 0, CharSet(Char{}, 'A'), 1, DefaultAttr, 1, false)
	p.Write(0, 1, CharSet(Char{}, 'B'), 1, DefaultAttr, 1, false)
	p.Write(0, 2, CharSet(Char{}, 'C'), 1, DefaultAttr, 1, false)
	p.Write(0, 3, CharSet(Char{}, 'D'), 1, DefaultAttr, 1, false)

	p.ScrollUp(2, DefaultAttr, 2, h)

	assert.Equal(t, 'C', cellChar(p, 0, 0))
	assert.Equal(t, 'D', cellChar(p, 0, 1))
	assert.Equal(t, rune(0), cellChar(p, 0, 2))
	assert.Equal(t, rune(0), cellChar(p, 0, 3))

	require.Equal(t, 2, h.NLines())
	top, ok := h.Pop(4, DefaultAttr, 3)
	require.True(t, ok)
	assert.Equal(t, rune('B'), rune(top.Cell(0).Ch.Points()[0]))
	top, ok = h.Pop(4, DefaultAttr, 3)
	require.True(t, ok)
	assert.Equal(t, rune('A'), rune(top.Cell(0).Ch.Points()[0]))
}

// TestPageScrollUpDownSymmetry is invariant 5.
func TestPageScrollUpDownSymmetry(t *testing.T) {
	p := NewPage(4, 4, DefaultAttr, 0)
	h := NewHistory(8)
	p.Write(0, 0, CharSet(Char{}, 'A'), 1, DefaultAttr, 1, false)
	p.Write(0, 1, CharSet(Char{}, 'B'), 1, DefaultAttr, 1, false)
	p.Write(0, 2, CharSet(Char{}, 'C'), 1, DefaultAttr, 1, false)
	p.Write(0, 3, CharSet(Char{}, 'D'), 1, DefaultAttr, 1, false)

	before := []rune{cellChar(p, 0, 0), cellChar(p, 0, 1), cellChar(p, 0, 2), cellChar(p, 0, 3)}

	p.ScrollUp(2, DefaultAttr, 2, h)
	p.ScrollDown(2, DefaultAttr, 3, h)

	after := []rune{cellChar(p, 0, 0), cellChar(p, 0, 1), cellChar(p, 0, 2), cellChar(p, 0, 3)}
	assert.Equal(t, before, after)
}

func TestPageOwnershipNoSharedLines(t *testing.T) {
	p := NewPage(4, 4, DefaultAttr, 0)
	h := NewHistory(8)
	for y := 0; y < 4; y++ {
		p.Write(0, y, CharSet(Char{}, uint32('A'+y)), 1, DefaultAttr, 1, false)
	}

	p.ScrollUp(2, DefaultAttr, 2, h)

	pageLines := map[*Line]bool{}
	for y := 0; y < p.NLines(); y++ {
		if l := p.Line(y); l != nil {
			pageLines[l] = true
		}
	}
	for i := 0; i < h.NLines(); i++ {
		assert.False(t, pageLines[h.lines[i]])
	}
}

func TestPageReserveMonotone(t *testing.T) {
	p := NewPage(4, 4, DefaultAttr, 0)
	n0 := p.NLines()

	p.Reserve(4, 8, DefaultAttr, 1)
	n1 := p.NLines()
	assert.GreaterOrEqual(t, n1, n0)

	p.Reserve(10, 2, DefaultAttr, 2)
	n2 := p.NLines()
	assert.GreaterOrEqual(t, n2, n1)
}

func TestPageInsertDeleteLines(t *testing.T) {
	p := NewPage(4, 4, DefaultAttr, 0)
	for y := 0; y < 4; y++ {
		p.Write(0, y, CharSet(Char{}, uint32('A'+y)), 1, DefaultAttr, 1, false)
	}

	p.InsertLines(1, 1, DefaultAttr, 2)
	assert.Equal(t, 'A', cellChar(p, 0, 0))
	assert.Equal(t, rune(0), cellChar(p, 0, 1))
	assert.Equal(t, 'B', cellChar(p, 0, 2))
	assert.Equal(t, 'C', cellChar(p, 0, 3))

	p.DeleteLines(1, 1, DefaultAttr, 3)
	assert.Equal(t, 'A', cellChar(p, 0, 0))
	assert.Equal(t, 'B', cellChar(p, 0, 1))
	assert.Equal(t, 'C', cellChar(p, 0, 2))
}
