package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLineWith(ch rune, width int) *Line {
	l := NewLine(width, DefaultAttr, 0)
	l.Write(0, CharSet(Char{}, uint32(ch)), 1, DefaultAttr, 1, false)
	return l
}

func TestHistoryPushPopOrder(t *testing.T) {
	h := NewHistory(8)
	h.Push(newLineWith('A', 4))
	h.Push(newLineWith('B', 4))

	require.Equal(t, 2, h.NLines())

	top, ok := h.Pop(4, DefaultAttr, 2)
	require.True(t, ok)
	assert.Equal(t, rune('B'), rune(top.Cell(0).Ch.Points()[0]))

	top, ok = h.Pop(4, DefaultAttr, 2)
	require.True(t, ok)
	assert.Equal(t, rune('A'), rune(top.Cell(0).Ch.Points()[0]))

	_, ok = h.Pop(4, DefaultAttr, 2)
	assert.False(t, ok)
}

func TestHistoryDropsOldestAtCapacity(t *testing.T) {
	h := NewHistory(2)
	h.Push(newLineWith('A', 4))
	h.Push(newLineWith('B', 4))
	h.Push(newLineWith('C', 4))

	assert.Equal(t, 2, h.NLines())

	_, ok := h.Pop(4, DefaultAttr, 0)
	require.True(t, ok)
	oldest, ok := h.Pop(4, DefaultAttr, 0)
	require.True(t, ok)
	assert.Equal(t, rune('B'), rune(oldest.Cell(0).Ch.Points()[0]))
}

func TestHistoryTrim(t *testing.T) {
	h := NewHistory(8)
	h.Push(newLineWith('A', 4))
	h.Push(newLineWith('B', 4))
	h.Push(newLineWith('C', 4))

	h.Trim(1)

	assert.Equal(t, 1, h.NLines())
}
