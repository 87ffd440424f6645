package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineText(l *Line) string {
	out := make([]rune, l.Width())
	for i := 0; i < l.Width(); i++ {
		pts := l.Cell(i).Ch.Points()
		if len(pts) == 0 {
			out[i] = '_'
			continue
		}
		out[i] = rune(pts[0])
	}
	return string(out)
}

func writeString(l *Line, s string, age uint64) {
	for i, r := range s {
		l.Write(i, CharSet(Char{}, uint32(r)), 1, DefaultAttr, age, false)
	}
}

func TestLineBoundsInvariant(t *testing.T) {
	l := NewLine(5, DefaultAttr, 0)
	writeString(l, "ABCDE", 1)
	l.Insert(1, 2, DefaultAttr, 2)
	l.Delete(0, 1, DefaultAttr, 3)
	l.SetWidth(3)
	l.Reserve(8, DefaultAttr, 4, 3)

	assert.GreaterOrEqual(t, l.Fill(), 0)
	assert.LessOrEqual(t, l.Fill(), l.Width())
	assert.LessOrEqual(t, l.Width(), l.NCells())
}

// TestLineInsertShift is spec scenario (b).
func TestLineInsertShift(t *testing.T) {
	l := NewLine(4, DefaultAttr, 0)
	writeString(l, "ABCD", 1)

	l.Write(1, CharSet(Char{}, 'X'), 1, DefaultAttr, 2, true)

	assert.Equal(t, "AXBC", lineText(l))
	assert.Equal(t, 4, l.Fill())
}

// TestLineEraseWithProtect is spec scenario (c).
func TestLineEraseWithProtect(t *testing.T) {
	l := NewLine(5, DefaultAttr, 0)
	writeString(l, "ABCDE", 1)
	protected := Attr{Protect: true}
	l.Cell(2).Set(CharSet(Char{}, 'C'), 1, protected, 1)

	l.Erase(0, 5, DefaultAttr, 2, true)

	assert.Equal(t, "__C__", lineText(l))
	assert.Equal(t, 3, l.Fill())
}

func TestLineDeleteShiftsAndClearsTail(t *testing.T) {
	l := NewLine(5, DefaultAttr, 0)
	writeString(l, "ABCDE", 1)

	l.Delete(1, 2, DefaultAttr, 2)

	assert.Equal(t, "ADE__", lineText(l))
}

func TestLineAppendMergesCombiningMark(t *testing.T) {
	l := NewLine(3, DefaultAttr, 0)
	writeString(l, "A", 1)

	l.Append(0, 0x0301, 2)

	require.Len(t, l.Cell(0).Ch.Points(), 2)
	assert.Equal(t, uint32(0x0301), l.Cell(0).Ch.Points()[1])
}

func TestLineReserveNeverShrinksStorage(t *testing.T) {
	l := NewLine(10, DefaultAttr, 0)
	before := l.NCells()

	l.Reserve(4, DefaultAttr, 1, 0)

	assert.Equal(t, before, l.NCells())
}
