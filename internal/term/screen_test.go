package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screenRowText(s *Screen, y int) string {
	w := s.Page().Width()
	out := make([]rune, w)
	for x := 0; x < w; x++ {
		pts := s.Page().GetCell(x, y).Ch.Points()
		if len(pts) == 0 {
			out[x] = '_'
			continue
		}
		out[x] = rune(pts[0])
	}
	return string(out)
}

func TestScreenWritesPlainText(t *testing.T) {
	s := NewScreen(10, 3, 100)
	s.Write([]byte("Hi"))

	assert.Equal(t, "Hi________", screenRowText(s, 0))
	x, y := s.Cursor()
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
}

func TestScreenCarriageReturnAndLinefeed(t *testing.T) {
	s := NewScreen(10, 3, 100)
	s.Write([]byte("Line1\r\nLine2"))

	assert.Equal(t, "Line1", trimmed(screenRowText(s, 0)))
	assert.Equal(t, "Line2", trimmed(screenRowText(s, 1)))
}

func trimmed(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == '_' {
		i--
	}
	return s[:i]
}

func TestScreenScrollsRegionOnLinefeedAtBottom(t *testing.T) {
	s := NewScreen(4, 2, 100)
	s.Write([]byte("A\r\nB\r\nC"))

	// two linefeeds in a 2-row page scroll "A" off into history
	assert.Equal(t, 1, s.history.NLines())
	assert.Equal(t, "B", trimmed(screenRowText(s, 0)))
	assert.Equal(t, "C", trimmed(screenRowText(s, 1)))
}

func TestScreenCursorPositioning(t *testing.T) {
	s := NewScreen(20, 10, 100)
	s.Write([]byte("\x1b[5;10H"))

	x, y := s.Cursor()
	assert.Equal(t, 9, x)
	assert.Equal(t, 4, y)
}

func TestScreenSGRColors(t *testing.T) {
	s := NewScreen(10, 3, 100)
	s.Write([]byte("\x1b[31;1mX"))

	assert.Equal(t, ColorNamed, s.cursor.Attr.Fg.Kind)
	assert.Equal(t, uint32(ColorRed), s.cursor.Attr.Fg.Value)
	assert.True(t, s.cursor.Attr.Bold)

	s.Write([]byte("\x1b[0m"))
	assert.True(t, s.cursor.Attr.IsDefault())
}

func TestScreenEraseInLine(t *testing.T) {
	s := NewScreen(5, 1, 100)
	s.Write([]byte("ABCDE"))
	s.Write([]byte("\x1b[3G")) // column 3
	s.Write([]byte("\x1b[K"))  // erase to end of line

	assert.Equal(t, "AB___", screenRowText(s, 0))
}

func TestScreenInsertDeleteCharacters(t *testing.T) {
	s := NewScreen(5, 1, 100)
	s.Write([]byte("ABCDE"))
	s.Write([]byte("\x1b[1G\x1b[2@")) // home, insert 2 blanks

	assert.Equal(t, "__ABC", screenRowText(s, 0))

	s.Write([]byte("\x1b[2P")) // delete 2 at col 0
	assert.Equal(t, "ABC__", screenRowText(s, 0))
}

func TestScreenDECAWMAutowrap(t *testing.T) {
	s := NewScreen(3, 2, 100)
	s.Write([]byte("ABC"))
	x, _ := s.Cursor()
	assert.Equal(t, 2, x)
	require.True(t, s.wrapPending)

	s.Write([]byte("D"))
	assert.Equal(t, "D__", screenRowText(s, 1))
}

func TestScreenAnswerbackDefault(t *testing.T) {
	s := NewScreen(10, 3, 100)
	assert.Equal(t, "devcon", s.answerback)
}

func TestScreenRISResets(t *testing.T) {
	s := NewScreen(5, 1, 100)
	s.Write([]byte("ABCDE"))
	s.Write([]byte("\x1bc"))

	assert.Equal(t, "_____", screenRowText(s, 0))
	x, y := s.Cursor()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}
