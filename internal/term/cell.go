package term

// Cell is one addressable grid position: a character, its cached display
// width, its attributes, and the age it was last touched at. The zero
// value is a valid, empty Cell.
type Cell struct {
	Ch     Char
	CWidth uint8
	Attr   Attr
	Age    uint64
}

// Set replaces the cell's character and stamps age, skipping the character
// swap entirely when the new value is already the one held (Char.Same).
func (c *Cell) Set(ch Char, cwidth uint8, attr Attr, age uint64) {
	if !c.Ch.Same(ch) {
		c.Ch = ch
	}
	c.CWidth = cwidth
	c.Attr = attr
	c.Age = age
}

// Append merges ucs4 onto the cell's existing character as a combining
// mark and stamps age.
func (c *Cell) Append(ucs4 uint32, age uint64) {
	c.Ch = CharMerge(c.Ch, ucs4)
	c.Age = age
}

// Clear resets the cell to (null char, width 0, attr, age).
func (c *Cell) Clear(attr Attr, age uint64) {
	c.Ch = Char{}
	c.CWidth = 0
	c.Attr = attr
	c.Age = age
}

// initCells clears cells[from:to] to (null, 0, attr, age).
func initCells(cells []Cell, from, to int, attr Attr, age uint64) {
	for i := from; i < to; i++ {
		cells[i].Clear(attr, age)
	}
}

// clearCells is an alias kept for call sites that read more naturally as
// "clear a range" than "init a range" (e.g. Line.Reserve, Line.Delete).
func clearCells(cells []Cell, from, to int, attr Attr, age uint64) {
	initCells(cells, from, to, attr, age)
}
