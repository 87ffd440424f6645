package term

// Line is a resizable row of cells. width is the currently active column
// count; the backing cells slice (n_cells = len(cells)) never shrinks, so
// a narrowed line keeps its storage for a later widen. fill tracks one
// past the last touched column, for cheap dirty-region redraws. age is
// stamped by callers that care about line-level (not cell-level) staleness;
// mutations below only stamp the cells they touch.
type Line struct {
	cells     []Cell
	width     int
	fill      int
	age       uint64
	widthMode LineWidthMode
}

// LineWidthMode records a line's DECDWL/DECSWL/DECDHL rendering mode. It
// is display metadata only — it does not change cell addressing, so a
// double-width line still exposes the same number of columns as any
// other line at the current page width.
type LineWidthMode int

const (
	LineWidthNormal LineWidthMode = iota
	LineWidthDouble
	LineWidthDoubleHeightTop
	LineWidthDoubleHeightBottom
)

// WidthMode returns the line's current DECDWL/DECSWL/DECDHL mode.
func (l *Line) WidthMode() LineWidthMode { return l.widthMode }

// SetWidthMode sets the line's DECDWL/DECSWL/DECDHL mode.
func (l *Line) SetWidthMode(m LineWidthMode) { l.widthMode = m }

// NewLine allocates a line with width columns, all cells cleared to attr.
func NewLine(width int, attr Attr, age uint64) *Line {
	l := &Line{}
	l.Reserve(width, attr, age, 0)
	l.SetWidth(width)
	return l
}

// Width returns the active column count.
func (l *Line) Width() int { return l.width }

// NCells returns the backing storage length, which never shrinks.
func (l *Line) NCells() int { return len(l.cells) }

// Fill returns the index one past the last touched column.
func (l *Line) Fill() int { return l.fill }

// Age returns the line's own age stamp.
func (l *Line) Age() uint64 { return l.age }

// SetAge stamps the line's own age (distinct from any cell's age).
func (l *Line) SetAge(age uint64) { l.age = age }

// Cell returns a pointer to the cell at x, or nil if x is out of the
// backing storage's bounds.
func (l *Line) Cell(x int) *Cell {
	if x < 0 || x >= len(l.cells) {
		return nil
	}
	return &l.cells[x]
}

// Reserve ensures the backing storage holds at least width cells, clearing
// cells in [protectWidth, min(oldNCells, width)) to (null, 0, attr, age)
// and initializing any newly grown cells the same way. fill is clamped to
// protectWidth. Reserve never shrinks or releases storage.
func (l *Line) Reserve(width int, attr Attr, age uint64, protectWidth int) {
	oldN := len(l.cells)
	clearTo := width
	if oldN < clearTo {
		clearTo = oldN
	}
	if protectWidth < 0 {
		protectWidth = 0
	}
	if protectWidth < clearTo {
		clearCells(l.cells, protectWidth, clearTo, attr, age)
	}
	if width > oldN {
		grown := make([]Cell, width)
		copy(grown, l.cells)
		initCells(grown, oldN, width, attr, age)
		l.cells = grown
	}
	if l.fill > protectWidth {
		l.fill = protectWidth
	}
}

// SetWidth changes the active column count, clamped to the backing
// storage size, and clamps fill to the new width.
func (l *Line) SetWidth(width int) {
	if width > len(l.cells) {
		width = len(l.cells)
	}
	if width < 0 {
		width = 0
	}
	l.width = width
	if l.fill > width {
		l.fill = width
	}
}

func clampRange(from, n, limit int) (int, int) {
	if from < 0 {
		from = 0
	}
	if from >= limit {
		return from, 0
	}
	if n < 0 {
		n = 0
	}
	if from+n > limit {
		n = limit - from
	}
	return from, n
}

// Write sets a single character at posX occupying max(1, cwidth) cells,
// truncated at the right edge. In insert mode it behaves as Place;
// otherwise the head cell is set and any remaining occupied cells are
// cleared. Out-of-bounds posX is a silent no-op.
func (l *Line) Write(posX int, ch Char, cwidth uint8, attr Attr, age uint64, insertMode bool) {
	length := int(cwidth)
	if length < 1 {
		length = 1
	}
	posX, length = clampRange(posX, length, l.width)
	if length <= 0 {
		return
	}
	if insertMode {
		l.Place(posX, length, ch, cwidth, attr, age)
		return
	}
	l.cells[posX].Set(ch, cwidth, attr, age)
	clearCells(l.cells, posX+1, posX+length, attr, age)
	nf := posX + length
	if l.fill > nf {
		nf = l.fill
	}
	if nf > l.width {
		nf = l.width
	}
	l.fill = nf
}

// Place shifts cells at and after from right by num, dropping whatever
// falls off the right edge, and sets the vacated head cell to headChar
// (the remaining num-1 vacated cells become null). When there is nothing
// to shift (from+num already reaches the right edge) it simply writes
// num cells in place.
func (l *Line) Place(from, num int, headChar Char, headCWidth uint8, attr Attr, age uint64) {
	from, num = clampRange(from, num, l.width)
	if num <= 0 {
		return
	}
	move := l.width - from - num
	if move > 0 {
		copy(l.cells[from+num:from+num+move], l.cells[from:from+move])
	}
	l.cells[from].Set(headChar, headCWidth, attr, age)
	clearCells(l.cells, from+1, from+num, attr, age)
	if move > 0 {
		nf := l.fill + num
		if nf < from+num {
			nf = from + num
		}
		if nf > l.width {
			nf = l.width
		}
		l.fill = nf
	} else {
		l.fill = l.width
	}
}

// Insert is Place with a null head character.
func (l *Line) Insert(from, num int, attr Attr, age uint64) {
	l.Place(from, num, Char{}, 0, attr, age)
}

// Delete removes num cells starting at from, left-shifting the survivors
// and clearing the vacated tail.
func (l *Line) Delete(from, num int, attr Attr, age uint64) {
	from, num = clampRange(from, num, l.width)
	if num <= 0 {
		return
	}
	move := l.width - from - num
	if move > 0 {
		copy(l.cells[from:from+move], l.cells[from+num:from+num+move])
	}
	clearCells(l.cells, l.width-num, l.width, attr, age)
	switch {
	case from+num < l.fill:
		l.fill -= num
	case from < l.fill:
		l.fill = from
	}
}

// Append merges ucs4 onto the character already at posX as a combining
// mark. Out-of-bounds posX is a silent no-op.
func (l *Line) Append(posX int, ucs4 uint32, age uint64) {
	if posX < 0 || posX >= l.width {
		return
	}
	l.cells[posX].Append(ucs4, age)
}

// Erase nulls cells in [from, from+num), skipping protected cells when
// keepProtected is true. fill is adjusted only when the erased range
// starts within fill and reaches or passes it.
func (l *Line) Erase(from, num int, attr Attr, age uint64, keepProtected bool) {
	from, num = clampRange(from, num, l.width)
	if num <= 0 {
		return
	}
	to := from + num
	oldFill := l.fill
	lastProtected := -1
	for i := from; i < to; i++ {
		if keepProtected && l.cells[i].Attr.Protect {
			if i < oldFill {
				lastProtected = i
			}
			continue
		}
		l.cells[i].Clear(attr, age)
	}
	if from < oldFill && to >= oldFill {
		nf := lastProtected + 1
		if from > nf {
			nf = from
		}
		l.fill = nf
	}
}

// Reset erases the whole active width without protecting any cell.
func (l *Line) Reset(attr Attr, age uint64) {
	l.Erase(0, l.width, attr, age, false)
}
