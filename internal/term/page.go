package term

// Page is the 2-D cell grid: a set of owned lines, a scroll region within
// them, and scroll-fill bookkeeping used to decide how much of a shrinking
// page must be pushed to history versus simply truncated. The backing
// lines slice never shrinks (n_lines is non-decreasing, matching Line's
// own storage-never-shrinks rule) even as height, the visible row count,
// goes up and down across resizes.
type Page struct {
	lines      []*Line
	width      int
	height     int
	scrollIdx  int
	scrollNum  int
	scrollFill int
	age        uint64
}

// NewPage allocates a page of cols x rows, fully reserved and with the
// scroll region covering the whole page.
func NewPage(cols, rows int, attr Attr, age uint64) *Page {
	p := &Page{}
	p.Reserve(cols, rows, attr, age)
	p.width = cols
	p.height = rows
	for i := 0; i < rows; i++ {
		p.lines[i].SetWidth(cols)
	}
	p.SetScrollRegion(0, rows)
	return p
}

func (p *Page) Width() int         { return p.width }
func (p *Page) Height() int        { return p.height }
func (p *Page) NLines() int        { return len(p.lines) }
func (p *Page) ScrollIdx() int     { return p.scrollIdx }
func (p *Page) ScrollNum() int     { return p.scrollNum }
func (p *Page) ScrollFill() int    { return p.scrollFill }
func (p *Page) Age() uint64        { return p.age }
func (p *Page) SetAge(age uint64)  { p.age = age }

// SetScrollFill lets the Screen layer (which knows when a row has received
// real content, not just blank slack) drive the scroll-fill accounting
// that Resize's shrink path relies on.
func (p *Page) SetScrollFill(n int) {
	if n < 0 {
		n = 0
	}
	if n > p.scrollNum {
		n = p.scrollNum
	}
	p.scrollFill = n
}

// Line returns the line at row y, or nil if out of bounds.
func (p *Page) Line(y int) *Line {
	if y < 0 || y >= p.height {
		return nil
	}
	return p.lines[y]
}

// GetCell returns the cell at (x,y), or nil if out of bounds.
func (p *Page) GetCell(x, y int) *Cell {
	if x < 0 || y < 0 || y >= p.height {
		return nil
	}
	line := p.lines[y]
	if x >= line.Width() {
		return nil
	}
	return line.Cell(x)
}

// Reserve ensures n_lines >= rows and that each of the first
// min(n_lines, rows) lines has storage for at least cols cells; lines
// beyond height (if any, from a prior taller page) are grown too. New
// lines needed to reach rows are allocated fresh.
func (p *Page) Reserve(cols, rows int, attr Attr, age uint64) {
	n := len(p.lines)
	lim := n
	if rows < lim {
		lim = rows
	}
	for i := 0; i < lim; i++ {
		protect := 0
		if i < p.height {
			protect = p.width
		}
		p.lines[i].Reserve(cols, attr, age, protect)
	}
	for i := n; i < rows; i++ {
		p.lines = append(p.lines, NewLine(cols, attr, age))
	}
}

// Resize changes the page's dimensions. It requires Reserve(cols, rows,
// ...) to already have been called for the target size. Shrinking height
// scrolls excess rows into history (after first consuming empty slack);
// growing height pulls rows back from history when available.
func (p *Page) Resize(cols, rows int, attr Attr, age uint64, history *History) {
	oldHeight := p.height
	switch {
	case rows < oldHeight:
		num := oldHeight - rows
		empty := p.scrollNum - p.scrollFill
		if empty < 0 {
			empty = 0
		}
		if num > empty {
			p.pageUp(cols, num-empty, attr, age, history)
		}

		// move lower margin up; drop its lines if not enough space
		marginLen := lessBy(oldHeight, p.scrollIdx+p.scrollNum)
		maxLen := lessBy(rows, p.scrollIdx)
		if maxLen < marginLen {
			marginLen = maxLen
		}
		if marginLen > 0 {
			top := rows - marginLen
			bottom := p.scrollIdx + p.scrollNum
			// might overlap; must run topdown, not bottomup
			for i := 0; i < marginLen; i++ {
				p.lines[top+i], p.lines[bottom+i] = p.lines[bottom+i], p.lines[top+i]
			}
		}

		p.height = rows
		if p.scrollIdx > rows {
			p.scrollIdx = rows
		}
		shrink := lessBy(oldHeight, rows)
		if shrink > p.scrollNum {
			shrink = p.scrollNum
		}
		p.scrollNum -= shrink
	case rows > oldHeight:
		// move lower margin down; always account new lines to the
		// scroll region, so the margin must move first
		marginLen := lessBy(oldHeight, p.scrollIdx+p.scrollNum)
		if marginLen > 0 {
			top := p.scrollIdx + p.scrollNum
			bottom := top + (rows - oldHeight)
			// might overlap; must run bottomup, not topdown
			for i := marginLen - 1; i >= 0; i-- {
				p.lines[top+i], p.lines[bottom+i] = p.lines[bottom+i], p.lines[top+i]
			}
		}

		p.height = rows
		grow := rows - oldHeight
		p.scrollNum = min(lessBy(rows, p.scrollIdx), p.scrollNum+grow)

		if history != nil {
			got := history.Peek(grow, cols, attr, age)
			if got > 0 {
				p.pageDown(cols, got, attr, age, history)
			}
		}
	}
	p.width = cols
	for i := 0; i < p.height; i++ {
		p.lines[i].SetWidth(cols)
	}
}

// lessBy returns a-b if a>b, else 0, matching the original driver's
// LESS_BY macro used throughout its resize math.
func lessBy(a, b int) int {
	if a > b {
		return a - b
	}
	return 0
}

// pageUp is the scroll_up primitive parameterised by the width new/reused
// lines should be reserved to, letting resize fold a width change into the
// same pass that scrolls rows into history.
func (p *Page) pageUp(newWidth, num int, attr Attr, age uint64, history *History) {
	if num > p.scrollNum {
		num = p.scrollNum
	}
	if num <= 0 {
		return
	}
	cache := make([]*Line, num)
	for i := 0; i < num; i++ {
		old := p.lines[p.scrollIdx+i]
		if history != nil {
			history.Push(old)
			cache[i] = NewLine(newWidth, attr, age)
		} else {
			old.Reset(attr, age)
			old.SetWidth(newWidth)
			cache[i] = old
		}
	}
	remain := p.scrollNum - num
	if remain > 0 {
		copy(p.lines[p.scrollIdx:p.scrollIdx+remain], p.lines[p.scrollIdx+num:p.scrollIdx+p.scrollNum])
	}
	copy(p.lines[p.scrollIdx+remain:p.scrollIdx+p.scrollNum], cache)
	p.scrollFill -= num
	if p.scrollFill < 0 {
		p.scrollFill = 0
	}
}

// pageDown is the scroll_down primitive, symmetric to pageUp.
func (p *Page) pageDown(newWidth, num int, attr Attr, age uint64, history *History) {
	if num > p.scrollNum {
		num = p.scrollNum
	}
	if num <= 0 {
		return
	}
	cache := make([]*Line, num)
	if history == nil {
		for i := 0; i < num; i++ {
			old := p.lines[p.scrollIdx+p.scrollNum-num+i]
			old.Reset(attr, age)
			old.SetWidth(newWidth)
			cache[i] = old
		}
	} else {
		for k := 0; k < num; k++ {
			popped, ok := history.Pop(newWidth, attr, age)
			if !ok {
				old := p.lines[p.scrollIdx+p.scrollNum-num+k]
				old.Reset(attr, age)
				old.SetWidth(newWidth)
				popped = old
			}
			cache[num-1-k] = popped
		}
	}
	remain := p.scrollNum - num
	if remain > 0 {
		copy(p.lines[p.scrollIdx+num:p.scrollIdx+p.scrollNum], p.lines[p.scrollIdx:p.scrollIdx+remain])
	}
	copy(p.lines[p.scrollIdx:p.scrollIdx+num], cache)
	if p.scrollFill > 0 {
		p.scrollFill += num
		if p.scrollFill > p.scrollNum {
			p.scrollFill = p.scrollNum
		}
	}
}

// ScrollUp scrolls the scroll region up by num lines, at the page's
// current width, pushing displaced lines to history when provided.
func (p *Page) ScrollUp(num int, attr Attr, age uint64, history *History) {
	p.pageUp(p.width, num, attr, age, history)
}

// ScrollDown scrolls the scroll region down by num lines, pulling lines
// back from history when provided.
func (p *Page) ScrollDown(num int, attr Attr, age uint64, history *History) {
	p.pageDown(p.width, num, attr, age, history)
}

// withNarrowedRegion temporarily sets the scroll region's top to posY,
// running fn with that narrowed (or, if posY sits below the current
// region, widened-to-one-line) region in effect, then restores the
// region. A posY above the current region extends scrollNum by the same
// amount a posY inside it shrinks it by: both cases reduce to
// scrollIdx+scrollNum-posY, so they share one branch; only posY at or
// past the bottom of the region gets the single-line region.
func (p *Page) withNarrowedRegion(posY int, fn func()) {
	savedIdx, savedNum := p.scrollIdx, p.scrollNum
	if posY >= savedIdx+savedNum {
		p.scrollIdx = posY
		p.scrollNum = 1
	} else {
		p.scrollIdx = posY
		p.scrollNum = savedIdx + savedNum - posY
	}
	fn()
	p.scrollIdx, p.scrollNum = savedIdx, savedNum
}

// InsertLines inserts num blank lines at posY, shifting posY and below
// (within the active scroll region) down; lines shifted past the bottom
// of the region are dropped. No history hand-off.
func (p *Page) InsertLines(posY, num int, attr Attr, age uint64) {
	if posY < 0 || posY >= p.height {
		return
	}
	p.withNarrowedRegion(posY, func() {
		p.pageDown(p.width, num, attr, age, nil)
	})
}

// DeleteLines deletes num lines at posY, shifting the lines below them
// (within the active scroll region) up; vacated lines at the bottom of
// the region become blank. No history hand-off.
func (p *Page) DeleteLines(posY, num int, attr Attr, age uint64) {
	if posY < 0 || posY >= p.height {
		return
	}
	p.withNarrowedRegion(posY, func() {
		p.pageUp(p.width, num, attr, age, nil)
	})
}

// SetScrollRegion sets the scroll region to [idx, idx+num), clamped to
// the page's height. A zero-height page forces both to zero.
func (p *Page) SetScrollRegion(idx, num int) {
	if p.height == 0 {
		p.scrollIdx, p.scrollNum = 0, 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > p.height-1 {
		idx = p.height - 1
	}
	maxNum := p.height - idx
	if num < 0 {
		num = 0
	}
	if num > maxNum {
		num = maxNum
	}
	p.scrollIdx, p.scrollNum = idx, num
}

// Write writes a single character at (x,y). Out-of-bounds y is a silent
// no-op; Line.Write handles x bounds.
func (p *Page) Write(x, y int, ch Char, cwidth uint8, attr Attr, age uint64, insertMode bool) {
	if y < 0 || y >= p.height {
		return
	}
	p.lines[y].Write(x, ch, cwidth, attr, age, insertMode)
}

// InsertCells shifts cells right within row y starting at x.
func (p *Page) InsertCells(x, y, num int, attr Attr, age uint64) {
	if y < 0 || y >= p.height {
		return
	}
	p.lines[y].Insert(x, num, attr, age)
}

// DeleteCells shifts cells left within row y starting at x.
func (p *Page) DeleteCells(x, y, num int, attr Attr, age uint64) {
	if y < 0 || y >= p.height {
		return
	}
	p.lines[y].Delete(x, num, attr, age)
}

// Append merges ucs4 onto the character at (x,y) as a combining mark.
func (p *Page) Append(x, y int, ucs4 uint32, age uint64) {
	if y < 0 || y >= p.height {
		return
	}
	p.lines[y].Append(x, ucs4, age)
}

// Erase clears cells from (fromX,fromY) through (toX,toY) inclusive, in
// reading order, using column bounds only at the first and last row and the
// full row width in between, matching a typical "erase in display" shape.
func (p *Page) Erase(fromX, fromY, toX, toY int, attr Attr, age uint64, keepProtected bool) {
	if fromY < 0 {
		fromY = 0
	}
	if toY >= p.height {
		toY = p.height - 1
	}
	for y := fromY; y <= toY; y++ {
		line := p.lines[y]
		start, end := 0, line.Width()
		if y == fromY {
			start = fromX
		}
		if y == toY {
			end = toX + 1
		}
		if start < 0 {
			start = 0
		}
		if end > line.Width() {
			end = line.Width()
		}
		if start < end {
			line.Erase(start, end-start, attr, age, keepProtected)
		}
	}
}

// Reset erases the entire visible page.
func (p *Page) Reset(attr Attr, age uint64) {
	p.Erase(0, 0, p.width-1, p.height-1, attr, age, false)
}
