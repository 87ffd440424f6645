package term

// Cursor holds on-screen position and the pen state that new characters
// pick up, mirroring what DECSC/DECRC must save and restore.
type Cursor struct {
	X, Y     int
	Attr     Attr
	Charsets [4]CharsetID
	GL, GR   int
}

// decSpecialGraphics maps the DEC Special Graphics character set's
// printable range onto the Unicode box-drawing glyphs xterm uses.
var decSpecialGraphics = map[rune]rune{
	'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌',
	'd': '␍', 'e': '␊', 'f': '°', 'g': '±',
	'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺',
	'p': '⎻', 'q': '─', 'r': '⎼', 's': '⎽',
	't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π',
	'|': '≠', '}': '£', '~': '·',
}

// Screen consumes classified sequences from Parser and drives Page and
// History: cursor addressing, SGR, G0-G3 charsets with GL/GR shift,
// DEC private modes, scroll region, save/restore cursor, tab stops, and
// the answerback string. It owns the UTF-8 decoder so callers only ever
// hand it raw bytes from the pty.
type Screen struct {
	page    *Page
	history *History
	parser  *Parser
	decoder UTF8Decoder

	cursor      Cursor
	savedCursor Cursor
	age         uint64

	insertMode  bool
	originMode  bool
	autowrap    bool
	cursorShown bool
	wrapPending bool

	tabStops   map[int]bool
	answerback string
	title      string
}

// NewScreen creates a screen of cols x rows with the given scrollback
// capacity (lines), reset to the power-on state.
func NewScreen(cols, rows, historyCap int) *Screen {
	s := &Screen{
		page:       NewPage(cols, rows, DefaultAttr, 0),
		history:    NewHistory(historyCap),
		parser:     NewParser(),
		answerback: "devcon",
	}
	s.hardReset()
	return s
}

func (s *Screen) Page() *Page         { return s.page }
func (s *Screen) History() *History   { return s.history }
func (s *Screen) Cursor() (x, y int)  { return s.cursor.X, s.cursor.Y }
func (s *Screen) Title() string       { return s.title }
func (s *Screen) CursorVisible() bool { return s.cursorShown }

// RenderLine returns row y as plain text: each cell's resolved code points
// (base plus any combining marks), trailing blanks trimmed.
func (s *Screen) RenderLine(y int) string {
	line := s.page.Line(y)
	if line == nil {
		return ""
	}
	runes := make([]rune, 0, line.Width())
	lastNonBlank := -1
	for x := 0; x < line.Width(); x++ {
		cell := line.Cell(x)
		pts := cell.Ch.Points()
		if len(pts) == 0 {
			runes = append(runes, ' ')
			continue
		}
		for _, p := range pts {
			runes = append(runes, rune(p))
		}
		lastNonBlank = len(runes) - 1
	}
	return string(runes[:lastNonBlank+1])
}

// RenderLines returns every visible row via RenderLine, top to bottom.
func (s *Screen) RenderLines() []string {
	out := make([]string, s.page.Height())
	for y := range out {
		out[y] = s.RenderLine(y)
	}
	return out
}

func (s *Screen) hardReset() {
	s.cursor = Cursor{Charsets: [4]CharsetID{CharsetUSASCII, CharsetUSASCII, CharsetUSASCII, CharsetUSASCII}}
	s.savedCursor = s.cursor
	s.insertMode = false
	s.originMode = false
	s.autowrap = true
	s.cursorShown = true
	s.wrapPending = false
	s.resetTabStops()
	s.page.SetScrollRegion(0, s.page.Height())
	s.page.Reset(DefaultAttr, s.age)
	for y := 0; y < s.page.Height(); y++ {
		if line := s.page.Line(y); line != nil {
			line.SetWidthMode(LineWidthNormal)
		}
	}
}

func (s *Screen) resetTabStops() {
	s.tabStops = make(map[int]bool)
	for x := 0; x < s.page.Width(); x += 8 {
		s.tabStops[x] = true
	}
}

// Write feeds raw pty bytes through the UTF-8 decoder and the parser,
// applying every sequence they produce before returning.
func (s *Screen) Write(data []byte) {
	for _, b := range data {
		for _, r := range s.decoder.Feed(b) {
			s.feed(uint32(r))
		}
	}
}

func (s *Screen) feed(raw uint32) {
	seq, typ := s.parser.Feed(rune(raw))
	if typ == SeqNone {
		return
	}
	s.age++
	switch typ {
	case SeqGraphic:
		s.putGraphic(rune(seq.Terminator))
	case SeqControl:
		s.execControl(seq)
	case SeqEscape:
		s.execEscape(seq)
	case SeqCSI:
		s.execCSI(seq)
	case SeqDCS, SeqOSC, SeqIgnore:
		// recognized, payload (if any) discarded.
	}
}

func (s *Screen) activeCharset() CharsetID {
	return s.cursor.Charsets[s.cursor.GL]
}

func (s *Screen) translate(r rune) rune {
	if s.activeCharset() == CharsetDECSpecialGraphics {
		if mapped, ok := decSpecialGraphics[r]; ok {
			return mapped
		}
	}
	return r
}

func (s *Screen) putGraphic(r rune) {
	r = s.translate(r)
	ch := CharSet(Char{}, uint32(r))
	width := CharLookupWidth(ch)
	if width < 1 {
		width = 1
	}
	if s.wrapPending {
		s.newlineWithinPage()
		s.cursor.X = 0
		s.wrapPending = false
	}
	if s.cursor.X >= s.page.Width() {
		s.cursor.X = s.page.Width() - 1
	}
	s.page.Write(s.cursor.X, s.cursor.Y, ch, uint8(width), s.cursor.Attr, s.age, s.insertMode)
	s.cursor.X += width
	if s.cursor.X >= s.page.Width() {
		if s.autowrap {
			s.cursor.X = s.page.Width() - 1
			s.wrapPending = true
		} else {
			s.cursor.X = s.page.Width() - 1
		}
	}
}

// scrollRegionBottom is the last row index of the active scroll region.
func (s *Screen) scrollRegionBottom() int {
	return s.page.ScrollIdx() + s.page.ScrollNum() - 1
}

// newlineWithinPage advances the cursor row by one, scrolling the scroll
// region up (with history hand-off) if the cursor sits on its bottom row.
func (s *Screen) newlineWithinPage() {
	bottom := s.scrollRegionBottom()
	if s.cursor.Y == bottom {
		s.page.SetScrollFill(min(s.page.ScrollNum(), s.page.ScrollFill()+1))
		s.page.ScrollUp(1, DefaultAttr, s.age, s.history)
		return
	}
	if s.cursor.Y < s.page.Height()-1 {
		s.cursor.Y++
	}
}

func (s *Screen) reverseNewline() {
	top := s.page.ScrollIdx()
	if s.cursor.Y == top {
		s.page.ScrollDown(1, DefaultAttr, s.age, nil)
		return
	}
	if s.cursor.Y > 0 {
		s.cursor.Y--
	}
}

func (s *Screen) carriageReturn() {
	s.cursor.X = 0
	s.wrapPending = false
}

func (s *Screen) execControl(seq *Seq) {
	switch seq.Command {
	case CmdBEL:
		// no audible bell in this core; recognized and discarded.
	case CmdBS:
		if s.cursor.X > 0 {
			s.cursor.X--
		}
		s.wrapPending = false
	case CmdHT:
		s.cursor.X = s.nextTabStop(s.cursor.X)
	case CmdLF, CmdVT, CmdFF:
		s.newlineWithinPage()
	case CmdCR:
		s.carriageReturn()
	case CmdSO:
		s.cursor.GL = 1
	case CmdSI:
		s.cursor.GL = 0
	case CmdENQ:
		// answerback delivery is a caller (pty writer) concern; the
		// string is exposed via Screen for that purpose.
	case CmdIND:
		s.newlineWithinPage()
	case CmdNEL:
		s.carriageReturn()
		s.newlineWithinPage()
	case CmdHTS:
		s.tabStops[s.cursor.X] = true
	case CmdRI:
		s.reverseNewline()
	case CmdSS2:
		s.cursor.GL = 2
	case CmdSS3:
		s.cursor.GL = 3
	}
}

func (s *Screen) nextTabStop(x int) int {
	for i := x + 1; i < s.page.Width(); i++ {
		if s.tabStops[i] {
			return i
		}
	}
	return s.page.Width() - 1
}

func (s *Screen) prevTabStop(x int) int {
	for i := x - 1; i >= 0; i-- {
		if s.tabStops[i] {
			return i
		}
	}
	return 0
}

func (s *Screen) execEscape(seq *Seq) {
	switch seq.Command {
	case CmdRIS:
		s.hardReset()
	case CmdDECSC:
		s.savedCursor = s.cursor
	case CmdDECRC:
		s.cursor = s.savedCursor
	case CmdDECALN:
		s.page.Erase(0, 0, s.page.Width()-1, s.page.Height()-1, DefaultAttr, s.age, false)
		for y := 0; y < s.page.Height(); y++ {
			for x := 0; x < s.page.Width(); x++ {
				s.page.Write(x, y, CharSet(Char{}, 'E'), 1, DefaultAttr, s.age, false)
			}
		}
	case CmdIND:
		s.newlineWithinPage()
	case CmdNEL:
		s.carriageReturn()
		s.newlineWithinPage()
	case CmdHTS:
		s.tabStops[s.cursor.X] = true
	case CmdRI:
		s.reverseNewline()
	case CmdSS2:
		s.cursor.GL = 2
	case CmdSS3:
		s.cursor.GL = 3
	case CmdSCS:
		g := scsTargetSlot(seq.Intermediates)
		if g >= 0 && g < 4 {
			s.cursor.Charsets[g] = seq.Charset
		}
	case CmdDECSWL:
		s.setLineWidthMode(LineWidthNormal)
	case CmdDECDWL:
		s.setLineWidthMode(LineWidthDouble)
	case CmdDECDHL_TH:
		s.setLineWidthMode(LineWidthDoubleHeightTop)
	case CmdDECDHL_BH:
		s.setLineWidthMode(LineWidthDoubleHeightBottom)
	case CmdDECANM:
		// This core only ever runs in ANSI mode; VT52 mode is not
		// modeled, so DECANM is recognized but has nothing to switch.
	}
}

// setLineWidthMode marks the cursor's current row with a DECDWL/DECSWL/
// DECDHL rendering mode; a renderer consuming Page can use it to double
// the displayed width or height of that row's cells.
func (s *Screen) setLineWidthMode(m LineWidthMode) {
	if line := s.page.Line(s.cursor.Y); line != nil {
		line.SetWidthMode(m)
	}
}

// scsTargetSlot picks which of G0-G3 an SCS designation targets from its
// intermediate byte: '(' -> G0, ')' -> G1, '*' -> G2, '+' -> G3.
func scsTargetSlot(intermediates uint32) int {
	switch {
	case intermediates&flagFor('(') != 0:
		return 0
	case intermediates&flagFor(')') != 0:
		return 1
	case intermediates&flagFor('*') != 0:
		return 2
	case intermediates&flagFor('+') != 0:
		return 3
	default:
		return -1
	}
}

func arg(seq *Seq, i, def int) int {
	if i >= seq.NArgs || seq.Args[i] < 0 {
		return def
	}
	return seq.Args[i]
}

func (s *Screen) execCSI(seq *Seq) {
	switch seq.Command {
	case CmdCUU:
		s.moveCursor(0, -arg(seq, 0, 1))
	case CmdCUD:
		s.moveCursor(0, arg(seq, 0, 1))
	case CmdCUF:
		s.moveCursor(arg(seq, 0, 1), 0)
	case CmdCUB:
		s.moveCursor(-arg(seq, 0, 1), 0)
	case CmdCNL:
		s.moveCursor(0, arg(seq, 0, 1))
		s.cursor.X = 0
	case CmdCPL:
		s.moveCursor(0, -arg(seq, 0, 1))
		s.cursor.X = 0
	case CmdCHA:
		s.setCursorColumn(arg(seq, 0, 1) - 1)
	case CmdHPA:
		s.setCursorColumn(arg(seq, 0, 1) - 1)
	case CmdHPR:
		s.moveCursor(arg(seq, 0, 1), 0)
	case CmdVPA:
		s.setCursorRow(arg(seq, 0, 1) - 1)
	case CmdVPR:
		s.moveCursor(0, arg(seq, 0, 1))
	case CmdCUP, CmdHVP:
		s.setCursorPosition(arg(seq, 1, 1)-1, arg(seq, 0, 1)-1)
	case CmdCHT:
		for i := 0; i < arg(seq, 0, 1); i++ {
			s.cursor.X = s.nextTabStop(s.cursor.X)
		}
	case CmdCBT:
		for i := 0; i < arg(seq, 0, 1); i++ {
			s.cursor.X = s.prevTabStop(s.cursor.X)
		}
	case CmdTBC:
		switch arg(seq, 0, 0) {
		case 0:
			delete(s.tabStops, s.cursor.X)
		case 3:
			s.tabStops = make(map[int]bool)
		}
	case CmdED:
		s.eraseInDisplay(arg(seq, 0, 0), false)
	case CmdDECSED:
		s.eraseInDisplay(arg(seq, 0, 0), true)
	case CmdEL:
		s.eraseInLine(arg(seq, 0, 0), false)
	case CmdDECSEL:
		s.eraseInLine(arg(seq, 0, 0), true)
	case CmdDECSCA:
		switch arg(seq, 0, 0) {
		case 1:
			s.cursor.Attr.Protect = true
		case 0, 2:
			s.cursor.Attr.Protect = false
		}
	case CmdDECRC:
		s.cursor = s.savedCursor
	case CmdDECSLRM_OR_SC:
		// No left/right margin mode (DECLRMM) is modeled, so CSI s is
		// always the save-cursor form.
		s.savedCursor = s.cursor
	case CmdIL:
		s.page.InsertLines(s.cursor.Y, arg(seq, 0, 1), s.cursor.Attr, s.age)
	case CmdDL:
		s.page.DeleteLines(s.cursor.Y, arg(seq, 0, 1), s.cursor.Attr, s.age)
	case CmdICH:
		s.page.InsertCells(s.cursor.X, s.cursor.Y, arg(seq, 0, 1), s.cursor.Attr, s.age)
	case CmdDCH:
		s.page.DeleteCells(s.cursor.X, s.cursor.Y, arg(seq, 0, 1), s.cursor.Attr, s.age)
	case CmdECH:
		s.eraseChars(arg(seq, 0, 1))
	case CmdSU:
		s.page.ScrollUp(arg(seq, 0, 1), s.cursor.Attr, s.age, s.history)
	case CmdSD:
		s.page.ScrollDown(arg(seq, 0, 1), s.cursor.Attr, s.age, s.history)
	case CmdDECSTBM:
		top := arg(seq, 0, 1) - 1
		bottom := arg(seq, 1, s.page.Height())
		if bottom <= top {
			bottom = s.page.Height()
		}
		s.page.SetScrollRegion(top, bottom-top)
		s.setCursorPosition(0, 0)
	case CmdSM_ANSI, CmdSM_DEC:
		s.setModes(seq, true)
	case CmdRM_ANSI, CmdRM_DEC:
		s.setModes(seq, false)
	case CmdSGR:
		s.selectGraphicRendition(seq)
	case CmdDECSTR:
		s.hardReset()
	case CmdREP:
		// repeat-last-graphic-character; the parser doesn't retain the
		// last printed rune, so this is a documented no-op here.
	}
}

func (s *Screen) moveCursor(dx, dy int) {
	s.setCursorPosition(s.cursor.X+dx, s.cursor.Y+dy)
	s.wrapPending = false
}

func (s *Screen) setCursorColumn(x int) {
	s.setCursorPosition(x, s.cursor.Y)
}

func (s *Screen) setCursorRow(y int) {
	s.setCursorPosition(s.cursor.X, y)
}

// setCursorPosition clamps to the page, honoring origin mode by
// interpreting y relative to the scroll region when active.
func (s *Screen) setCursorPosition(x, y int) {
	if s.originMode {
		y += s.page.ScrollIdx()
	}
	if x < 0 {
		x = 0
	}
	if x >= s.page.Width() {
		x = s.page.Width() - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= s.page.Height() {
		y = s.page.Height() - 1
	}
	s.cursor.X, s.cursor.Y = x, y
	s.wrapPending = false
}

func (s *Screen) eraseInDisplay(mode int, keepProtected bool) {
	w, h := s.page.Width(), s.page.Height()
	switch mode {
	case 0:
		s.page.Erase(s.cursor.X, s.cursor.Y, w-1, h-1, s.cursor.Attr, s.age, keepProtected)
	case 1:
		s.page.Erase(0, 0, s.cursor.X, s.cursor.Y, s.cursor.Attr, s.age, keepProtected)
	case 2, 3:
		s.page.Erase(0, 0, w-1, h-1, s.cursor.Attr, s.age, keepProtected)
	}
}

func (s *Screen) eraseInLine(mode int, keepProtected bool) {
	w := s.page.Width()
	switch mode {
	case 0:
		s.page.Erase(s.cursor.X, s.cursor.Y, w-1, s.cursor.Y, s.cursor.Attr, s.age, keepProtected)
	case 1:
		s.page.Erase(0, s.cursor.Y, s.cursor.X, s.cursor.Y, s.cursor.Attr, s.age, keepProtected)
	case 2:
		s.page.Erase(0, s.cursor.Y, w-1, s.cursor.Y, s.cursor.Attr, s.age, keepProtected)
	}
}

func (s *Screen) eraseChars(n int) {
	line := s.page.Line(s.cursor.Y)
	if line == nil {
		return
	}
	line.Erase(s.cursor.X, n, s.cursor.Attr, s.age, false)
}

const (
	modeIRM     = 4
	modeDECOM   = 6
	modeDECAWM  = 7
	modeDECTCEM = 25
)

func (s *Screen) setModes(seq *Seq, enable bool) {
	private := seq.Command == CmdSM_DEC || seq.Command == CmdRM_DEC
	for i := 0; i < seq.NArgs; i++ {
		mode := seq.Args[i]
		if !private {
			if mode == 20 { // LNM, not modeled beyond acceptance
				continue
			}
			if mode == modeIRM {
				s.insertMode = enable
			}
			continue
		}
		switch mode {
		case modeDECOM:
			s.originMode = enable
			s.setCursorPosition(0, 0)
		case modeDECAWM:
			s.autowrap = enable
		case modeDECTCEM:
			s.cursorShown = enable
		}
	}
}

func (s *Screen) selectGraphicRendition(seq *Seq) {
	if seq.NArgs == 0 {
		s.cursor.Attr = DefaultAttr
		return
	}
	i := 0
	for i < seq.NArgs {
		code := seq.Args[i]
		if code < 0 {
			code = 0
		}
		switch {
		case code == 0:
			s.cursor.Attr = DefaultAttr
		case code == 1:
			s.cursor.Attr.Bold = true
		case code == 3:
			s.cursor.Attr.Italic = true
		case code == 4:
			s.cursor.Attr.Underline = true
		case code == 5:
			s.cursor.Attr.Blink = true
		case code == 7:
			s.cursor.Attr.Inverse = true
		case code == 8:
			s.cursor.Attr.Hidden = true
		case code == 22:
			s.cursor.Attr.Bold = false
		case code == 23:
			s.cursor.Attr.Italic = false
		case code == 24:
			s.cursor.Attr.Underline = false
		case code == 25:
			s.cursor.Attr.Blink = false
		case code == 27:
			s.cursor.Attr.Inverse = false
		case code == 28:
			s.cursor.Attr.Hidden = false
		case code >= 30 && code <= 37:
			s.cursor.Attr.Fg = Color{Kind: ColorNamed, Value: uint32(code - 30)}
		case code == 39:
			s.cursor.Attr.Fg = DefaultColor
		case code >= 40 && code <= 47:
			s.cursor.Attr.Bg = Color{Kind: ColorNamed, Value: uint32(code - 40)}
		case code == 49:
			s.cursor.Attr.Bg = DefaultColor
		case code >= 90 && code <= 97:
			s.cursor.Attr.Fg = Color{Kind: ColorNamed, Value: uint32(code-90) + 8}
		case code >= 100 && code <= 107:
			s.cursor.Attr.Bg = Color{Kind: ColorNamed, Value: uint32(code-100) + 8}
		case code == 38 || code == 48:
			consumed, col := parseExtendedColor(seq, i)
			if col != nil {
				if code == 38 {
					s.cursor.Attr.Fg = *col
				} else {
					s.cursor.Attr.Bg = *col
				}
			}
			i += consumed
		}
		i++
	}
}

// parseExtendedColor handles SGR 38/48 ";5;n" (256-color) and
// ";2;r;g;b" (direct RGB) forms, returning how many extra args it
// consumed beyond the mode selector itself.
func parseExtendedColor(seq *Seq, i int) (int, *Color) {
	if i+1 >= seq.NArgs {
		return 0, nil
	}
	switch seq.Args[i+1] {
	case 5:
		if i+2 >= seq.NArgs {
			return 1, nil
		}
		c := Color{Kind: ColorIndexed, Value: uint32(seq.Args[i+2])}
		return 2, &c
	case 2:
		if i+4 >= seq.NArgs {
			return 1, nil
		}
		r, g, b := seq.Args[i+2], seq.Args[i+3], seq.Args[i+4]
		v := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		c := Color{Kind: ColorRGB, Value: v}
		return 4, &c
	default:
		return 1, nil
	}
}
