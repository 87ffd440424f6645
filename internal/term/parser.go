package term

// ParserState is one node of the Paul Williams DEC/ANSI parser state
// machine: ground plus the escape/CSI/DCS/OSC sub-states needed to
// classify an incoming UCS-4 stream.
type ParserState int

const (
	StateGround ParserState = iota
	StateEscape
	StateEscapeIntermediate
	StateCSIEntry
	StateCSIParam
	StateCSIIntermediate
	StateCSIIgnore
	StateDCSEntry
	StateDCSParam
	StateDCSIntermediate
	StateDCSPass
	StateDCSIgnore
	StateOSCString
	StateSTIgnore
)

// SeqType classifies what a completed Seq represents.
type SeqType int

const (
	SeqNone SeqType = iota
	SeqIgnore
	SeqGraphic
	SeqControl
	SeqEscape
	SeqCSI
	SeqDCS
	SeqOSC
)

// MaxArgs bounds the number of CSI parameters tracked per sequence.
const MaxArgs = 16

// intermediateBit is the bitset position for an intermediate byte in
// 0x20..0x3F, used both by Seq.Intermediates and the SCS charset table.
func intermediateBit(b rune) uint32 {
	if b < 0x20 || b > 0x3F {
		return 0
	}
	return 1 << uint32(b-0x20)
}

// Seq is the parser's sequence buffer: the fully (or partially, for
// ignored/in-progress sequences) assembled result of one dispatch.
type Seq struct {
	Type          SeqType
	Command       CommandID
	Terminator    rune
	Intermediates uint32
	Charset       CharsetID
	Args          [MaxArgs]int
	NArgs         int
}

func (s *Seq) clear() {
	s.Command = CmdNone
	s.Terminator = 0
	s.Intermediates = 0
	s.Charset = CharsetNone
	s.NArgs = 0
	for i := range s.Args {
		s.Args[i] = -1
	}
}

// Parser holds the state machine's current state and sequence buffer.
// Feed is not reentrant; a single owner drives it one code point at a
// time, exactly as spec'd for the rest of the core.
type Parser struct {
	state ParserState
	seq   Seq
}

// NewParser returns a parser in the ground state with a cleared Seq.
func NewParser() *Parser {
	p := &Parser{}
	p.seq.clear()
	return p
}

// State returns the parser's current state, mostly useful for tests.
func (p *Parser) State() ParserState { return p.state }

type action int

const (
	actNone action = iota
	actClear
	actIgnore
	actPrint
	actExecute
	actCollect
	actParam
	actEscDispatch
	actCSIDispatch
	actDCSStart
	actDCSCollect
	actDCSConsume
	actDCSDispatch
	actOSCStart
	actOSCCollect
	actOSCConsume
	actOSCDispatch
)

// Feed advances the state machine by one code point, returning the
// completed Seq (valid until the next Feed call) and its type. It
// returns (nil, SeqNone) while a sequence is still being assembled.
func (p *Parser) Feed(raw rune) (*Seq, SeqType) {
	state, act, handled := globalEdge(p.state, raw)
	if !handled {
		state, act = p.transition(raw)
	}
	p.state = state
	return p.apply(act, raw)
}

// globalEdge checks the edges that must cancel an in-progress sequence
// regardless of state, before the per-state table runs.
func globalEdge(cur ParserState, raw rune) (ParserState, action, bool) {
	switch raw {
	case 0x18: // CAN
		return StateGround, actIgnore, true
	case 0x1A: // SUB
		return StateGround, actExecute, true
	case 0x1B: // ESC
		return StateEscape, actClear, true
	case 0x90: // DCS
		return StateDCSEntry, actClear, true
	case 0x9D: // OSC
		return StateOSCString, actClear, true
	case 0x9B: // CSI
		return StateCSIEntry, actClear, true
	case 0x98, 0x9E, 0x9F: // SOS, PM, APC
		return StateSTIgnore, actNone, true
	}
	if raw >= 0x80 && raw <= 0x9F && raw != 0x9C {
		// Any other C1 control not already special-cased above.
		return StateGround, actExecute, true
	}
	return cur, actNone, false
}

// transition is the per-state table for code points not caught by
// globalEdge: everything outside the C1 range 0x80-0x9F, plus ST (0x9C),
// which terminates almost every state instead of being globally
// intercepted.
func (p *Parser) transition(raw rune) (ParserState, action) {
	switch p.state {
	case StateGround:
		switch {
		case raw == 0x9C:
			return StateGround, actIgnore
		case raw == 0x7F:
			return StateGround, actIgnore
		case raw >= 0x20:
			return StateGround, actPrint
		case isC0(raw):
			return StateGround, actExecute
		}
		return StateGround, actIgnore

	case StateEscape:
		switch {
		case raw == 0x9C:
			return StateGround, actClear
		case raw == 0x7F:
			return StateEscape, actIgnore
		case raw >= 0x20 && raw <= 0x2F:
			return StateEscapeIntermediate, actCollect
		case raw == 0x50:
			return StateDCSEntry, actClear
		case raw == 0x58 || raw == 0x5E || raw == 0x5F:
			return StateSTIgnore, actNone
		case raw == 0x5B:
			return StateCSIEntry, actClear
		case raw == 0x5D:
			return StateOSCString, actClear
		case raw >= 0x30 && raw <= 0x7E:
			return StateGround, actEscDispatch
		case isC0(raw):
			return StateEscape, actExecute
		}
		return StateEscape, actIgnore

	case StateEscapeIntermediate:
		switch {
		case raw == 0x9C:
			return StateGround, actClear
		case raw == 0x7F:
			return StateEscapeIntermediate, actIgnore
		case raw >= 0x20 && raw <= 0x2F:
			return StateEscapeIntermediate, actCollect
		case raw >= 0x30 && raw <= 0x7E:
			return StateGround, actEscDispatch
		case isC0(raw):
			return StateEscapeIntermediate, actExecute
		}
		return StateEscapeIntermediate, actIgnore

	case StateCSIEntry:
		switch {
		case raw == 0x9C:
			return StateGround, actClear
		case raw == 0x7F:
			return StateCSIEntry, actIgnore
		case raw >= 0x20 && raw <= 0x2F:
			return StateCSIIntermediate, actCollect
		case (raw >= 0x30 && raw <= 0x39) || raw == 0x3B:
			return StateCSIParam, actParam
		case raw == 0x3A:
			return StateCSIIgnore, actIgnore
		case raw >= 0x3C && raw <= 0x3F:
			return StateCSIParam, actCollect
		case raw >= 0x40 && raw <= 0x7E:
			return StateGround, actCSIDispatch
		case isC0(raw):
			return StateCSIEntry, actExecute
		}
		return StateCSIEntry, actIgnore

	case StateCSIParam:
		switch {
		case raw == 0x9C:
			return StateGround, actClear
		case raw == 0x7F:
			return StateCSIParam, actIgnore
		case raw >= 0x20 && raw <= 0x2F:
			return StateCSIIntermediate, actCollect
		case (raw >= 0x30 && raw <= 0x39) || raw == 0x3B:
			return StateCSIParam, actParam
		case raw == 0x3A || (raw >= 0x3C && raw <= 0x3F):
			return StateCSIIgnore, actIgnore
		case raw >= 0x40 && raw <= 0x7E:
			return StateGround, actCSIDispatch
		case isC0(raw):
			return StateCSIParam, actExecute
		}
		return StateCSIParam, actIgnore

	case StateCSIIntermediate:
		switch {
		case raw == 0x9C:
			return StateGround, actClear
		case raw == 0x7F:
			return StateCSIIntermediate, actIgnore
		case raw >= 0x20 && raw <= 0x2F:
			return StateCSIIntermediate, actCollect
		case raw >= 0x30 && raw <= 0x3F:
			return StateCSIIgnore, actIgnore
		case raw >= 0x40 && raw <= 0x7E:
			return StateGround, actCSIDispatch
		case isC0(raw):
			return StateCSIIntermediate, actExecute
		}
		return StateCSIIntermediate, actIgnore

	case StateCSIIgnore:
		switch {
		case raw == 0x9C:
			return StateGround, actClear
		case raw >= 0x20 && raw <= 0x3F:
			return StateCSIIgnore, actIgnore
		case raw == 0x7F:
			return StateCSIIgnore, actIgnore
		case raw >= 0x40 && raw <= 0x7E:
			return StateGround, actIgnore
		case isC0(raw):
			return StateCSIIgnore, actExecute
		}
		return StateCSIIgnore, actIgnore

	case StateDCSEntry:
		switch {
		case raw == 0x9C:
			return StateGround, actDCSDispatch
		case raw == 0x7F:
			return StateDCSEntry, actIgnore
		case raw >= 0x20 && raw <= 0x2F:
			return StateDCSIntermediate, actCollect
		case (raw >= 0x30 && raw <= 0x39) || raw == 0x3B:
			return StateDCSParam, actParam
		case raw == 0x3A:
			return StateDCSIgnore, actIgnore
		case raw >= 0x3C && raw <= 0x3F:
			return StateDCSParam, actCollect
		case raw >= 0x40 && raw <= 0x7E:
			return StateDCSPass, actDCSStart
		case isC0(raw):
			return StateDCSEntry, actIgnore
		}
		return StateDCSEntry, actIgnore

	case StateDCSParam:
		switch {
		case raw == 0x9C:
			return StateGround, actDCSDispatch
		case raw == 0x7F:
			return StateDCSParam, actIgnore
		case raw >= 0x20 && raw <= 0x2F:
			return StateDCSIntermediate, actCollect
		case (raw >= 0x30 && raw <= 0x39) || raw == 0x3B:
			return StateDCSParam, actParam
		case raw == 0x3A || (raw >= 0x3C && raw <= 0x3F):
			return StateDCSIgnore, actIgnore
		case raw >= 0x40 && raw <= 0x7E:
			return StateDCSPass, actDCSStart
		case isC0(raw):
			return StateDCSParam, actIgnore
		}
		return StateDCSParam, actIgnore

	case StateDCSIntermediate:
		switch {
		case raw == 0x9C:
			return StateGround, actDCSDispatch
		case raw == 0x7F:
			return StateDCSIntermediate, actIgnore
		case raw >= 0x20 && raw <= 0x2F:
			return StateDCSIntermediate, actCollect
		case raw >= 0x30 && raw <= 0x3F:
			return StateDCSIgnore, actIgnore
		case raw >= 0x40 && raw <= 0x7E:
			return StateDCSPass, actDCSStart
		case isC0(raw):
			return StateDCSIntermediate, actIgnore
		}
		return StateDCSIntermediate, actIgnore

	case StateDCSPass:
		switch {
		case raw == 0x9C:
			return StateGround, actDCSDispatch
		case raw == 0x7F:
			return StateDCSPass, actIgnore
		default:
			return StateDCSPass, actDCSConsume
		}

	case StateDCSIgnore:
		switch {
		case raw == 0x9C:
			return StateGround, actClear
		default:
			return StateDCSIgnore, actIgnore
		}

	case StateOSCString:
		switch {
		case raw == 0x07: // xterm BEL-terminated OSC
			return StateGround, actOSCDispatch
		case raw == 0x9C:
			return StateGround, actOSCDispatch
		case raw >= 0x20 && raw <= 0x7F:
			return StateOSCString, actOSCCollect
		default:
			return StateOSCString, actIgnore
		}

	case StateSTIgnore:
		switch {
		case raw == 0x9C:
			return StateGround, actIgnore
		default:
			return StateSTIgnore, actIgnore
		}
	}
	return StateGround, actIgnore
}

func isC0(raw rune) bool {
	return raw >= 0x00 && raw <= 0x1F
}

func (p *Parser) apply(act action, raw rune) (*Seq, SeqType) {
	s := &p.seq
	switch act {
	case actNone:
		return nil, SeqNone
	case actClear:
		s.clear()
		return nil, SeqNone
	case actIgnore:
		s.clear()
		s.Type = SeqIgnore
		s.Terminator = raw
		return s, SeqIgnore
	case actPrint:
		s.clear()
		s.Type = SeqGraphic
		s.Terminator = raw
		return s, SeqGraphic
	case actExecute:
		s.clear()
		s.Type = SeqControl
		s.Terminator = raw
		s.Command = resolveControl(raw)
		return s, SeqControl
	case actCollect:
		s.Intermediates |= intermediateBit(raw)
		return nil, SeqNone
	case actParam:
		applyParam(s, raw)
		return nil, SeqNone
	case actEscDispatch:
		s.Type = SeqEscape
		s.Terminator = raw
		s.Command, s.Charset = resolveEscape(s)
		return s, SeqEscape
	case actCSIDispatch:
		if s.Args[s.NArgs] != -1 {
			s.NArgs++
		}
		s.Type = SeqCSI
		s.Terminator = raw
		s.Command = resolveCSI(s)
		return s, SeqCSI
	case actDCSStart, actDCSCollect, actDCSConsume:
		// Payload bytes are recognized but discarded; nothing to
		// accumulate (see SPEC_FULL.md's DCS/OSC dispatch note).
		return nil, SeqNone
	case actDCSDispatch:
		s.Type = SeqDCS
		s.Terminator = raw
		return s, SeqDCS
	case actOSCStart, actOSCCollect, actOSCConsume:
		return nil, SeqNone
	case actOSCDispatch:
		s.Type = SeqOSC
		s.Terminator = raw
		return s, SeqOSC
	}
	return nil, SeqNone
}

// applyParam accumulates CSI/DCS parameter digits: ';' starts a new
// argument (capped at MaxArgs-1), digits accumulate into the current
// argument (initialising -1 to 0 on the first digit), clamped to 0xFFFF.
func applyParam(s *Seq, raw rune) {
	if raw == ';' {
		if s.NArgs < MaxArgs-1 {
			s.NArgs++
		}
		return
	}
	if raw < '0' || raw > '9' {
		return
	}
	if s.Args[s.NArgs] < 0 {
		s.Args[s.NArgs] = 0
	}
	s.Args[s.NArgs] = s.Args[s.NArgs]*10 + int(raw-'0')
	if s.Args[s.NArgs] > 0xFFFF {
		s.Args[s.NArgs] = 0xFFFF
	}
}
