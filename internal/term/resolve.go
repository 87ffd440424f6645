package term

// resolveControl maps a C0/C1 control code to its command id. Codes that
// the state machine itself consumes to change state (CAN, ESC, DEL, DCS,
// SOS, CSI, OSC, PM, APC, ST) never reach here — only codes dispatched
// via the execute action do.
func resolveControl(raw rune) CommandID {
	switch raw {
	case 0x00:
		return CmdNUL
	case 0x05:
		return CmdENQ
	case 0x07:
		return CmdBEL
	case 0x08:
		return CmdBS
	case 0x09:
		return CmdHT
	case 0x0A:
		return CmdLF
	case 0x0B:
		return CmdVT
	case 0x0C:
		return CmdFF
	case 0x0D:
		return CmdCR
	case 0x0E:
		return CmdSO
	case 0x0F:
		return CmdSI
	case 0x11:
		return CmdDC1
	case 0x13:
		return CmdDC3
	case 0x1A:
		return CmdSUB
	case 0x84:
		return CmdIND
	case 0x85:
		return CmdNEL
	case 0x88:
		return CmdHTS
	case 0x8D:
		return CmdRI
	case 0x8E:
		return CmdSS2
	case 0x8F:
		return CmdSS3
	case 0x96:
		return CmdSPA
	case 0x97:
		return CmdEPA
	case 0x9A:
		return CmdDECID
	case 0x9C:
		return CmdST
	default:
		return CmdNone
	}
}

// scsDesignatorFlags is the bitset of intermediates that name an SCS
// charset target: '(' ')' '*' '+' '-' '.' '/'.
var scsDesignatorFlags = flagFor('(') | flagFor(')') | flagFor('*') | flagFor('+') | flagFor('-') | flagFor('.') | flagFor('/')

// resolveEscape maps an escape sequence's (terminator, intermediates) to
// a command id, populating charset for SCS designations.
func resolveEscape(s *Seq) (CommandID, CharsetID) {
	if s.Intermediates&scsDesignatorFlags != 0 {
		cs := resolveCharset(s.Intermediates, byte(s.Terminator))
		if cs != CharsetNone {
			return CmdSCS, cs
		}
	}
	if s.Intermediates&flagFor('#') != 0 {
		switch s.Terminator {
		case '3':
			return CmdDECDHL_TH, CharsetNone
		case '4':
			return CmdDECDHL_BH, CharsetNone
		case '5':
			return CmdDECSWL, CharsetNone
		case '6':
			return CmdDECDWL, CharsetNone
		case '8':
			return CmdDECALN, CharsetNone
		}
	}
	if s.Intermediates&flagFor(' ') != 0 {
		switch s.Terminator {
		case 'F':
			return CmdS7C1T, CharsetNone
		case 'G':
			return CmdS8C1T, CharsetNone
		}
	}
	switch s.Terminator {
	case 'c':
		return CmdRIS, CharsetNone
	case '7':
		return CmdDECSC, CharsetNone
	case '8':
		return CmdDECRC, CharsetNone
	case '<':
		return CmdDECANM, CharsetNone
	case '=':
		return CmdDECKPAM, CharsetNone
	case '>':
		return CmdDECKPNM, CharsetNone
	case 'D':
		return CmdIND, CharsetNone
	case 'E':
		return CmdNEL, CharsetNone
	case 'H':
		return CmdHTS, CharsetNone
	case 'M':
		return CmdRI, CharsetNone
	case 'N':
		return CmdSS2, CharsetNone
	case 'O':
		return CmdSS3, CharsetNone
	case 'Z':
		return CmdDECID, CharsetNone
	case '6':
		return CmdDECBI, CharsetNone
	case '9':
		return CmdDECFI, CharsetNone
	case '\\':
		return CmdST, CharsetNone
	default:
		return CmdNone, CharsetNone
	}
}

// resolveCSI maps a CSI sequence's (terminator, intermediates, args) to a
// command id. A handful of finals are genuinely ambiguous without
// caller-side mode state (DECLRMM for 's'); those resolve to a compound
// id the Screen layer disambiguates, matching the original driver's
// division of responsibility (SPEC_FULL.md §4).
func resolveCSI(s *Seq) CommandID {
	private := s.Intermediates&flagFor('?') != 0
	switch s.Terminator {
	case 'A':
		return CmdCUU
	case 'B':
		return CmdCUD
	case 'C':
		return CmdCUF
	case 'D':
		return CmdCUB
	case 'E':
		return CmdCNL
	case 'F':
		return CmdCPL
	case 'G':
		return CmdCHA
	case 'H', 'f':
		return CmdCUP
	case 'I':
		return CmdCHT
	case 'J':
		if private {
			return CmdDECSED
		}
		return CmdED
	case 'K':
		if private {
			return CmdDECSEL
		}
		return CmdEL
	case 'L':
		return CmdIL
	case 'M':
		return CmdDL
	case 'P':
		return CmdDCH
	case 'S':
		return CmdSU
	case 'T':
		if s.NArgs == 5 {
			return CmdXTERM_IHMT
		}
		return CmdSD
	case 'X':
		return CmdECH
	case 'Z':
		return CmdCBT
	case '`':
		return CmdHPA
	case 'a':
		return CmdHPR
	case 'b':
		return CmdREP
	case 'c':
		if private {
			return CmdDA3
		}
		return CmdDA1
	case 'd':
		return CmdVPA
	case 'e':
		return CmdVPR
	case 'g':
		return CmdTBC
	case 'h':
		if private {
			return CmdSM_DEC
		}
		return CmdSM_ANSI
	case 'l':
		if private {
			return CmdRM_DEC
		}
		return CmdRM_ANSI
	case 'm':
		return CmdSGR
	case 'n':
		if private {
			return CmdDSR_DEC
		}
		return CmdDSR_ANSI
	case 'q':
		switch {
		case s.Intermediates&flagFor(' ') != 0:
			return CmdDECSCUSR
		case s.Intermediates&flagFor('"') != 0:
			return CmdDECSCA
		}
		return CmdNone
	case 'r':
		return CmdDECSTBM
	case 's':
		return CmdDECSLRM_OR_SC
	case 'u':
		if s.Intermediates == 0 {
			return CmdDECRC
		}
		return CmdNone
	case '@':
		return CmdICH
	case 'p':
		if private && s.Intermediates&flagFor('"') != 0 {
			return CmdDECSCL
		}
		if private && s.NArgs == 0 {
			return CmdDECSTR
		}
		return CmdNone
	case 'x':
		if private {
			return CmdDECRQM_DEC
		}
		return CmdDECRQM_ANSI
	default:
		return CmdNone
	}
}
