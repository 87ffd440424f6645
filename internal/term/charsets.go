package term

// CharsetID identifies a G0-G3 designation target, resolved from an
// escape sequence's intermediates and final byte by the SCS command.
type CharsetID int

const (
	CharsetNone CharsetID = iota
	CharsetUSASCII
	CharsetISOLatin1Supplemental // 96-compat
	CharsetISOLatin2Supplemental
	CharsetISOLatinCyrillic
	CharsetISOLatinGreek
	CharsetISOLatinHebrew
	CharsetDECSpecialGraphics // 94-compat, line-drawing
	CharsetDECSupplemental
	CharsetDECSupplementalGraphics
	CharsetUKNational
	CharsetFinnishNRCS
	CharsetFrenchNRCS
	CharsetFrenchCanadianNRCS
	CharsetGermanNRCS
	CharsetItalianNRCS
	CharsetNorwegianDanishNRCS
	CharsetPortugueseNRCS
	CharsetSpanishNRCS
	CharsetSwedishNRCS
	CharsetSwissNRCS
	CharsetDutchNRCS
	CharsetUserPreferredSupplemental
)

// charsetDesignation is one (intermediate-flags, final byte) pairing that
// resolves to a charset id; a given id may have secondary/tertiary raw
// bytes that collide with other ids (disambiguated by the require96 rule
// in resolveCharset below), mirroring devcon_charset_from_cmd's table.
type charsetDesignation struct {
	id    CharsetID
	flags uint32 // designator the entry is listed under (bitset over 0x20..0x3F, as Seq.Intermediates); matching uses its 94/96 class
	final byte
	is96  bool
}

// flagFor builds the single-intermediate bit for an SCS designator byte
// ('(' , ')', '*', '+', '-', '.', '/').
func flagFor(b byte) uint32 {
	return 1 << uint32(b-0x20)
}

var charsetTable = []charsetDesignation{
	{CharsetUSASCII, flagFor('('), 'B', false},
	{CharsetISOLatin1Supplemental, flagFor('-'), 'A', true},
	{CharsetISOLatin1Supplemental, flagFor('.'), 'A', true},
	{CharsetISOLatin2Supplemental, flagFor('-'), 'B', true},
	{CharsetISOLatinCyrillic, flagFor('-'), 'L', true},
	{CharsetISOLatinGreek, flagFor('-'), 'F', true},
	{CharsetISOLatinHebrew, flagFor('-'), 'H', true},
	{CharsetDECSpecialGraphics, flagFor('('), '0', false},
	{CharsetDECSupplemental, flagFor('('), '<', false},
	{CharsetDECSupplementalGraphics, flagFor('('), '%', false},
	{CharsetUKNational, flagFor('('), 'A', false},
	{CharsetFinnishNRCS, flagFor('('), '5', false},
	{CharsetFinnishNRCS, flagFor('('), 'C', false},
	{CharsetFrenchNRCS, flagFor('('), 'R', false},
	{CharsetFrenchNRCS, flagFor('('), 'f', false},
	{CharsetFrenchCanadianNRCS, flagFor('('), 'Q', false},
	{CharsetGermanNRCS, flagFor('('), 'K', false},
	{CharsetItalianNRCS, flagFor('('), 'Y', false},
	{CharsetNorwegianDanishNRCS, flagFor('('), 'E', false},
	{CharsetNorwegianDanishNRCS, flagFor('('), '6', false},
	{CharsetPortugueseNRCS, flagFor('('), '6', false},
	{CharsetSpanishNRCS, flagFor('('), 'Z', false},
	{CharsetSwedishNRCS, flagFor('('), 'H', false},
	{CharsetSwedishNRCS, flagFor('('), '7', false},
	{CharsetSwissNRCS, flagFor('('), '=', false},
	{CharsetDutchNRCS, flagFor('('), '4', false},
}

// resolveCharset looks up the charset id matching (flags, final). A
// 94-compat entry accepts any 94-set designator ('(' ')' '*' '+') and a
// 96-compat entry any 96-set designator ('-' '.' '/'), so one table row
// serves every G0-G3 target. On a conflict between a 96-compat and a
// 94-compat entry sharing the same raw final, the 96-compat set wins
// (VT510 compatibility), matching devcon_charset_from_cmd's require_96 rule.
func resolveCharset(flags uint32, final byte) CharsetID {
	designators94 := flagFor('(') | flagFor(')') | flagFor('*') | flagFor('+')
	designators96 := flagFor('-') | flagFor('.') | flagFor('/')
	best := CharsetNone
	bestIs96 := false
	for _, d := range charsetTable {
		if d.final != final {
			continue
		}
		accepted := designators94
		if d.is96 {
			accepted = designators96
		}
		if accepted&flags == 0 {
			continue
		}
		if best == CharsetNone || (d.is96 && !bestIs96) {
			best = d.id
			bestIs96 = d.is96
		}
	}
	return best
}
