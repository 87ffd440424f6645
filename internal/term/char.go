package term

import "github.com/mattn/go-runewidth"

// UCS4Max is the highest valid UCS-4 code point.
const UCS4Max = 0x10FFFF

// ucs4Mask keeps the low 21 bits of a packed slot.
const ucs4Mask = 0x1FFFFF

// ucs4Absent marks an unused packed slot; any value above UCS4Max works.
const ucs4Absent = UCS4Max + 1

// ucs4Replacement is substituted when a duplication would otherwise fail.
const ucs4Replacement = 0xFFFD

// softCombiningLimit bounds the number of combining marks (code points after
// the base) a boxed Char may hold before further merges are rejected and the
// Char is returned unchanged, so a Char holds at most softCombiningLimit+1
// code points.
const softCombiningLimit = 64

// charBox is the heap-allocated storage for a Char holding more than three
// code points (base plus more than two combining marks).
type charBox struct {
	points []uint32
}

// Char represents a base code point plus zero or more combining marks. The
// zero value is the null Char (no code points). One to three code points
// are held inline ("packed"); four or more overflow to a boxed slice.
//
// Char is a value type: copying it does not duplicate boxed storage, so at
// most one logical owner should mutate through a given Char. Dup makes an
// independent copy when an owner needs to branch.
type Char struct {
	packed uint64
	box    *charBox
}

func packOne(v1 uint32) uint64 {
	return 1 | (uint64(v1)&ucs4Mask)<<1 | (uint64(ucs4Absent)&ucs4Mask)<<22 | (uint64(ucs4Absent)&ucs4Mask)<<43
}

func packTwo(v1, v2 uint32) uint64 {
	return 1 | (uint64(v1)&ucs4Mask)<<1 | (uint64(v2)&ucs4Mask)<<22 | (uint64(ucs4Absent)&ucs4Mask)<<43
}

func packThree(v1, v2, v3 uint32) uint64 {
	return 1 | (uint64(v1)&ucs4Mask)<<1 | (uint64(v2)&ucs4Mask)<<22 | (uint64(v3)&ucs4Mask)<<43
}

// unpackSlots returns the packed code points in order (1-3 of them).
func unpackSlots(packed uint64) []uint32 {
	v1 := uint32(packed>>1) & ucs4Mask
	v2 := uint32(packed>>22) & ucs4Mask
	v3 := uint32(packed>>43) & ucs4Mask
	out := make([]uint32, 0, 3)
	if v1 <= UCS4Max {
		out = append(out, v1)
	}
	if v2 <= UCS4Max {
		out = append(out, v2)
	}
	if v3 <= UCS4Max {
		out = append(out, v3)
	}
	return out
}

// IsNull reports whether ch holds zero code points.
func (ch Char) IsNull() bool {
	return ch.packed == 0 && ch.box == nil
}

// IsAllocated reports whether ch's storage lives on the heap (4+ code points).
func (ch Char) IsAllocated() bool {
	return ch.box != nil
}

// Same reports whether a and b are the identical tagged word: same packed
// value, or the same boxed storage. Same implies Equal but not conversely.
func (a Char) Same(b Char) bool {
	if a.box != nil || b.box != nil {
		return a.box == b.box
	}
	return a.packed == b.packed
}

// Equal reports whether a and b hold the same code-point sequence.
func (a Char) Equal(b Char) bool {
	if a.Same(b) {
		return true
	}
	as := a.Points()
	bs := b.Points()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// Points returns the code points held by ch, base first. The returned slice
// must not be mutated; it aliases boxed storage.
func (ch Char) Points() []uint32 {
	switch {
	case ch.IsNull():
		return nil
	case ch.box != nil:
		return ch.box.points
	default:
		return unpackSlots(ch.packed)
	}
}

// Resolve is Points under the name used by the rest of the core; kept as a
// separate method so call sites can read "resolve a cell's character" the
// way the original driver's devcon_char_resolve does.
func (ch Char) Resolve() []uint32 {
	return ch.Points()
}

// charBuild appends ucs4 to base, producing packed or boxed storage as
// needed. It never mutates base. Out-of-range code points and soft-limit
// overflow both return base unchanged.
func charBuild(base Char, ucs4 uint32) Char {
	if ucs4 > UCS4Max {
		return base
	}
	if base.IsNull() {
		return Char{packed: packOne(ucs4)}
	}
	if base.box == nil {
		pts := unpackSlots(base.packed)
		switch len(pts) {
		case 1:
			return Char{packed: packTwo(pts[0], ucs4)}
		case 2:
			return Char{packed: packThree(pts[0], pts[1], ucs4)}
		default: // 3: promote to boxed
			boxed := make([]uint32, 0, 4)
			boxed = append(boxed, pts...)
			boxed = append(boxed, ucs4)
			return Char{box: &charBox{points: boxed}}
		}
	}
	if len(base.box.points) >= softCombiningLimit+1 {
		return base
	}
	boxed := make([]uint32, 0, len(base.box.points)+1)
	boxed = append(boxed, base.box.points...)
	boxed = append(boxed, ucs4)
	return Char{box: &charBox{points: boxed}}
}

// CharSet discards previous and returns a fresh Char containing just ucs4.
func CharSet(previous Char, ucs4 uint32) Char {
	_ = previous
	return charBuild(Char{}, ucs4)
}

// CharMerge appends ucs4 to base as a combining mark, subject to the range
// check and soft combining-mark limit documented on Char.
func CharMerge(base Char, ucs4 uint32) Char {
	return charBuild(base, ucs4)
}

// CharDup returns an independent copy of ch. Packed and null values are
// copied by value already; boxed storage is deep-copied.
func CharDup(ch Char) Char {
	if ch.box == nil {
		return ch
	}
	points := make([]uint32, len(ch.box.points))
	if copy(points, ch.box.points) != len(ch.box.points) {
		return Char{packed: packOne(ucs4Replacement)}
	}
	return Char{box: &charBox{points: points}}
}

// CharLookupWidth returns the display width of ch's base code point,
// clamped to be non-negative. Combining marks never add width.
func CharLookupWidth(ch Char) int {
	pts := ch.Points()
	if len(pts) == 0 {
		return 0
	}
	w := runewidth.RuneWidth(rune(pts[0]))
	if w < 0 {
		return 0
	}
	return w
}
