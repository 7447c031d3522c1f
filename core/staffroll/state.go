package staffroll

import "fmt"

const (
	copyrightWord = 0x20000000
	boldBit       = 0x10000000
	contentsMask  = 0xF

	// minCodepoint is the smallest codepoint a packed word can carry.
	minCodepoint = 32
	// maxCodepoint is the largest codepoint that survives decoding.
	maxCodepoint = minCodepoint + 0xFF
)

// formatState is the formatting in effect at one point of a line. It
// starts zeroed (not bold, random contents) at the beginning of every line.
type formatState struct {
	bold     bool
	contents Contents
}

// apply returns the state after tag t. Copyright markers leave it unchanged.
func (s formatState) apply(t Tag) formatState {
	switch t {
	case TagCopyright:
	case TagBeginBold:
		s.bold = true
	case TagEndBold:
		s.bold = false
	case TagBeginForceCoin:
		s.contents = ContentsForceCoin
	case TagBeginNoCoin:
		s.contents = ContentsNoCoin
	case TagBeginUnbreakable:
		s.contents = ContentsUnbreakable
	case TagEndForceCoin, TagEndNoCoin, TagEndUnbreakable:
		s.contents = ContentsRandom
	default:
		panic(fmt.Sprintf("staffroll: unknown tag %d", uint8(t)))
	}
	return s
}

// transition appends to dst the tags that turn s into next: the bold
// change first, then the end of the old contents and the start of the new.
func (s formatState) transition(dst []Tag, next formatState) []Tag {
	switch {
	case next.bold && !s.bold:
		dst = append(dst, TagBeginBold)
	case s.bold && !next.bold:
		dst = append(dst, TagEndBold)
	}
	if next.contents != s.contents {
		if t, ok := s.contents.endTag(); ok {
			dst = append(dst, t)
		}
		if t, ok := next.contents.beginTag(); ok {
			dst = append(dst, t)
		}
	}
	return dst
}

// pack encodes r under this state. The codepoint is not masked, so
// values above maxCodepoint spill into higher bits exactly as the game's
// own tooling wrote them.
func (s formatState) pack(r rune) uint32 {
	w := uint32(r-minCodepoint) << 4
	if s.bold {
		w |= boldBit
	}
	return w | uint32(s.contents)
}

// unpack splits a character word into its state and codepoint.
func unpack(w uint32) (formatState, rune) {
	s := formatState{
		bold:     w&boldBit != 0,
		contents: contentsFromNibble(w & contentsMask),
	}
	return s, rune((w>>4)&0xFF) + minCodepoint
}
