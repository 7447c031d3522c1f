package staffroll

import "fmt"

// Contents is the block behaviour under a span of credits text.
type Contents uint8

const (
	ContentsRandom Contents = iota
	ContentsForceCoin
	ContentsNoCoin
	ContentsUnbreakable
)

func (c Contents) String() string {
	switch c {
	case ContentsRandom:
		return "random"
	case ContentsForceCoin:
		return "force-coin"
	case ContentsNoCoin:
		return "no-coin"
	case ContentsUnbreakable:
		return "unbreakable"
	}
	return fmt.Sprintf("Contents(%d)", uint8(c))
}

// contentsFromNibble clamps a packed contents value. The game treats
// every value from 3 upward as unbreakable.
func contentsFromNibble(n uint32) Contents {
	if n >= uint32(ContentsUnbreakable) {
		return ContentsUnbreakable
	}
	return Contents(n)
}

func (c Contents) beginTag() (Tag, bool) {
	switch c {
	case ContentsForceCoin:
		return TagBeginForceCoin, true
	case ContentsNoCoin:
		return TagBeginNoCoin, true
	case ContentsUnbreakable:
		return TagBeginUnbreakable, true
	}
	return 0, false
}

func (c Contents) endTag() (Tag, bool) {
	switch c {
	case ContentsForceCoin:
		return TagEndForceCoin, true
	case ContentsNoCoin:
		return TagEndNoCoin, true
	case ContentsUnbreakable:
		return TagEndUnbreakable, true
	}
	return 0, false
}

// Tag is a formatting marker inside a line.
//
// Declaration order matters: when two tokens could both start at the same
// position of a text line, the tag declared first wins.
type Tag uint8

const (
	TagCopyright Tag = iota
	TagBeginBold
	TagEndBold
	TagBeginForceCoin
	TagEndForceCoin
	TagBeginNoCoin
	TagEndNoCoin
	TagBeginUnbreakable
	TagEndUnbreakable

	numTags
)

var tagTokens = [numTags]string{
	TagCopyright:        "<copyrights>",
	TagBeginBold:        "<bold>",
	TagEndBold:          "</bold>",
	TagBeginForceCoin:   "<coin>",
	TagEndForceCoin:     "</coin>",
	TagBeginNoCoin:      "<no_coin>",
	TagEndNoCoin:        "</no_coin>",
	TagBeginUnbreakable: "<unbreakable>",
	TagEndUnbreakable:   "</unbreakable>",
}

// lexer rule names, indexed by tag
var tagNames = [numTags]string{
	TagCopyright:        "Copyright",
	TagBeginBold:        "BeginBold",
	TagEndBold:          "EndBold",
	TagBeginForceCoin:   "BeginForceCoin",
	TagEndForceCoin:     "EndForceCoin",
	TagBeginNoCoin:      "BeginNoCoin",
	TagEndNoCoin:        "EndNoCoin",
	TagBeginUnbreakable: "BeginUnbreakable",
	TagEndUnbreakable:   "EndUnbreakable",
}

// Tags returns every tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, numTags)
	for i := range tags {
		tags[i] = Tag(i)
	}
	return tags
}

// Valid reports whether t is one of the declared tags.
func (t Tag) Valid() bool {
	return t < numTags
}

// Token returns the canonical text token, e.g. "<bold>".
func (t Tag) Token() string {
	if !t.Valid() {
		return fmt.Sprintf("<tag%d>", uint8(t))
	}
	return tagTokens[t]
}

func (t Tag) String() string {
	return t.Token()
}

// IsEnd reports whether t closes a span.
func (t Tag) IsEnd() bool {
	switch t {
	case TagEndBold, TagEndForceCoin, TagEndNoCoin, TagEndUnbreakable:
		return true
	}
	return false
}

// Part is one element of a line: either Text or Tag. The set is closed.
type Part interface {
	isPart()
}

// Text is a run of plain characters.
type Text string

func (Text) isPart() {}
func (Tag) isPart()  {}
