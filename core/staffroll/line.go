package staffroll

import "unicode/utf8"

const (
	// MaxIndent is the largest indent a binary record can hold; one more
	// would read back as the blank-line sentinel.
	MaxIndent = 0xFFFFFFFE
	// MinIndent is the most negative indent accepted from text. Negative
	// indents are clamped to 0 when written as binary.
	MinIndent = -1 << 31
)

// Line is one non-blank credits line.
type Line struct {
	Indent int64
	Parts  []Part
}

// File is a whole staffroll in display order. Nil entries are blank lines.
type File []*Line

// NewLine builds a line from its parts.
func NewLine(indent int64, parts ...Part) *Line {
	return &Line{Indent: indent, Parts: parts}
}

// IsBlank reports whether l stands for a blank line. It is safe to call
// on a nil *Line.
func (l *Line) IsBlank() bool {
	return l == nil
}

// NumChars counts plain characters, ignoring every tag.
func (l *Line) NumChars() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, p := range l.Parts {
		if t, ok := p.(Text); ok {
			n += utf8.RuneCountInString(string(t))
		}
	}
	return n
}

// NumCharsAndCopyrights counts plain characters plus copyright markers,
// which is the length a binary record declares.
func (l *Line) NumCharsAndCopyrights() int {
	if l == nil {
		return 0
	}
	n := l.NumChars()
	for _, p := range l.Parts {
		if p == Part(TagCopyright) {
			n++
		}
	}
	return n
}

// AutoIndent is the indent that centers the line on the credits panel.
// Copyright markers do not count toward the width.
func (l *Line) AutoIndent() int64 {
	return max(0, 15-int64(l.NumChars()/2))
}

// Equal reports whether two lines have the same indent and parts.
// Adjacent text runs are compared as written, not merged.
func (l *Line) Equal(o *Line) bool {
	if l == nil || o == nil {
		return l == nil && o == nil
	}
	if l.Indent != o.Indent || len(l.Parts) != len(o.Parts) {
		return false
	}
	for i := range l.Parts {
		if l.Parts[i] != o.Parts[i] {
			return false
		}
	}
	return true
}

// Counts reports how many text lines and blank lines f holds.
func (f File) Counts() (lines, blanks int) {
	for _, l := range f {
		if l.IsBlank() {
			blanks++
		} else {
			lines++
		}
	}
	return lines, blanks
}

// Equal reports whether two files hold equal lines in the same order.
func (f File) Equal(o File) bool {
	if len(f) != len(o) {
		return false
	}
	for i := range f {
		if !f[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
