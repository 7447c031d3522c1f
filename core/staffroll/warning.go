package staffroll

import "fmt"

// WarningKind classifies a non-fatal correction made during encoding.
type WarningKind int

const (
	// WarningNegativeIndent: a negative indent was clamped to 0.
	WarningNegativeIndent WarningKind = iota
	// WarningDroppedCodepoint: a codepoint below 32 was removed.
	WarningDroppedCodepoint
	// WarningWideCodepoint: a codepoint above 287 was written but will
	// not decode back to itself.
	WarningWideCodepoint
)

func (k WarningKind) String() string {
	switch k {
	case WarningNegativeIndent:
		return "negative_indent"
	case WarningDroppedCodepoint:
		return "dropped_codepoint"
	case WarningWideCodepoint:
		return "wide_codepoint"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning describes one normalization. Line is 1-based within the file,
// or 0 when the line was encoded on its own.
type Warning struct {
	Kind   WarningKind
	Line   int
	Detail string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Detail)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}
