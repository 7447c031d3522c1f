package staffroll

import (
	"bytes"
	"strings"

	"github.com/FocuswithJustin/StaffrollTool/core/errors"
)

// Format identifies one of the two staffroll representations.
type Format int

const (
	FormatBinary Format = iota + 1
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "bin"
	case FormatText:
		return "txt"
	}
	return "unknown"
}

// Extension is the suffix appended to a converted file's name.
func (f Format) Extension() string {
	return "." + f.String()
}

// Other returns the representation f converts to.
func (f Format) Other() Format {
	if f == FormatBinary {
		return FormatText
	}
	return FormatBinary
}

// ParseFormat accepts "bin" or "txt" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bin":
		return FormatBinary, nil
	case "txt":
		return FormatText, nil
	}
	return 0, errors.NewUnsupported("staffroll type", "expected bin or txt, got "+s)
}

// Detect guesses the representation of data. Binary files contain NUL
// bytes in practice (the line count's high byte alone is zero); text
// files never do.
func Detect(data []byte) Format {
	if bytes.IndexByte(data, 0) >= 0 {
		return FormatBinary
	}
	return FormatText
}
