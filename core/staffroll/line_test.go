package staffroll

import (
	"strings"
	"testing"
)

func TestLineCounts(t *testing.T) {
	l := NewLine(0, TagCopyright, Text("abc"), TagBeginBold, Text("日本"), TagCopyright)
	if got := l.NumChars(); got != 5 {
		t.Errorf("NumChars() = %d, want 5", got)
	}
	if got := l.NumCharsAndCopyrights(); got != 7 {
		t.Errorf("NumCharsAndCopyrights() = %d, want 7", got)
	}

	var blank *Line
	if blank.NumChars() != 0 || blank.NumCharsAndCopyrights() != 0 {
		t.Error("blank line should count zero characters")
	}
}

func TestAutoIndent(t *testing.T) {
	tests := []struct {
		chars int
		want  int64
	}{
		{0, 15},
		{1, 15},
		{5, 13},
		{6, 12},
		{11, 10},
		{30, 0},
		{31, 0},
		{100, 0},
	}
	for _, tt := range tests {
		l := NewLine(0, Text(strings.Repeat("x", tt.chars)))
		if got := l.AutoIndent(); got != tt.want {
			t.Errorf("AutoIndent() with %d chars = %d, want %d", tt.chars, got, tt.want)
		}
	}
}

func TestLineEqual(t *testing.T) {
	a := NewLine(1, Text("x"), TagEndBold)
	tests := []struct {
		name string
		b    *Line
		want bool
	}{
		{"same", NewLine(1, Text("x"), TagEndBold), true},
		{"indent", NewLine(2, Text("x"), TagEndBold), false},
		{"text", NewLine(1, Text("y"), TagEndBold), false},
		{"tag", NewLine(1, Text("x"), TagEndNoCoin), false},
		{"length", NewLine(1, Text("x")), false},
		{"split runs", NewLine(1, Text("x"), Text(""), TagEndBold), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		if got := a.Equal(tt.b); got != tt.want {
			t.Errorf("%s: Equal = %v, want %v", tt.name, got, tt.want)
		}
	}

	var x, y *Line
	if !x.Equal(y) {
		t.Error("two blank lines should be equal")
	}
}

func TestFileEqual(t *testing.T) {
	a := File{nil, NewLine(0, Text("a"))}
	if !a.Equal(File{nil, NewLine(0, Text("a"))}) {
		t.Error("equal files reported different")
	}
	if a.Equal(File{nil}) {
		t.Error("files of different length reported equal")
	}
	if a.Equal(File{NewLine(0), NewLine(0, Text("a"))}) {
		t.Error("blank and empty line reported equal")
	}
}
