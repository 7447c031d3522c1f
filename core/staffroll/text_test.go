package staffroll

import (
	"testing"

	"github.com/FocuswithJustin/StaffrollTool/core/errors"
)

func TestParseTextLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Line
	}{
		{
			name: "auto indent",
			in:   ":Hello",
			want: NewLine(13, Text("Hello")),
		},
		{
			name: "auto indent with eleven characters",
			in:   ":Programming",
			want: NewLine(10, Text("Programming")),
		},
		{
			name: "auto indent ignores tags and copyrights",
			in:   ":<copyrights><bold>Hello!</bold>",
			want: NewLine(12, TagCopyright, TagBeginBold, Text("Hello!")),
		},
		{
			name: "auto indent never negative",
			in:   ":" + "0123456789012345678901234567890123456789",
			want: NewLine(0, Text("0123456789012345678901234567890123456789")),
		},
		{
			name: "explicit indent",
			in:   "0:<bold>Hi</bold>",
			want: NewLine(0, TagBeginBold, Text("Hi")),
		},
		{
			name: "negative indent",
			in:   "-3:x",
			want: NewLine(-3, Text("x")),
		},
		{
			name: "indent with surrounding spaces",
			in:   " 7 :x",
			want: NewLine(7, Text("x")),
		},
		{
			name: "case-insensitive tags",
			in:   "5:<BOLD>a</Bold>b",
			want: NewLine(5, TagBeginBold, Text("a"), TagEndBold, Text("b")),
		},
		{
			name: "mixed-case copyright",
			in:   "0:<Copyrights>2009 Nintendo",
			want: NewLine(0, TagCopyright, Text("2009 Nintendo")),
		},
		{
			name: "every tag",
			in:   "1:<copyrights><bold><coin>a</coin><no_coin>b</no_coin><unbreakable>c</unbreakable></bold>d",
			want: NewLine(1, TagCopyright, TagBeginBold, TagBeginForceCoin, Text("a"), TagEndForceCoin,
				TagBeginNoCoin, Text("b"), TagEndNoCoin, TagBeginUnbreakable, Text("c"), TagEndUnbreakable,
				TagEndBold, Text("d")),
		},
		{
			name: "unknown tag is text",
			in:   "1:a<foo>b",
			want: NewLine(1, Text("a<foo>b")),
		},
		{
			name: "stray angle brackets",
			in:   "1:<<bold>x>",
			want: NewLine(1, Text("<"), TagBeginBold, Text("x>")),
		},
		{
			name: "colons after the first belong to content",
			in:   "2:a:b",
			want: NewLine(2, Text("a:b")),
		},
		{
			name: "trailing end tags trimmed",
			in:   "1:a</coin></bold>",
			want: NewLine(1, Text("a")),
		},
		{
			name: "leading end tag kept",
			in:   "1:</bold>a",
			want: NewLine(1, TagEndBold, Text("a")),
		},
		{
			name: "only end tags",
			in:   ":</bold></coin>",
			want: NewLine(15),
		},
		{
			name: "empty content",
			in:   "4:",
			want: NewLine(4),
		},
		{
			name: "non-ASCII folding is not case-insensitivity",
			in:   "0:<copyrightſ>",
			want: NewLine(0, Text("<copyrightſ>")),
		},
		{
			name: "multibyte characters count once",
			in:   ":ÄÖÜ",
			want: NewLine(14, Text("ÄÖÜ")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTextLine(tt.in)
			if err != nil {
				t.Fatalf("ParseTextLine(%q) failed: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTextLine(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTextLineErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing colon", "Hello"},
		{"non-numeric indent", "x:abc"},
		{"trailing letters", "1a:abc"},
		{"float indent", "1.5:a"},
		{"collides with blank sentinel", "4294967295:a"},
		{"too negative", "-2147483649:a"},
		{"overflow", "99999999999999999999:a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTextLine(tt.in)
			if !errors.Is(err, errors.ErrFormat) {
				t.Errorf("ParseTextLine(%q) error = %v, want ErrFormat", tt.in, err)
			}
		})
	}
}

func TestParseTextLineIndentBounds(t *testing.T) {
	l, err := ParseTextLine("4294967294:a")
	if err != nil {
		t.Fatalf("ParseTextLine failed: %v", err)
	}
	if l.Indent != MaxIndent {
		t.Errorf("Indent = %d, want %d", l.Indent, int64(MaxIndent))
	}
	l, err = ParseTextLine("-2147483648:a")
	if err != nil {
		t.Fatalf("ParseTextLine failed: %v", err)
	}
	if l.Indent != MinIndent {
		t.Errorf("Indent = %d, want %d", l.Indent, int64(MinIndent))
	}
}

func TestLineText(t *testing.T) {
	tests := []struct {
		name       string
		line       *Line
		abbreviate bool
		want       string
	}{
		{
			name:       "blank",
			line:       nil,
			abbreviate: true,
			want:       "",
		},
		{
			name:       "abbreviated centered indent",
			line:       NewLine(13, Text("Hello")),
			abbreviate: true,
			want:       ":Hello",
		},
		{
			name:       "centered indent kept when not abbreviating",
			line:       NewLine(13, Text("Hello")),
			abbreviate: false,
			want:       "13:Hello",
		},
		{
			name:       "off-center indent kept",
			line:       NewLine(2, Text("Hello")),
			abbreviate: true,
			want:       "2:Hello",
		},
		{
			name:       "open bold closed at end of line",
			line:       NewLine(0, TagBeginBold, Text("Hi")),
			abbreviate: true,
			want:       "0:<bold>Hi</bold>",
		},
		{
			name:       "bold and contents both closed, bold first",
			line:       NewLine(0, TagBeginBold, TagBeginForceCoin, Text("a")),
			abbreviate: true,
			want:       "0:<bold><coin>a</bold></coin>",
		},
		{
			name:       "redundant tags skipped",
			line:       NewLine(0, TagBeginBold, TagBeginBold, Text("a"), TagEndBold, TagEndBold, TagEndNoCoin, Text("b")),
			abbreviate: true,
			want:       "0:<bold>a</bold>b",
		},
		{
			name:       "contents switch",
			line:       NewLine(0, TagBeginForceCoin, Text("a"), TagBeginNoCoin, Text("b")),
			abbreviate: true,
			want:       "0:<coin>a</coin><no_coin>b</no_coin>",
		},
		{
			name:       "mismatched end tag still closes contents",
			line:       NewLine(0, TagBeginUnbreakable, Text("a"), TagEndForceCoin, Text("b")),
			abbreviate: true,
			want:       "0:<unbreakable>a</unbreakable>b",
		},
		{
			name:       "copyright written lowercase",
			line:       NewLine(0, TagCopyright, Text("2009 Nintendo")),
			abbreviate: true,
			want:       "0:<copyrights>2009 Nintendo",
		},
		{
			name:       "empty line centers at 15",
			line:       NewLine(15),
			abbreviate: true,
			want:       ":",
		},
		{
			name:       "negative indent",
			line:       NewLine(-4, Text("x")),
			abbreviate: true,
			want:       "-4:x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Text(tt.abbreviate); got != tt.want {
				t.Errorf("Text(%v) = %q, want %q", tt.abbreviate, got, tt.want)
			}
		})
	}
}

func TestLineString(t *testing.T) {
	if got, want := NewLine(13, Text("Hello")).String(), ":Hello"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTextLineIdempotence(t *testing.T) {
	inputs := []string{
		":Hello",
		"0:<bold>Hi</bold>",
		"3:<BOLD>a<bold>b</Bold></bold>c<coin>",
		"12:Ab<coin>c<bold>d</coin><no_coin>e</bold></no_coin><unbreakable>f</unbreakable>g",
		"1:</coin>x<unbreakable></unbreakable>y",
		"-7:<Copyrights> 2009",
		":",
	}
	for _, in := range inputs {
		l, err := ParseTextLine(in)
		if err != nil {
			t.Fatalf("ParseTextLine(%q) failed: %v", in, err)
		}
		once := l.Text(true)
		l2, err := ParseTextLine(once)
		if err != nil {
			t.Fatalf("ParseTextLine(%q) failed: %v", once, err)
		}
		if twice := l2.Text(true); twice != once {
			t.Errorf("%q: Text = %q, then %q", in, once, twice)
		}
	}
}

func TestContentRulesFollowTagOrder(t *testing.T) {
	rules := contentRules()
	for i, tag := range Tags() {
		if rules[i].Name != tagNames[tag] {
			t.Errorf("rule %d = %s, want %s", i, rules[i].Name, tagNames[tag])
		}
	}
	if got := len(rules); got != int(numTags)+2 {
		t.Errorf("len(rules) = %d, want %d", got, int(numTags)+2)
	}
}

func TestCaseless(t *testing.T) {
	if got, want := caseless("</no_coin>"), "</[nN][oO]_[cC][oO][iI][nN]>"; got != want {
		t.Errorf("caseless = %q, want %q", got, want)
	}
}
