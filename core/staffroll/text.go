package staffroll

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/StaffrollTool/core/errors"
)

const textFormat = "staffroll text"

// contentLexer splits line content into tag tokens and text. Tag rules
// come first and in Tag declaration order, so at any position the first
// declared tag that matches wins. Every tag starts with '<', which lets
// plain text be consumed in runs up to the next '<'.
var contentLexer = lexer.MustSimple(contentRules())

var tokenTags = map[lexer.TokenType]Tag{}

func init() {
	symbols := contentLexer.Symbols()
	for _, t := range Tags() {
		tokenTags[symbols[tagNames[t]]] = t
	}
}

func contentRules() []lexer.SimpleRule {
	rules := make([]lexer.SimpleRule, 0, numTags+2)
	for _, t := range Tags() {
		rules = append(rules, lexer.SimpleRule{Name: tagNames[t], Pattern: caseless(t.Token())})
	}
	return append(rules,
		lexer.SimpleRule{Name: "Text", Pattern: `[^<]+`},
		lexer.SimpleRule{Name: "Angle", Pattern: `<`},
	)
}

// caseless builds a pattern matching token with ASCII letters in either
// case. (?i) is avoided because it also folds letters such as U+017F
// onto 's'.
func caseless(token string) string {
	var b strings.Builder
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= 'a' && c <= 'z':
			fmt.Fprintf(&b, "[%c%c]", c, c-'a'+'A')
		case c >= 'A' && c <= 'Z':
			fmt.Fprintf(&b, "[%c%c]", c-'A'+'a', c)
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return b.String()
}

// ParseTextLine parses one non-empty text record of the form
// "[indent]:content". Without an indent the line is centered using
// AutoIndent. Trailing closing tags are dropped, matching what the binary
// decoder produces.
func ParseTextLine(s string) (*Line, error) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return nil, errors.NewFormat(textFormat, 0, -1, "missing ':' between indent and content")
	}

	parts, err := scanContent(s[colon+1:])
	if err != nil {
		return nil, err
	}
	l := &Line{Parts: parts}

	head := strings.TrimSpace(s[:colon])
	if head == "" {
		l.Indent = l.AutoIndent()
		return l, nil
	}
	indent, err := strconv.ParseInt(head, 10, 64)
	if err != nil {
		fe := errors.NewFormat(textFormat, 0, -1, fmt.Sprintf("invalid indent %q", head))
		fe.Err = err
		return nil, fe
	}
	if indent < MinIndent || indent > MaxIndent {
		return nil, errors.NewFormat(textFormat, 0, -1,
			fmt.Sprintf("indent %d outside [%d, %d]", indent, int64(MinIndent), int64(MaxIndent)))
	}
	l.Indent = indent
	return l, nil
}

func scanContent(content string) ([]Part, error) {
	lex, err := contentLexer.LexString("", content)
	if err != nil {
		return nil, errors.Wrap(err, "tokenizing line content")
	}

	var parts []Part
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			parts = append(parts, Text(run.String()))
			run.Reset()
		}
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, errors.NewFormat(textFormat, 0, -1, err.Error())
		}
		if tok.EOF() {
			break
		}
		if tag, ok := tokenTags[tok.Type]; ok {
			flush()
			parts = append(parts, tag)
			continue
		}
		run.WriteString(tok.Value)
	}
	flush()

	for len(parts) > 0 {
		t, ok := parts[len(parts)-1].(Tag)
		if !ok || !t.IsEnd() {
			break
		}
		parts = parts[:len(parts)-1]
	}
	return parts, nil
}

// Text renders l as a text record. With abbreviateIndent the indent is
// left out when it equals AutoIndent. Tags are written only where the
// formatting actually changes, and anything still open at the end of the
// line is closed. A nil line renders as the empty string.
func (l *Line) Text(abbreviateIndent bool) string {
	if l == nil {
		return ""
	}

	var b strings.Builder
	if !abbreviateIndent || l.Indent != l.AutoIndent() {
		b.WriteString(strconv.FormatInt(l.Indent, 10))
	}
	b.WriteByte(':')

	var st formatState
	var scratch []Tag
	writeTags := func(tags []Tag) {
		for _, t := range tags {
			b.WriteString(t.Token())
		}
	}

	for _, p := range l.Parts {
		switch p := p.(type) {
		case Text:
			b.WriteString(string(p))
		case Tag:
			if p == TagCopyright {
				b.WriteString(p.Token())
				continue
			}
			next := st.apply(p)
			scratch = st.transition(scratch[:0], next)
			writeTags(scratch)
			st = next
		default:
			panic(fmt.Sprintf("staffroll: unexpected part %T", p))
		}
	}
	writeTags(st.transition(scratch[:0], formatState{}))
	return b.String()
}

// String renders l with an abbreviated indent.
func (l *Line) String() string {
	return l.Text(true)
}
