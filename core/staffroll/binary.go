package staffroll

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/StaffrollTool/core/errors"
)

const (
	binaryFormat  = "staffroll.bin"
	blankSentinel = 0xFFFFFFFF
)

// readWord returns the big-endian word at off, or false if data is too short.
func readWord(data []byte, off int) (uint32, bool) {
	if off < 0 || len(data)-off < 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(data[off:]), true
}

// DecodeBinaryLine decodes the record at the start of data and returns it
// with the number of bytes consumed. A blank record yields a nil line.
func DecodeBinaryLine(data []byte) (*Line, int, error) {
	return decodeBinaryLine(data, 0, 0)
}

// decodeBinaryLine decodes one record. base is the record's offset in the
// whole file and lineNo its 1-based index, both used only for errors.
func decodeBinaryLine(data []byte, base, lineNo int) (*Line, int, error) {
	hdr, ok := readWord(data, 0)
	if !ok {
		return nil, 0, errors.NewFormat(binaryFormat, lineNo, base, "missing line header")
	}
	if hdr == blankSentinel {
		return nil, 4, nil
	}

	count, ok := readWord(data, 4)
	if !ok {
		return nil, 0, errors.NewFormat(binaryFormat, lineNo, base+4, "missing character count")
	}
	words := data[8:]
	if uint64(count)*4 > uint64(len(words)) {
		return nil, 0, errors.NewFormat(binaryFormat, lineNo, base+8,
			fmt.Sprintf("record declares %d characters but only %d bytes remain", count, len(words)))
	}

	var d lineDecoder
	for i := 0; i < int(count); i++ {
		d.word(binary.BigEndian.Uint32(words[i*4:]))
	}
	return &Line{Indent: int64(hdr), Parts: d.finish()}, 8 + int(count)*4, nil
}

// lineDecoder rebuilds parts from packed words, inserting a tag wherever
// the formatting of consecutive characters changes.
type lineDecoder struct {
	parts   []Part
	run     strings.Builder
	state   formatState
	scratch []Tag
}

func (d *lineDecoder) flush() {
	if d.run.Len() > 0 {
		d.parts = append(d.parts, Text(d.run.String()))
		d.run.Reset()
	}
}

func (d *lineDecoder) word(w uint32) {
	if w&copyrightWord != 0 {
		d.flush()
		d.parts = append(d.parts, TagCopyright)
		return
	}

	next, r := unpack(w)
	d.scratch = d.state.transition(d.scratch[:0], next)
	if len(d.scratch) > 0 {
		d.flush()
		for _, t := range d.scratch {
			d.parts = append(d.parts, t)
		}
	}
	d.run.WriteRune(r)
	d.state = next
}

func (d *lineDecoder) finish() []Part {
	d.flush()
	return d.parts
}

// AppendBinary appends the binary record for l to dst. A nil line writes
// the blank sentinel.
//
// l itself is never modified. Codepoints below 32 are left out of the
// record and a negative indent is written as 0; each correction is
// reported as a Warning. An indent above MaxIndent is a format error.
func (l *Line) AppendBinary(dst []byte) ([]byte, []Warning, error) {
	if l == nil {
		return binary.BigEndian.AppendUint32(dst, blankSentinel), nil, nil
	}

	var warnings []Warning
	parts, dropped := representableParts(l.Parts)
	for _, r := range dropped {
		warnings = append(warnings, Warning{
			Kind:   WarningDroppedCodepoint,
			Detail: fmt.Sprintf("removed unrepresentable character U+%04X", r),
		})
	}

	indent := l.Indent
	if indent < 0 {
		warnings = append(warnings, Warning{
			Kind:   WarningNegativeIndent,
			Detail: fmt.Sprintf("clamped indent %d to 0", indent),
		})
		indent = 0
	}
	if indent > MaxIndent {
		return dst, warnings, errors.NewFormat(binaryFormat, 0, -1,
			fmt.Sprintf("indent %d exceeds maximum %d", indent, int64(MaxIndent)))
	}

	stripped := Line{Indent: indent, Parts: parts}
	dst = binary.BigEndian.AppendUint32(dst, uint32(indent))
	dst = binary.BigEndian.AppendUint32(dst, uint32(stripped.NumCharsAndCopyrights()))

	var st formatState
	for _, p := range parts {
		switch p := p.(type) {
		case Tag:
			if p == TagCopyright {
				dst = binary.BigEndian.AppendUint32(dst, copyrightWord)
				continue
			}
			st = st.apply(p)
		case Text:
			for _, r := range string(p) {
				if r > maxCodepoint {
					warnings = append(warnings, Warning{
						Kind:   WarningWideCodepoint,
						Detail: fmt.Sprintf("character U+%04X does not fit in 8 bits", r),
					})
				}
				dst = binary.BigEndian.AppendUint32(dst, st.pack(r))
			}
		default:
			panic(fmt.Sprintf("staffroll: unexpected part %T", p))
		}
	}
	return dst, warnings, nil
}

// representableParts returns parts with every codepoint below 32 removed,
// plus the removed codepoints. The input slice is returned as is when
// nothing needs removing.
func representableParts(parts []Part) ([]Part, []rune) {
	clean := true
	for _, p := range parts {
		if t, ok := p.(Text); ok && strings.IndexFunc(string(t), unrepresentable) >= 0 {
			clean = false
			break
		}
	}
	if clean {
		return parts, nil
	}

	var dropped []rune
	out := make([]Part, len(parts))
	for i, p := range parts {
		t, ok := p.(Text)
		if !ok {
			out[i] = p
			continue
		}
		out[i] = Text(strings.Map(func(r rune) rune {
			if unrepresentable(r) {
				dropped = append(dropped, r)
				return -1
			}
			return r
		}, string(t)))
	}
	return out, dropped
}

func unrepresentable(r rune) bool {
	return r < minCodepoint
}
