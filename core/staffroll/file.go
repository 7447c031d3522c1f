package staffroll

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/FocuswithJustin/StaffrollTool/core/errors"
	"github.com/FocuswithJustin/StaffrollTool/internal/logging"
	"github.com/FocuswithJustin/StaffrollTool/internal/workerpool"
)

// Codec converts whole files. The zero value is ready to use.
type Codec struct {
	// Workers bounds how many lines are processed at once. 0 picks a
	// default from GOMAXPROCS; 1 keeps everything on the calling goroutine.
	Workers int
	// Logger receives normalization warnings. Nil means the global logger.
	Logger *slog.Logger
	// OnWarning, if set, is called for every warning in line order, on
	// the goroutine that called the codec.
	OnWarning func(Warning)
}

var defaultCodec = &Codec{}

// DecodeBinary decodes a staffroll.bin image using the default codec.
func DecodeBinary(data []byte) (File, error) {
	return defaultCodec.DecodeBinary(data)
}

// EncodeBinary encodes f as a staffroll.bin image using the default codec.
func EncodeBinary(f File) ([]byte, error) {
	return defaultCodec.EncodeBinary(f)
}

// DecodeText parses a text staffroll using the default codec.
func DecodeText(s string) (File, error) {
	return defaultCodec.DecodeText(s)
}

// EncodeText renders f as text using the default codec.
func EncodeText(f File, abbreviateIndent bool) string {
	return defaultCodec.EncodeText(f, abbreviateIndent)
}

func (c *Codec) workers() int {
	if c.Workers <= 0 {
		return workerpool.DefaultWorkers()
	}
	return c.Workers
}

func (c *Codec) report(warnings []Warning) {
	for _, w := range warnings {
		logging.Normalization(c.Logger, w.Kind.String(), w.Line, w.Detail)
		if c.OnWarning != nil {
			c.OnWarning(w)
		}
	}
}

func (c *Codec) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.GetLogger()
}

// withLine stamps a 1-based line number onto a FormatError from a
// single-line operation.
func withLine(err error, lineNo int) error {
	var fe *errors.FormatError
	if errors.As(err, &fe) && fe.Line == 0 {
		fe.Line = lineNo
	}
	return err
}

type span struct {
	start, end int
}

type lineResult struct {
	line *Line
	err  error
}

// DecodeBinary decodes a staffroll.bin image. Any structural problem is
// a *errors.FormatError and no partial result is returned. Bytes after
// the last record are ignored.
func (c *Codec) DecodeBinary(data []byte) (File, error) {
	count, ok := readWord(data, 0)
	if !ok {
		return nil, errors.NewFormat(binaryFormat, 0, 0, "missing line count")
	}

	spans, end, err := scanRecords(data, count)
	if err != nil {
		return nil, err
	}
	if end < len(data) {
		c.logger().Debug("ignoring trailing bytes", "format", binaryFormat, "offset", end, "bytes", len(data)-end)
	}

	results := workerpool.Map(c.workers(), spans, func(i int, s span) lineResult {
		l, _, err := decodeBinaryLine(data[s.start:s.end], s.start, i+1)
		return lineResult{line: l, err: err}
	})

	f := make(File, len(results))
	for i, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		f[i] = r.line
	}
	return f, nil
}

// scanRecords walks the record headers to find where each line starts
// and ends, so the lines themselves can be decoded independently.
func scanRecords(data []byte, count uint32) ([]span, int, error) {
	// every record is at least 4 bytes; don't trust count for the capacity
	spans := make([]span, 0, min(int(count), len(data)/4))
	off := 4
	for i := 0; i < int(count); i++ {
		hdr, ok := readWord(data, off)
		if !ok {
			return nil, 0, errors.NewFormat(binaryFormat, i+1, off,
				fmt.Sprintf("missing line header (file declares %d lines)", count))
		}
		if hdr == blankSentinel {
			spans = append(spans, span{off, off + 4})
			off += 4
			continue
		}
		n, ok := readWord(data, off+4)
		if !ok {
			return nil, 0, errors.NewFormat(binaryFormat, i+1, off+4, "missing character count")
		}
		remaining := len(data) - off - 8
		if uint64(n)*4 > uint64(remaining) {
			return nil, 0, errors.NewFormat(binaryFormat, i+1, off+8,
				fmt.Sprintf("record declares %d characters but only %d bytes remain", n, remaining))
		}
		end := off + 8 + int(n)*4
		spans = append(spans, span{off, end})
		off = end
	}
	return spans, off, nil
}

type binaryResult struct {
	data     []byte
	warnings []Warning
	err      error
}

// EncodeBinary encodes f as a staffroll.bin image. Normalization
// warnings are reported through the codec and never fail the call.
func (c *Codec) EncodeBinary(f File) ([]byte, error) {
	if uint64(len(f)) > math.MaxUint32 {
		return nil, errors.NewFormat(binaryFormat, 0, -1, fmt.Sprintf("too many lines: %d", len(f)))
	}

	results := workerpool.Map(c.workers(), f, func(i int, l *Line) binaryResult {
		data, warnings, err := l.AppendBinary(nil)
		for j := range warnings {
			warnings[j].Line = i + 1
		}
		return binaryResult{data: data, warnings: warnings, err: withLine(err, i+1)}
	})

	size := 4
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		size += len(r.data)
	}

	out := make([]byte, 0, size)
	out = binary.BigEndian.AppendUint32(out, uint32(len(f)))
	for _, r := range results {
		c.report(r.warnings)
		out = append(out, r.data...)
	}
	return out, nil
}

// DecodeText parses a text staffroll. Records are separated by "\n" and
// an empty record is a blank line.
func (c *Codec) DecodeText(s string) (File, error) {
	rows := strings.Split(s, "\n")
	results := workerpool.Map(c.workers(), rows, func(i int, row string) lineResult {
		if row == "" {
			return lineResult{}
		}
		l, err := ParseTextLine(row)
		return lineResult{line: l, err: withLine(err, i+1)}
	})

	f := make(File, len(results))
	for i, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		f[i] = r.line
	}
	return f, nil
}

// EncodeText renders f as text, one record per line.
func (c *Codec) EncodeText(f File, abbreviateIndent bool) string {
	rows := workerpool.Map(c.workers(), f, func(_ int, l *Line) string {
		return l.Text(abbreviateIndent)
	})
	return strings.Join(rows, "\n")
}
