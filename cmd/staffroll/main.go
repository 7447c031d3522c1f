// Command staffroll converts NSMBW credits files (staffroll.bin) to and
// from their editable text form.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/StaffrollTool/core/digest"
	"github.com/FocuswithJustin/StaffrollTool/core/errors"
	"github.com/FocuswithJustin/StaffrollTool/core/staffroll"
	"github.com/FocuswithJustin/StaffrollTool/internal/bugfix"
	"github.com/FocuswithJustin/StaffrollTool/internal/fileio"
	"github.com/FocuswithJustin/StaffrollTool/internal/logging"
)

const version = "1.0.0"

// CLI defines the command-line interface for staffroll.
type CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info" env:"STAFFROLL_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" env:"STAFFROLL_LOG_FORMAT"`
	Workers   int    `name:"workers" short:"j" help:"Lines processed in parallel (0 = one per CPU)" default:"0" env:"STAFFROLL_WORKERS"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert between staffroll.bin and text"`
	Verify  VerifyCmd  `cmd:"" help:"Check that files survive conversion losslessly"`
	Fix     FixCmd     `cmd:"" help:"Apply retail credits bugfixes to a staffroll.bin"`
	Detect  DetectCmd  `cmd:"" help:"Report the type and size of staffroll files"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// Env is what every command runs against.
type Env struct {
	Ctx   context.Context
	Codec *staffroll.Codec
	Out   io.Writer
}

func (cli *CLI) env(out io.Writer) (*Env, error) {
	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		return nil, errors.NewValidation("log-level", err.Error())
	}
	format, err := logging.ParseFormat(cli.LogFormat)
	if err != nil {
		return nil, errors.NewValidation("log-format", err.Error())
	}
	if cli.Workers < 0 {
		return nil, errors.NewValidation("workers", "must not be negative")
	}
	logging.InitLogger(level, format)

	ctx := logging.WithRunID(context.Background(), logging.NewRunID())
	return &Env{
		Ctx: ctx,
		Codec: &staffroll.Codec{
			Workers: cli.Workers,
			Logger:  logging.LoggerFromContext(ctx),
		},
		Out: out,
	}, nil
}

// ConvertCmd converts one file to the other representation.
type ConvertCmd struct {
	In              string `arg:"" help:"Input file (- for stdin, .xz is decompressed)"`
	Out             string `arg:"" optional:"" help:"Output file (defaults to IN.txt or IN.bin, - for stdout)"`
	Type            string `help:"Input file type (guessed if not specified)"`
	DontAbbrIndents bool   `name:"dont-abbr-indents" help:"Do not abbreviate indentation values when converting to text"`
}

func (c *ConvertCmd) Run(env *Env) error {
	start := time.Now()
	data, err := fileio.ReadFile(c.In)
	if err != nil {
		return err
	}

	from, err := inputFormat(c.Type, data)
	if err != nil {
		return err
	}
	outPath := c.Out
	if outPath == "" {
		outPath = defaultOutput(c.In, from.Other())
	}

	var out []byte
	var lines int
	switch from {
	case staffroll.FormatBinary:
		f, err := env.Codec.DecodeBinary(data)
		if err != nil {
			return errors.Wrapf(err, "decoding %s", c.In)
		}
		lines = len(f)
		out = []byte(env.Codec.EncodeText(f, !c.DontAbbrIndents))
	default:
		if c.DontAbbrIndents {
			logging.WarnContext(env.Ctx, "converting text to binary, but --dont-abbr-indents has no effect there")
		}
		f, err := decodeText(env.Codec, c.In, data)
		if err != nil {
			return err
		}
		lines = len(f)
		if out, err = env.Codec.EncodeBinary(f); err != nil {
			return errors.Wrapf(err, "encoding %s", outPath)
		}
	}

	if err := fileio.WriteFile(outPath, out); err != nil {
		return err
	}
	logging.Conversion(env.Ctx, from.String(), from.Other().String(), c.In, outPath, lines, time.Since(start))
	return nil
}

// VerifyCmd checks lossless conversion for each file.
type VerifyCmd struct {
	Files []string `arg:"" help:"Files to verify"`
	Type  string   `help:"Input file type (guessed if not specified)"`
}

func (c *VerifyCmd) Run(env *Env) error {
	failed := 0
	for _, path := range c.Files {
		report, err := verifyFile(env.Codec, path, c.Type)
		if err != nil {
			logging.ErrorContext(env.Ctx, "verify failed", "path", path, "error", err)
			fmt.Fprintf(env.Out, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(env.Out, "OK   %s (%s, %d text lines, %d blank)\n", path, report.format, report.lines, report.blanks)
		fmt.Fprintf(env.Out, "     %s\n", report.digest)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed verification", failed, len(c.Files))
	}
	return nil
}

type verifyReport struct {
	format        staffroll.Format
	lines, blanks int
	digest        digest.HashResult
}

// verifyFile checks that binary data re-encodes byte for byte, that the
// text form is a fixed point of decode/encode, and that the text form
// converts back to the same binary.
func verifyFile(codec *staffroll.Codec, path, typ string) (*verifyReport, error) {
	data, err := fileio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format, err := inputFormat(typ, data)
	if err != nil {
		return nil, err
	}

	var f staffroll.File
	if format == staffroll.FormatBinary {
		if f, err = codec.DecodeBinary(data); err != nil {
			return nil, err
		}
	} else if f, err = decodeText(codec, path, data); err != nil {
		return nil, err
	}

	bin, err := codec.EncodeBinary(f)
	if err != nil {
		return nil, err
	}
	// bytes after the last record are not part of the file
	if format == staffroll.FormatBinary && (len(bin) > len(data) || !bytes.Equal(bin, data[:len(bin)])) {
		return nil, fmt.Errorf("binary round trip differs (input %s)", digest.Sum(data).Short())
	}

	txt := codec.EncodeText(f, true)
	f2, err := codec.DecodeText(txt)
	if err != nil {
		return nil, errors.Wrap(err, "re-reading text form")
	}
	if txt2 := codec.EncodeText(f2, true); txt2 != txt {
		return nil, fmt.Errorf("text form is not stable")
	}
	bin2, err := codec.EncodeBinary(f2)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(bin2, bin) {
		return nil, fmt.Errorf("text form converts to a different binary")
	}

	lines, blanks := f.Counts()
	return &verifyReport{format: format, lines: lines, blanks: blanks, digest: digest.Sum(bin)}, nil
}

// FixCmd applies named bugfixes. If none of them changes anything, OUT
// is deleted rather than written.
type FixCmd struct {
	In   string   `arg:"" help:"Input staffroll.bin"`
	Out  string   `arg:"" help:"Output staffroll.bin (deleted instead of written if nothing changes)"`
	Bugs []string `arg:"" optional:"" help:"Bug IDs to fix"`
}

func (c *FixCmd) Run(env *Env) error {
	for _, id := range c.Bugs {
		if _, err := bugfix.Lookup(id); err != nil {
			logging.WarnContext(env.Ctx, "skipping unknown bug", "id", id, "known", bugfix.IDs())
		}
	}

	data, err := fileio.ReadFile(c.In)
	if err != nil {
		return err
	}
	f, err := env.Codec.DecodeBinary(data)
	if err != nil {
		return errors.Wrapf(err, "decoding %s", c.In)
	}
	txt := env.Codec.EncodeText(f, true)
	fixed, changed := bugfix.Apply(txt, c.Bugs)
	if !changed {
		logging.InfoContext(env.Ctx, "no fixes applied", "in", c.In, "out", c.Out)
		return fileio.Remove(c.Out)
	}

	f, err = env.Codec.DecodeText(fixed)
	if err != nil {
		return errors.Wrap(err, "re-reading fixed text")
	}
	out, err := env.Codec.EncodeBinary(f)
	if err != nil {
		return err
	}
	return fileio.WriteFile(c.Out, out)
}

// DetectCmd prints the detected type of each file.
type DetectCmd struct {
	Files []string `arg:"" help:"Files to inspect"`
}

func (c *DetectCmd) Run(env *Env) error {
	for _, path := range c.Files {
		data, err := fileio.ReadFile(path)
		if err != nil {
			return err
		}
		format := staffroll.Detect(data)
		var f staffroll.File
		if format == staffroll.FormatBinary {
			f, err = env.Codec.DecodeBinary(data)
		} else {
			f, err = decodeText(env.Codec, path, data)
		}
		if err != nil {
			fmt.Fprintf(env.Out, "%s: %s (unreadable: %v)\n", path, format, err)
			continue
		}
		lines, blanks := f.Counts()
		fmt.Fprintf(env.Out, "%s: %s, %d text lines, %d blank\n", path, format, lines, blanks)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(env *Env) error {
	fmt.Fprintf(env.Out, "staffroll version %s\n", version)
	return nil
}

// Helper functions

func inputFormat(typ string, data []byte) (staffroll.Format, error) {
	if typ == "" {
		return staffroll.Detect(data), nil
	}
	return staffroll.ParseFormat(typ)
}

// defaultOutput appends the target extension to in, keeping a trailing
// ".xz" at the end.
func defaultOutput(in string, to staffroll.Format) string {
	if in == fileio.StdioPath {
		return fileio.StdioPath
	}
	if fileio.IsCompressed(in) {
		return fileio.TrimCompressed(in) + to.Extension() + fileio.CompressedSuffix
	}
	return in + to.Extension()
}

func decodeText(codec *staffroll.Codec, path string, data []byte) (staffroll.File, error) {
	if !utf8.Valid(data) {
		return nil, errors.NewValidation(path, "text input is not valid UTF-8")
	}
	f, err := codec.DecodeText(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return f, nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("staffroll"),
		kong.Description("NSMBW staffroll.bin <-> text converter"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	env, err := cli.env(os.Stdout)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(env)
	ctx.FatalIfErrorf(err)
}
