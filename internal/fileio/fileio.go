// Package fileio reads and writes staffroll files for the CLI. Paths
// ending in ".xz" are transparently (de)compressed and "-" stands for
// stdin or stdout.
package fileio

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/StaffrollTool/core/errors"
)

// Resource limits.
const (
	// MaxFileSize is the maximum accepted input size after decompression (256 MB).
	MaxFileSize = 256 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// StdioPath selects stdin for reads and stdout for writes.
const StdioPath = "-"

// CompressedSuffix marks xz-compressed files.
const CompressedSuffix = ".xz"

// ErrTooLarge is returned when an input exceeds MaxFileSize.
var ErrTooLarge = stderrors.New("file too large")

// Test seams.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout

	osRename = os.Rename

	tempFileWrite = func(f *os.File, data []byte) (int, error) {
		return f.Write(data)
	}

	tempFileClose = func(f io.Closer) error {
		return f.Close()
	}
)

// ValidatePath checks a user-supplied path for length and invalid characters.
func ValidatePath(path string) error {
	if path == "" {
		return errors.NewValidation("path", "path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return errors.NewValidation("path", "path too long")
	}
	if strings.Contains(path, "\x00") {
		return errors.NewValidation("path", "null byte not allowed")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return errors.NewValidation("path", "control character not allowed")
		}
	}
	return nil
}

// IsCompressed reports whether path names an xz file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), CompressedSuffix)
}

// TrimCompressed strips a trailing ".xz" so callers can inspect the
// underlying extension.
func TrimCompressed(path string) string {
	if IsCompressed(path) {
		return path[:len(path)-len(CompressedSuffix)]
	}
	return path
}

// ReadFile reads the whole of path, decompressing ".xz" files.
func ReadFile(path string) ([]byte, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	var r io.Reader
	if path == StdioPath {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.NewIO("open", path, err)
		}
		defer f.Close()
		r = f
	}

	if IsCompressed(path) {
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, errors.NewIO("decompress", path, err)
		}
		r = xzr
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	if len(data) > MaxFileSize {
		return nil, errors.NewIO("read", path, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, MaxFileSize))
	}
	return data, nil
}

// WriteFile replaces path with data. Regular files are written to a
// temporary sibling and renamed into place, so readers never observe a
// partial file.
func WriteFile(path string, data []byte) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	payload := data
	if IsCompressed(path) {
		var err error
		if payload, err = compress(data); err != nil {
			return errors.NewIO("compress", path, err)
		}
	}

	if path == StdioPath {
		if _, err := stdout.Write(payload); err != nil {
			return errors.NewIO("write", "stdout", err)
		}
		return nil
	}

	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".staffroll-*")
	if err != nil {
		return errors.NewIO("create temp file in", dir, err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFileWrite(tempFile, payload); err != nil {
		tempFileClose(tempFile)
		os.Remove(tempPath)
		return errors.NewIO("write", path, err)
	}
	if err := tempFileClose(tempFile); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("close", path, err)
	}
	if err := osRename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("rename", path, err)
	}
	return nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Remove deletes path. A missing file is not an error.
func Remove(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if path == StdioPath {
		return nil
	}
	if err := os.Remove(path); err != nil && !stderrors.Is(err, os.ErrNotExist) {
		return errors.NewIO("remove", path, err)
	}
	return nil
}
