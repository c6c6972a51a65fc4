// Package fileio reads and writes documents as line lists.
package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjrosen/linedit/internal/buffer"
	"github.com/zjrosen/linedit/internal/log"
)

// ErrIOUnavailable reports a file that could not be read or written.
var ErrIOUnavailable = errors.New("file unavailable")

// Load reads path and splits it after each '\n', keeping the terminators.
// A final line without a terminator is kept as is. A missing file yields no
// lines and no error, so new files can be edited before their first save.
func Load(path string, maxLen int) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is the file the user asked to edit
	if errors.Is(err, fs.ErrNotExist) {
		log.Info(log.CatIO, "new file", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	lines, err := Read(f, maxLen)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug(log.CatIO, "loaded", "path", path, "lines", len(lines))
	return lines, nil
}

// Read splits r the same way Load splits a file.
func Read(r io.Reader, maxLen int) ([]string, error) {
	if maxLen <= 0 {
		maxLen = buffer.DefaultMaxLineLength
	}
	br := bufio.NewReader(r)
	var lines []string
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if line != "" {
			if len(line) > maxLen {
				return nil, fmt.Errorf("line %d: %w: %d bytes exceeds limit of %d",
					n, buffer.ErrLineTooLong, len(line), maxLen)
			}
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIOUnavailable, err)
		}
	}
}

// Save writes the concatenated lines to path atomically: the content goes to
// a temp file in the same directory which is then renamed over path. An
// existing file keeps its permissions.
func Save(path string, lines []string) error {
	dir := filepath.Dir(path)
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", ErrIOUnavailable, err)
	}
	tempPath := temp.Name()

	fail := func(step string, err error) error {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: %s: %w", ErrIOUnavailable, step, err)
	}

	w := bufio.NewWriter(temp)
	if _, err := w.WriteString(strings.Join(lines, "")); err != nil {
		return fail("writing temp file", err)
	}
	if err := w.Flush(); err != nil {
		return fail("writing temp file", err)
	}
	if err := temp.Chmod(perm); err != nil {
		return fail("setting permissions", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: closing temp file: %w", ErrIOUnavailable, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: renaming temp file: %w", ErrIOUnavailable, err)
	}

	log.Debug(log.CatIO, "saved", "path", path, "lines", len(lines))
	return nil
}

// Terminated returns text ending in exactly the '\n' a loaded line carries.
// Typed or scripted text goes through this before it enters the buffer so
// that saving keeps one line per line.
func Terminated(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
