package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const (
	maxLineBytes = 1024 * 1024
	pollInterval = 250 * time.Millisecond
)

// TailResult holds matching lines and the offset just past the last byte read.
type TailResult struct {
	Lines  []string
	Offset int64
}

// Tail returns up to limit matching lines from the end of path. A limit of
// zero or less returns every matching line. A missing file yields an empty
// result.
func Tail(path string, limit int, filter Filter) (TailResult, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TailResult{}, nil
		}
		return TailResult{}, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return TailResult{}, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return TailResult{}, fmt.Errorf("log path %q is a directory", path)
	}

	var lines []string
	offset, err := scanLines(file, func(line string) {
		if !filter.Match(line) {
			return
		}
		lines = append(lines, line)
		if limit > 0 && len(lines) > limit {
			lines = lines[1:]
		}
	})
	if err != nil {
		return TailResult{}, err
	}
	return TailResult{Lines: lines, Offset: offset}, nil
}

// Follow emits matching lines appended to path after offset until ctx is
// cancelled. A file that shrinks below offset is read again from the start.
func Follow(ctx context.Context, path string, offset int64, filter Filter, emit func(string)) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		next, err := readFrom(path, offset, filter, emit)
		if err != nil {
			return err
		}
		offset = next

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func readFrom(path string, offset int64, filter Filter, emit func(string)) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return offset, fmt.Errorf("stat log file: %w", err)
	}
	if offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("seek log file: %w", err)
	}

	read, err := scanLines(file, func(line string) {
		if filter.Match(line) {
			emit(line)
		}
	})
	if err != nil {
		return offset, err
	}
	return offset + read, nil
}

// scanLines feeds complete lines to fn and returns the number of bytes
// consumed. Lines longer than maxLineBytes are truncated. A trailing line
// without a newline is left for the next read.
func scanLines(r io.Reader, fn func(string)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	var (
		consumed int64
		pending  int64
		line     []byte
	)
	for {
		chunk, err := reader.ReadSlice('\n')
		pending += int64(len(chunk))
		if room := maxLineBytes - len(line); room > 0 {
			line = append(line, chunk[:min(len(chunk), room)]...)
		}
		switch {
		case err == nil:
			consumed += pending
			fn(strings.TrimSuffix(string(line), "\n"))
			line = line[:0]
			pending = 0
		case errors.Is(err, bufio.ErrBufferFull):
		case errors.Is(err, io.EOF):
			return consumed, nil
		default:
			return consumed, fmt.Errorf("read log file: %w", err)
		}
	}
}
