package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tiliavir/clocklog/internal/reader"
)

// ErrOpenClockin is returned when a history file ends with a clock-in that
// was never closed.
var ErrOpenClockin = errors.New("clock-in left open")

// ReadFiles reads paths in order into store. Each file starts from the
// state the previous one ended with (year, date, job and tags, but no open
// clock-in). Only the last file may end with an open clock-in; it is
// returned in the state. A missing last file reads as an empty document so
// a fresh main file needs no setup.
func ReadFiles(store *reader.ClockStore, paths ...string) (reader.ReadState, error) {
	rs := reader.NewReadState()
	for i, path := range paths {
		last := i == len(paths)-1
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) && last {
			data, err = nil, nil
		}
		if err != nil {
			return reader.ReadState{}, fmt.Errorf("storage error reading %s: %w", path, err)
		}

		next, err := store.ReadFrom(string(data), rs.Carry())
		if err != nil {
			return reader.ReadState{}, fmt.Errorf("%s: %w", path, err)
		}
		if !last && next.CurrIn != nil {
			return reader.ReadState{}, fmt.Errorf("%s: %w: %s", path, ErrOpenClockin, next.CurrIn.Job)
		}
		rs = next
	}
	return rs, nil
}

// AppendLines atomically appends lines to the file at path, creating it and
// its directory when missing. A newline is inserted first when the file does
// not end with one.
func AppendLines(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage error reading %s: %w", path, err)
	}
	var b strings.Builder
	b.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
