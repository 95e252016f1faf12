// Package util provides shared utility functions used across the application.
package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrWriteFailure is returned when an artifact cannot be written to its
// destination. The destination is left untouched in that case.
var ErrWriteFailure = errors.New("write failure")

// WriteFileAtomic writes the output of fn to path. Content is written to a
// temporary file in the destination directory and renamed into place, so the
// destination either holds the complete new content or is left as it was.
func WriteFileAtomic(path string, perm os.FileMode, fn func(w io.Writer) error) error {
	if path == "" {
		return fmt.Errorf("%w: empty output path", ErrWriteFailure)
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file in %s: %w", ErrWriteFailure, dir, err)
	}
	tmpPath := tmpFile.Name()

	// Remove the temp file on every failure path below.
	fail := func(format string, err error) error {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // Ignore cleanup errors
		return fmt.Errorf("%w: "+format+": %w", ErrWriteFailure, path, err)
	}

	if err := fn(tmpFile); err != nil {
		return fail("failed to write %s", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fail("failed to sync %s", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fail("failed to close %s", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fail("failed to chmod %s", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Ignore cleanup errors
		return fmt.Errorf("%w: failed to rename into %s: %w", ErrWriteFailure, path, err)
	}

	return nil
}

// WriteFile is WriteFileAtomic for content that is already in memory.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return WriteFileAtomic(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
