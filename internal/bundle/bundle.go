// Package bundle packs generated reference artifacts into a single
// xz-compressed tar archive for hand-off to the native build.
package bundle

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/jmylchreest/calref/internal/util"
	"github.com/ulikunitz/xz"
)

// MaxEntrySize bounds the size of a single archive entry when reading.
const MaxEntrySize = 64 * 1024 * 1024

// ErrInvalidEntry is returned for entries with unsafe names or sizes.
var ErrInvalidEntry = errors.New("invalid bundle entry")

// Entry is one file in a bundle.
type Entry struct {
	Name string
	Data []byte
}

// epoch is the fixed modification time of every entry, so bundles built
// from identical artifacts are byte-identical.
var epoch = time.Unix(0, 0).UTC()

// Write writes entries, in order, as a tar.xz stream.
func Write(w io.Writer, entries []Entry) error {
	xzw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}

	tw := tar.NewWriter(xzw)
	for _, e := range entries {
		if err := validateName(e.Name); err != nil {
			return err
		}

		header := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     e.Name,
			Mode:     0o644,
			Size:     int64(len(e.Data)),
			ModTime:  epoch,
			Format:   tar.FormatUSTAR,
		}
		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("failed to write header for %s: %w", e.Name, err)
		}
		if _, err := tw.Write(e.Data); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.Name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to close tar stream: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return fmt.Errorf("failed to close xz stream: %w", err)
	}
	return nil
}

// WriteFile writes a bundle to path atomically.
func WriteFile(path string, entries []Entry) error {
	return util.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		return Write(w, entries)
	})
}

// Read decodes a tar.xz bundle. Only regular files are returned.
func Read(r io.Reader) ([]Entry, error) {
	xzr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}

	tr := tar.NewReader(xzr)
	var entries []Entry
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar header: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}
		if err := validateName(header.Name); err != nil {
			return nil, err
		}
		if header.Size > MaxEntrySize {
			return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrInvalidEntry, header.Name, header.Size, MaxEntrySize)
		}

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, io.LimitReader(tr, MaxEntrySize)); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", header.Name, err)
		}
		entries = append(entries, Entry{Name: header.Name, Data: buf.Bytes()})
	}

	return entries, nil
}

// validateName rejects names that would escape the extraction directory.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidEntry)
	}
	if path.IsAbs(name) || strings.Contains(name, "\\") {
		return fmt.Errorf("%w: %s must be a relative slash-separated path", ErrInvalidEntry, name)
	}
	if clean := path.Clean(name); clean != name || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %s is not a clean relative path", ErrInvalidEntry, name)
	}
	return nil
}
