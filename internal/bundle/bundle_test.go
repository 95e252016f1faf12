package bundle

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteRead(t *testing.T) {
	entries := []Entry{
		{Name: "chart.png", Data: []byte{0x89, 'P', 'N', 'G'}},
		{Name: "include/chart_geometry.hpp", Data: []byte("std::vector<cv::Point2f> chartCornersRef;")},
		{Name: "empty.txt", Data: []byte{}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDeterministic(t *testing.T) {
	entries := []Entry{{Name: "table.hpp", Data: []byte("{ 58, 111, 4 }")}}

	var a, b bytes.Buffer
	if err := Write(&a, entries); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := Write(&b, entries); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("identical entries produced different bundles")
	}
}

func TestWriteRejectsUnsafeNames(t *testing.T) {
	for _, name := range []string{"", "/etc/passwd", "../chart.png", "a/../../b", "dir\\file", "./chart.png"} {
		var buf bytes.Buffer
		err := Write(&buf, []Entry{{Name: name, Data: []byte("x")}})
		if !errors.Is(err, ErrInvalidEntry) {
			t.Errorf("Write(%q) error = %v, want ErrInvalidEntry", name, err)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.tar.xz")
	entries := []Entry{{Name: "a.txt", Data: []byte("a")}}

	if err := WriteFile(path, entries); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	got, err := Read(f)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("not an archive"))); err == nil {
		t.Error("Read() should fail for non-xz input")
	}
}
