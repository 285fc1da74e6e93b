package zip

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestZipFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "report.json")
	second := filepath.Join(dir, "output.txt")
	if err := os.WriteFile(first, []byte(`{"matched": 10}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("done"), 0644); err != nil {
		t.Fatal(err)
	}
	target, size, err := ZipFiles([]string{first, second})
	if err != nil {
		t.Fatal(err)
	}
	if target != filepath.Join(dir, "report.zip") {
		t.Error("unexpected archive path:", target)
	}
	if size <= 0 {
		t.Error("archive size should be positive, got", size)
	}
	reader, err := zip.OpenReader(target)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()
	if len(reader.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(reader.File))
	}
	if reader.File[0].Name != "report.json" {
		t.Error("entries should be flat base names, got", reader.File[0].Name)
	}
}

func TestZipFilesEmpty(t *testing.T) {
	_, _, err := ZipFiles(nil)
	if err == nil {
		t.Error("expected an error for no sources")
	}
}

func TestZipFilesMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, _, err := ZipFiles([]string{filepath.Join(dir, "absent.txt")})
	if err == nil {
		t.Error("expected an error for a missing source")
	}
}
