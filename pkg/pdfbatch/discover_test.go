package pdfbatch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSortByNumericPrefix(t *testing.T) {
	paths := []string{"2-report.pdf", "10-report.pdf", "1-report.pdf"}
	SortByNumericPrefix(paths)
	want := []string{"1-report.pdf", "2-report.pdf", "10-report.pdf"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("got %v, want %v", paths, want)
	}
}

func TestSortByNumericPrefixUnsortableLast(t *testing.T) {
	paths := []string{"notes.pdf", "3-a.pdf", "appendix.pdf", "1-b.pdf"}
	SortByNumericPrefix(paths)
	want := []string{"1-b.pdf", "3-a.pdf", "appendix.pdf", "notes.pdf"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("got %v, want %v", paths, want)
	}
}

func TestSortByNumericPrefixTiesBreakLexically(t *testing.T) {
	paths := []string{"2-zebra.pdf", "2-apple.pdf"}
	SortByNumericPrefix(paths)
	if paths[0] != "2-apple.pdf" {
		t.Errorf("tie not broken lexically: %v", paths)
	}
}

func TestDiscoverDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2.pdf", "1.pdf", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := Discover([]string{dir})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 PDFs, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "1.pdf" || filepath.Base(files[1]) != "2.pdf" {
		t.Errorf("wrong order: %v", files)
	}
}

func TestDiscoverEmptyIsError(t *testing.T) {
	dir := t.TempDir()
	if _, err := Discover([]string{dir}); err == nil {
		t.Fatal("expected an error for a directory without PDFs")
	}
}

func TestStem(t *testing.T) {
	if got := Stem("/tmp/out/3-lecture.pdf"); got != "3-lecture" {
		t.Errorf("Stem = %q, want %q", got, "3-lecture")
	}
}
