package pdfbatch_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/funcdfs/pdf-selector/pkg/outline"
	"github.com/funcdfs/pdf-selector/pkg/pdfbatch"
)

// createTestPDF generates a simple PDF file with the given number of pages.
func createTestPDF(t *testing.T, filename string, numPages int) {
	t.Helper()
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= numPages; i++ {
		pdf.AddPage()
		pdf.Text(40, 60, fmt.Sprintf("Page %d of %d", i, numPages))
	}
	if err := pdf.OutputFileAndClose(filename); err != nil {
		t.Fatalf("creating test PDF: %v", err)
	}
}

func TestMergeUnitPageFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "merged.pdf")

	var inputs []pdfbatch.MergeInput
	for i := 0; i < 4; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%d-part.pdf", i+1))
		createTestPDF(t, path, 1)
		inputs = append(inputs, pdfbatch.MergeInput{Path: path, Title: pdfbatch.Stem(path)})
	}

	if err := pdfbatch.MergeWithBookmarks(inputs, out); err != nil {
		t.Fatalf("merge: %v", err)
	}

	count, err := api.PageCountFile(out)
	if err != nil {
		t.Fatalf("reading merged output: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 pages, got %d", count)
	}

	items := outline.Read(out)
	if len(items) != 4 {
		t.Fatalf("expected 4 top-level bookmarks, got %d", len(items))
	}
	for i, item := range items {
		if item.Page != i {
			t.Errorf("bookmark %q points at page %d, want %d", item.Title, item.Page, i)
		}
		if want := fmt.Sprintf("%d-part", i+1); item.Title != want {
			t.Errorf("bookmark %d titled %q, want %q", i, item.Title, want)
		}
	}
}

func TestMergeNestsSourceOutlines(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "merged.pdf")

	first := filepath.Join(dir, "1-intro.pdf")
	plain := filepath.Join(dir, "plain.pdf")
	second := filepath.Join(dir, "2-body.pdf")
	createTestPDF(t, plain, 3)
	createTestPDF(t, first, 2)
	if err := outline.Write(plain, second, []outline.Item{
		{Title: "Chapter", Page: 1, Children: []outline.Item{{Title: "Detail", Page: 2}}},
	}); err != nil {
		t.Fatalf("preparing outlined input: %v", err)
	}

	inputs := []pdfbatch.MergeInput{
		{Path: first, Title: "1-intro"},
		{Path: second, Title: "2-body"},
	}
	if err := pdfbatch.MergeWithBookmarks(inputs, out); err != nil {
		t.Fatalf("merge: %v", err)
	}

	items := outline.Read(out)
	if len(items) != 2 {
		t.Fatalf("expected 2 top-level bookmarks, got %d", len(items))
	}
	if items[1].Page != 2 {
		t.Errorf("second file starts at page %d, want 2", items[1].Page)
	}
	kids := items[1].Children
	if len(kids) != 1 || kids[0].Title != "Chapter" {
		t.Fatalf("nested outline not transplanted: %+v", kids)
	}
	// Page 1 within the second file, shifted by the 2 pages of the first.
	if kids[0].Page != 3 {
		t.Errorf("nested bookmark at page %d, want 3", kids[0].Page)
	}
	if len(kids[0].Children) != 1 || kids[0].Children[0].Page != 4 {
		t.Errorf("second-level nesting wrong: %+v", kids[0].Children)
	}
}

func TestMergeSkipsUnreadableInputs(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "merged.pdf")

	good := filepath.Join(dir, "good.pdf")
	bad := filepath.Join(dir, "bad.pdf")
	createTestPDF(t, good, 2)
	if err := os.WriteFile(bad, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	inputs := []pdfbatch.MergeInput{
		{Path: bad, Title: "bad"},
		{Path: good, Title: "good"},
	}
	if err := pdfbatch.MergeWithBookmarks(inputs, out); err != nil {
		t.Fatalf("merge should proceed with the readable input: %v", err)
	}
	count, err := api.PageCountFile(out)
	if err != nil {
		t.Fatalf("reading merged output: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 pages, got %d", count)
	}
}

func TestMergeNothingIsError(t *testing.T) {
	if err := pdfbatch.MergeWithBookmarks(nil, "out.pdf"); err == nil {
		t.Fatal("expected an error for an empty merge")
	}
}
