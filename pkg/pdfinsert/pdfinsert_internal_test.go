package pdfinsert

import (
	"fmt"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func writePages(t *testing.T, filename string, numPages int) {
	t.Helper()
	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= numPages; i++ {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: 612, Ht: 792})
		pdf.Text(40, 60, fmt.Sprintf("Page %d", i))
	}
	if err := pdf.OutputFileAndClose(filename); err != nil {
		t.Fatalf("creating test PDF: %v", err)
	}
}

// An odd page count means the blank pass was cut short. Numbering must report
// it and proceed with floor(total/2) originals rather than fail.
func TestNumberPagesOddCountWarnsAndProceeds(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	dir := t.TempDir()
	in := filepath.Join(dir, "truncated.pdf")
	out := filepath.Join(dir, "out.pdf")
	writePages(t, in, 3)

	if err := numberPages(in, out, nil, DefaultOptions()); err != nil {
		t.Fatalf("numbering an odd-count file: %v", err)
	}

	count, err := api.PageCountFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 pages, got %d", count)
	}

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel && e.Data["pages"] == 3 {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning about the odd page count")
	}
}

func TestNumberPagesEvenCountStaysQuiet(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	dir := t.TempDir()
	in := filepath.Join(dir, "doubled.pdf")
	out := filepath.Join(dir, "out.pdf")
	writePages(t, in, 4)

	if err := numberPages(in, out, nil, DefaultOptions()); err != nil {
		t.Fatalf("numbering: %v", err)
	}
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel {
			t.Errorf("unexpected warning: %s", e.Message)
		}
	}
}
