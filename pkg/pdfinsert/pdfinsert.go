// Package pdfinsert rebuilds PDF files for double-sided note taking: every
// page gets a blank top and bottom margin, is followed by a square blank
// companion page, and carries a corner label with its position among the
// original pages. The source's bookmark tree is carried over onto the doubled
// page layout.
//
// A file passes through three stages, each producing an intermediate in a
// scoped temporary directory that is removed on every exit path:
//
//  1. margin pass: canvas extended by the configured margins
//  2. blank pass: a square blank page inserted after every page
//  3. numbering pass: corner labels stamped, outline remapped, final output
package pdfinsert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	log "github.com/sirupsen/logrus"

	"github.com/funcdfs/pdf-selector/pkg/outline"
	"github.com/funcdfs/pdf-selector/pkg/pagefit"
	"github.com/funcdfs/pdf-selector/pkg/pagenum"
	"github.com/funcdfs/pdf-selector/pkg/pdfbatch"
)

const cmToPoints = 28.3464567

// Options configures the insert pipeline.
type Options struct {
	TopMargin    float64 // points of blank space added above each page
	BottomMargin float64 // points of blank space added below each page
	Font         pagenum.Font
}

// DefaultOptions adds 1.5 cm margins on both sides.
func DefaultOptions() Options {
	return Options{
		TopMargin:    1.5 * cmToPoints,
		BottomMargin: 1.5 * cmToPoints,
		Font:         pagenum.DefaultFont,
	}
}

// ProcessFile runs the three stages over input and writes the result to
// output. When the numbering stage fails after the intermediates were built,
// the doubled intermediate is copied to the output path as a debugging clue
// before the error is reported.
func ProcessFile(input, output string, opts Options) error {
	count, err := api.PageCountFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	if count == 0 {
		return fmt.Errorf("%s has no pages", input)
	}

	items := outline.Read(input)

	workDir, err := os.MkdirTemp("", "pdfinsert-")
	if err != nil {
		return fmt.Errorf("creating work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	padded := filepath.Join(workDir, "padded.pdf")
	doubled := filepath.Join(workDir, "doubled.pdf")

	if err := addMargins(input, padded, count, opts); err != nil {
		return err
	}
	if err := insertBlanks(padded, doubled, count); err != nil {
		return err
	}
	if err := numberPages(doubled, output, items, opts); err != nil {
		if copyErr := pdfbatch.CopyFile(doubled, output); copyErr == nil {
			log.WithField("output", output).
				Info("copied intermediate to output after numbering failure")
		}
		return err
	}
	return nil
}

// addMargins writes a copy of input whose every page sits on a canvas
// extended by the configured top and bottom margins.
func addMargins(input, output string, count int, opts Options) error {
	doc := pagefit.Open(input)
	for i := 1; i <= count; i++ {
		if _, err := doc.AppendPadded(i, opts.TopMargin, opts.BottomMargin); err != nil {
			return err
		}
	}
	return doc.WriteFile(output)
}

// insertBlanks writes a copy of input in which every page is followed by a
// blank square page as wide as the page itself.
func insertBlanks(input, output string, expected int) error {
	count, err := api.PageCountFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	if count != expected {
		log.WithFields(log.Fields{
			"file": input, "pages": count, "expected": expected,
		}).Warn("page count changed during margin pass")
	}

	doc := pagefit.Open(input)
	for i := 1; i <= count; i++ {
		size, err := doc.AppendOriginal(i)
		if err != nil {
			return err
		}
		doc.AppendBlank(pagefit.Size{W: size.W, H: size.W})
	}
	return doc.WriteFile(output)
}

// numberPages stamps every page of the doubled intermediate, blanks included,
// with the 1-based position of its original page over the original total, and
// writes the final output with the source outline remapped onto the doubled
// layout. An odd page count means an earlier stage did not fully succeed; it
// is reported but numbering proceeds on floor(total/2) originals.
func numberPages(input, output string, items []outline.Item, opts Options) error {
	total, err := api.PageCountFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	originals := total / 2
	if total%2 != 0 {
		log.WithFields(log.Fields{"file": input, "pages": total}).
			Warn("odd page count after blank-page insertion, labels may be off")
	}

	doc := pagefit.Open(input)
	opts.Font.Register(doc.PDF())
	for i := 0; i < total; i++ {
		size, err := doc.AppendOriginal(i + 1)
		if err != nil {
			return err
		}
		pagenum.StampCorner(doc.PDF(), size, pagenum.CornerLabel(i/2+1, originals), opts.Font)
	}

	tmp := output + ".pages"
	defer os.Remove(tmp)
	if err := doc.WriteFile(tmp); err != nil {
		return err
	}
	return outline.Write(tmp, output, outline.Remap(items, outline.Doubled()))
}
