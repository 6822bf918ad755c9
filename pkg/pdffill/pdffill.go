// Package pdffill normalizes PDF pages onto a standard page size and stamps
// dual-segment page-number footers.
//
// Every page is scaled to the full target width, keeping its aspect ratio,
// and anchored below a top margin line. The footer carries the source file's
// tag with the in-file position on the left and the global position on the
// right. When several files are merged into one output, global positions span
// the whole merged document and a hierarchical bookmark tree is built with
// one top-level entry per source file.
package pdffill

import (
	"errors"
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

// Options configures the fill pipeline.
type Options struct {
	Target      pagefit.Size // page size of the output
	MarginRatio float64      // fraction of target height left blank above the content
	Font        pagenum.Font // label font, resolved once at startup
}

// DefaultOptions fits pages onto A4 with a 10% top margin.
func DefaultOptions() Options {
	return Options{
		Target:      pagefit.A4,
		MarginRatio: 0.10,
		Font:        pagenum.DefaultFont,
	}
}

// labelFunc produces the two footer segments for a page, both 1-based within
// the file being rendered.
type labelFunc func(page, count int) (left, right string)

// ProcessFile writes a fitted, numbered copy of input to output, carrying the
// source's bookmark tree over unchanged (fitting preserves page indices).
func ProcessFile(input, output string, opts Options) error {
	stem := pdfbatch.Stem(input)
	_, err := renderFitted(input, output, opts, func(page, count int) (string, string) {
		return pagenum.FileLabel(stem, page, count), pagenum.GlobalLabel(page, count)
	})
	return err
}

// MergeAll fits every input, stamps footers whose right segment counts across
// the whole merged document, and concatenates the results into outPath with a
// top-level bookmark per source file. Inputs that cannot be read are excluded
// with a logged error; page totals are gathered up front so that the global
// numbering is consistent.
func MergeAll(inputs []string, outPath string, opts Options) error {
	type source struct {
		path  string
		stem  string
		count int
	}
	var (
		sources []source
		total   int
	)
	for _, in := range inputs {
		count, err := api.PageCountFile(in)
		if err != nil {
			log.WithField("file", in).WithError(err).Error("excluding unreadable file from merge")
			continue
		}
		sources = append(sources, source{path: in, stem: pdfbatch.Stem(in), count: count})
		total += count
	}
	if len(sources) == 0 {
		return errors.New("no readable files to merge")
	}

	tmpDir, err := os.MkdirTemp("", "pdffill-")
	if err != nil {
		return fmt.Errorf("creating work dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	merged := make([]pdfbatch.MergeInput, 0, len(sources))
	offset := 0
	for i, src := range sources {
		tmp := filepath.Join(tmpDir, fmt.Sprintf("%03d_%s.pdf", i, src.stem))
		before := offset
		_, err := renderFitted(src.path, tmp, opts, func(page, count int) (string, string) {
			return pagenum.FileLabel(src.stem, page, count),
				pagenum.GlobalLabel(before+page, total)
		})
		if err != nil {
			return fmt.Errorf("preparing %s for merge: %w", src.path, err)
		}
		merged = append(merged, pdfbatch.MergeInput{Path: tmp, Title: src.stem})
		offset += src.count
	}

	return pdfbatch.MergeWithBookmarks(merged, outPath)
}

// renderFitted builds the fitted copy of input at output, stamping each page
// with the segments produced by label, and transplants the source's outline
// through a pass-through page map. Returns the page count of the input.
func renderFitted(input, output string, opts Options, label labelFunc) (int, error) {
	count, err := api.PageCountFile(input)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", input, err)
	}
	if count == 0 {
		return 0, fmt.Errorf("%s has no pages", input)
	}

	items := outline.Read(input)

	doc := pagefit.Open(input)
	opts.Font.Register(doc.PDF())
	for i := 1; i <= count; i++ {
		if _, err := doc.AppendFitted(i, opts.Target, opts.MarginRatio); err != nil {
			return 0, err
		}
		if label != nil {
			left, right := label(i, count)
			pagenum.StampDual(doc.PDF(), opts.Target, left, right, opts.Font)
		}
	}

	tmp := output + ".pages"
	defer os.Remove(tmp)
	if err := doc.WriteFile(tmp); err != nil {
		return 0, err
	}
	if err := outline.Write(tmp, output, outline.Remap(items, outline.Identity())); err != nil {
		return 0, err
	}
	return count, nil
}
