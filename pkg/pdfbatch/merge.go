package pdfbatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	log "github.com/sirupsen/logrus"

	"github.com/funcdfs/pdf-selector/pkg/outline"
)

// MergeInput is one source document of a merged output.
type MergeInput struct {
	Path  string // processed per-file output
	Title string // top-level bookmark title, usually the file stem
}

// Stem returns a file's base name without the extension, the conventional
// bookmark title for a merged source.
func Stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// MergeWithBookmarks concatenates the inputs in the given order into outPath
// and builds a hierarchical outline over the result: one top-level entry per
// input pointing at its first merged page, with that input's own bookmark
// tree nested beneath it, every target shifted by the pages accumulated
// before it.
//
// Inputs that cannot be read are skipped with a logged error. It is an error
// for no pages at all to survive into the merge.
func MergeWithBookmarks(inputs []MergeInput, outPath string) error {
	if len(inputs) == 0 {
		return errors.New("nothing to merge")
	}

	var (
		paths  []string
		items  []outline.Item
		offset int
	)
	for _, in := range inputs {
		count, err := api.PageCountFile(in.Path)
		if err != nil {
			log.WithField("file", in.Path).WithError(err).Error("skipping unreadable merge input")
			continue
		}
		if count == 0 {
			log.WithField("file", in.Path).Warn("skipping empty merge input")
			continue
		}
		items = append(items, outline.Item{
			Title:    in.Title,
			Page:     offset,
			Children: outline.Remap(outline.Read(in.Path), outline.Offset(offset)),
		})
		paths = append(paths, in.Path)
		offset += count
	}
	if len(paths) == 0 {
		return errors.New("no pages survived into the merge")
	}

	tmp := outPath + ".merging"
	defer os.Remove(tmp)

	// The outline is rebuilt below, so pdfcpu must not derive one during the
	// merge itself.
	conf := model.NewDefaultConfiguration()
	conf.CreateBookmarks = false
	if err := api.MergeCreateFile(paths, tmp, false, conf); err != nil {
		return fmt.Errorf("merging %d files: %w", len(paths), err)
	}
	if err := outline.Write(tmp, outPath, items); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"files":  len(paths),
		"pages":  offset,
		"output": outPath,
	}).Info("merge complete")
	return nil
}
