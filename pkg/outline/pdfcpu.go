package outline

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	log "github.com/sirupsen/logrus"
)

// Read extracts the bookmark tree of the PDF at path. A document without an
// outline, or one whose outline cannot be read, yields an empty tree with a
// logged diagnostic; processing of the document itself is never blocked by
// its bookmarks.
func Read(path string) []Item {
	f, err := os.Open(path)
	if err != nil {
		log.WithField("file", path).WithError(err).Warn("cannot open file for outline extraction")
		return nil
	}
	defer f.Close()

	bms, err := api.Bookmarks(f, nil)
	if err != nil {
		log.WithField("file", path).WithError(err).Debug("no outline extracted")
		return nil
	}
	return fromBookmarks(path, bms)
}

// Write copies the PDF at inFile to outFile with items as its outline,
// replacing any existing one. An empty tree copies the file through
// unchanged.
func Write(inFile, outFile string, items []Item) error {
	if len(items) == 0 {
		return copyFile(inFile, outFile)
	}
	if err := api.AddBookmarksFile(inFile, outFile, toBookmarks(items), true, nil); err != nil {
		return fmt.Errorf("writing outline to %s: %w", outFile, err)
	}
	return nil
}

// fromBookmarks converts pdfcpu's bookmark type into the library-neutral
// tree, turning 1-based pages into 0-based indices. Entries whose destination
// did not resolve to a page are skipped with a warning.
func fromBookmarks(path string, bms []pdfcpu.Bookmark) []Item {
	items := make([]Item, 0, len(bms))
	for _, bm := range bms {
		if bm.PageFrom < 1 {
			log.WithFields(log.Fields{
				"file":  path,
				"title": bm.Title,
			}).Warn("skipping bookmark whose destination page could not be resolved")
			continue
		}
		items = append(items, Item{
			Title:    bm.Title,
			Page:     bm.PageFrom - 1,
			Children: fromBookmarks(path, bm.Kids),
		})
	}
	return items
}

func toBookmarks(items []Item) []pdfcpu.Bookmark {
	bms := make([]pdfcpu.Bookmark, 0, len(items))
	for _, item := range items {
		bms = append(bms, pdfcpu.Bookmark{
			Title:    item.Title,
			PageFrom: item.Page + 1,
			Kids:     toBookmarks(item.Children),
		})
	}
	return bms
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
