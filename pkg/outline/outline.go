// Package outline models PDF bookmark trees as a plain tagged tree, decoupled
// from any PDF library's object model, and transplants them between documents
// by translating target page indices through a caller-supplied mapping.
//
// The same recursive walk serves every remapping scenario: straight
// pass-through, page doubling after blank-page insertion, and the additive
// offsets of a merge. Only the PageMap differs.
package outline

import (
	log "github.com/sirupsen/logrus"
)

// Item is one bookmark entry: a title, the 0-based index of its target page
// and its ordered children.
type Item struct {
	Title    string
	Page     int
	Children []Item
}

// PageMap translates a 0-based page index in a source document to the
// corresponding index in a destination document. Implementations must be
// deterministic and total over the source document's valid indices.
type PageMap func(int) int

// Identity maps every index to itself.
func Identity() PageMap {
	return func(i int) int { return i }
}

// Doubled maps indices of a document in which every original page is followed
// by one inserted companion page.
func Doubled() PageMap {
	return func(i int) int { return i * 2 }
}

// Offset shifts indices by the number of pages preceding the document in a
// merged output.
func Offset(pages int) PageMap {
	return func(i int) int { return i + pages }
}

// Remap rebuilds the tree with every target page translated through m. Entries
// are kept in source order; an entry whose target never resolved (negative
// page index) is skipped with a warning rather than failing the whole tree,
// its children going with it.
func Remap(items []Item, m PageMap) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Page < 0 {
			log.WithField("title", item.Title).
				Warn("skipping bookmark with unresolved target page")
			continue
		}
		out = append(out, Item{
			Title:    item.Title,
			Page:     m(item.Page),
			Children: Remap(item.Children, m),
		})
	}
	return out
}
