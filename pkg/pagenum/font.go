// Package pagenum renders page-number labels onto pages of an fpdf document.
//
// Labels come in two shapes: a dual-segment footer with a per-file tag on the
// left and a global fraction on the right, where the left segment shrinks to
// fit the space the right segment leaves over, and a fixed-size corner label
// of the form "n / total".
//
// The font used for labels is resolved once at startup from a chain of TTF
// candidates and threaded into the stamping calls explicitly.
package pagenum

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
)

// Font describes the label font. TTFPath is empty when a built-in core font
// is used; core fonts only cover ISO-8859-1, so label text is re-encoded
// before drawing.
type Font struct {
	Family  string
	TTFPath string
	Size    float64
	MinSize float64
}

// DefaultFont is the final fallback when no TTF candidate is usable.
var DefaultFont = Font{
	Family:  "Helvetica",
	Size:    10,
	MinSize: 7,
}

// Resolve walks the TTF candidate paths in order and returns a Font for the
// first one that exists, falling back to DefaultFont. Resolution happens once;
// downstream stamping never fails for lack of a font.
func Resolve(candidates []string, size, minSize float64) Font {
	requested := false
	for _, path := range candidates {
		if path == "" {
			continue
		}
		requested = true
		if _, err := os.Stat(path); err != nil {
			log.WithField("font", path).Debug("label font candidate not found")
			continue
		}
		family := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return Font{Family: family, TTFPath: path, Size: size, MinSize: minSize}
	}
	if requested {
		log.WithField("fallback", DefaultFont.Family).
			Warn("no label font candidate usable, non-latin characters may not render")
	}
	f := DefaultFont
	f.Size = size
	f.MinSize = minSize
	return f
}

// Register adds the font to a document. Must be called once per output
// document before stamping; a no-op for core fonts.
func (f Font) Register(pdf *fpdf.Fpdf) {
	if f.TTFPath != "" {
		pdf.AddUTF8Font(f.Family, "", f.TTFPath)
	}
}

// encode converts label text to ISO-8859-1 when drawing with a core font.
// On conversion failure the raw text is kept rather than dropping the label.
func (f Font) encode(s string) string {
	if f.TTFPath != "" {
		return s
	}
	latin1, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	return latin1
}
