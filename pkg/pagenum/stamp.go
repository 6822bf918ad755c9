package pagenum

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	log "github.com/sirupsen/logrus"

	"github.com/funcdfs/pdf-selector/pkg/pagefit"
)

const mm = 72.0 / 25.4

// Footer geometry in points.
const (
	footerBaseline = 7 * mm  // baseline above the bottom edge
	footerLeft     = 10 * mm // left inset of the file segment
	footerRight    = 5 * mm  // right inset of the global segment
	segmentGap     = 5 * mm  // minimum gap between the two segments
	shrinkStep     = 0.5     // font-size decrement while fitting

	cornerInset = 30 // corner label inset from right and bottom edges
)

// FileLabel formats the left footer segment: source file tag plus the page's
// position within that file.
func FileLabel(name string, page, total int) string {
	return fmt.Sprintf("[ %s %d/%d ]", name, page, total)
}

// GlobalLabel formats the right footer segment.
func GlobalLabel(page, total int) string {
	return fmt.Sprintf("[ %d/%d ]", page, total)
}

// CornerLabel formats the single-segment corner label.
func CornerLabel(page, total int) string {
	return fmt.Sprintf("%d / %d", page, total)
}

// StampDual draws a two-segment footer onto the current page. The right
// segment is placed first at the base font size; the left segment is shrunk
// in fixed steps down to f.MinSize while it exceeds the space remaining
// before the right segment. If it still does not fit at the floor size a
// warning is logged and the label is drawn anyway, possibly overlapping.
func StampDual(pdf *fpdf.Fpdf, page pagefit.Size, left, right string, f Font) {
	left, right = f.encode(left), f.encode(right)

	pdf.SetFont(f.Family, "", f.Size)
	pdf.SetTextColor(0, 0, 0)
	y := page.H - footerBaseline

	rightX := page.W - pdf.GetStringWidth(right) - footerRight

	if left != "" {
		maxWidth := rightX - segmentGap - footerLeft
		size, width := fitSize(pdf, left, maxWidth, f.Size, f.MinSize)
		if width > maxWidth {
			log.WithFields(log.Fields{
				"label":    left,
				"fontSize": size,
			}).Warn("footer segment exceeds available width at minimum font size")
		}
		pdf.Text(footerLeft, y, left)
		pdf.SetFontSize(f.Size)
	}

	pdf.Text(rightX, y, right)
}

// StampCorner draws a right-aligned label near the bottom-right corner of the
// current page at the base font size.
func StampCorner(pdf *fpdf.Fpdf, page pagefit.Size, text string, f Font) {
	text = f.encode(text)

	pdf.SetFont(f.Family, "", f.Size)
	pdf.SetTextColor(0, 0, 0)

	x := page.W - cornerInset - pdf.GetStringWidth(text)
	pdf.Text(x, page.H-cornerInset, text)
}

// fitSize lowers the current font size from base toward min in shrinkStep
// decrements until text renders no wider than maxWidth, returning the chosen
// size and the width at that size. The font size is left set on pdf.
func fitSize(pdf *fpdf.Fpdf, text string, maxWidth, base, min float64) (size, width float64) {
	size = base
	pdf.SetFontSize(size)
	width = pdf.GetStringWidth(text)
	for width > maxWidth && size > min {
		size -= shrinkStep
		pdf.SetFontSize(size)
		width = pdf.GetStringWidth(text)
	}
	return size, width
}
