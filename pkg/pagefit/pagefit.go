// Package pagefit rescales and repositions pages of existing PDF documents
// onto new canvases.
//
// Pages are imported as templates with gofpdi and placed onto pages of a new
// fpdf document with an explicit placement rectangle. Three placements are
// supported:
//
// - Fitted: scale the page uniformly to the full target width and anchor its
// top edge at a configurable margin line (content taller than the remaining
// space runs off the bottom edge, which is accepted).
//
// - Padded: keep the original scale and extend the canvas by a top and a
// bottom margin.
//
// - Original: copy the page as is.
//
// The placement arithmetic is exposed separately from the document builder so
// it can be reasoned about (and tested) without touching any PDF bytes.
package pagefit

// Size is a page extent in points.
type Size struct {
	W float64
	H float64
}

// A4 in points, portrait.
var A4 = Size{W: 595.28, H: 841.89}

// Placement is a rectangle on a target canvas, origin top-left, in points.
type Placement struct {
	X float64
	Y float64
	W float64
	H float64
}

// FitWidth computes the placement of a source page on a target canvas so that
// the content spans the full target width and its top edge sits marginRatio of
// the target height below the top edge of the canvas.
//
// Scaling is uniform, so the placed height is src.H * (target.W / src.W) and
// may exceed the space below the margin line. Zero source dimensions are not
// validated; the result is undefined.
func FitWidth(src, target Size, marginRatio float64) Placement {
	scale := target.W / src.W
	return Placement{
		X: 0,
		Y: target.H * marginRatio,
		W: target.W,
		H: src.H * scale,
	}
}
