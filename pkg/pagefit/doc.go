package pagefit

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// Doc builds a new PDF document from the pages of a single source file.
// Pages are appended in calls to the Append* methods; the result is written
// with WriteFile. The zero value is not usable, use Open.
type Doc struct {
	src   string
	pdf   *fpdf.Fpdf
	imp   *gofpdi.Importer
	pages int
}

// Open prepares a builder reading pages from the PDF at src. The source is
// not parsed until the first page is appended.
func Open(src string) *Doc {
	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetAutoPageBreak(false, 0)
	return &Doc{
		src: src,
		pdf: pdf,
		imp: gofpdi.NewImporter(),
	}
}

// PDF exposes the underlying document so callers can draw on the page that
// was appended last (page-number stamping).
func (d *Doc) PDF() *fpdf.Fpdf {
	return d.pdf
}

// PageCount returns the number of pages appended so far.
func (d *Doc) PageCount() int {
	return d.pages
}

// AppendFitted appends source page pageNum (1-based) scaled onto a target
// canvas per FitWidth and returns the placement used.
func (d *Doc) AppendFitted(pageNum int, target Size, marginRatio float64) (p Placement, err error) {
	defer recoverImport(d.src, pageNum, &err)

	tpl := d.imp.ImportPage(d.pdf, d.src, pageNum, "/MediaBox")
	src, err := d.importedSize(pageNum)
	if err != nil {
		return Placement{}, err
	}

	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: target.W, Ht: target.H})
	p = FitWidth(src, target, marginRatio)
	d.imp.UseImportedTemplate(d.pdf, tpl, p.X, p.Y, p.W, p.H)
	d.pages++
	return p, d.pdf.Error()
}

// AppendPadded appends source page pageNum at its original scale onto a
// canvas extended by top and bottom points of blank margin. It returns the
// size of the new canvas.
func (d *Doc) AppendPadded(pageNum int, top, bottom float64) (canvas Size, err error) {
	defer recoverImport(d.src, pageNum, &err)

	tpl := d.imp.ImportPage(d.pdf, d.src, pageNum, "/MediaBox")
	src, err := d.importedSize(pageNum)
	if err != nil {
		return Size{}, err
	}

	canvas = Size{W: src.W, H: src.H + top + bottom}
	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: canvas.W, Ht: canvas.H})
	d.imp.UseImportedTemplate(d.pdf, tpl, 0, top, src.W, src.H)
	d.pages++
	return canvas, d.pdf.Error()
}

// AppendOriginal appends source page pageNum unchanged and returns its size.
func (d *Doc) AppendOriginal(pageNum int) (src Size, err error) {
	defer recoverImport(d.src, pageNum, &err)

	tpl := d.imp.ImportPage(d.pdf, d.src, pageNum, "/MediaBox")
	src, err = d.importedSize(pageNum)
	if err != nil {
		return Size{}, err
	}

	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: src.W, Ht: src.H})
	d.imp.UseImportedTemplate(d.pdf, tpl, 0, 0, src.W, src.H)
	d.pages++
	return src, d.pdf.Error()
}

// AppendBlank appends an empty page of the given size.
func (d *Doc) AppendBlank(size Size) {
	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: size.W, Ht: size.H})
	d.pages++
}

// WriteFile renders the document to path.
func (d *Doc) WriteFile(path string) error {
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// importedSize looks up the /MediaBox dimensions recorded by the importer for
// the most recently imported page.
func (d *Doc) importedSize(pageNum int) (Size, error) {
	sizes := d.imp.GetPageSizes()
	dims, ok := sizes[pageNum]
	if !ok {
		return Size{}, fmt.Errorf("%s: no dimensions for page %d", d.src, pageNum)
	}
	mb, ok := dims["/MediaBox"]
	if !ok {
		return Size{}, fmt.Errorf("%s: page %d has no /MediaBox", d.src, pageNum)
	}
	return Size{W: mb["w"], H: mb["h"]}, nil
}

// recoverImport converts importer panics into errors. gofpdi reports
// malformed input by panicking, and a bad source file must fail only the file
// being processed, not the whole batch.
func recoverImport(src string, pageNum int, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("importing page %d of %s: %v", pageNum, src, r)
	}
}
