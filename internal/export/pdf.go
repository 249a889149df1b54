package export

import (
	"bytes"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/rezonia/invoice-studio/internal/model"
)

const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0

	// Fixed oversampling factor for rasterization quality.
	oversample = 2.0
)

type imageWithSize struct {
	img    image.Image
	width  int
	height int
}

// exportPDF rasterizes the rendered surface once and tiles the full
// raster across A4 pages. Each page redraws the same image at a shifted
// vertical offset rather than slicing it, which is fine for the short
// documents invoices are.
func (p *Pipeline) exportPDF(inv *model.InvoiceData, branding *model.BrandingOptions) ([]byte, error) {
	raster, err := p.rasterize(inv, branding, FormatPDF)
	if err != nil {
		return nil, err
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, raster.img); err != nil {
		return nil, model.NewExportError(string(FormatPDF), "encode", err)
	}

	imgHeightMM := float64(raster.height) * pageWidthMM / float64(raster.width)

	doc := gofpdf.New("P", "mm", "A4", "")
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("surface", opt, &pngBuf)

	heightLeft := imgHeightMM
	position := 0.0

	doc.AddPage()
	doc.ImageOptions("surface", 0, position, pageWidthMM, imgHeightMM, false, opt, 0, "")
	heightLeft -= pageHeightMM

	for heightLeft > 0 {
		position = heightLeft - imgHeightMM
		doc.AddPage()
		doc.ImageOptions("surface", 0, position, pageWidthMM, imgHeightMM, false, opt, 0, "")
		heightLeft -= pageHeightMM
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, model.NewExportError(string(FormatPDF), "write", err)
	}

	if err := api.Validate(bytes.NewReader(out.Bytes()), nil); err != nil {
		return nil, model.NewExportError(string(FormatPDF), "validate", err)
	}

	return out.Bytes(), nil
}

// exportPNG rasterizes the surface once and offers it as a single image.
func (p *Pipeline) exportPNG(inv *model.InvoiceData, branding *model.BrandingOptions) ([]byte, error) {
	raster, err := p.rasterize(inv, branding, FormatPNG)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, raster.img); err != nil {
		return nil, model.NewExportError(string(FormatPNG), "encode", err)
	}
	return buf.Bytes(), nil
}
