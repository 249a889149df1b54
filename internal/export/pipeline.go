// Package export serializes invoice state into the portable output
// formats. Every export reads the snapshot it is handed, never mutates
// it, and fails independently of the others.
package export

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/render"
)

// Format identifies one output format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported format.
var Formats = []Format{FormatPDF, FormatPNG, FormatCSV, FormatJSON, FormatXLSX}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format: %s", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// File is one finished export artifact.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Filename builds the download name for an invoice export.
func Filename(invoiceNumber string, f Format) string {
	return fmt.Sprintf("Invoice-%s.%s", invoiceNumber, f)
}

// Pipeline runs exports against snapshots of the invoice state. The
// document and image formats go through the renderer; the tabular and
// structured formats serialize the raw data directly.
type Pipeline struct {
	renderer render.Renderer
	logger   *zap.Logger
}

// NewPipeline creates an export pipeline on top of a renderer.
func NewPipeline(renderer render.Renderer, logger *zap.Logger) *Pipeline {
	return &Pipeline{renderer: renderer, logger: logger}
}

// Export serializes the given snapshot into one format. Failures are
// wrapped in an ExportError carrying the format and failing stage.
func (p *Pipeline) Export(inv *model.InvoiceData, branding *model.BrandingOptions, format Format) (*File, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatPDF:
		data, err = p.exportPDF(inv, branding)
	case FormatPNG:
		data, err = p.exportPNG(inv, branding)
	case FormatCSV:
		data, err = p.exportCSV(inv)
	case FormatJSON:
		data, err = p.exportJSON(inv, branding)
	case FormatXLSX:
		data, err = p.exportXLSX(inv)
	default:
		err = model.NewExportError(string(format), "dispatch", fmt.Errorf("unsupported format"))
	}

	if err != nil {
		p.logger.Error("Export did not complete",
			zap.String("format", string(format)),
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.Error(err))
		return nil, err
	}

	file := &File{
		Name:        Filename(inv.InvoiceNumber, format),
		ContentType: format.ContentType(),
		Data:        data,
	}
	p.logger.Info("Export complete",
		zap.String("format", string(format)),
		zap.String("file", file.Name),
		zap.Int("size_bytes", len(data)))
	return file, nil
}

// rasterize renders the current snapshot and rasterizes it at the fixed
// oversampling factor shared by the document and image exports.
func (p *Pipeline) rasterize(inv *model.InvoiceData, branding *model.BrandingOptions, format Format) (imageWithSize, error) {
	surface, err := p.renderer.Render(inv, branding)
	if err != nil {
		return imageWithSize{}, model.NewExportError(string(format), "render", err)
	}
	img, err := surface.Rasterize(oversample)
	if err != nil {
		return imageWithSize{}, model.NewExportError(string(format), "rasterize", err)
	}
	b := img.Bounds()
	return imageWithSize{img: img, width: b.Dx(), height: b.Dy()}, nil
}
