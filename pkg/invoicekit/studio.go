package invoicekit

import (
	"io"

	"go.uber.org/zap"

	"github.com/rezonia/invoice-studio/internal/export"
	"github.com/rezonia/invoice-studio/internal/render"
	"github.com/rezonia/invoice-studio/internal/store"
	"github.com/rezonia/invoice-studio/internal/totals"
)

// Format identifies one export format.
type Format = export.Format

// Re-export format constants
const (
	FormatPDF  = export.FormatPDF
	FormatPNG  = export.FormatPNG
	FormatCSV  = export.FormatCSV
	FormatJSON = export.FormatJSON
	FormatXLSX = export.FormatXLSX
)

// File is one finished export artifact.
type File = export.File

// Session is the single-writer invoice editing state.
type Session = store.Session

// ItemPatch is a partial line item update.
type ItemPatch = store.ItemPatch

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	return export.ParseFormat(s)
}

// Studio bundles an editing session with an export pipeline.
type Studio struct {
	session  *store.Session
	pipeline *export.Pipeline
}

// NewStudio creates a studio with a default invoice and the standard
// PDF renderer.
func NewStudio(logger *zap.Logger) *Studio {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Studio{
		session:  store.NewSession(),
		pipeline: export.NewPipeline(render.NewPDFRenderer(logger), logger),
	}
}

// NewStudioFrom creates a studio seeded from existing documents. Derived
// totals are recomputed so the loaded state is always consistent.
func NewStudioFrom(inv *InvoiceData, branding *BrandingOptions, logger *zap.Logger) *Studio {
	if logger == nil {
		logger = zap.NewNop()
	}
	if branding == nil {
		branding = DefaultBranding()
	}
	return &Studio{
		session:  store.NewSessionFrom(inv, branding),
		pipeline: export.NewPipeline(render.NewPDFRenderer(logger), logger),
	}
}

// Session returns the editing session.
func (s *Studio) Session() *store.Session {
	return s.session
}

// Export serializes the current state into one format.
func (s *Studio) Export(format Format) (*File, error) {
	inv, branding := s.session.Snapshot()
	return s.pipeline.Export(inv, branding, format)
}

// LoadJSON replaces the studio state from a JSON document export.
func (s *Studio) LoadJSON(r io.Reader) error {
	inv, branding, err := export.ReadJSON(r)
	if err != nil {
		return err
	}
	s.session.ReplaceInvoice(inv)
	s.session.SetBranding(*branding)
	return nil
}

// Totals recomputes the breakdown for the current invoice without
// mutating the session.
func (s *Studio) Totals() totals.Breakdown {
	inv := s.session.Invoice()
	return totals.Compute(inv.Items, inv.DiscountType, inv.DiscountValue, inv.TaxRate, inv.AdditionalCharges)
}
