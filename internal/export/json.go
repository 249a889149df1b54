package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rezonia/invoice-studio/internal/model"
)

// Document is the structured-data dump: the full invoice and branding
// state, every field included verbatim.
type Document struct {
	InvoiceData     *model.InvoiceData     `json:"invoiceData"`
	BrandingOptions *model.BrandingOptions `json:"brandingOptions"`
}

// exportJSON serializes both documents as a single pretty-printed dump.
func (p *Pipeline) exportJSON(inv *model.InvoiceData, branding *model.BrandingOptions) ([]byte, error) {
	data, err := json.MarshalIndent(Document{
		InvoiceData:     inv,
		BrandingOptions: branding,
	}, "", "  ")
	if err != nil {
		return nil, model.NewExportError(string(FormatJSON), "encode", err)
	}
	return data, nil
}

// ReadJSON re-imports a structured-data dump. Missing branding options
// fall back to the defaults so older dumps still load.
func ReadJSON(r io.Reader) (*model.InvoiceData, *model.BrandingOptions, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode invoice document: %w", err)
	}
	if doc.InvoiceData == nil {
		return nil, nil, fmt.Errorf("invoice document has no invoiceData")
	}
	if doc.BrandingOptions == nil {
		doc.BrandingOptions = model.DefaultBranding()
	}
	return doc.InvoiceData, doc.BrandingOptions, nil
}
