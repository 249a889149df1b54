// Package invoicekit provides a public API for composing invoices and
// exporting them to portable formats.
//
// This package exposes the core types for building an invoice document,
// keeping its derived totals consistent, and exporting it to PDF, PNG,
// CSV, JSON and XLSX.
//
// Example usage:
//
//	studio := invoicekit.NewStudio(zap.NewNop())
//	studio.Session().SetTaxRate(decimal.NewFromInt(10))
//	file, err := studio.Export(invoicekit.FormatPDF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(file.Name, file.Data, 0o644)
package invoicekit

import "github.com/rezonia/invoice-studio/internal/model"

// Re-export core types for public API
type (
	InvoiceData     = model.InvoiceData
	BrandingOptions = model.BrandingOptions
	LineItem        = model.LineItem
	Party           = model.Party
	Currency        = model.Currency
	DiscountKind    = model.DiscountKind
)

// Re-export discount kinds
const (
	DiscountPercentage = model.DiscountPercentage
	DiscountFlat       = model.DiscountFlat
)

// Re-export error types
type (
	ValidationError = model.ValidationError
	ExportError     = model.ExportError
)

// Re-export sentinel errors
var (
	ErrLastItem       = model.ErrLastItem
	ErrItemNotFound   = model.ErrItemNotFound
	ErrDuplicateEntry = model.ErrDuplicateEntry
	ErrEmptyEntry     = model.ErrEmptyEntry
	ErrExportBusy     = model.ErrExportBusy
)

// Currencies is the supported currency catalog.
var Currencies = model.Currencies

// CurrencySymbol resolves a currency code to its display symbol.
func CurrencySymbol(code string) string {
	return model.CurrencySymbol(code)
}

// DefaultInvoice returns a new invoice document with sensible defaults.
func DefaultInvoice() *InvoiceData {
	return model.DefaultInvoice()
}

// DefaultBranding returns the default branding document.
func DefaultBranding() *BrandingOptions {
	return model.DefaultBranding()
}
