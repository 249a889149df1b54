package model

import (
	"github.com/shopspring/decimal"
)

// DiscountKind selects how the invoice discount value is interpreted.
type DiscountKind string

const (
	// DiscountPercentage applies the discount value as a percentage of the subtotal.
	DiscountPercentage DiscountKind = "percentage"
	// DiscountFlat subtracts the discount value directly.
	DiscountFlat DiscountKind = "flat"
)

// Valid reports whether the kind is one of the known values.
func (k DiscountKind) Valid() bool {
	return k == DiscountPercentage || k == DiscountFlat
}

// LineItem is one billable row. Amount is always derived from
// Quantity and UnitPrice and is never edited independently.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// Party holds sender or client contact details.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	TaxID   string `json:"taxId"`
}

// InvoiceData is the canonical invoice document. The derived fields
// (Subtotal, DiscountAmount, TaxAmount, Total and every item Amount)
// are recomputed after each mutation; dates are stored as YYYY-MM-DD.
type InvoiceData struct {
	InvoiceNumber string `json:"invoiceNumber"`
	Date          string `json:"date"`
	DueDate       string `json:"dueDate"`
	Currency      string `json:"currency"`

	// Header and footer banners
	HeaderText string `json:"headerText"`
	FooterText string `json:"footerText"`
	ShowHeader bool   `json:"showHeader"`
	ShowFooter bool   `json:"showFooter"`

	Sender Party `json:"sender"`
	Client Party `json:"client"`

	// Ordered line items; at least one item always exists.
	Items []LineItem `json:"items"`

	Notes       string `json:"notes"`
	Terms       string `json:"terms"`
	BankDetails string `json:"bankDetails"`

	// Calculations
	Subtotal          decimal.Decimal `json:"subtotal"`
	DiscountType      DiscountKind    `json:"discountType"`
	DiscountValue     decimal.Decimal `json:"discountValue"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
	TaxRate           decimal.Decimal `json:"taxRate"`
	TaxAmount         decimal.Decimal `json:"taxAmount"`
	AdditionalCharges decimal.Decimal `json:"additionalCharges"`
	Total             decimal.Decimal `json:"total"`

	// Watermark label and opacity (0.1-0.5)
	Watermark        string  `json:"watermark"`
	WatermarkOpacity float64 `json:"watermarkOpacity"`
}

// Clone returns a deep copy of the invoice.
func (inv *InvoiceData) Clone() *InvoiceData {
	cp := *inv
	cp.Items = make([]LineItem, len(inv.Items))
	copy(cp.Items, inv.Items)
	return &cp
}

// ItemIndex returns the position of the item with the given ID, or -1.
func (inv *InvoiceData) ItemIndex(id string) int {
	for i, it := range inv.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// BrandingOptions are independent display parameters for the rendered
// invoice. Logo is an embedded data payload (data URL), empty when unset.
type BrandingOptions struct {
	Logo           string `json:"logo"`
	LogoWidth      int    `json:"logoWidth"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
	HeaderFontSize int    `json:"headerFontSize"`
	BodyFontSize   int    `json:"bodyFontSize"`
	ItemFontSize   int    `json:"itemFontSize"`
	FooterFontSize int    `json:"footerFontSize"`
}

// Clone returns a copy of the branding options.
func (b *BrandingOptions) Clone() *BrandingOptions {
	cp := *b
	return &cp
}
