package server

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/store"
)

// AddItemRequest appends a line item, blank or stamped from a saved
// template looked up by description.
type AddItemRequest struct {
	TemplateDescription string `json:"templateDescription"`
}

// ItemPatchRequest is a partial line item update.
type ItemPatchRequest = store.ItemPatch

// DiscountRequest updates the discount specification.
type DiscountRequest struct {
	Type  model.DiscountKind `json:"type" binding:"required"`
	Value decimal.Decimal    `json:"value"`
}

// TaxRequest updates the tax rate percentage.
type TaxRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

// ChargesRequest updates the flat additional charges.
type ChargesRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// WatermarkRequest updates the watermark label and opacity.
type WatermarkRequest struct {
	Text    string  `json:"text"`
	Opacity float64 `json:"opacity"`
}

// BannerRequest updates a header or footer banner.
type BannerRequest struct {
	Text string `json:"text"`
	Show bool   `json:"show"`
}

// IdentificationRequest updates invoice number, dates and currency.
type IdentificationRequest struct {
	InvoiceNumber string `json:"invoiceNumber"`
	Date          string `json:"date"`
	DueDate       string `json:"dueDate"`
	Currency      string `json:"currency"`
}

// FreeTextRequest updates the notes, terms and bank details fields.
type FreeTextRequest struct {
	Notes       string `json:"notes"`
	Terms       string `json:"terms"`
	BankDetails string `json:"bankDetails"`
}

// SaveClientRequest appends a client name to the registry.
type SaveClientRequest struct {
	Name string `json:"name" binding:"required"`
}

// SaveTemplateRequest appends a line item template to the registry.
type SaveTemplateRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}
