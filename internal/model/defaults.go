package model

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rezonia/invoice-studio/internal/money"
)

const dateLayout = "2006-01-02"

// NewItemID mints a unique line item identifier. IDs are never reused
// within a session.
func NewItemID() string {
	return ulid.Make().String()
}

// NewInvoiceNumber mints an invoice number of the form INV-2025-0131-4821.
func NewInvoiceNumber() string {
	now := time.Now()
	return fmt.Sprintf("INV-%d-%02d%02d-%d",
		now.Year(), int(now.Month()), now.Day(), 1000+rand.Intn(9000))
}

// NewLineItem returns a blank line item with a fresh identifier.
func NewLineItem() LineItem {
	return LineItem{
		ID:       NewItemID(),
		Quantity: money.FromInt(1),
	}
}

// DefaultInvoice returns a new invoice document with one blank item,
// today's issue date and a due date 30 days out.
func DefaultInvoice() *InvoiceData {
	now := time.Now()
	return &InvoiceData{
		InvoiceNumber: NewInvoiceNumber(),
		Date:          now.Format(dateLayout),
		DueDate:       now.AddDate(0, 0, 30).Format(dateLayout),
		Currency:      "USD",

		FooterText: "Thank you for your business!",
		ShowFooter: true,

		Sender: Party{
			Name:    "Your Company Name",
			Address: "Your Address\nCity, State, ZIP\nCountry",
			Email:   "your.email@example.com",
			Phone:   "+1 (123) 456-7890",
		},

		Items: []LineItem{NewLineItem()},

		Terms: "Payment due within 30 days",

		DiscountType:     DiscountPercentage,
		WatermarkOpacity: 0.3,
	}
}

// DefaultBranding returns the default display parameters.
func DefaultBranding() *BrandingOptions {
	return &BrandingOptions{
		LogoWidth:      150,
		PrimaryColor:   "#4ade80",
		SecondaryColor: "#16a34a",
		FontFamily:     "Inter, sans-serif",
		HeaderFontSize: 16,
		BodyFontSize:   14,
		ItemFontSize:   14,
		FooterFontSize: 12,
	}
}
