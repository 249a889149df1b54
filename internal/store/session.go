// Package store owns the canonical invoice and branding documents for one
// editing session. Every mutation routes through the totals engine so the
// derived fields can never drift, and returns an immutable snapshot.
package store

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/totals"
)

// Session is the single-writer state store for one invoice editing
// session. Handlers may call it from concurrent goroutines; the mutex
// keeps the session itself single-writer.
type Session struct {
	mu       sync.Mutex
	invoice  *model.InvoiceData
	branding *model.BrandingOptions
	opts     []totals.Option
}

// NewSession starts a session with default invoice and branding documents.
func NewSession(opts ...totals.Option) *Session {
	return NewSessionFrom(model.DefaultInvoice(), model.DefaultBranding(), opts...)
}

// NewSessionFrom starts a session from existing documents, recomputing
// derived fields so invariants hold regardless of the input's totals.
func NewSessionFrom(inv *model.InvoiceData, branding *model.BrandingOptions, opts ...totals.Option) *Session {
	s := &Session{
		invoice:  inv.Clone(),
		branding: branding.Clone(),
		opts:     opts,
	}
	if len(s.invoice.Items) == 0 {
		s.invoice.Items = []model.LineItem{model.NewLineItem()}
	}
	if !s.invoice.DiscountType.Valid() {
		s.invoice.DiscountType = model.DiscountPercentage
	}
	totals.Apply(s.invoice, s.opts...)
	return s
}

// Invoice returns a snapshot of the current invoice document.
func (s *Session) Invoice() *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoice.Clone()
}

// Branding returns a snapshot of the current branding document.
func (s *Session) Branding() *model.BrandingOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.branding.Clone()
}

// Snapshot returns both documents at once.
func (s *Session) Snapshot() (*model.InvoiceData, *model.BrandingOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoice.Clone(), s.branding.Clone()
}

// AddItem appends a new line item, blank or stamped from a template.
// A template copy always gets a freshly minted identifier.
func (s *Session) AddItem(template *model.LineItem) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := model.NewLineItem()
	if template != nil {
		item.Description = template.Description
		item.Quantity = template.Quantity
		item.UnitPrice = template.UnitPrice
	}
	s.invoice.Items = append(s.invoice.Items, item)
	totals.Apply(s.invoice, s.opts...)
	return s.invoice.Clone()
}

// RemoveItem removes the item with the given identifier. Removing the
// last remaining item is refused with ErrLastItem.
func (s *Session) RemoveItem(id string) (*model.InvoiceData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.invoice.ItemIndex(id)
	if idx < 0 {
		return s.invoice.Clone(), model.ErrItemNotFound
	}
	if len(s.invoice.Items) == 1 {
		return s.invoice.Clone(), model.ErrLastItem
	}
	s.invoice.Items = append(s.invoice.Items[:idx], s.invoice.Items[idx+1:]...)
	totals.Apply(s.invoice, s.opts...)
	return s.invoice.Clone(), nil
}

// ItemPatch describes a partial line item update. Nil fields are left
// untouched; quantity or unit price changes recompute the amount.
type ItemPatch struct {
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
}

// UpdateItem applies a patch to one line item and recomputes totals.
func (s *Session) UpdateItem(id string, patch ItemPatch) (*model.InvoiceData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.invoice.ItemIndex(id)
	if idx < 0 {
		return s.invoice.Clone(), model.ErrItemNotFound
	}
	item := &s.invoice.Items[idx]
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		item.UnitPrice = *patch.UnitPrice
	}
	totals.Apply(s.invoice, s.opts...)
	return s.invoice.Clone(), nil
}

// SetDiscount updates the discount specification and recomputes the
// full totals chain from the current subtotal.
func (s *Session) SetDiscount(kind model.DiscountKind, value decimal.Decimal) (*model.InvoiceData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !kind.Valid() {
		return s.invoice.Clone(), model.NewValidationError("discountType", kind, "oneof=percentage flat", "unknown discount kind")
	}
	s.invoice.DiscountType = kind
	s.invoice.DiscountValue = value
	totals.Apply(s.invoice, s.opts...)
	return s.invoice.Clone(), nil
}

// SetTaxRate updates the tax percentage and recomputes totals.
func (s *Session) SetTaxRate(rate decimal.Decimal) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice.TaxRate = rate
	totals.Apply(s.invoice, s.opts...)
	return s.invoice.Clone()
}

// SetAdditionalCharges updates the flat additional charges and recomputes totals.
func (s *Session) SetAdditionalCharges(amount decimal.Decimal) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice.AdditionalCharges = amount
	totals.Apply(s.invoice, s.opts...)
	return s.invoice.Clone()
}

// SetWatermark updates the watermark label and opacity. Opacity is
// clamped into the supported 0.1-0.5 range.
func (s *Session) SetWatermark(label string, opacity float64) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if opacity < 0.1 {
		opacity = 0.1
	}
	if opacity > 0.5 {
		opacity = 0.5
	}
	s.invoice.Watermark = label
	s.invoice.WatermarkOpacity = opacity
	return s.invoice.Clone()
}

// SetHeader updates the header banner text and visibility.
func (s *Session) SetHeader(text string, show bool) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice.HeaderText = text
	s.invoice.ShowHeader = show
	return s.invoice.Clone()
}

// SetFooter updates the footer banner text and visibility.
func (s *Session) SetFooter(text string, show bool) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice.FooterText = text
	s.invoice.ShowFooter = show
	return s.invoice.Clone()
}

// SetSender replaces the sender profile.
func (s *Session) SetSender(p model.Party) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice.Sender = p
	return s.invoice.Clone()
}

// SetClient replaces the client profile.
func (s *Session) SetClient(p model.Party) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice.Client = p
	return s.invoice.Clone()
}

// SetIdentification updates invoice number, issue/due dates and currency code.
func (s *Session) SetIdentification(number, date, dueDate, currency string) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice.InvoiceNumber = number
	s.invoice.Date = date
	s.invoice.DueDate = dueDate
	s.invoice.Currency = currency
	return s.invoice.Clone()
}

// SetFreeText updates the notes, terms and bank details fields.
func (s *Session) SetFreeText(notes, terms, bankDetails string) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice.Notes = notes
	s.invoice.Terms = terms
	s.invoice.BankDetails = bankDetails
	return s.invoice.Clone()
}

// SetBranding replaces the branding document.
func (s *Session) SetBranding(b model.BrandingOptions) *model.BrandingOptions {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.branding = &b
	return s.branding.Clone()
}

// ReplaceInvoice swaps in a whole invoice document, recomputing derived
// fields and restoring the minimum-one-item invariant if needed.
func (s *Session) ReplaceInvoice(inv *model.InvoiceData) *model.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoice = inv.Clone()
	if len(s.invoice.Items) == 0 {
		s.invoice.Items = []model.LineItem{model.NewLineItem()}
	}
	if !s.invoice.DiscountType.Valid() {
		s.invoice.DiscountType = model.DiscountPercentage
	}
	totals.Apply(s.invoice, s.opts...)
	return s.invoice.Clone()
}
