// Package totals derives subtotal, discount, tax and total from line
// items and the invoice's scalar inputs. Compute is pure: output depends
// only on its inputs, with no rounding beyond exact decimal arithmetic.
package totals

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/money"
)

// Breakdown holds the derived totals chain.
type Breakdown struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

type options struct {
	clampFlatDiscount bool
}

// Option configures Compute.
type Option func(*options)

// WithFlatDiscountClamp caps a flat discount at the subtotal so the
// post-discount base never goes negative. Off by default to match the
// historical behavior.
func WithFlatDiscountClamp() Option {
	return func(o *options) { o.clampFlatDiscount = true }
}

// Compute recomputes the full totals chain:
//
//	subtotal = sum of item amounts
//	discount = subtotal * value/100 (percentage) or value (flat)
//	tax      = (subtotal - discount) * rate/100
//	total    = subtotal - discount + tax + additionalCharges
//
// The recompute is always full; there is no incremental path.
func Compute(items []model.LineItem, kind model.DiscountKind, discountValue, taxRate, additionalCharges decimal.Decimal, opts ...Option) Breakdown {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	subtotal := money.Sum(lo.Map(items, func(it model.LineItem, _ int) decimal.Decimal {
		return it.Amount
	}))

	var discount decimal.Decimal
	if kind == model.DiscountPercentage {
		discount = money.Percentage(subtotal, discountValue)
	} else {
		discount = discountValue
		if o.clampFlatDiscount && discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	}

	tax := money.Percentage(subtotal.Sub(discount), taxRate)
	total := subtotal.Sub(discount).Add(tax).Add(additionalCharges)

	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          total,
	}
}

// Amount derives a line item amount from quantity and unit price.
func Amount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Apply recomputes every item amount and the totals chain in place.
func Apply(inv *model.InvoiceData, opts ...Option) {
	for i := range inv.Items {
		inv.Items[i].Amount = Amount(inv.Items[i].Quantity, inv.Items[i].UnitPrice)
	}
	b := Compute(inv.Items, inv.DiscountType, inv.DiscountValue, inv.TaxRate, inv.AdditionalCharges, opts...)
	inv.Subtotal = b.Subtotal
	inv.DiscountAmount = b.DiscountAmount
	inv.TaxAmount = b.TaxAmount
	inv.Total = b.Total
}
