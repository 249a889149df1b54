package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/export"
	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/money"
	"github.com/rezonia/invoice-studio/internal/totals"
)

var checkCmd = &cobra.Command{
	Use:   "check [invoice.json]",
	Short: "Check invoice invariants",
	Long: `Check an invoice document against the invariants the editor maintains:
the totals chain, the minimum item count, per-item amounts and the
watermark opacity range.

Examples:
  invoice-studio check invoice.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open invoice document: %w", err)
	}
	defer f.Close()

	inv, _, err := export.ReadJSON(f)
	if err != nil {
		return err
	}

	errs, warnings := checkInvoice(inv)

	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}
	for _, e := range errs {
		fmt.Printf("error: %s\n", e)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invoice failed %d check(s)", len(errs))
	}
	fmt.Println("Invoice OK")
	return nil
}

func checkInvoice(inv *model.InvoiceData) (errs, warnings []string) {
	if inv.InvoiceNumber == "" {
		errs = append(errs, "missing invoice number")
	}
	if inv.Date == "" {
		warnings = append(warnings, "missing issue date")
	}
	if len(inv.Items) == 0 {
		errs = append(errs, "invoice has no line items")
	}
	if !inv.DiscountType.Valid() {
		errs = append(errs, fmt.Sprintf("unknown discount kind %q", inv.DiscountType))
	}
	if inv.Watermark != "" && (inv.WatermarkOpacity < 0.1 || inv.WatermarkOpacity > 0.5) {
		warnings = append(warnings, fmt.Sprintf("watermark opacity %.2f outside 0.1-0.5", inv.WatermarkOpacity))
	}

	for i, it := range inv.Items {
		if !money.IsNonNegative(it.Quantity) || !money.IsNonNegative(it.UnitPrice) {
			errs = append(errs, fmt.Sprintf("item %d has negative quantity or unit price", i+1))
		}
		expected := totals.Amount(it.Quantity, it.UnitPrice)
		if !it.Amount.Equal(expected) {
			warnings = append(warnings, fmt.Sprintf("item %d amount %s differs from quantity x unit price (%s)", i+1, it.Amount, expected))
		}
	}

	b := totals.Compute(inv.Items, inv.DiscountType, inv.DiscountValue, inv.TaxRate, inv.AdditionalCharges)
	if !inv.Subtotal.Equal(b.Subtotal) {
		warnings = append(warnings, fmt.Sprintf("subtotal %s differs from recomputed %s", inv.Subtotal, b.Subtotal))
	}
	if !inv.Total.Equal(b.Total) {
		warnings = append(warnings, fmt.Sprintf("total %s differs from recomputed %s", inv.Total, b.Total))
	}
	if inv.Subtotal.Sub(inv.DiscountAmount).IsNegative() {
		warnings = append(warnings, "flat discount exceeds subtotal; tax base is negative")
	}

	return errs, warnings
}
