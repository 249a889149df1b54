package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/export"
	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/money"
	"github.com/rezonia/invoice-studio/internal/totals"
)

var totalsCmd = &cobra.Command{
	Use:   "totals [invoice.json]",
	Short: "Recompute and print the totals breakdown",
	Long: `Recompute the derived totals chain for an invoice document and print it.

The chain is always recomputed in full from the line items:
  subtotal -> discount -> tax -> additional charges -> total

Examples:
  invoice-studio totals invoice.json
  invoice-studio totals invoice.json -f json`,
	Args: cobra.ExactArgs(1),
	RunE: runTotals,
}

func init() {
	rootCmd.AddCommand(totalsCmd)
}

func runTotals(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open invoice document: %w", err)
	}
	defer f.Close()

	inv, _, err := export.ReadJSON(f)
	if err != nil {
		return err
	}

	for i := range inv.Items {
		inv.Items[i].Amount = totals.Amount(inv.Items[i].Quantity, inv.Items[i].UnitPrice)
	}
	b := totals.Compute(inv.Items, inv.DiscountType, inv.DiscountValue, inv.TaxRate, inv.AdditionalCharges)

	switch outputFormat {
	case "json":
		out := map[string]string{
			"subtotal":       b.Subtotal.String(),
			"discountAmount": b.DiscountAmount.String(),
			"taxAmount":      b.TaxAmount.String(),
			"total":          b.Total.String(),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case "table":
		symbol := model.CurrencySymbol(inv.Currency)
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Subtotal\t%s%s\n", symbol, money.Format(b.Subtotal))
		fmt.Fprintf(tw, "Discount\t%s%s\n", symbol, money.Format(b.DiscountAmount))
		fmt.Fprintf(tw, "Tax\t%s%s\n", symbol, money.Format(b.TaxAmount))
		fmt.Fprintf(tw, "Additional Charges\t%s%s\n", symbol, money.Format(inv.AdditionalCharges))
		fmt.Fprintf(tw, "Total\t%s%s\n", symbol, money.Format(b.Total))
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}
