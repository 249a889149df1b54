package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/model"
)

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List supported currencies",
	Long: `List the currency catalog used for invoice formatting.

Examples:
  invoice-studio currencies
  invoice-studio currencies -f json`,
	RunE: runCurrencies,
}

func init() {
	rootCmd.AddCommand(currenciesCmd)
}

func runCurrencies(cmd *cobra.Command, args []string) error {
	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(model.Currencies)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tSYMBOL\tNAME")
	for _, c := range model.Currencies {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Code, c.Symbol, c.Name)
	}
	return w.Flush()
}
