package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/money"
	"github.com/rezonia/invoice-studio/internal/totals"
)

var (
	templateQuantity  string
	templateUnitPrice string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage saved line item templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved line item templates",
	RunE:  runTemplatesList,
}

var templatesAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Save a line item template",
	Long: `Save a line item template for reuse. Templates are keyed by
description; saving a duplicate description is an error.

Examples:
  invoice-studio templates add "Consulting" --quantity 1 --unit-price 150`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplatesAdd,
}

func init() {
	templatesAddCmd.Flags().StringVar(&templateQuantity, "quantity", "1", "Template quantity")
	templatesAddCmd.Flags().StringVar(&templateUnitPrice, "unit-price", "0", "Template unit price")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesAddCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg, cleanup, err := openRegistry(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	items := reg.ItemTemplates()
	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Println("No saved item templates")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DESCRIPTION\tQUANTITY\tUNIT PRICE")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", it.Description, it.Quantity, money.Format(it.UnitPrice))
	}
	return w.Flush()
}

func runTemplatesAdd(cmd *cobra.Command, args []string) error {
	quantity, err := money.FromString(templateQuantity)
	if err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}
	unitPrice, err := money.FromString(templateUnitPrice)
	if err != nil {
		return fmt.Errorf("invalid unit price: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg, cleanup, err := openRegistry(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	item := model.LineItem{
		Description: args[0],
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
	item.Amount = totals.Amount(item.Quantity, item.UnitPrice)

	if err := reg.SaveItemTemplate(item); err != nil {
		return err
	}
	fmt.Printf("Saved template: %s\n", args[0])
	return nil
}
