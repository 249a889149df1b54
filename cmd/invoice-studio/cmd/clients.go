package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage saved client names",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved client names",
	RunE:  runClientsList,
}

var clientsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a client name",
	Long: `Save a client name for reuse. Names are de-duplicated; saving an
existing name is an error.

Examples:
  invoice-studio clients add "Acme Corp"`,
	Args: cobra.ExactArgs(1),
	RunE: runClientsAdd,
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	rootCmd.AddCommand(clientsCmd)
}

func runClientsList(cmd *cobra.Command, args []string) error {
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

	clients := reg.Clients()
	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(clients)
	}

	if len(clients) == 0 {
		fmt.Println("No saved clients")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME")
	for _, name := range clients {
		fmt.Fprintln(w, name)
	}
	return w.Flush()
}

func runClientsAdd(cmd *cobra.Command, args []string) error {
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

	if err := reg.SaveClient(args[0]); err != nil {
		return err
	}
	printVerbose("Saved client %q\n", args[0])
	fmt.Printf("Saved client: %s\n", args[0])
	return nil
}
