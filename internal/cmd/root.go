package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cuchilleria",
	Short: "Cuchillería - handcrafted knives storefront API",
	Long: `Cuchillería is the backend for a handcrafted knives storefront:
product catalog, token-based authentication and order placement with
server-side pricing over a MySQL store.

Run the API with the run command, or prepare a fresh database with setup.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
