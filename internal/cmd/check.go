package cmd

import (
	"fmt"

	"github.com/matiasroldan/cuchilleria/internal/config"
	"github.com/matiasroldan/cuchilleria/internal/database"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration and database connectivity",
	Long: `Loads the configuration, connects to the database and reports row
counts for the main tables. Useful to verify a deployment before
starting the server.`,
	RunE: checkSetup,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkSetup(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Checking configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fmt.Printf("   Server addr: %s\n", cfg.Server.Addr)
	fmt.Printf("   Token TTL:   %s\n", cfg.Auth.TokenTTL)

	fmt.Println("🔌 Connecting to database...")
	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	for _, table := range []string{"users", "products", "orders", "order_items"} {
		var count int64
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			fmt.Printf("   ⚠️  %s: %v (run `cuchilleria setup`?)\n", table, err)
			continue
		}
		fmt.Printf("   📦 %s: %d rows\n", table, count)
	}

	fmt.Println("✅ Everything looks good")
	return nil
}
