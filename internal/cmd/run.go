package cmd

import (
	"fmt"

	"github.com/matiasroldan/cuchilleria/internal/config"
	"github.com/matiasroldan/cuchilleria/internal/database"
	"github.com/matiasroldan/cuchilleria/internal/server"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the storefront API server",
	Long: `Start the storefront API server which provides:
- Public catalog browsing with category/material/type filters
- Registration, login and profile endpoints
- Order placement with server-side price snapshots
- Admin product and order management`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🔪 Cuchillería API Starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("🔌 Connecting to database...")
	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	fmt.Println("✅ Database connected successfully")

	fmt.Println("⚙️  Setting up server...")
	srv := server.NewServer(db, cfg)

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
