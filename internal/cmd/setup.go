package cmd

import (
	"fmt"

	"github.com/matiasroldan/cuchilleria/internal/auth"
	"github.com/matiasroldan/cuchilleria/internal/config"
	"github.com/matiasroldan/cuchilleria/internal/database"
	"github.com/spf13/cobra"
)

var (
	dropFirst     bool
	schemaOnly    bool
	adminEmail    string
	adminPassword string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the database schema and seed data",
	Long: `Creates the storefront tables (users, products, orders, order_items)
and seeds an admin account plus a small sample catalog of handcrafted
knives, so the shop is browsable right after setup.`,
	RunE: setupDatabase,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().BoolVar(&dropFirst, "drop-first", false, "Drop existing tables before creating")
	setupCmd.Flags().BoolVar(&schemaOnly, "schema-only", false, "Create schema only, skip seed data")
	setupCmd.Flags().StringVar(&adminEmail, "admin-email", "admin@cuchilleria.local", "Email for the seeded admin account")
	setupCmd.Flags().StringVar(&adminPassword, "admin-password", "cambiame123", "Password for the seeded admin account")
}

func setupDatabase(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Setting up storefront database...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Drop tables if requested
	if dropFirst {
		fmt.Println("🗑️  Dropping existing tables...")
		if err := db.Drop(); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	// Create schema
	fmt.Println("📋 Creating schema...")
	if err := db.Setup(); err != nil {
		return fmt.Errorf("failed to set up schema: %w", err)
	}

	if !schemaOnly {
		fmt.Println("📊 Seeding data...")
		if err := seedData(db); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
	}

	fmt.Println("✅ Database setup complete!")
	return nil
}

func seedData(db *database.DB) error {
	fmt.Println("   👤 Creating admin account...")
	if err := seedAdmin(db); err != nil {
		return err
	}

	fmt.Println("   🔪 Creating sample catalog...")
	return seedProducts(db)
}

func seedAdmin(db *database.DB) error {
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password, role)
		VALUES ('admin', ?, ?, 'admin')
		ON DUPLICATE KEY UPDATE email = email
	`, adminEmail, hash)
	return err
}

func seedProducts(db *database.DB) error {
	// Re-running setup must not duplicate the sample catalog.
	var count int64
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("      catalog already seeded, skipping")
		return nil
	}

	products := []struct {
		title, description, category, material, ptype string
		price                                         string
	}{
		{"Cuchillo de chef damasco", "Hoja de 20 cm forjada a mano en acero damasco de 67 capas, mango de nogal estabilizado", "cocina", "acero damasco", "chef", "189.90"},
		{"Santoku clásico", "Santoku de 18 cm en acero inoxidable VG-10, equilibrio pensado para corte en vaivén", "cocina", "acero inoxidable", "santoku", "120.00"},
		{"Puntilla de carbono", "Puntilla de 9 cm en acero al carbono 1095 con pátina forzada, mango de olivo", "cocina", "acero al carbono", "puntilla", "54.50"},
		{"Cuchillo de caza Sierra", "Hoja fija de 12 cm con filo plano y funda de cuero cosida a mano", "caza", "acero inoxidable", "hoja fija", "98.00"},
		{"Navaja plegable Roble", "Navaja de bolsillo con bloqueo liner lock y cachas de roble envejecido", "navajas", "acero inoxidable", "plegable", "67.25"},
		{"Deshuesador flexible", "Deshuesador de 15 cm con hoja semiflexible para carnicería fina", "cocina", "acero inoxidable", "deshuesador", "76.40"},
		{"Machete de campo", "Machete de 35 cm en acero al carbono con recubrimiento antioxidante", "campo", "acero al carbono", "machete", "110.00"},
		{"Cuchillo jamonero", "Hoja larga y estrecha de 28 cm para corte de jamón en lonchas finas", "cocina", "acero inoxidable", "jamonero", "84.90"},
	}

	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (title, description, price, image1, category, material, type)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.title, p.description, p.price, "/uploads/placeholder.jpg", p.category, p.material, p.ptype)
		if err != nil {
			return err
		}
	}

	return nil
}
