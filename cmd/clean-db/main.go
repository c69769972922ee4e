// Command-line tool to clean the database by dropping all tables in the public schema.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lib/pq"

	"github.com/Mitrevichin/Job-Tracking-App/internal/config"
	"github.com/Mitrevichin/Job-Tracking-App/internal/database"
)

func main() {
	fmt.Println("⚠️ WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	if strings.TrimSpace(strings.ToLower(input)) != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("clean-db only supports the postgres driver, got %q", cfg.Database.Driver)
	}

	db, err := database.NewDBInstance(database.NewDBConfig(cfg.Database), nil)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer db.Close()

	var tables []string
	if err := db.DB.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		log.Fatalf("failed to list tables: %v", err)
	}

	for _, table := range tables {
		if err := db.Exec("DROP TABLE IF EXISTS " + pq.QuoteIdentifier(table) + " CASCADE").Error; err != nil {
			log.Fatalf("failed to drop %s: %v", table, err)
		}
		fmt.Printf("dropped %s\n", table)
	}

	fmt.Println("✅ All tables dropped successfully.")
}
