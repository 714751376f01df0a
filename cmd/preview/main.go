package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tabular/adapters/ingest"
	"tabular/internal/config"
	"tabular/ports"
	"tabular/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var source ports.DatasetSource
	switch {
	case cfg.Data.DatabaseURL != "":
		db, err := sqlx.Connect("postgres", cfg.Data.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		source = ingest.NewSQLSource(db, cfg.Data.Query)
	case cfg.Data.CSVFile != "":
		source = ingest.NewCSVSource(cfg.Data.CSVFile)
	}

	app := ui.NewApp(ui.Config{Source: source})
	log.Printf("Preview server listening on :%s", cfg.Server.Port)
	if err := app.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
