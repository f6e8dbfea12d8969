// Package main provides the sheetsync command: it rewrites Drive image
// links in the product spreadsheet with their migrated S3 URLs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"brochure/internal/config"
	"brochure/internal/logger"
	"brochure/internal/sheets"
	"brochure/internal/storage"
)

func main() {
	mappingPath := flag.String("mapping", "migration_mapping.json", "Migration mapping backup produced by s3migrate")
	configPath := flag.String("config", "", "YAML config file")
	spreadsheetID := flag.String("spreadsheet", "", "Spreadsheet ID (overrides config)")
	dryRun := flag.Bool("dry-run", false, "Print planned updates without applying them")

	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Default()

	if *configPath != "" {
		var err error

		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
	}

	if *spreadsheetID != "" {
		cfg.Sheets.SpreadsheetID = *spreadsheetID
	}

	log := logger.New(cfg.Logging.Level)

	if cfg.Sheets.SpreadsheetID == "" {
		log.Error("no spreadsheet configured; set sheets.spreadsheet_id or pass -spreadsheet")
		os.Exit(1)
	}

	mapping, err := storage.LoadMapping(*mappingPath)
	if err != nil {
		log.Error("❌ mapping load failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := sheets.NewClient(ctx, os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), os.Getenv("GOOGLE_API_KEY"))
	if err != nil {
		log.Error("❌ sheets client failed", "error", err)
		os.Exit(1)
	}

	rows, err := client.GetSheetData(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName)
	if err != nil {
		log.Error("❌ sheet read failed", "error", err)
		os.Exit(1)
	}

	if len(rows) == 0 {
		log.Error("spreadsheet is empty")
		os.Exit(1)
	}

	driveCol := sheets.FindDriveColumn(rows[0], cfg.Sheets.DriveColumn)
	if driveCol < 0 {
		log.Error("drive link column not found", "wanted", cfg.Sheets.DriveColumn, "headers", rows[0])
		os.Exit(1)
	}

	updates := sheets.PlanUpdates(cfg.Sheets.SheetName, rows, driveCol, mapping)

	log.Info("🚀 sync planned", "rows", len(rows)-1, "updates", len(updates), "mapped_ids", len(mapping))

	if *dryRun {
		for _, update := range updates {
			fmt.Printf("%s -> %s\n", update.Range, update.Value)
		}

		return
	}

	if err := client.ApplyUpdates(ctx, cfg.Sheets.SpreadsheetID, updates); err != nil {
		log.Error("❌ batch update failed", "error", err)
		os.Exit(1)
	}

	log.Info("🏁 sync complete", "updated_cells", len(updates))
}
