// Package main provides the s3migrate command: it moves Drive-hosted
// product images into S3 and writes the ID-to-URL mapping backup.
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
	"brochure/internal/fetch"
	"brochure/internal/loader"
	"brochure/internal/logger"
	"brochure/internal/models"
	"brochure/internal/storage"
	"brochure/pkg/driveurl"
)

func main() {
	src := flag.String("src", "", "Product data source: JSON file, directory of JSON files, or .xlsx workbook")
	configPath := flag.String("config", "", "YAML config file")
	bucket := flag.String("bucket", "", "Target S3 bucket (overrides config)")
	mappingOut := flag.String("mapping-out", "migration_mapping.json", "Where to write the ID-to-URL mapping backup")
	dryRun := flag.Bool("dry-run", false, "List the links that would migrate without uploading")

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

	if *bucket != "" {
		cfg.S3.Bucket = *bucket
	}

	log := logger.New(cfg.Logging.Level)

	if *src == "" {
		log.Error("please provide a data source with -src")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if cfg.S3.Bucket == "" && !*dryRun {
		log.Error("no target bucket configured; set s3.bucket or pass -bucket")
		os.Exit(1)
	}

	raw, err := loader.LoadProducts(*src)
	if err != nil {
		log.Error("❌ load failed", "error", err)
		os.Exit(1)
	}

	links := collectDriveLinks(raw)

	log.Info("🚀 starting image migration", "products", len(raw), "drive_links", len(links))

	if *dryRun {
		for _, link := range links {
			fmt.Println(link)
		}

		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewS3Store(ctx, cfg.S3)
	if err != nil {
		log.Error("❌ S3 setup failed", "error", err)
		os.Exit(1)
	}

	downloader := fetch.NewDownloader(&cfg.Retry)
	migrator := storage.NewMigrator(store, downloader, log, cfg.S3.KeyPrefix, cfg.S3.MaxWidth)

	mapping, err := migrator.Migrate(ctx, links)
	if err != nil {
		log.Error("❌ migration aborted", "error", err, "migrated", len(mapping))
		os.Exit(1)
	}

	if err := storage.SaveMapping(mapping, *mappingOut); err != nil {
		log.Error("❌ mapping backup failed", "error", err)
		os.Exit(1)
	}

	log.Info("🏁 migration complete", "migrated", len(mapping), "mapping", *mappingOut)
}

// collectDriveLinks pulls every Drive URL out of the raw records: the
// drive_link field plus any image reference.
func collectDriveLinks(raw []models.RawProduct) []string {
	seen := make(map[string]bool)

	var links []string

	add := func(link string) {
		if link == "" || !driveurl.IsDriveLink(link) || seen[link] {
			return
		}

		seen[link] = true

		links = append(links, link)
	}

	for _, record := range raw {
		add(record.String("drive_link"))
		add(record.String("image"))

		if values, ok := record["images"].([]any); ok {
			for _, value := range values {
				if link, ok := value.(string); ok {
					add(link)
				}
			}
		}
	}

	return links
}
