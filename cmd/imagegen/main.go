// Package main provides the imagegen command: it renders AI placeholder
// imagery for products that ship without a photo.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"brochure/internal/catalog"
	"brochure/internal/config"
	"brochure/internal/imagegen"
	"brochure/internal/loader"
	"brochure/internal/logger"
	"brochure/internal/models"
)

func main() {
	src := flag.String("src", "", "Product data source: JSON file, directory of JSON files, or .xlsx workbook")
	out := flag.String("out", "generated-images", "Directory for generated images")
	modelName := flag.String("model", "gemini-2.0-flash-exp", "Gemini model to use")
	configPath := flag.String("config", "", "YAML config file")
	promptsOnly := flag.Bool("prompts-only", false, "Print the prompts without calling the API")

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

	log := logger.New(cfg.Logging.Level)

	if *src == "" {
		log.Error("please provide a data source with -src")
		flag.PrintDefaults()
		os.Exit(1)
	}

	raw, err := loader.LoadProducts(*src)
	if err != nil {
		log.Error("❌ load failed", "error", err)
		os.Exit(1)
	}

	warnings := catalog.NewWarnings()
	groups := catalog.Build(raw, nil, catalog.Options{}, warnings)

	var products []*models.Product

	for _, group := range groups {
		products = append(products, group.Products...)
	}

	if *promptsOnly {
		for _, product := range products {
			if product.Image != "" {
				continue
			}

			fmt.Printf("%s: %s\n", product.Model, imagegen.BuildPrompt(product))
		}

		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Error("GEMINI_API_KEY is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := imagegen.NewGenerator(ctx, apiKey, *modelName, *out, &cfg.Retry, log)
	if err != nil {
		log.Error("❌ generator setup failed", "error", err)
		os.Exit(1)
	}
	defer generator.Close()

	log.Info("🚀 generating product images", "products", len(products), "out", *out)

	results, err := generator.GenerateAll(ctx, products)
	if err != nil {
		log.Error("❌ generation aborted", "error", err, "generated", len(results))
		os.Exit(1)
	}

	log.Info("🏁 generation complete", "generated", len(results))
}
