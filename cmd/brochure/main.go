// Package main provides the brochure command that turns raw product data
// into a static HTML/CSS catalogue, optionally exported as PDF.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"brochure/internal/catalog"
	"brochure/internal/config"
	"brochure/internal/loader"
	"brochure/internal/logger"
	"brochure/internal/models"
	"brochure/internal/render"
	"brochure/internal/report"
	"brochure/pkg/manifest"
)

func main() {
	src := flag.String("src", "", "Product data source: JSON file, directory of JSON files, or .xlsx workbook")
	out := flag.String("out", "dist", "Output directory for the rendered brochure")
	include := flag.String("include", "", "Comma-separated model numbers to include (default: all)")
	categories := flag.String("categories", "", "Category order: first_seen or alphabetical")
	rulesPath := flag.String("rules", "", "Layout rules JSON file for hero selection")
	theme := flag.String("theme", "", "Stylesheet theme override")
	configPath := flag.String("config", "", "YAML config file")
	reportPath := flag.String("report", "", "Write the build report to this file")
	pdf := flag.Bool("pdf", false, "Also export the brochure as PDF")
	pdfOnly := flag.Bool("pdf-only", false, "Export only the PDF, without HTML artifacts")

	flag.Parse()

	// Secrets come from the environment; a .env file is optional.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if *theme != "" {
		cfg.Build.Theme = *theme
	}

	if *categories != "" {
		cfg.Build.CategoryOrder = *categories
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	if *src == "" {
		log.Error("please provide a data source with -src")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Info("🚀 starting brochure build", "src", *src, "out", *out, "theme", cfg.Build.Theme)

	// Phase 1: Load
	loadStart := time.Now()

	raw, err := loader.LoadProducts(*src)
	if err != nil {
		log.Error("❌ load failed", "error", err)
		os.Exit(1)
	}

	warnings := catalog.NewWarnings()

	var rules *models.LayoutRules

	if *rulesPath != "" {
		rules, err = loader.LoadLayoutRules(*rulesPath)
		if err != nil {
			warnings.Add(catalog.SeverityWarning, catalog.CodeInvalidRules,
				fmt.Sprintf("layout rules unusable: %v", err),
				map[string]string{"path": *rulesPath})
			rules = nil
		}
	}

	log.Info("✅ loaded products", "count", len(raw), "took", time.Since(loadStart))

	// Phase 2: Normalize
	buildStart := time.Now()

	opts := catalog.Options{
		CategoryOrder: catalog.CategoryOrder(cfg.Build.CategoryOrder),
	}

	if *include != "" {
		opts.IncludeModels = splitList(*include)
	}

	groups := catalog.Build(raw, rules, opts, warnings)

	total := 0
	for _, group := range groups {
		total += len(group.Products)
	}

	log.Info("✅ built catalogue", "products", total, "categories", len(groups),
		"warnings", warnings.Len(), "took", time.Since(buildStart))

	if cfg.Logging.ShowProgress {
		for _, warning := range warnings.All() {
			log.Warn(warning.Message, "code", warning.Code)
		}
	}

	// Phase 3: Render
	renderStart := time.Now()

	renderer, err := render.New(cfg)
	if err != nil {
		log.Error("❌ renderer setup failed", "error", err)
		os.Exit(1)
	}

	htmlDir := *out
	if *pdfOnly {
		htmlDir, err = os.MkdirTemp("", "brochure-*")
		if err != nil {
			log.Error("❌ temp dir failed", "error", err)
			os.Exit(1)
		}
		defer os.RemoveAll(htmlDir)
	}

	// Copy local images first so the page can reference the copied paths.
	copied, err := render.CopyLocalAssets(groups, filepath.Dir(*src), htmlDir)
	if err != nil {
		log.Warn("⚠️ asset copy incomplete", "error", err)
	}

	render.RewriteImageRefs(groups, copied)

	htmlPath, err := renderer.Render(groups, htmlDir)
	if err != nil {
		log.Error("❌ render failed", "error", err)
		os.Exit(1)
	}

	log.Info("✅ rendered brochure", "path", htmlPath, "took", time.Since(renderStart))

	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, []byte(report.Build(groups, warnings)), 0644); err != nil {
			log.Warn("⚠️ report not written", "error", err)
		}
	}

	// Phase 4: Export
	if *pdf || *pdfOnly {
		pdfStart := time.Now()

		if err := os.MkdirAll(*out, 0755); err != nil {
			log.Error("❌ output dir failed", "error", err)
			os.Exit(1)
		}

		pdfPath := filepath.Join(*out, "catalog.pdf")

		if err := render.ExportPDF(context.Background(), htmlPath, pdfPath); err != nil {
			log.Error("❌ PDF export failed", "error", err)
			os.Exit(1)
		}

		log.Info("✅ exported PDF", "path", pdfPath, "took", time.Since(pdfStart))
	}

	if cfg.Build.WriteManifest && !*pdfOnly {
		if _, err := manifest.Write(*out); err != nil {
			log.Warn("⚠️ manifest not written", "error", err)
		}
	}

	log.Info("🏁 done")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

func splitList(value string) []string {
	var items []string

	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}
