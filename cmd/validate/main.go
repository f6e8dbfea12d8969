// Package main provides the validate command: it runs the catalogue
// pipeline without rendering and prints a markdown data-quality report.
package main

import (
	"flag"
	"fmt"
	"os"

	"brochure/internal/catalog"
	"brochure/internal/config"
	"brochure/internal/loader"
	"brochure/internal/logger"
	"brochure/internal/models"
	"brochure/internal/report"
)

func main() {
	src := flag.String("src", "", "Product data source: JSON file, directory of JSON files, or .xlsx workbook")
	rulesPath := flag.String("rules", "", "Layout rules JSON file for hero selection")
	strict := flag.Bool("strict", false, "Exit non-zero when any warning is emitted")

	flag.Parse()

	log := logger.New("warn")

	if *src == "" {
		log.Error("please provide a data source with -src")
		flag.PrintDefaults()
		os.Exit(1)
	}

	raw, err := loader.LoadProducts(*src)
	if err != nil {
		log.Error("load failed", "error", err)
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

	cfg := config.Default()
	opts := catalog.Options{CategoryOrder: catalog.CategoryOrder(cfg.Build.CategoryOrder)}

	groups := catalog.Build(raw, rules, opts, warnings)

	fmt.Print(report.Build(groups, warnings))

	if *strict && warnings.Len() > 0 {
		os.Exit(2)
	}
}
