// Package loader reads raw product records from the supported sources:
// a flat products.json array, a hierarchical category JSON export, a
// directory of per-product JSON files, or an XLSX workbook.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"brochure/internal/models"
)

// Loader errors.
var (
	ErrInvalidShape  = errors.New("input is not a product array or product object")
	ErrEmptySource   = errors.New("source contains no product records")
	ErrInvalidSource = errors.New("source path is not a valid file or directory")
)

// LoadProducts reads raw product records from src, detecting the source kind
// from the path: a directory of JSON files, an XLSX workbook, a hierarchical
// category export, or a flat JSON array. A structurally invalid source is the
// single fatal condition; row-level garbage is left for the pipeline to
// degrade gracefully.
func LoadProducts(src string) ([]models.RawProduct, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source %s: %w", src, err)
	}

	if info.IsDir() {
		return LoadDirectory(src)
	}

	if strings.EqualFold(filepath.Ext(src), ".xlsx") {
		return LoadWorkbook(src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", src, err)
	}

	if isHierarchical(data) {
		return parseHierarchical(data, nil)
	}

	return parseFlat(data)
}

// parseFlat accepts a JSON array of product objects or a single object.
func parseFlat(data []byte) ([]models.RawProduct, error) {
	var records []models.RawProduct
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var single models.RawProduct
	if err := json.Unmarshal(data, &single); err == nil {
		return []models.RawProduct{single}, nil
	}

	return nil, ErrInvalidShape
}

// LoadDirectory reads every *.json file in dir as one product record.
// Unreadable files are skipped; file name order keeps the build
// deterministic.
func LoadDirectory(dir string) ([]models.RawProduct, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	sort.Strings(paths)

	var records []models.RawProduct

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var record models.RawProduct
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}

		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, dir)
	}

	return records, nil
}

// LoadLayoutRules reads a layout_rules.json file. Callers are expected to
// demote a parse failure to a data-quality warning and continue without
// rules rather than failing the build.
func LoadLayoutRules(path string) (*models.LayoutRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var rules models.LayoutRules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	return &rules, nil
}
