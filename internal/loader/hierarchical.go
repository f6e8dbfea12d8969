package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"brochure/internal/models"
	"brochure/pkg/driveurl"
)

// hierarchicalDocument mirrors the category-keyed export produced by the
// spreadsheet sync tooling: {"metadata": {...}, "categories": {name:
// {"products": [...]}}}.
type hierarchicalDocument struct {
	Metadata   map[string]any                `json:"metadata"`
	Categories map[string]hierarchicalBucket `json:"categories"`
}

type hierarchicalBucket struct {
	Products []map[string]any `json:"products"`
}

// LoadHierarchical reads a hierarchical category export, optionally
// restricted to the named categories.
func LoadHierarchical(path string, includeCategories []string) ([]models.RawProduct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", path, err)
	}

	return parseHierarchical(data, includeCategories)
}

func isHierarchical(data []byte) bool {
	var probe struct {
		Metadata   json.RawMessage `json:"metadata"`
		Categories json.RawMessage `json:"categories"`
	}

	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}

	return probe.Metadata != nil && probe.Categories != nil
}

func parseHierarchical(data []byte, includeCategories []string) ([]models.RawProduct, error) {
	var doc hierarchicalDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	include := make(map[string]bool, len(includeCategories))
	for _, category := range includeCategories {
		include[strings.TrimSpace(category)] = true
	}

	// JSON object order is lost in a Go map; sorted category names keep the
	// flattened record order deterministic.
	names := make([]string, 0, len(doc.Categories))
	for name := range doc.Categories {
		names = append(names, name)
	}

	sort.Strings(names)

	var records []models.RawProduct

	for _, name := range names {
		if len(include) > 0 && !include[name] {
			continue
		}

		for _, entry := range doc.Categories[name].Products {
			records = append(records, convertHierarchical(name, entry))
		}
	}

	return records, nil
}

// convertHierarchical maps the hierarchical field names onto the canonical
// raw record shape the pipeline consumes.
func convertHierarchical(category string, entry map[string]any) models.RawProduct {
	record := models.RawProduct{"category": category}

	for _, key := range []string{"id", "name", "supplier", "status", "price", "currency"} {
		if value, ok := entry[key]; ok {
			record[key] = value
		}
	}

	if override, ok := entry["category"].(string); ok && strings.TrimSpace(override) != "" {
		record["category"] = override
	}

	if model, ok := entry["model_number"]; ok {
		record["model"] = model
	}

	var images []any

	if image, ok := entry["image"].(string); ok && strings.TrimSpace(image) != "" {
		images = append(images, image)
	}

	if link, ok := entry["drive_link"].(string); ok && strings.TrimSpace(link) != "" {
		images = append(images, driveurl.ToDirect(link))
	}

	if len(images) > 0 {
		record["images"] = images
	}

	record["specifications"] = map[string]any{
		"specifications": specBlobFromEntry(entry),
	}

	return record
}

// specBlobFromEntry joins the hierarchical specifications value, which may be
// a list of delimited strings or a single string, into one primary blob.
func specBlobFromEntry(entry map[string]any) string {
	switch specs := entry["specifications"].(type) {
	case string:
		return specs
	case []any:
		var parts []string

		for _, spec := range specs {
			if s, ok := spec.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}

		return strings.Join(parts, " | ")
	default:
		return ""
	}
}
