package catalog

import (
	"strings"

	"brochure/internal/models"
)

// Options control a single build.
type Options struct {
	// IncludeModels restricts the build to the listed model numbers. The
	// filter runs before normalization so excluded rows incur no parsing
	// cost.
	IncludeModels []string

	// CategoryOrder defaults to OrderFirstSeen.
	CategoryOrder CategoryOrder
}

// Build runs the full pipeline: include filter, product normalization,
// deduplication, grouping and hero selection. The call is deterministic:
// identical input, rules and options always yield bit-identical groups.
// Data-quality problems go to the warnings collector; they never abort a
// build. A nil rules value means no layout rules.
func Build(raw []models.RawProduct, rules *models.LayoutRules, opts Options, warnings *Warnings) []models.CategoryGroup {
	raw = filterByModel(raw, opts.IncludeModels)

	// Claim every real model up front so generated placeholder keys can
	// never collide with one seen later in the input.
	taken := make(map[string]bool, len(raw))

	for _, record := range raw {
		if model := record.String("model"); model != "" {
			taken[model] = true
		}
	}

	products := make([]*models.Product, 0, len(raw))

	for i, record := range raw {
		products = append(products, NormalizeProduct(record, i, taken, warnings))
	}

	products = Deduplicate(products, warnings)

	order := opts.CategoryOrder
	if order == "" {
		order = OrderFirstSeen
	}

	groups := Group(products, order)

	for i := range groups {
		SelectHero(&groups[i], rules)
	}

	return groups
}

func filterByModel(raw []models.RawProduct, includeModels []string) []models.RawProduct {
	if len(includeModels) == 0 {
		return raw
	}

	include := make(map[string]bool, len(includeModels))

	for _, model := range includeModels {
		include[strings.TrimSpace(model)] = true
	}

	filtered := make([]models.RawProduct, 0, len(raw))

	for _, record := range raw {
		if include[record.String("model")] {
			filtered = append(filtered, record)
		}
	}

	return filtered
}
