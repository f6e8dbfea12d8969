package catalog

import (
	"fmt"

	"brochure/internal/models"
)

// Deduplicate collapses repeated real model numbers, keeping the first
// occurrence in input order regardless of which record has richer data.
// Later duplicates are dropped with a warning naming both categories.
// Generated placeholder keys are unique by construction and never collide.
func Deduplicate(products []*models.Product, warnings *Warnings) []*models.Product {
	unique := make([]*models.Product, 0, len(products))
	firstSeen := make(map[string]*models.Product, len(products))

	for _, product := range products {
		if !product.HasRealModel {
			unique = append(unique, product)

			continue
		}

		if kept, dup := firstSeen[product.Model]; dup {
			warnings.Add(SeverityWarning, CodeDuplicateModel,
				fmt.Sprintf("duplicate model %s: kept %q, dropped %q", product.Model, kept.Category, product.Category),
				map[string]string{
					"model":            product.Model,
					"kept_category":    kept.Category,
					"dropped_category": product.Category,
				})

			continue
		}

		firstSeen[product.Model] = product

		unique = append(unique, product)
	}

	return unique
}
