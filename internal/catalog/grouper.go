package catalog

import (
	"sort"

	"brochure/internal/models"
)

// CategoryOrder controls how category groups are ordered in the final
// catalogue. The default preserves first-seen input order; alphabetical
// ordering is available for hosts that want a sorted contents page.
type CategoryOrder string

// Supported category orderings.
const (
	OrderFirstSeen    CategoryOrder = "first_seen"
	OrderAlphabetical CategoryOrder = "alphabetical"
)

// Group buckets deduplicated products by category in a single pass. Product
// order within a category is always first-seen. Both orderings are
// deterministic for identical input.
func Group(products []*models.Product, order CategoryOrder) []models.CategoryGroup {
	var groups []models.CategoryGroup

	indexByName := make(map[string]int)

	for _, product := range products {
		idx, ok := indexByName[product.Category]
		if !ok {
			idx = len(groups)
			indexByName[product.Category] = idx

			groups = append(groups, models.CategoryGroup{Name: product.Category})
		}

		groups[idx].Products = append(groups[idx].Products, product)
	}

	if order == OrderAlphabetical {
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Name < groups[j].Name
		})
	}

	return groups
}
