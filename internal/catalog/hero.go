package catalog

import "brochure/internal/models"

// HeroSpecThreshold is the minimum spec count a product needs before the
// heuristic will promote it.
const HeroSpecThreshold = 6

// SelectHero picks at most one promoted product for the group. An explicit
// layout rule wins: the first model in the rule list that is present in the
// group is chosen, in the LIST's order rather than group order. Without a
// rule match the product with the strictly highest spec count is promoted,
// provided the count reaches HeroSpecThreshold; ties go to the earliest group
// member. Products with generated model keys are never eligible. The hero
// stays in the group's product sequence; renderers use IsHero to avoid
// drawing it twice.
func SelectHero(group *models.CategoryGroup, rules *models.LayoutRules) {
	if hero := heroByRule(group, rules.HeroModels(group.Name)); hero != nil {
		group.Hero = hero
		hero.IsHero = true

		return
	}

	if hero := heroByHeuristic(group); hero != nil {
		group.Hero = hero
		hero.IsHero = true
	}
}

func heroByRule(group *models.CategoryGroup, heroModels []string) *models.Product {
	for _, model := range heroModels {
		for _, product := range group.Products {
			if product.HasRealModel && product.Model == model {
				return product
			}
		}
	}

	return nil
}

func heroByHeuristic(group *models.CategoryGroup) *models.Product {
	var best *models.Product

	bestCount := 0

	for _, product := range group.Products {
		if !product.HasRealModel {
			continue
		}

		if count := product.Specs.Len(); count > bestCount {
			best = product
			bestCount = count
		}
	}

	if bestCount < HeroSpecThreshold {
		return nil
	}

	return best
}
