package models

// LayoutRules configures hero placement per category. Loaded from a
// layout_rules.json file supplied by the operator.
type LayoutRules struct {
	Rules []LayoutRule `json:"rules"`
}

// LayoutRule promotes the first listed model found in the matched category.
type LayoutRule struct {
	Match      RuleMatch `json:"match"`
	HeroModels []string  `json:"hero_models"`
}

// RuleMatch selects the category a rule applies to.
type RuleMatch struct {
	Category string `json:"category"`
}

// HeroModels returns the hero model list for category, or nil when no rule
// matches. The first matching rule wins.
func (lr *LayoutRules) HeroModels(category string) []string {
	if lr == nil {
		return nil
	}

	for _, rule := range lr.Rules {
		if rule.Match.Category == category {
			return rule.HeroModels
		}
	}

	return nil
}
