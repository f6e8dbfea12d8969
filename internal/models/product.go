// Package models defines the data structures shared across the brochure
// pipeline: raw input records, normalized products, category groups and
// layout rules.
package models

import "strings"

// RawProduct is a single untrusted product record as read from JSON or a
// spreadsheet row. No key is guaranteed present or well-typed; all coercion
// happens at the normalization boundary.
type RawProduct map[string]any

// String returns the trimmed string value for key, or "" when the key is
// missing or not a string.
func (r RawProduct) String(key string) string {
	if r == nil {
		return ""
	}

	if s, ok := r[key].(string); ok {
		return strings.TrimSpace(s)
	}

	return ""
}

// Map returns the nested mapping stored under key, or nil.
func (r RawProduct) Map(key string) map[string]any {
	if r == nil {
		return nil
	}

	if m, ok := r[key].(map[string]any); ok {
		return m
	}

	return nil
}

// Spec is a single key/value technical attribute of a product.
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SpecList is an insertion-ordered list of specs with unique keys.
// When a key recurs the later value overwrites the earlier one while the
// original position is kept.
type SpecList []Spec

// Set inserts or overwrites the value for key.
func (s *SpecList) Set(key, value string) {
	for i := range *s {
		if (*s)[i].Key == key {
			(*s)[i].Value = value

			return
		}
	}

	*s = append(*s, Spec{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (s SpecList) Get(key string) (string, bool) {
	for _, spec := range s {
		if spec.Key == key {
			return spec.Value, true
		}
	}

	return "", false
}

// Len returns the number of specs.
func (s SpecList) Len() int {
	return len(s)
}

// Product is a fully normalized catalogue entry. Products are immutable once
// the deduplicator has committed them; only the hero selector sets IsHero.
type Product struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"product_name"`
	Model    string   `json:"model"`
	Supplier string   `json:"supplier,omitempty"`
	Category string   `json:"category"`
	Status   Status   `json:"status"`
	Note     string   `json:"note,omitempty"`
	Image    string   `json:"image,omitempty"`
	Images   []string `json:"images,omitempty"`
	Price    float64  `json:"price,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Specs    SpecList `json:"specs"`
	Features []string `json:"features"`

	// HasRealModel is false when Model is a generated placeholder key.
	// Such products are never eligible for hero selection.
	HasRealModel bool `json:"has_real_model"`

	// IsHero marks the promoted product within its category group.
	IsHero bool `json:"is_hero"`
}

// CategoryGroup is the set of products sharing one category. Hero, when set,
// points at a product that is also present in Products.
type CategoryGroup struct {
	Name     string     `json:"name"`
	Products []*Product `json:"products"`
	Hero     *Product   `json:"hero,omitempty"`
}
