// Package integration exercises the full build path: raw JSON through the
// pipeline into rendered artifacts with a verified manifest.
package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brochure/internal/catalog"
	"brochure/internal/config"
	"brochure/internal/loader"
	"brochure/internal/render"
	"brochure/internal/report"
	"brochure/pkg/manifest"
)

const productsJSON = `[
  {
    "name": "Sentinel Video Doorbell",
    "model": "SVD-300",
    "category": "Video Door Bell",
    "status": "published",
    "price": "$199.99",
    "specifications": {
      "specifications": "Resolution: 2K|Field of view: 160 degrees|Power: Wired|Storage: Cloud|Audio: Two-way|Night vision: Infrared",
      "features": "Person detection|Package alerts|Not Selected"
    }
  },
  {
    "name": "Sentinel Cam Outdoor",
    "model": "SCO-100",
    "category": "Security Camera",
    "status": "to be ordered",
    "price": 149.5,
    "specifications": {
      "specifications": "Resolution: 1080p|Power: Battery"
    }
  },
  {
    "name": "Sentinel Cam Outdoor",
    "model": "SCO-100",
    "category": "Security Camera",
    "specifications": {
      "specifications": "Resolution: 4K"
    }
  },
  {
    "name": "Glow Strip",
    "category": "Lighting",
    "specifications": {
      "specifications": "Length: 2m|Colors: RGB"
    }
  }
]`

const rulesJSON = `{
  "rules": [
    {"match": {"category": "Security Camera"}, "hero_models": ["SCO-100"]}
  ]
}`

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()

	src := filepath.Join(dir, "products.json")
	if err := os.WriteFile(src, []byte(productsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	rules := filepath.Join(dir, "rules.json")
	if err := os.WriteFile(rules, []byte(rulesJSON), 0644); err != nil {
		t.Fatal(err)
	}

	return src, rules
}

func TestFullBuild(t *testing.T) {
	src, rulesPath := writeFixtures(t)

	raw, err := loader.LoadProducts(src)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(raw) != 4 {
		t.Fatalf("expected 4 raw records, got %d", len(raw))
	}

	rules, err := loader.LoadLayoutRules(rulesPath)
	if err != nil {
		t.Fatalf("rules load failed: %v", err)
	}

	warnings := catalog.NewWarnings()
	groups := catalog.Build(raw, rules, catalog.Options{}, warnings)

	// Duplicate SCO-100 dropped, so three products across three categories.
	if len(groups) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(groups))
	}

	total := 0
	for _, group := range groups {
		total += len(group.Products)
	}

	if total != 3 {
		t.Errorf("expected 3 products after dedup, got %d", total)
	}

	if len(warnings.ByCode(catalog.CodeDuplicateModel)) != 1 {
		t.Error("duplicate model warning missing")
	}

	if len(warnings.ByCode(catalog.CodeMissingModel)) != 1 {
		t.Error("missing model warning for Glow Strip missing")
	}

	// Rule-driven hero for Security Camera.
	for _, group := range groups {
		if group.Name == "Security Camera" {
			if group.Hero == nil || group.Hero.Model != "SCO-100" {
				t.Error("rule-listed hero not selected")
			}
		}
	}

	// Render and verify the artifact set.
	cfg := config.Default()

	renderer, err := render.New(cfg)
	if err != nil {
		t.Fatalf("renderer setup failed: %v", err)
	}

	outDir := t.TempDir()

	htmlPath, err := renderer.Render(groups, outDir)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	page, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"Sentinel Video Doorbell", "SVD-300", "Glow Strip", "$199.99"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("rendered page missing %q", want)
		}
	}

	if strings.Contains(string(page), "Not Selected") {
		t.Error("sentinel feature leaked into the page")
	}

	if _, err := manifest.Write(outDir); err != nil {
		t.Fatalf("manifest write failed: %v", err)
	}

	if err := manifest.Verify(outDir); err != nil {
		t.Errorf("manifest verify failed: %v", err)
	}

	// The report covers the same build.
	out := report.Build(groups, warnings)
	if !strings.Contains(out, "- Products: 3") || !strings.Contains(out, "duplicate_model") {
		t.Error("report does not reflect the build")
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	src, _ := writeFixtures(t)

	raw, err := loader.LoadProducts(src)
	if err != nil {
		t.Fatal(err)
	}

	first := catalog.Build(raw, nil, catalog.Options{}, catalog.NewWarnings())
	second := catalog.Build(raw, nil, catalog.Options{}, catalog.NewWarnings())

	if len(first) != len(second) {
		t.Fatalf("category counts differ: %d vs %d", len(first), len(second))
	}

	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("category order changed: %s vs %s", first[i].Name, second[i].Name)
		}

		if len(first[i].Products) != len(second[i].Products) {
			t.Errorf("product counts differ in %s", first[i].Name)

			continue
		}

		for j := range first[i].Products {
			if first[i].Products[j].Model != second[i].Products[j].Model {
				t.Errorf("product order changed in %s", first[i].Name)
			}

			// Generated placeholder keys must also be stable.
			if first[i].Products[j].ID != second[i].Products[j].ID {
				t.Errorf("product ID changed between runs in %s", first[i].Name)
			}
		}
	}
}
