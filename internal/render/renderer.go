// Package render turns the normalized catalogue model into a static,
// script-free HTML/CSS brochure.
package render

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"brochure/internal/config"
	"brochure/internal/models"
	"brochure/pkg/textutil"
)

//go:embed templates
var templateFS embed.FS

// ErrUnknownTheme is returned when the requested theme has no stylesheet.
var ErrUnknownTheme = errors.New("unknown theme")

// Renderer renders category groups into the output artifact layout:
// index.html + catalog.css + assets/.
type Renderer struct {
	theme        string
	company      config.CompanyConfig
	itemsPerPage int
	templates    *template.Template

	// now is swappable so tests get stable output.
	now func() time.Time
}

// New creates a renderer for the configured theme.
func New(cfg *config.Config) (*Renderer, error) {
	r := &Renderer{
		theme:        cfg.Build.Theme,
		company:      cfg.Company,
		itemsPerPage: cfg.Build.ItemsPerPage,
		now:          time.Now,
	}

	funcs := template.FuncMap{
		"currency":  formatCurrency,
		"truncate":  textutil.TruncateWords,
		"paginate":  r.paginate,
		"statusTag": statusTag,
	}

	templates, err := template.New("brochure").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r.templates = templates

	return r, nil
}

// pageData is the root template payload.
type pageData struct {
	Company       config.CompanyConfig
	Groups        []models.CategoryGroup
	TotalProducts int
	GeneratedAt   string
	Theme         string
}

// Render writes index.html and catalog.css into outDir and returns the path
// to the HTML file. The assets directory is created so hosts can drop local
// images next to the page.
func (r *Renderer) Render(groups []models.CategoryGroup, outDir string) (string, error) {
	if err := os.MkdirAll(filepath.Join(outDir, "assets"), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	total := 0
	for _, group := range groups {
		total += len(group.Products)
	}

	ctx := pageData{
		Company:       r.company,
		Groups:        groups,
		TotalProducts: total,
		GeneratedAt:   r.now().Format("January 2, 2006"),
		Theme:         r.theme,
	}

	htmlPath := filepath.Join(outDir, "index.html")

	page, err := os.Create(htmlPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", htmlPath, err)
	}
	defer page.Close()

	if err := r.templates.ExecuteTemplate(page, "brochure.html.tmpl", ctx); err != nil {
		return "", fmt.Errorf("failed to render brochure: %w", err)
	}

	if err := r.writeStylesheet(outDir); err != nil {
		return "", err
	}

	return htmlPath, nil
}

func (r *Renderer) writeStylesheet(outDir string) error {
	css, err := templateFS.ReadFile("templates/themes/" + r.theme + ".css")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, r.theme)
	}

	cssPath := filepath.Join(outDir, "catalog.css")
	if err := os.WriteFile(cssPath, css, 0644); err != nil {
		return fmt.Errorf("failed to write stylesheet: %w", err)
	}

	return nil
}

// CopyLocalAssets copies product images that exist on disk (resolved against
// srcBase) into outDir/assets and returns a mapping from the original
// reference to the copied relative path. Remote URLs pass through untouched.
func CopyLocalAssets(groups []models.CategoryGroup, srcBase, outDir string) (map[string]string, error) {
	copied := make(map[string]string)

	for _, group := range groups {
		for _, product := range group.Products {
			for _, image := range product.Images {
				if image == "" || strings.Contains(image, "://") {
					continue
				}

				if _, done := copied[image]; done {
					continue
				}

				src := image
				if !filepath.IsAbs(src) {
					src = filepath.Join(srcBase, image)
				}

				if _, err := os.Stat(src); err != nil {
					continue
				}

				rel := filepath.Join("assets", filepath.Base(image))
				dst := filepath.Join(outDir, rel)

				if err := copyFile(src, dst); err != nil {
					return nil, fmt.Errorf("failed to copy asset %s: %w", image, err)
				}

				copied[image] = rel
			}
		}
	}

	return copied, nil
}

// RewriteImageRefs points product image references at their copied asset
// paths, so the rendered page links the files that actually exist under the
// output directory. References absent from the mapping are left alone.
func RewriteImageRefs(groups []models.CategoryGroup, copied map[string]string) {
	if len(copied) == 0 {
		return
	}

	for _, group := range groups {
		for _, product := range group.Products {
			if rel, ok := copied[product.Image]; ok {
				product.Image = rel
			}

			for i, image := range product.Images {
				if rel, ok := copied[image]; ok {
					product.Images[i] = rel
				}
			}
		}
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0644)
}

// paginate chunks a group's products for print-oriented page breaks.
func (r *Renderer) paginate(products []*models.Product) [][]*models.Product {
	perPage := r.itemsPerPage
	if perPage < 1 {
		perPage = len(products)
	}

	var pages [][]*models.Product

	for start := 0; start < len(products); start += perPage {
		end := start + perPage
		if end > len(products) {
			end = len(products)
		}

		pages = append(pages, products[start:end])
	}

	return pages
}

func formatCurrency(price float64, currency string) string {
	if price == 0 {
		return ""
	}

	symbol := "$"

	switch strings.ToUpper(currency) {
	case "EUR":
		symbol = "€"
	case "GBP":
		symbol = "£"
	}

	return fmt.Sprintf("%s%.2f", symbol, price)
}

// statusTag returns the label shown on a product card, or "" for published
// products which need no badge.
func statusTag(status models.Status) string {
	switch status {
	case models.StatusPublished:
		return ""
	case models.StatusToBeOrdered:
		return "To be ordered"
	case models.StatusNotSelected:
		return "Not selected"
	default:
		label := string(status)
		if label == "" {
			return ""
		}

		return strings.ToUpper(label[:1]) + label[1:]
	}
}
