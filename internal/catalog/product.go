package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"brochure/internal/models"
)

// Defaults applied when a raw record is missing fields.
const (
	DefaultName     = "Unnamed Product"
	DefaultCategory = "Uncategorized"
)

// NormalizeProduct turns a single untrusted record into a valid Product.
// It never fails: a completely empty record still yields a product with a
// generated model key, the default category and empty specs and features.
// taken holds every model key already claimed this run (real models first,
// then generated keys) so placeholder keys cannot collide.
func NormalizeProduct(raw models.RawProduct, index int, taken map[string]bool, warnings *Warnings) *models.Product {
	name := raw.String("name")
	if name == "" {
		name = DefaultName
	}

	model := raw.String("model")
	hasRealModel := model != ""

	if !hasRealModel {
		model = placeholderModel(name, index, taken)

		warnings.Add(SeverityWarning, CodeMissingModel,
			fmt.Sprintf("product %q has no model, assigned placeholder %s", name, model),
			map[string]string{"product": name, "placeholder": model})
	}

	category := raw.String("category")
	if category == "" {
		category = DefaultCategory

		warnings.Add(SeverityWarning, CodeMissingCategory,
			fmt.Sprintf("product %q has no category, defaulted to %s", name, DefaultCategory),
			map[string]string{"model": model})
	}

	// The raw value goes through untrimmed: an unrecognized status becomes
	// the note exactly as the source wrote it.
	rawStatus, _ := raw["status"].(string)

	status, note := models.ResolveStatus(rawStatus)
	if note != "" {
		warnings.Add(SeverityWarning, CodeStatusNote,
			fmt.Sprintf("unrecognized status for %s demoted to note", model),
			map[string]string{"model": model, "status": note})
	}

	price, priceOK := parsePrice(raw["price"])
	if !priceOK {
		warnings.Add(SeverityWarning, CodeInvalidPrice,
			fmt.Sprintf("invalid price for %s: %v", model, raw["price"]),
			map[string]string{"model": model})
	}

	images := coerceImages(raw["images"])

	specs, features := normalizeSpecBlob(raw.Map("specifications"))
	if specs.Len() == 0 && len(features) == 0 {
		warnings.Add(SeverityWarning, CodeEmptyContent,
			fmt.Sprintf("product %s has no specifications or features", model),
			map[string]string{"model": model})
	}

	product := &models.Product{
		ID:           coerceID(raw["id"]),
		Name:         name,
		Model:        model,
		Supplier:     raw.String("supplier"),
		Category:     category,
		Status:       status,
		Note:         note,
		Images:       images,
		Price:        price,
		Currency:     raw.String("currency"),
		Specs:        specs,
		Features:     features,
		HasRealModel: hasRealModel,
	}

	if len(images) > 0 {
		product.Image = images[0]
	}

	return product
}

// normalizeSpecBlob handles the untrusted specifications mapping. The primary
// entry is usually a delimited string but legacy exports carry a ready-made
// key/value object; the features entry may be a string blob or a list.
func normalizeSpecBlob(blob map[string]any) (models.SpecList, []string) {
	var primary, secondary string

	var direct models.SpecList

	if blob != nil {
		switch value := blob["specifications"].(type) {
		case string:
			primary = value
		case map[string]any:
			direct = specsFromObject(value)
		}

		switch value := blob["features"].(type) {
		case string:
			secondary = value
		case []any:
			secondary = joinStrings(value, FieldDelimiter)
		}
	}

	specs, features := NormalizeSpecs(primary, secondary)

	for _, spec := range direct {
		specs.Set(spec.Key, spec.Value)
	}

	return specs, features
}

// specsFromObject converts a ready-made key/value object, sorting keys so a
// Go map never introduces nondeterminism into the build.
func specsFromObject(object map[string]any) models.SpecList {
	keys := make([]string, 0, len(object))

	for key := range object {
		if strings.TrimSpace(key) != "" {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	var specs models.SpecList

	for _, key := range keys {
		specs.Set(strings.TrimSpace(key), strings.TrimSpace(fmt.Sprintf("%v", object[key])))
	}

	return specs
}

func joinStrings(values []any, delimiter string) string {
	var parts []string

	for _, value := range values {
		if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, delimiter)
}

// parsePrice coerces the untyped price field. String prices may carry a
// currency symbol and thousands separators. A missing price is not an error;
// an unparsable one is.
func parsePrice(value any) (float64, bool) {
	switch price := value.(type) {
	case nil:
		return 0, true
	case float64:
		return price, true
	case int:
		return float64(price), true
	case string:
		cleaned := strings.NewReplacer("$", "", "€", "", ",", "").Replace(price)

		cleaned = strings.TrimSpace(cleaned)
		if cleaned == "" {
			return 0, true
		}

		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}

		return parsed, true
	default:
		return 0, false
	}
}

// coerceImages accepts an ordered list of path strings or a single string.
func coerceImages(value any) []string {
	var images []string

	switch raw := value.(type) {
	case []any:
		for _, entry := range raw {
			if s, ok := entry.(string); ok && strings.TrimSpace(s) != "" {
				images = append(images, strings.TrimSpace(s))
			}
		}
	case string:
		if strings.TrimSpace(raw) != "" {
			images = append(images, strings.TrimSpace(raw))
		}
	}

	return images
}

func coerceID(value any) string {
	switch id := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", id)
	}
}

// placeholderModel derives a deterministic key for a product without a model
// number. UUIDv5 over the name and input position keeps rebuilds of identical
// input bit-identical; the taken set guards against collision with any real
// model observed in the same run.
func placeholderModel(name string, index int, taken map[string]bool) string {
	for salt := 0; ; salt++ {
		seed := fmt.Sprintf("%s#%d#%d", name, index, salt)

		key := "unspec-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()[:8]
		if !taken[key] {
			taken[key] = true

			return key
		}
	}
}
