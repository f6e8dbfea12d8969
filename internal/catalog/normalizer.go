package catalog

import (
	"strings"

	"brochure/internal/models"
	"brochure/pkg/textutil"
)

// FeatureSentinel is a placeholder token spreadsheet operators leave in
// feature cells. It never survives normalization.
const FeatureSentinel = "Not Selected"

// secondaryDelimiters are tried in priority order when splitting the
// feature-only blob. The first delimiter that yields more than one token
// wins; a blob already split by pipe is not re-split by comma.
var secondaryDelimiters = []string{"|", ",", ";"}

// NormalizeSpecs turns a product's raw specification blobs into an ordered
// spec list and a deduplicated feature list. The primary blob may mix
// key/value specs with bare features; the secondary blob contains features
// only. Malformed input never fails: worst case everything becomes a feature
// and the spec list stays empty.
//
// Duplicate spec keys keep their first-seen position and the LAST value wins.
func NormalizeSpecs(primary, secondary string) (models.SpecList, []string) {
	var specs models.SpecList

	var candidates []string

	for _, segment := range SplitFields(primary, FieldDelimiter) {
		if segment.IsSpec() {
			specs.Set(segment.Key, segment.Value)

			continue
		}

		candidates = append(candidates, segment.Feature)
	}

	candidates = append(candidates, splitSecondary(secondary)...)

	return specs, dedupFeatures(candidates)
}

// splitSecondary tokenizes the feature-only blob using the first delimiter
// that produces more than one token.
func splitSecondary(blob string) []string {
	if strings.TrimSpace(blob) == "" {
		return nil
	}

	for _, delimiter := range secondaryDelimiters {
		tokens := splitTrimmed(blob, delimiter)
		if len(tokens) > 1 {
			return tokens
		}
	}

	return splitTrimmed(blob, secondaryDelimiters[0])
}

func splitTrimmed(blob, delimiter string) []string {
	var tokens []string

	for part := range strings.SplitSeq(blob, delimiter) {
		part = strings.TrimSpace(part)
		if part != "" {
			tokens = append(tokens, part)
		}
	}

	return tokens
}

// dedupFeatures trims punctuation, drops the sentinel token and removes
// case-sensitive exact duplicates, preserving first-seen order.
func dedupFeatures(candidates []string) []string {
	var features []string

	seen := make(map[string]bool, len(candidates))

	for _, candidate := range candidates {
		feature := textutil.TrimPunctuation(candidate)
		if feature == "" || feature == FeatureSentinel {
			continue
		}

		if seen[feature] {
			continue
		}

		seen[feature] = true

		features = append(features, feature)
	}

	return features
}
