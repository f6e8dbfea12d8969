package catalog

import "strings"

// FieldDelimiter is the primary delimiter separating segments in a raw
// specification blob.
const FieldDelimiter = "|"

// Segment is one parsed fragment of a raw specification blob. A segment is
// either a key/value spec (Key non-empty) or a bare feature candidate.
type Segment struct {
	Key     string
	Value   string
	Feature string
}

// IsSpec reports whether the segment parsed as a key/value pair.
func (s Segment) IsSpec() bool {
	return s.Key != ""
}

// SplitFields splits a raw delimited string into trimmed, non-empty segments.
// Repeated delimiters collapse into a single split boundary and empty
// segments are discarded silently. A segment containing a colon is
// interpreted as "key: value" on the FIRST colon only, so values may
// themselves contain colons (ratios, times of day). A colon segment with an
// empty key degrades to a feature candidate.
func SplitFields(raw, delimiter string) []Segment {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var segments []Segment

	for part := range strings.SplitSeq(raw, delimiter) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.Index(part, ":")
		if idx < 0 {
			segments = append(segments, Segment{Feature: part})

			continue
		}

		key := strings.TrimSpace(part[:idx])
		value := strings.TrimSpace(part[idx+1:])

		if key == "" {
			if value == "" {
				continue
			}

			segments = append(segments, Segment{Feature: value})

			continue
		}

		segments = append(segments, Segment{Key: key, Value: value})
	}

	return segments
}
