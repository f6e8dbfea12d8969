package models

import "strings"

// Status is the canonical availability state of a product.
type Status string

// Canonical product statuses.
const (
	StatusPublished   Status = "published"
	StatusDraft       Status = "draft"
	StatusArchived    Status = "archived"
	StatusToBeOrdered Status = "to_be_ordered"
	StatusNotSelected Status = "not_selected"
)

// canonicalStatuses maps trimmed lower-cased raw values to their status.
// The empty string maps to published.
var canonicalStatuses = map[string]Status{
	"":              StatusPublished,
	"published":     StatusPublished,
	"draft":         StatusDraft,
	"archived":      StatusArchived,
	"to be ordered": StatusToBeOrdered,
	"not selected":  StatusNotSelected,
}

// ResolveStatus classifies a raw status string. Unrecognized free-form values
// are demoted to a note and the status forced to published; this never fails.
func ResolveStatus(raw string) (Status, string) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if status, ok := canonicalStatuses[key]; ok {
		return status, ""
	}

	return StatusPublished, raw
}
