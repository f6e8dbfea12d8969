package sheets

import (
	"testing"

	"brochure/internal/storage"
)

func TestFindDriveColumn(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    int
	}{
		{"exact match", []string{"Name", "Drive Link", "Price"}, 1},
		{"exact match case insensitive", []string{"drive link", "Name"}, 0},
		{"fuzzy match", []string{"Name", "Google Drive image link"}, 1},
		{"no match", []string{"Name", "Price"}, -1},
		{"empty headers", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDriveColumn(tt.headers, "Drive Link"); got != tt.want {
				t.Errorf("FindDriveColumn(%v) = %d, want %d", tt.headers, got, tt.want)
			}
		})
	}
}

func TestPlanUpdates(t *testing.T) {
	rows := [][]string{
		{"Name", "Drive Link"},
		{"Camera", "https://drive.google.com/file/d/abc123/view"},
		{"Hub", "https://example.com/hub.jpg"},
		{"Sensor", "https://drive.google.com/file/d/notmigrated/view"},
		{"Short row"},
		{"Lock", "https://drive.google.com/file/d/def456/view?usp=sharing"},
	}

	mapping := storage.Mapping{
		"abc123": "https://bucket.s3.us-east-1.amazonaws.com/product-images/abc123.jpg",
		"def456": "https://bucket.s3.us-east-1.amazonaws.com/product-images/def456.png",
	}

	updates := PlanUpdates("All Products", rows, 1, mapping)

	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}

	// Data rows are 1-based: the first product sits on sheet row 2.
	if updates[0].Range != "All Products!B2" {
		t.Errorf("first range = %s, want All Products!B2", updates[0].Range)
	}

	if updates[0].Value != mapping["abc123"] {
		t.Errorf("first value = %s", updates[0].Value)
	}

	if updates[1].Range != "All Products!B6" {
		t.Errorf("second range = %s, want All Products!B6", updates[1].Range)
	}
}

func TestPlanUpdatesEdgeCases(t *testing.T) {
	mapping := storage.Mapping{"abc": "https://example.com/abc.jpg"}

	if got := PlanUpdates("S", nil, 0, mapping); got != nil {
		t.Errorf("nil rows should plan nothing, got %v", got)
	}

	headerOnly := [][]string{{"Drive Link"}}
	if got := PlanUpdates("S", headerOnly, 0, mapping); got != nil {
		t.Errorf("header-only sheet should plan nothing, got %v", got)
	}

	if got := PlanUpdates("S", headerOnly, -1, mapping); got != nil {
		t.Errorf("missing column should plan nothing, got %v", got)
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
	}

	for _, tt := range tests {
		if got := columnLetter(tt.col); got != tt.want {
			t.Errorf("columnLetter(%d) = %s, want %s", tt.col, got, tt.want)
		}
	}
}
