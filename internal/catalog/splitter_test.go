package catalog

import "testing"

func TestSplitFields_SpecsAndFeatures(t *testing.T) {
	segments := SplitFields("Image sensor: 2MP CMOS | Lens: 100° fixed focus | Siren", FieldDelimiter)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	if segments[0].Key != "Image sensor" || segments[0].Value != "2MP CMOS" {
		t.Errorf("segment 0 = %+v", segments[0])
	}

	if segments[1].Key != "Lens" || segments[1].Value != "100° fixed focus" {
		t.Errorf("segment 1 = %+v", segments[1])
	}

	if segments[2].IsSpec() || segments[2].Feature != "Siren" {
		t.Errorf("segment 2 = %+v", segments[2])
	}
}

func TestSplitFields_FirstColonOnly(t *testing.T) {
	segments := SplitFields("Aspect ratio: 16:9", FieldDelimiter)

	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}

	if segments[0].Key != "Aspect ratio" || segments[0].Value != "16:9" {
		t.Errorf("value lost its colon: %+v", segments[0])
	}
}

func TestSplitFields_RepeatedDelimiters(t *testing.T) {
	segments := SplitFields("One || Two |||  | Three", FieldDelimiter)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(segments), segments)
	}

	for i, want := range []string{"One", "Two", "Three"} {
		if segments[i].Feature != want {
			t.Errorf("segment %d = %q, want %q", i, segments[i].Feature, want)
		}
	}
}

func TestSplitFields_EmptyKeyDegradesToFeature(t *testing.T) {
	segments := SplitFields(": dangling value | :", FieldDelimiter)

	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}

	if segments[0].IsSpec() || segments[0].Feature != "dangling value" {
		t.Errorf("segment = %+v", segments[0])
	}
}

func TestSplitFields_Empty(t *testing.T) {
	if segments := SplitFields("   ", FieldDelimiter); segments != nil {
		t.Errorf("expected nil for blank input, got %+v", segments)
	}
}
