package catalog

import (
	"reflect"
	"testing"
)

func TestNormalizeSpecs_MixedBlob(t *testing.T) {
	specs, features := NormalizeSpecs("Image sensor: 2MP CMOS | Lens: 100° fixed focus | Siren", "")

	if specs.Len() != 2 {
		t.Fatalf("expected 2 specs, got %d", specs.Len())
	}

	if value, _ := specs.Get("Image sensor"); value != "2MP CMOS" {
		t.Errorf("Image sensor = %q", value)
	}

	if value, _ := specs.Get("Lens"); value != "100° fixed focus" {
		t.Errorf("Lens = %q", value)
	}

	if !reflect.DeepEqual(features, []string{"Siren"}) {
		t.Errorf("features = %v", features)
	}
}

func TestNormalizeSpecs_DuplicateKeyLastWins(t *testing.T) {
	specs, _ := NormalizeSpecs("Power: 5V | Range: 10m | Power: 12V", "")

	if specs.Len() != 2 {
		t.Fatalf("expected 2 specs, got %d", specs.Len())
	}

	// Last value wins but the first-seen position is kept.
	if specs[0].Key != "Power" || specs[0].Value != "12V" {
		t.Errorf("specs[0] = %+v", specs[0])
	}
}

func TestNormalizeSpecs_SecondaryDelimiterPriority(t *testing.T) {
	// A blob split by pipe is not re-split by comma.
	_, features := NormalizeSpecs("", "Night vision, IR | Motion alerts, push")
	if !reflect.DeepEqual(features, []string{"Night vision, IR", "Motion alerts, push"}) {
		t.Errorf("pipe priority lost: %v", features)
	}

	_, features = NormalizeSpecs("", "Night vision, Motion alerts, Two-way audio")
	if !reflect.DeepEqual(features, []string{"Night vision", "Motion alerts", "Two-way audio"}) {
		t.Errorf("comma split: %v", features)
	}

	_, features = NormalizeSpecs("", "Night vision; Motion alerts")
	if !reflect.DeepEqual(features, []string{"Night vision", "Motion alerts"}) {
		t.Errorf("semicolon split: %v", features)
	}
}

func TestNormalizeSpecs_FeatureDedup(t *testing.T) {
	_, features := NormalizeSpecs("Siren | Siren | siren", "Siren, Night vision.")

	want := []string{"Siren", "siren", "Night vision"}
	if !reflect.DeepEqual(features, want) {
		t.Errorf("features = %v, want %v", features, want)
	}
}

func TestNormalizeSpecs_SentinelDropped(t *testing.T) {
	_, features := NormalizeSpecs("Not Selected | Siren", "Not Selected")

	if !reflect.DeepEqual(features, []string{"Siren"}) {
		t.Errorf("sentinel survived: %v", features)
	}
}

func TestNormalizeSpecs_GarbageInput(t *testing.T) {
	specs, features := NormalizeSpecs("| || , |", "")

	if specs.Len() != 0 {
		t.Errorf("garbage produced specs=%v", specs)
	}

	if len(features) != 0 {
		t.Errorf("garbage produced features=%v", features)
	}
}
