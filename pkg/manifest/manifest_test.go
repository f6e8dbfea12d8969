package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeArtifacts(t *testing.T, dir string) {
	t.Helper()

	files := map[string]string{
		"index.html":     "<html></html>",
		"catalog.css":    "body {}",
		"assets/cam.jpg": "jpegdata",
	}

	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWriteAndVerify(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir)

	manifest, err := Write(dir)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if len(manifest.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(manifest.Entries))
	}

	// Sorted by path, manifest itself excluded.
	wantOrder := []string{"assets/cam.jpg", "catalog.css", "index.html"}
	for i, want := range wantOrder {
		if manifest.Entries[i].Path != want {
			t.Errorf("entry %d = %s, want %s", i, manifest.Entries[i].Path, want)
		}
	}

	if err := Verify(dir); err != nil {
		t.Errorf("Verify on untouched output failed: %v", err)
	}
}

func TestVerifyDetectsTamper(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir)

	if _, err := Write(dir); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>edited</html>"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Verify(dir)
	if !errors.Is(err, ErrHashMismatch) {
		t.Errorf("expected ErrHashMismatch, got %v", err)
	}
}

func TestVerifyDetectsMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir)

	if _, err := Write(dir); err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(filepath.Join(dir, "catalog.css")); err != nil {
		t.Fatal(err)
	}

	err := Verify(dir)
	if !errors.Is(err, ErrMissingArtifact) {
		t.Errorf("expected ErrMissingArtifact, got %v", err)
	}
}

func TestVerifyWithoutManifest(t *testing.T) {
	err := Verify(t.TempDir())
	if !errors.Is(err, ErrNoManifest) {
		t.Errorf("expected ErrNoManifest, got %v", err)
	}
}

func TestWriteIsStableAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir)

	first, err := Write(dir)
	if err != nil {
		t.Fatal(err)
	}

	second, err := Write(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Entries) != len(second.Entries) {
		t.Fatalf("entry counts differ: %d vs %d", len(first.Entries), len(second.Entries))
	}

	for i := range first.Entries {
		if first.Entries[i] != second.Entries[i] {
			t.Errorf("entry %d changed between runs: %+v vs %+v", i, first.Entries[i], second.Entries[i])
		}
	}
}
