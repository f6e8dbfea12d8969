// Package manifest writes and verifies the sha256 integrity manifest for a
// rendered brochure directory.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileName is the manifest file written into the output directory.
const FileName = "manifest.json"

// Manifest verification errors.
var (
	ErrNoManifest      = errors.New("no manifest found")
	ErrHashMismatch    = errors.New("hash mismatch")
	ErrMissingArtifact = errors.New("artifact missing")
)

// Entry records one output artifact.
type Entry struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
}

// Manifest covers every artifact in an output directory.
type Manifest struct {
	GeneratedAt time.Time `json:"generated_at"`
	Entries     []Entry   `json:"entries"`
}

// Write walks dir, hashes every regular file and writes FileName into dir.
// The manifest file itself is excluded. Entries are sorted by path so repeat
// builds over identical artifacts produce identical manifests apart from the
// timestamp.
func Write(dir string) (*Manifest, error) {
	manifest := &Manifest{GeneratedAt: time.Now().UTC()}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		if rel == FileName {
			return nil
		}

		sum, size, err := hashFile(path)
		if err != nil {
			return err
		}

		manifest.Entries = append(manifest.Entries, Entry{
			Path:   filepath.ToSlash(rel),
			SHA256: sum,
			Size:   size,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Slice(manifest.Entries, func(i, j int) bool {
		return manifest.Entries[i].Path < manifest.Entries[j].Path
	})

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return manifest, nil
}

// Load reads the manifest from dir.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoManifest
		}

		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &manifest, nil
}

// Verify re-hashes every entry in the manifest under dir and reports the
// first discrepancy.
func Verify(dir string) error {
	manifest, err := Load(dir)
	if err != nil {
		return err
	}

	for _, entry := range manifest.Entries {
		path := filepath.Join(dir, filepath.FromSlash(entry.Path))

		sum, _, err := hashFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrMissingArtifact, entry.Path)
			}

			return fmt.Errorf("failed to hash %s: %w", entry.Path, err)
		}

		if sum != entry.SHA256 {
			return fmt.Errorf("%w: %s", ErrHashMismatch, entry.Path)
		}
	}

	return nil
}

func hashFile(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	hasher := sha256.New()

	size, err := io.Copy(hasher, file)
	if err != nil {
		return "", 0, err
	}

	return hex.EncodeToString(hasher.Sum(nil)), size, nil
}
