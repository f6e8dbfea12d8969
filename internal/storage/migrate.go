package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"brochure/internal/fetch"
	"brochure/internal/logger"
	"brochure/pkg/driveurl"
)

// Mapping records Drive file ID to migrated S3 URL.
type Mapping map[string]string

// Migrator moves Drive-hosted product images into the object store.
type Migrator struct {
	store      ObjectStore
	downloader *fetch.Downloader
	log        *logger.Logger
	keyPrefix  string
	maxWidth   int

	// resolveURL turns a share link into a fetchable URL; swappable so
	// tests can point at a local server.
	resolveURL func(link string) string
}

// NewMigrator wires a migrator over the given store and downloader.
func NewMigrator(store ObjectStore, downloader *fetch.Downloader, log *logger.Logger, keyPrefix string, maxWidth int) *Migrator {
	return &Migrator{
		store:      store,
		downloader: downloader,
		log:        log,
		keyPrefix:  keyPrefix,
		maxWidth:   maxWidth,
		resolveURL: driveurl.ToDirect,
	}
}

// Migrate downloads each Drive link, optionally downscales it and uploads it
// under keyPrefix. Links that fail to download are logged and skipped; the
// returned mapping covers the successful migrations only.
func (m *Migrator) Migrate(ctx context.Context, links []string) (Mapping, error) {
	mapping := make(Mapping)

	for _, link := range links {
		fileID := driveurl.FileID(link)
		if fileID == "" {
			m.log.Warn("skipping link without a Drive file ID", "url", link)

			continue
		}

		if _, done := mapping[fileID]; done {
			continue
		}

		body, contentType, err := m.downloader.Download(ctx, m.resolveURL(link))
		if err != nil {
			if ctx.Err() != nil {
				return mapping, ctx.Err()
			}

			m.log.Warn("failed to download image", "file_id", fileID, "error", err)

			continue
		}

		body, err = ShrinkToWidth(body, m.maxWidth, contentType)
		if err != nil {
			m.log.Warn("failed to resize image", "file_id", fileID, "error", err)

			continue
		}

		key := path.Join(strings.TrimSuffix(m.keyPrefix, "/"), fileID+extensionFor(contentType))

		url, err := m.store.Put(ctx, key, body, contentType)
		if err != nil {
			return mapping, fmt.Errorf("failed to store %s: %w", fileID, err)
		}

		mapping[fileID] = url

		m.log.Info("migrated image", "file_id", fileID, "key", key, "bytes", len(body))
	}

	return mapping, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// SaveMapping writes the migration mapping as a JSON backup.
func SaveMapping(mapping Mapping, filePath string) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping: %w", err)
	}

	return nil
}

// LoadMapping reads a migration mapping backup.
func LoadMapping(filePath string) (Mapping, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping %s: %w", filePath, err)
	}

	var mapping Mapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse mapping %s: %w", filePath, err)
	}

	return mapping, nil
}
