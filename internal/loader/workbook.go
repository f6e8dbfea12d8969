package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"brochure/internal/models"
	"brochure/pkg/driveurl"
)

// Workbook errors.
var (
	ErrNoSheets    = errors.New("workbook has no sheets")
	ErrNoHeaderRow = errors.New("workbook has no header row")
)

// headerAliases maps spreadsheet column titles to canonical record keys.
// Matching is case-insensitive on the trimmed title.
var headerAliases = map[string]string{
	"id":             "id",
	"name":           "name",
	"product name":   "name",
	"model":          "model",
	"model number":   "model",
	"category":       "category",
	"supplier":       "supplier",
	"status":         "status",
	"price":          "price",
	"currency":       "currency",
	"image":          "images",
	"drive link":     "images",
	"specifications": "specifications",
	"features":       "features",
}

// LoadWorkbook reads product rows from the first sheet of an XLSX workbook.
// The first row must be a header; unknown columns are ignored.
func LoadWorkbook(path string) ([]models.RawProduct, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrNoHeaderRow
	}

	columns := mapColumns(rows[0])

	var records []models.RawProduct

	for _, row := range rows[1:] {
		record := rowToRecord(row, columns)
		if len(record) > 0 {
			records = append(records, record)
		}
	}

	return records, nil
}

func mapColumns(header []string) map[int]string {
	columns := make(map[int]string, len(header))

	for i, title := range header {
		key, ok := headerAliases[strings.ToLower(strings.TrimSpace(title))]
		if ok {
			columns[i] = key
		}
	}

	return columns
}

func rowToRecord(row []string, columns map[int]string) models.RawProduct {
	record := models.RawProduct{}

	var specBlob, featureBlob string

	for i, cell := range row {
		key, ok := columns[i]
		if !ok || strings.TrimSpace(cell) == "" {
			continue
		}

		cell = strings.TrimSpace(cell)

		switch key {
		case "specifications":
			specBlob = cell
		case "features":
			featureBlob = cell
		case "images":
			// Drive share links embed a view page, not an image; non-Drive
			// URLs pass through unchanged.
			record["images"] = driveurl.ToDirect(cell)
		default:
			record[key] = cell
		}
	}

	if specBlob != "" || featureBlob != "" {
		record["specifications"] = map[string]any{
			"specifications": specBlob,
			"features":       featureBlob,
		}
	}

	return record
}
