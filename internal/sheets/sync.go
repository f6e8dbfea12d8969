package sheets

import (
	"fmt"
	"strings"

	"brochure/internal/storage"
	"brochure/pkg/driveurl"
)

// CellUpdate is a single planned cell rewrite in A1 notation.
type CellUpdate struct {
	Range string
	Value string
}

// FindDriveColumn locates the Drive link column. An exact header match on
// preferred wins; otherwise any header mentioning both "drive" and "link"
// qualifies. Returns -1 when no column matches.
func FindDriveColumn(headers []string, preferred string) int {
	for i, header := range headers {
		if strings.EqualFold(strings.TrimSpace(header), preferred) {
			return i
		}
	}

	for i, header := range headers {
		lower := strings.ToLower(header)
		if strings.Contains(lower, "drive") && strings.Contains(lower, "link") {
			return i
		}
	}

	return -1
}

// PlanUpdates walks the sheet rows (header first) and returns one update per
// Drive link whose file ID appears in the migration mapping. Row numbers are
// 1-based in A1 notation, so data rows start at 2.
func PlanUpdates(sheetName string, rows [][]string, driveCol int, mapping storage.Mapping) []CellUpdate {
	if len(rows) < 2 || driveCol < 0 {
		return nil
	}

	var updates []CellUpdate

	for i, row := range rows[1:] {
		if driveCol >= len(row) {
			continue
		}

		link := strings.TrimSpace(row[driveCol])
		if !driveurl.IsDriveLink(link) {
			continue
		}

		fileID := driveurl.FileID(link)

		s3URL, ok := mapping[fileID]
		if !ok {
			continue
		}

		updates = append(updates, CellUpdate{
			Range: fmt.Sprintf("%s!%s%d", sheetName, columnLetter(driveCol), i+2),
			Value: s3URL,
		})
	}

	return updates
}

// columnLetter converts a zero-based column index to its A1 letter form.
func columnLetter(col int) string {
	letters := ""

	for col >= 0 {
		letters = string(rune('A'+col%26)) + letters
		col = col/26 - 1
	}

	return letters
}
