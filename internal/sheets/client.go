// Package sheets rewrites Google Drive image links in the product
// spreadsheet with their migrated S3 URLs.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrNoCredentials is returned when neither a credentials file nor an API
// key is supplied.
var ErrNoCredentials = errors.New("no sheets credentials provided")

// Client wraps the Sheets API for reading and batch-updating a spreadsheet.
type Client struct {
	service *sheets.Service
}

// NewClient authenticates with a Service Account file when available,
// falling back to an API key (read-only access).
func NewClient(ctx context.Context, credentialsPath, apiKey string) (*Client, error) {
	var opt option.ClientOption

	switch {
	case credentialsPath != "":
		opt = option.WithCredentialsFile(credentialsPath)
	case apiKey != "":
		opt = option.WithAPIKey(apiKey)
	default:
		return nil, ErrNoCredentials
	}

	service, err := sheets.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{service: service}, nil
}

// GetSheetData reads every populated row of the named sheet as strings.
func (c *Client) GetSheetData(ctx context.Context, spreadsheetID, sheetName string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	rows := make([][]string, 0, len(resp.Values))

	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ApplyUpdates writes the planned cell updates in one batch.
func (c *Client) ApplyUpdates(ctx context.Context, spreadsheetID string, updates []CellUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	data := make([]*sheets.ValueRange, 0, len(updates))

	for _, update := range updates {
		data = append(data, &sheets.ValueRange{
			Range:  update.Range,
			Values: [][]any{{update.Value}},
		})
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}

	if _, err := c.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to batch update: %w", err)
	}

	return nil
}
