package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Gajendran57/GoalGrid/internal/model"
)

// Export is a downloaded habit archive.
type Export struct {
	Data        []byte
	ContentType string
}

// ImportRequest carries habits and records to restore.
type ImportRequest struct {
	Habits  []model.Habit       `json:"habits"`
	Records []model.DailyRecord `json:"records"`
}

// ImportResult reports what the backend accepted.
type ImportResult struct {
	ImportedHabits  int `json:"imported_habits"`
	ImportedRecords int `json:"imported_records"`
}

// ExportHabits downloads the user's habits in the requested format
// ("json" or "csv").
func (c *Client) ExportHabits(ctx context.Context, format string) (*Export, error) {
	path := fmt.Sprintf("/api/export/habits?format=%s", url.QueryEscape(format))
	data, contentType, err := c.doRaw(ctx, http.MethodGet, "export_habits", path)
	if err != nil {
		return nil, err
	}
	return &Export{Data: data, ContentType: contentType}, nil
}

// ImportHabits restores habits and records from an archive.
func (c *Client) ImportHabits(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	var out ImportResult
	if err := c.do(ctx, http.MethodPost, "import_habits", "/api/import/habits", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
