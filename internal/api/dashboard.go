package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gajendran57/GoalGrid/internal/model"
)

// DashboardResponse is the backend's dashboard reply: stats plus one entry
// per active habit joined with today's record.
type DashboardResponse struct {
	Stats  model.DashboardStats   `json:"stats"`
	Habits []model.DashboardEntry `json:"habits"`
}

func (c *Client) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var out DashboardResponse
	if err := c.do(ctx, http.MethodGet, "dashboard", "/api/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyticsOverview returns the trailing N-day completion-rate series and
// per-habit aggregates.
func (c *Client) AnalyticsOverview(ctx context.Context, days int) (*model.AnalyticsSummary, error) {
	var out model.AnalyticsSummary
	path := fmt.Sprintf("/api/analytics/overview?days=%d", days)
	if err := c.do(ctx, http.MethodGet, "analytics_overview", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Streaks(ctx context.Context) ([]model.StreakInfo, error) {
	var out []model.StreakInfo
	if err := c.do(ctx, http.MethodGet, "stats_streaks", "/api/stats/streaks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
