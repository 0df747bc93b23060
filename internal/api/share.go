package api

import (
	"context"
	"net/http"

	"github.com/Gajendran57/GoalGrid/internal/model"
)

// ShareProgress returns human-readable progress text for the share sheet
// or clipboard fallback.
func (c *Client) ShareProgress(ctx context.Context) (string, error) {
	var out struct {
		Text string `json:"text"`
	}
	if err := c.do(ctx, http.MethodGet, "share_progress", "/api/share/progress", nil, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

// IntegrationStatus reports whether a Slack workspace is connected.
func (c *Client) IntegrationStatus(ctx context.Context) (*model.IntegrationStatus, error) {
	var out model.IntegrationStatus
	if err := c.do(ctx, http.MethodGet, "share_slack_status", "/api/share/slack", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShareSlack posts a progress message to the connected workspace.
func (c *Client) ShareSlack(ctx context.Context, message string) error {
	body := map[string]string{"message": message}
	return c.do(ctx, http.MethodPost, "share_slack", "/api/share/slack", body, nil)
}
