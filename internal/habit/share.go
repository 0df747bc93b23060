package habit

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/apperr"
)

// ShareBackend is the slice of the API client used for social sharing.
type ShareBackend interface {
	ShareProgress(ctx context.Context) (string, error)
	ShareSlack(ctx context.Context, message string) error
}

// Share produces shareable progress text and posts it to third-party
// integrations. Failures here are integration errors: dismissible, never
// touching dashboard state.
type Share struct {
	backend ShareBackend
	logger  *zap.Logger
}

func NewShare(backend ShareBackend, logger *zap.Logger) *Share {
	return &Share{backend: backend, logger: logger}
}

// ProgressText returns the share text. Callers fall back to the clipboard
// when no native share surface is available.
func (s *Share) ProgressText(ctx context.Context) (string, error) {
	text, err := s.backend.ShareProgress(ctx)
	if err != nil {
		return "", &apperr.IntegrationError{Service: "share", Err: err}
	}
	return text, nil
}

// PostToSlack shares today's progress to the connected workspace.
func (s *Share) PostToSlack(ctx context.Context) error {
	text, err := s.backend.ShareProgress(ctx)
	if err != nil {
		return &apperr.IntegrationError{Service: "slack", Err: err}
	}
	if err := s.backend.ShareSlack(ctx, text); err != nil {
		return &apperr.IntegrationError{Service: "slack", Err: err}
	}
	s.logger.Info("Progress shared to Slack")
	return nil
}
