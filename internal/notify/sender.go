package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// LogSender is the headless platform sender: it records notifications to
// the log. Permission starts in the default state and is granted on the
// first request, matching a user who accepts the prompt.
type LogSender struct {
	logger *zap.Logger

	mu         sync.Mutex
	permission Permission
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{
		logger:     logger,
		permission: PermissionDefault,
	}
}

func (s *LogSender) Permission() Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permission
}

func (s *LogSender) RequestPermission(ctx context.Context) (Permission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.permission == PermissionDefault {
		s.permission = PermissionGranted
	}
	return s.permission, nil
}

func (s *LogSender) Send(ctx context.Context, n Notification) error {
	// TODO: route through an OS notification daemon (notify-send / osascript).
	s.logger.Info("Notification",
		zap.String("tag", n.Tag),
		zap.String("title", n.Title),
		zap.String("body", n.Body),
	)
	return nil
}
