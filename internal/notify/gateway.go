package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Permission mirrors the platform notification permission states.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notification is one local notification. Tag identifies it for dedupe;
// re-sending a tag while one is visible is a no-op at the gateway.
type Notification struct {
	Tag   string
	Title string
	Body  string
}

// Sender is the platform capability boundary: the OS/browser surface that
// actually displays notifications.
type Sender interface {
	Permission() Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Send(ctx context.Context, n Notification) error
}

// Gateway wraps the platform capability with permission handling and
// tag-based dedupe.
type Gateway struct {
	sender Sender
	tags   TagRegistry
	logger *zap.Logger
}

func NewGateway(sender Sender, tags TagRegistry, logger *zap.Logger) *Gateway {
	return &Gateway{
		sender: sender,
		tags:   tags,
		logger: logger,
	}
}

// Permission reports the current platform permission state.
func (g *Gateway) Permission() Permission {
	return g.sender.Permission()
}

// EnsurePermission asks the platform for permission when the user has not
// decided yet. A denied state is respected, never re-prompted.
func (g *Gateway) EnsurePermission(ctx context.Context) Permission {
	p := g.sender.Permission()
	if p != PermissionDefault {
		return p
	}
	granted, err := g.sender.RequestPermission(ctx)
	if err != nil {
		g.logger.Warn("Notification permission request failed", zap.Error(err))
		return PermissionDefault
	}
	return granted
}

// Notify displays a notification unless one with the same tag is already
// visible. Callers treat failures as best-effort; nothing here is fatal.
func (g *Gateway) Notify(ctx context.Context, n Notification) error {
	if p := g.EnsurePermission(ctx); p != PermissionGranted {
		g.logger.Debug("Notification suppressed, permission not granted",
			zap.String("tag", n.Tag),
			zap.String("permission", string(p)),
		)
		return nil
	}

	if !g.tags.AcquireOnce(ctx, n.Tag) {
		return nil
	}

	if err := g.sender.Send(ctx, n); err != nil {
		g.logger.Warn("Failed to display notification",
			zap.String("tag", n.Tag),
			zap.Error(err),
		)
		return fmt.Errorf("failed to display notification: %w", err)
	}
	return nil
}
