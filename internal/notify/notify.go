// Package notify carries user-facing notifications out of the service layer.
// Handlers and background flows emit notifications; the delivery mechanism is
// pluggable.
package notify

import (
	"context"
	"log/slog"
	"time"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Default display durations. Blocked is used when login attempts are
// exhausted and the user must wait before retrying.
const (
	DefaultDuration = 6 * time.Second
	BlockedDuration = 120 * time.Second
)

// Notification is a message destined for the user.
type Notification struct {
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Severity Severity      `json:"severity"`
	Duration time.Duration `json:"duration"`
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the structured log. It is the default
// sink when no richer channel is wired.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notification Notification) {
	n.logger.InfoContext(ctx, "user notification",
		slog.String("title", notification.Title),
		slog.String("message", notification.Message),
		slog.String("severity", string(notification.Severity)),
		slog.Duration("duration", notification.Duration),
	)
}
