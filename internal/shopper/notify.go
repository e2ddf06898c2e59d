package shopper

import (
	"go.uber.org/zap"
)

// Level grades a notification for the view layer.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// Notification is a transient, dismissible message for the shopper. No
// failure in this package ever propagates as a crash into the rendering
// layer; it becomes one of these instead.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives user-facing notifications.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier logs notifications. The gateway uses it as the fallback sink;
// views that poll the API see errors in the response envelope instead.
type LogNotifier struct {
	lg *zap.Logger
}

// NewLogNotifier returns a Notifier writing to lg.
func NewLogNotifier(lg *zap.Logger) *LogNotifier {
	return &LogNotifier{lg: lg}
}

func (n *LogNotifier) Notify(note Notification) {
	switch note.Level {
	case LevelError:
		n.lg.Error("notification", zap.String("message", note.Message))
	case LevelWarning:
		n.lg.Warn("notification", zap.String("message", note.Message))
	default:
		n.lg.Info("notification", zap.String("message", note.Message))
	}
}
