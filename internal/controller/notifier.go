package controller

import "go.uber.org/zap"

// LogNotifier reports outcomes through the structured log. Embedding UIs
// replace it with their own toast/alert implementation.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a notifier over l.
func NewLogNotifier(l *zap.Logger) *LogNotifier {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogNotifier{logger: l}
}

// Success implements Notifier.
func (n *LogNotifier) Success(message string) {
	n.logger.Info("notice", zap.String("kind", "success"), zap.String("message", message))
}

// Alert implements Notifier.
func (n *LogNotifier) Alert(message string) {
	n.logger.Warn("notice", zap.String("kind", "alert"), zap.String("message", message))
}
