package notify

import (
	"context"

	apporder "shopcore/application/order"
	"shopcore/domain/order"
	"shopcore/pkg/logger"

	"go.uber.org/zap"
)

// LoggingNotifier writes owner notifications to the application log.
// Stands in for an email or push gateway; the notification channel is
// best-effort everywhere it is used.
type LoggingNotifier struct{}

// NewLoggingNotifier creates the notifier.
func NewLoggingNotifier() *LoggingNotifier {
	return &LoggingNotifier{}
}

func (n *LoggingNotifier) Notify(ctx context.Context, owner order.OwnerRef, kind apporder.EventKind, payload map[string]any) error {
	logger.Info("Owner notification",
		zap.String("owner", owner.String()),
		zap.String("kind", string(kind)),
		zap.Any("payload", payload),
	)
	return nil
}

// Compile-time interface implementation check
var _ apporder.Notifier = (*LoggingNotifier)(nil)
