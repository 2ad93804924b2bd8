package notifier

import (
	"context"

	"github.com/tiendago/orders/internal/core/domain"
	"github.com/tiendago/orders/internal/core/port"
	"go.uber.org/zap"
)

// LogNotifier stands in when no broker is configured, e.g. in local
// development. Every notification is only logged.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) NotifyCustomer(ctx context.Context, event port.NotificationEvent, order *domain.Order) error {
	n.logger.Info("Notification (customer)",
		zap.String("event", string(event)), zap.String("order", order.ID))
	return nil
}

func (n *LogNotifier) NotifyMerchant(ctx context.Context, event port.NotificationEvent, order *domain.Order) error {
	n.logger.Info("Notification (merchant)",
		zap.String("event", string(event)), zap.String("order", order.ID))
	return nil
}
