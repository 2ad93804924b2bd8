package port

import (
	"context"

	"github.com/tiendago/orders/internal/core/domain"
)

type NotificationEvent string

const (
	NotificationOrderReceived   NotificationEvent = "order_received"
	NotificationPaymentApproved NotificationEvent = "payment_approved"
)

// Notifier dispatches order events to the two storefront recipients. Both
// calls are best-effort for every caller in the core: a returned error is
// recorded and logged, never propagated as a request failure.
//
//go:generate mockgen -source=notifier.go -destination=mock/notifier.go -package=mock
type Notifier interface {
	NotifyCustomer(ctx context.Context, event NotificationEvent, order *domain.Order) error
	NotifyMerchant(ctx context.Context, event NotificationEvent, order *domain.Order) error
}
