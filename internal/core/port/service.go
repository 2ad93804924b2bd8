package port

import (
	"context"
	"net/url"

	"github.com/tiendago/orders/internal/core/domain"
)

type Service interface {
	RegisterShopper(ctx context.Context, shopper *domain.Shopper) (*domain.Shopper, error)
	LoginShopper(ctx context.Context, email string, password string) (string, error)

	PlaceOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderReceipt, error)
	GetOrder(ctx context.Context, shopperID uint64, orderID string) (*domain.Order, error)
	GetOrdersByShopper(ctx context.Context, shopperID uint64) ([]*domain.Order, error)

	// HandlePaymentNotification never fails from the caller's point of view:
	// whatever happens internally, it returns an ack for the gateway.
	HandlePaymentNotification(ctx context.Context, body []byte, query url.Values) *domain.NotificationAck
}
