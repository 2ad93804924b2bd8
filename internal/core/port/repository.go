package port

import (
	"context"
	"time"

	"github.com/govalues/decimal"
	"github.com/tiendago/orders/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Shopper
	CreateShopper(ctx context.Context, shopper *domain.Shopper) (*domain.Shopper, error)
	GetShopperByEmail(ctx context.Context, email string) (*domain.Shopper, error)
	ReadShopper(ctx context.Context, shopperID uint64) (*domain.Shopper, error)

	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ReadOrderByIdempotencyKey(ctx context.Context, shopperID uint64, key string) (*domain.Order, error)
	// FindRecentPending looks for a live pending order of the same shopper
	// with the same total and at least one shared product reference, created
	// after since. Used to collapse double submissions into one order.
	FindRecentPending(ctx context.Context, shopperID uint64, total decimal.Decimal,
		productRefs []string, since time.Time) (*domain.Order, error)
	// UpdateOrder is a full replace guarded by the order version; it returns
	// domain.ErrStaleOrderVersion when a concurrent writer got there first.
	UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// CancelStaleOrders cancels the shopper's orders in the given statuses
	// created before olderThan, recording reason. Returns the number of
	// orders cancelled.
	CancelStaleOrders(ctx context.Context, shopperID uint64, statuses []domain.OrderStatus,
		olderThan time.Time, reason string) (int64, error)
	ListOrdersByShopper(ctx context.Context, shopperID uint64) ([]*domain.Order, error)
}
