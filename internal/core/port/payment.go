package port

import (
	"context"

	"github.com/govalues/decimal"
	"github.com/tiendago/orders/internal/core/domain"
)

// PaymentStatusApproved is the gateway status that settles an order. Any
// other status leaves the order untouched.
const PaymentStatusApproved = "approved"

// Preference is a checkout session created at the gateway for one order.
type Preference struct {
	ID          string
	CheckoutURL string
}

// PaymentInfo is the authoritative payment record fetched from the gateway.
// ExternalReference carries the order id the preference was created with.
type PaymentInfo struct {
	ID                string
	Status            string
	ExternalReference string
	Amount            decimal.Decimal
	Method            string
}

//go:generate mockgen -source=payment.go -destination=mock/payment.go -package=mock
type PaymentGateway interface {
	CreatePreference(ctx context.Context, order *domain.Order) (*Preference, error)
	PaymentByID(ctx context.Context, paymentID string) (*PaymentInfo, error)
}
