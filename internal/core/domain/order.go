package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusPendingWhatsApp OrderStatus = "pending_whatsapp"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// statusEdges lists the allowed forward transitions. delivered and cancelled
// are terminal; nothing re-enters pending.
var statusEdges = map[OrderStatus][]OrderStatus{
	OrderStatusPending:         {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPendingWhatsApp: {OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusPaid:            {OrderStatusShipped},
	OrderStatusShipped:         {OrderStatusDelivered},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, edge := range statusEdges[s] {
		if edge == to {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodMercadoPago PaymentMethod = "mercadopago"
	PaymentMethodWhatsApp    PaymentMethod = "whatsapp"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodMercadoPago || m == PaymentMethodWhatsApp
}

// UsesGateway reports whether settlement goes through the payment gateway.
// WhatsApp orders are settled out of band.
func (m PaymentMethod) UsesGateway() bool {
	return m == PaymentMethodMercadoPago
}

// InitialStatus is the pending variant an order starts in for this method.
func (m PaymentMethod) InitialStatus() OrderStatus {
	if m == PaymentMethodWhatsApp {
		return OrderStatusPendingWhatsApp
	}
	return OrderStatusPending
}

type OrderItem struct {
	ProductRef string          `json:"productRef"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

type ShippingInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// AuditRecord is one entry of the append-only payment audit trail. Entries
// are never rewritten after being appended.
type AuditRecord struct {
	FromStatus        OrderStatus `json:"fromStatus"`
	ToStatus          OrderStatus `json:"toStatus"`
	OccurredAt        time.Time   `json:"occurredAt"`
	ExternalPaymentID string      `json:"externalPaymentId,omitempty"`
	Detail            string      `json:"detail,omitempty"`
	CustomerNotified  bool        `json:"customerNotified"`
	MerchantNotified  bool        `json:"merchantNotified"`
	NotifyError       string      `json:"notifyError,omitempty"`
}

type Order struct {
	ID               string
	ShopperID        uint64
	Status           OrderStatus
	IdempotencyKey   string
	TotalAmount      decimal.Decimal
	Items            []OrderItem
	PaymentMethod    PaymentMethod
	PaymentReference string
	PaymentAudit     []AuditRecord
	CancelReason     string
	Shipping         ShippingInfo
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasSettlement reports whether the external payment id already produced a
// paid transition. The audit trail is the source of truth here, not the
// current status.
func (o *Order) HasSettlement(externalPaymentID string) bool {
	for _, rec := range o.PaymentAudit {
		if rec.ToStatus == OrderStatusPaid && rec.ExternalPaymentID == externalPaymentID {
			return true
		}
	}
	return false
}

// ProductRefs returns the product references of the order items, in order.
func (o *Order) ProductRefs() []string {
	refs := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		refs = append(refs, it.ProductRef)
	}
	return refs
}

type OrderRequest struct {
	ShopperID      uint64
	Items          []OrderItem
	TotalAmount    decimal.Decimal
	PaymentMethod  PaymentMethod
	Shipping       ShippingInfo
	IdempotencyKey string
}

// Validate checks the request shape and recomputes the total from the line
// items, rejecting a client-supplied total that does not match.
func (r *OrderRequest) Validate() error {
	if !r.PaymentMethod.Valid() {
		return ErrPaymentMethodUnknown
	}
	if len(r.Items) == 0 {
		return ErrOrderNoItems
	}

	sum := decimal.Zero
	for _, it := range r.Items {
		if it.Quantity <= 0 {
			return ErrOrderBadQuantity
		}
		if it.UnitPrice.IsNeg() {
			return ErrOrderBadPrice
		}
		qty, err := decimal.New(int64(it.Quantity), 0)
		if err != nil {
			return ErrOrderBadQuantity
		}
		line, err := it.UnitPrice.Mul(qty)
		if err != nil {
			return ErrOrderBadPrice
		}
		sum, err = sum.Add(line)
		if err != nil {
			return ErrOrderBadPrice
		}
	}

	if !r.TotalAmount.IsPos() {
		return ErrOrderBadAmount
	}
	if sum.Cmp(r.TotalAmount) != 0 {
		return ErrOrderAmountMismatch
	}

	return nil
}

func (r *OrderRequest) ProductRefs() []string {
	refs := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		refs = append(refs, it.ProductRef)
	}
	return refs
}

type OrderReceipt struct {
	OrderID     string
	CheckoutURL string
}

// NotificationAck is what the webhook endpoint returns to the gateway. It is
// always delivered with a success status; Note carries the internal outcome
// for observability only.
type NotificationAck struct {
	CorrelationID    string      `json:"correlationId"`
	Note             string      `json:"note"`
	PreviousStatus   OrderStatus `json:"previousStatus,omitempty"`
	NewStatus        OrderStatus `json:"newStatus,omitempty"`
	CustomerNotified bool        `json:"customerNotified"`
	MerchantNotified bool        `json:"merchantNotified"`
}
