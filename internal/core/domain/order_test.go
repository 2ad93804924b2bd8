package domain_test

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tiendago/orders/internal/core/domain"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{domain.OrderStatusPending, domain.OrderStatusPaid, true},
		{domain.OrderStatusPending, domain.OrderStatusCancelled, true},
		{domain.OrderStatusPending, domain.OrderStatusShipped, false},
		{domain.OrderStatusPendingWhatsApp, domain.OrderStatusPaid, true},
		{domain.OrderStatusPendingWhatsApp, domain.OrderStatusShipped, true},
		{domain.OrderStatusPendingWhatsApp, domain.OrderStatusDelivered, true},
		{domain.OrderStatusPendingWhatsApp, domain.OrderStatusCancelled, true},
		{domain.OrderStatusPaid, domain.OrderStatusShipped, true},
		{domain.OrderStatusPaid, domain.OrderStatusPending, false},
		{domain.OrderStatusPaid, domain.OrderStatusCancelled, false},
		{domain.OrderStatusShipped, domain.OrderStatusDelivered, true},
		{domain.OrderStatusShipped, domain.OrderStatusPending, false},
		{domain.OrderStatusDelivered, domain.OrderStatusShipped, false},
		{domain.OrderStatusCancelled, domain.OrderStatusPending, false},
		{domain.OrderStatusCancelled, domain.OrderStatusPaid, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.allowed, test.from.CanTransition(test.to),
			"%s -> %s", test.from, test.to)
	}
}

func TestOrder_HasSettlement(t *testing.T) {
	order := domain.Order{
		Status: domain.OrderStatusShipped,
		PaymentAudit: []domain.AuditRecord{
			{FromStatus: domain.OrderStatusPending, ToStatus: domain.OrderStatusPaid, ExternalPaymentID: "PAY1"},
			{FromStatus: domain.OrderStatusPaid, ToStatus: domain.OrderStatusShipped},
		},
	}

	assert.True(t, order.HasSettlement("PAY1"))
	assert.False(t, order.HasSettlement("PAY2"))
	assert.False(t, order.HasSettlement(""))
}

func TestOrderRequest_Validate(t *testing.T) {
	good := func() *domain.OrderRequest {
		return &domain.OrderRequest{
			ShopperID: 1,
			Items: []domain.OrderItem{
				{ProductRef: "p1", Quantity: 2, UnitPrice: decimal.MustParse("10")},
				{ProductRef: "p2", Quantity: 1, UnitPrice: decimal.MustParse("5.50")},
			},
			TotalAmount:   decimal.MustParse("25.50"),
			PaymentMethod: domain.PaymentMethodMercadoPago,
		}
	}

	tests := []struct {
		name     string
		mutate   func(r *domain.OrderRequest)
		expError error
	}{
		{"valid request", func(r *domain.OrderRequest) {}, nil},
		{"valid whatsapp request", func(r *domain.OrderRequest) {
			r.PaymentMethod = domain.PaymentMethodWhatsApp
		}, nil},
		{"unknown payment method", func(r *domain.OrderRequest) {
			r.PaymentMethod = "cash"
		}, domain.ErrPaymentMethodUnknown},
		{"no items", func(r *domain.OrderRequest) {
			r.Items = nil
		}, domain.ErrOrderNoItems},
		{"zero quantity", func(r *domain.OrderRequest) {
			r.Items[0].Quantity = 0
		}, domain.ErrOrderBadQuantity},
		{"negative price", func(r *domain.OrderRequest) {
			r.Items[0].UnitPrice = decimal.MustParse("-1")
		}, domain.ErrOrderBadPrice},
		{"total mismatch", func(r *domain.OrderRequest) {
			r.TotalAmount = decimal.MustParse("30")
		}, domain.ErrOrderAmountMismatch},
		{"zero total", func(r *domain.OrderRequest) {
			r.Items = []domain.OrderItem{{ProductRef: "p1", Quantity: 1, UnitPrice: decimal.Zero}}
			r.TotalAmount = decimal.Zero
		}, domain.ErrOrderBadAmount},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := good()
			test.mutate(r)
			assert.ErrorIs(t, r.Validate(), test.expError)
		})
	}
}
