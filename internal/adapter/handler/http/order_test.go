package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tiendago/orders/internal/core/domain"
)

func TestToOrderResp(t *testing.T) {
	order := &domain.Order{
		ID:     "33333333-3333-4333-8333-333333333333",
		Status: domain.OrderStatusPaid,
		Items: []domain.OrderItem{
			{ProductRef: "p1", Quantity: 2, UnitPrice: decimal.MustParse("10")},
			{ProductRef: "p2", Quantity: 1, UnitPrice: decimal.MustParse("5.50")},
		},
		TotalAmount:      decimal.MustParse("25.50"),
		PaymentMethod:    domain.PaymentMethodMercadoPago,
		PaymentReference: "PAY1",
		Shipping:         domain.ShippingInfo{Name: "Ana", Address: "Calle 1", Phone: "555"},
		CreatedAt:        time.Now(),
	}

	resp := toOrderResp(order)

	assert.Equal(t, order.ID, resp.ID)
	assert.Equal(t, "paid", resp.Status)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "p1", resp.Items[0].ProductRef)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "Ana", resp.ShippingInfo.Name)
	assert.Equal(t, "Calle 1", resp.ShippingInfo.Address)

	body, err := json.Marshal(resp)
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"items"`)
	assert.Contains(t, string(body), `"productRef":"p1"`)
	assert.Contains(t, string(body), `"shippingInfo"`)
	assert.Contains(t, string(body), `"name":"Ana"`)
}
