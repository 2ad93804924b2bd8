package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/tiendago/orders/internal/core/domain"
	"github.com/tiendago/orders/internal/core/port"
	"go.uber.org/zap"
)

type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	s := fmt.Sprintf("%f", decimal.Decimal(j))
	return []byte(s), nil
}

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type OrderItemReq struct {
	ProductRef string  `json:"productRef"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
}

type ShippingReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type PlaceOrderReq struct {
	Items          []OrderItemReq `json:"items"`
	TotalAmount    float64        `json:"totalAmount"`
	PaymentMethod  string         `json:"paymentMethod"`
	ShippingInfo   ShippingReq    `json:"shippingInfo"`
	IdempotencyKey string         `json:"idempotencyKey"`
}

type OrderReceiptResp struct {
	OrderID     string `json:"orderId"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}

func (oh *OrderHandler) PlaceOrder(ctx *gin.Context) {
	shopperID := getAuthPayload(ctx).ShopperID

	orderReq := PlaceOrderReq{}
	err := ctx.ShouldBindBodyWithJSON(&orderReq)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	req, err := toDomainRequest(shopperID, &orderReq)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	receipt, err := oh.service.PlaceOrder(ctx, req)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, OrderReceiptResp{
		OrderID:     receipt.OrderID,
		CheckoutURL: receipt.CheckoutURL,
	}, http.StatusCreated)
}

func toDomainRequest(shopperID uint64, orderReq *PlaceOrderReq) (*domain.OrderRequest, error) {
	total, err := decimal.NewFromFloat64(orderReq.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(orderReq.Items))
	for _, it := range orderReq.Items {
		price, err := decimal.NewFromFloat64(it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductRef: it.ProductRef,
			Quantity:   it.Quantity,
			UnitPrice:  price,
		})
	}

	return &domain.OrderRequest{
		ShopperID:     shopperID,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: domain.PaymentMethod(orderReq.PaymentMethod),
		Shipping: domain.ShippingInfo{
			Name:    orderReq.ShippingInfo.Name,
			Address: orderReq.ShippingInfo.Address,
			Phone:   orderReq.ShippingInfo.Phone,
		},
		IdempotencyKey: orderReq.IdempotencyKey,
	}, nil
}

type OrderItemResp struct {
	ProductRef string      `json:"productRef"`
	Quantity   int         `json:"quantity"`
	UnitPrice  jsonDecimal `json:"unitPrice"`
}

type OrderResp struct {
	ID               string          `json:"id"`
	Status           string          `json:"status"`
	TotalAmount      jsonDecimal     `json:"totalAmount"`
	Items            []OrderItemResp `json:"items"`
	PaymentMethod    string          `json:"paymentMethod"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	ShippingInfo     ShippingReq     `json:"shippingInfo"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func toOrderResp(o *domain.Order) OrderResp {
	items := make([]OrderItemResp, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResp{
			ProductRef: it.ProductRef,
			Quantity:   it.Quantity,
			UnitPrice:  jsonDecimal(it.UnitPrice),
		})
	}

	return OrderResp{
		ID:               o.ID,
		Status:           string(o.Status),
		TotalAmount:      jsonDecimal(o.TotalAmount),
		Items:            items,
		PaymentMethod:    string(o.PaymentMethod),
		PaymentReference: o.PaymentReference,
		ShippingInfo: ShippingReq{
			Name:    o.Shipping.Name,
			Address: o.Shipping.Address,
			Phone:   o.Shipping.Phone,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (oh *OrderHandler) ListOrdersByShopper(ctx *gin.Context) {
	shopperID := getAuthPayload(ctx).ShopperID

	list, err := oh.service.GetOrdersByShopper(ctx, shopperID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, o := range list {
		result = append(result, toOrderResp(o))
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	shopperID := getAuthPayload(ctx).ShopperID

	order, err := oh.service.GetOrder(ctx, shopperID, ctx.Param("id"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, toOrderResp(order))
}
