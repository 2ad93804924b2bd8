package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/govalues/decimal"
	"github.com/tiendago/orders/internal/adapter/config"
	"github.com/tiendago/orders/internal/core/domain"
	"github.com/tiendago/orders/internal/core/port"
	"go.uber.org/zap"
)

// requestTimeout bounds every gateway call so a slow upstream cannot stall
// the webhook handler.
const requestTimeout = 5 * time.Second

type Client struct {
	logger  *zap.Logger
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(cfg *config.MercadoPago, log *zap.Logger) (*Client, error) {
	return &Client{
		logger:  log,
		baseURL: cfg.BaseURL,
		token:   cfg.AccessToken,
		client:  &http.Client{Timeout: requestTimeout},
	}, nil
}

type preferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type preferenceRequest struct {
	Items             []preferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// CreatePreference registers a checkout session for the order. The order id
// travels as external_reference and comes back inside every payment record,
// which is how the webhook flow finds its way back to the order.
func (c *Client) CreatePreference(ctx context.Context, order *domain.Order) (*port.Preference, error) {
	prefReq := preferenceRequest{
		ExternalReference: order.ID,
		Items:             make([]preferenceItem, 0, len(order.Items)),
	}
	for _, it := range order.Items {
		price, ok := it.UnitPrice.Float64()
		if !ok {
			return nil, fmt.Errorf("item price %s not representable", it.UnitPrice)
		}
		prefReq.Items = append(prefReq.Items, preferenceItem{
			Title:     it.ProductRef,
			Quantity:  it.Quantity,
			UnitPrice: price,
		})
	}

	body, err := json.Marshal(prefReq)
	if err != nil {
		return nil, fmt.Errorf("encoding preference request: %w", err)
	}

	var prefResp preferenceResponse
	err = c.doJSON(ctx, http.MethodPost, "/checkout/preferences", bytes.NewReader(body), &prefResp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Created checkout preference",
		zap.String("order", order.ID), zap.String("preference", prefResp.ID))

	return &port.Preference{
		ID:          prefResp.ID,
		CheckoutURL: prefResp.InitPoint,
	}, nil
}

type paymentResponse struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	ExternalReference string      `json:"external_reference"`
	TransactionAmount float64     `json:"transaction_amount"`
	PaymentMethodID   string      `json:"payment_method_id"`
}

// PaymentByID fetches the authoritative payment record.
func (c *Client) PaymentByID(ctx context.Context, paymentID string) (*port.PaymentInfo, error) {
	var payResp paymentResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/payments/"+paymentID, http.NoBody, &payResp)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromFloat64(payResp.TransactionAmount)
	if err != nil {
		return nil, fmt.Errorf("error on response decode: %w", err)
	}

	return &port.PaymentInfo{
		ID:                payResp.ID.String(),
		Status:            payResp.Status,
		ExternalReference: payResp.ExternalReference,
		Amount:            amount,
		Method:            payResp.PaymentMethodID,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, out any) error {
	requestStr := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, requestStr, body)
	if err != nil {
		return fmt.Errorf("error on %s : %w", requestStr, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request error %s : %w", requestStr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("unexpected status for request",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("bad response %v for request %s", resp.StatusCode, requestStr)
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("error on response decode: %w", err)
	}

	return nil
}
