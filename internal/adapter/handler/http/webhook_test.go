package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tiendago/orders/internal/core/domain"
	"go.uber.org/zap"
)

type stubService struct {
	ack      *domain.NotificationAck
	called   bool
	gotBody  []byte
	gotQuery url.Values
}

func (s *stubService) RegisterShopper(ctx context.Context, shopper *domain.Shopper) (*domain.Shopper, error) {
	return nil, domain.ErrInternal
}

func (s *stubService) LoginShopper(ctx context.Context, email string, password string) (string, error) {
	return "", domain.ErrInternal
}

func (s *stubService) PlaceOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderReceipt, error) {
	return nil, domain.ErrInternal
}

func (s *stubService) GetOrder(ctx context.Context, shopperID uint64, orderID string) (*domain.Order, error) {
	return nil, domain.ErrDataNotFound
}

func (s *stubService) GetOrdersByShopper(ctx context.Context, shopperID uint64) ([]*domain.Order, error) {
	return nil, nil
}

func (s *stubService) HandlePaymentNotification(ctx context.Context, body []byte, query url.Values) *domain.NotificationAck {
	s.called = true
	s.gotBody = body
	s.gotQuery = query
	return s.ack
}

func webhookRouter(t *testing.T, secret string, svc *stubService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, _ := zap.NewProduction()
	h := NewHandler(logger)
	wh, err := NewWebhookHandler(svc, logger)
	assert.NoError(t, err)

	router := gin.New()
	router.POST("/api/payments/webhook", signatureCheck(secret, h), wh.HandleNotification)
	return router
}

func signHeader(secret, dataID, requestID, ts string) string {
	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return fmt.Sprintf("ts=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestWebhookEndpoint_AlwaysAcks(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"valid payment body", `{"type":"payment","data":{"id":"PAY1"}}`},
		{"garbage body", `{{{`},
		{"empty body", ``},
		{"unrelated event", `{"type":"test"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc := &stubService{ack: &domain.NotificationAck{CorrelationID: "c1", Note: "ok"}}
			router := webhookRouter(t, "", svc)

			req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook",
				bytes.NewBufferString(test.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, svc.called)
			assert.Equal(t, []byte(test.body), svc.gotBody)
			assert.Contains(t, rec.Body.String(), "c1")
		})
	}
}

func TestWebhookEndpoint_SignatureCheck(t *testing.T) {
	const secret = "shhh"

	t.Run("valid signature is processed", func(t *testing.T) {
		svc := &stubService{ack: &domain.NotificationAck{Note: "ok"}}
		router := webhookRouter(t, secret, svc)

		req := httptest.NewRequest(http.MethodPost,
			"/api/payments/webhook?data.id=PAY1", bytes.NewBufferString(`{}`))
		req.Header.Set("x-request-id", "req-1")
		req.Header.Set("x-signature", signHeader(secret, "PAY1", "req-1", "1700000000"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.called)
	})

	t.Run("bad signature is acked but not processed", func(t *testing.T) {
		svc := &stubService{ack: &domain.NotificationAck{Note: "ok"}}
		router := webhookRouter(t, secret, svc)

		req := httptest.NewRequest(http.MethodPost,
			"/api/payments/webhook?data.id=PAY1", bytes.NewBufferString(`{}`))
		req.Header.Set("x-request-id", "req-1")
		req.Header.Set("x-signature", signHeader("wrong", "PAY1", "req-1", "1700000000"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, svc.called)
		assert.Contains(t, rec.Body.String(), "invalid signature")
	})

	t.Run("missing signature header is acked but not processed", func(t *testing.T) {
		svc := &stubService{ack: &domain.NotificationAck{Note: "ok"}}
		router := webhookRouter(t, secret, svc)

		req := httptest.NewRequest(http.MethodPost,
			"/api/payments/webhook?data.id=PAY1", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, svc.called)
	})
}

func TestVerifySignature(t *testing.T) {
	const secret = "shhh"

	valid := signHeader(secret, "PAY1", "req-1", "1700000000")

	assert.True(t, verifySignature(secret, valid, "PAY1", "req-1"))
	assert.False(t, verifySignature(secret, valid, "PAY2", "req-1"))
	assert.False(t, verifySignature(secret, valid, "PAY1", "req-2"))
	assert.False(t, verifySignature("other", valid, "PAY1", "req-1"))
	assert.False(t, verifySignature(secret, "ts=1700000000", "PAY1", "req-1"))
	assert.False(t, verifySignature(secret, "", "PAY1", "req-1"))
}
