package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiendago/orders/internal/core/port"
	"go.uber.org/zap"
)

type WebhookHandler struct {
	Handler
	service port.Service
}

func NewWebhookHandler(service port.Service, logger *zap.Logger) (*WebhookHandler, error) {
	return &WebhookHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

// HandleNotification ingests a payment notification from the gateway. It
// responds 200 no matter what: the gateway treats anything else as an
// invitation to retry, and duplicates are already handled downstream.
func (wh *WebhookHandler) HandleNotification(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		wh.logger.Warn("Webhook body read failed", zap.Error(err))
		ctx.JSON(http.StatusOK, gin.H{"note": "unreadable body"})
		return
	}

	ack := wh.service.HandlePaymentNotification(ctx, body, ctx.Request.URL.Query())

	ctx.JSON(http.StatusOK, ack)
}
