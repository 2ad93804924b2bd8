package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tiendago/orders/internal/core/domain"
	"github.com/tiendago/orders/internal/core/port"
	"go.uber.org/zap"
)

const authHeaderKey = "Authorization"
const authType = "Bearer"
const shopperPayloadKey = "shopper_payload"

func authCheck(tokenService port.TokenService, h *Handler) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get(authHeaderKey)
		if len(header) == 0 {
			h.handleAbort(ctx, domain.ErrEmptyAuthorizationHeader)
			return
		}

		words := strings.Split(header, " ")
		if len(words) != 2 {
			h.handleAbort(ctx, domain.ErrInvalidAuthorizationHeader)
			return
		}
		if words[0] != authType {
			h.handleAbort(ctx, domain.ErrInvalidAuthorizationType)
			return
		}
		token := words[1]
		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			h.handleAbort(ctx, domain.ErrInvalidToken)
			return
		}

		ctx.Set(shopperPayloadKey, payload)

		ctx.Next()
	}
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
		h.logger.Error("aborting request", zap.Error(err))
	}
	ctx.AbortWithError(statusCode, err)
}

func getAuthPayload(ctx *gin.Context) *port.TokenPayload {
	return ctx.MustGet(shopperPayloadKey).(*port.TokenPayload)
}

const signatureHeaderKey = "x-signature"
const requestIDHeaderKey = "x-request-id"

// signatureCheck verifies the gateway's webhook signature when a secret is
// configured. A bad signature is still acknowledged with 200 (the gateway
// would otherwise retry forever), it just stops processing.
func signatureCheck(secret string, h *Handler) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if secret == "" {
			ctx.Next()
			return
		}

		header := ctx.Request.Header.Get(signatureHeaderKey)
		if !verifySignature(secret, header,
			ctx.Query("data.id"), ctx.Request.Header.Get(requestIDHeaderKey)) {
			h.logger.Warn("Webhook signature verification failed")
			ctx.AbortWithStatusJSON(http.StatusOK, gin.H{"note": "invalid signature"})
			return
		}

		ctx.Next()
	}
}

// verifySignature checks the ts=...,v1=... header form: v1 is an HMAC-SHA256
// over "id:<dataID>;request-id:<requestID>;ts:<ts>;", hex-encoded.
func verifySignature(secret, header, dataID, requestID string) bool {
	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(v1))
}
