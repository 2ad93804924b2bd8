package http

import (
	"github.com/gin-gonic/gin"
	"github.com/tiendago/orders/internal/core/domain"
	"github.com/tiendago/orders/internal/core/port"
	"github.com/tiendago/orders/internal/core/utils"
	"go.uber.org/zap"
)

type ShopperHandler struct {
	Handler
	service port.Service
}

type ShopperRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewShopperHandler(service port.Service, logger *zap.Logger) (*ShopperHandler, error) {
	return &ShopperHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (sh *ShopperHandler) RegisterShopper(ctx *gin.Context) {
	shopperReq := ShopperRequest{}
	err := ctx.ShouldBindBodyWithJSON(&shopperReq)
	if err != nil {
		sh.handleValidationError(ctx, err)
		return
	}

	// Hash password
	hashed, err := utils.HashPassword(shopperReq.Password)
	if err != nil {
		sh.handleError(ctx, domain.ErrInternal)
		return
	}

	shopper := &domain.Shopper{
		Email:    shopperReq.Email,
		Password: hashed,
	}

	_, err = sh.service.RegisterShopper(ctx, shopper)
	if err != nil {
		sh.handleError(ctx, err)
		return
	}

	// Token return
	sh.LoginShopper(ctx)
}

func (sh *ShopperHandler) LoginShopper(ctx *gin.Context) {
	shopperReq := ShopperRequest{}
	err := ctx.ShouldBindBodyWithJSON(&shopperReq)
	if err != nil {
		sh.handleValidationError(ctx, err)
		return
	}

	token, err := sh.service.LoginShopper(ctx, shopperReq.Email, shopperReq.Password)
	if err != nil {
		sh.handleError(ctx, err)
		return
	}

	sh.handleSuccess(ctx, struct {
		Token string `json:"token"`
	}{Token: token})
}
