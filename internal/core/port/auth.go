package port

import "github.com/tiendago/orders/internal/core/domain"

type TokenPayload struct {
	ShopperID uint64
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(shopper *domain.Shopper) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
