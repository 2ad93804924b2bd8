package service

import (
	"context"
	"errors"

	"github.com/tiendago/orders/internal/core/domain"
	"github.com/tiendago/orders/internal/core/port"
	"github.com/tiendago/orders/internal/core/utils"
	"go.uber.org/zap"
)

type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	gateway      port.PaymentGateway
	notifier     port.Notifier
	logger       *zap.Logger
}

func NewService(repo port.Repository, tokenService port.TokenService,
	gateway port.PaymentGateway, notifier port.Notifier, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		gateway:      gateway,
		notifier:     notifier,
		logger:       logger,
	}, nil
}

func (s *Service) RegisterShopper(ctx context.Context, shopper *domain.Shopper) (*domain.Shopper, error) {
	exShopper, err := s.repo.GetShopperByEmail(ctx, shopper.Email)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get shopper", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if exShopper != nil {
		return nil, domain.ErrConflictingData
	}

	newShopper, err := s.repo.CreateShopper(ctx, shopper)
	if err != nil {
		s.logger.Error("Create shopper", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newShopper, nil
}

func (s *Service) LoginShopper(ctx context.Context, email string, password string) (string, error) {
	shopper, err := s.repo.GetShopperByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, shopper.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(shopper)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

func (s *Service) GetOrder(ctx context.Context, shopperID uint64, orderID string) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ShopperID != shopperID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *Service) GetOrdersByShopper(ctx context.Context, shopperID uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByShopper(ctx, shopperID)
	if err != nil {
		s.logger.Error("Get orders for shopper", zap.Error(err))
		return nil, err
	}
	return list, nil
}
