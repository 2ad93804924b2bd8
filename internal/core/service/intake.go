package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tiendago/orders/internal/core/domain"
	"github.com/tiendago/orders/internal/core/port"
	"go.uber.org/zap"
)

// staleOrderWindow is how long an unpaid order may sit before the next intake
// call from the same shopper cancels it.
const staleOrderWindow = 5 * time.Minute

// recentCandidateWindow bounds the double-submission merge: only a pending
// order younger than this may be reused instead of creating a new one.
const recentCandidateWindow = 3 * time.Minute

const staleCancelReason = "abandoned"

var sweepStatuses = []domain.OrderStatus{
	domain.OrderStatusPending,
	domain.OrderStatusPendingWhatsApp,
}

// PlaceOrder turns a validated order request into a persisted order and, for
// gateway payment methods, a checkout URL. Retried submissions collapse into
// the existing order via the idempotency key or the recent-candidate match.
func (s *Service) PlaceOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderReceipt, error) {
	swept, err := s.repo.CancelStaleOrders(ctx, req.ShopperID, sweepStatuses,
		time.Now().Add(-staleOrderWindow), staleCancelReason)
	if err != nil {
		s.logger.Warn("Stale order sweep", zap.Error(err))
	} else if swept > 0 {
		s.logger.Info("Cancelled stale orders",
			zap.Uint64("shopper", req.ShopperID), zap.Int64("count", swept))
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.ReadShopper(ctx, req.ShopperID); err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read shopper", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if req.IdempotencyKey != "" {
		receipt, err := s.reuseByIdempotencyKey(ctx, req)
		if err != nil || receipt != nil {
			return receipt, err
		}
	}

	order, err := s.findOrCreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	receipt := &domain.OrderReceipt{OrderID: order.ID}

	if order.PaymentMethod.UsesGateway() {
		pref, err := s.gateway.CreatePreference(ctx, order)
		if err != nil {
			s.logger.Error("Create preference",
				zap.String("order", order.ID), zap.Error(err))
			s.cancelOrder(ctx, order, "payment preference creation failed: "+err.Error())
			return nil, domain.ErrPaymentGateway
		}
		receipt.CheckoutURL = pref.CheckoutURL
	}

	go s.notifyOrderReceived(order)

	return receipt, nil
}

// reuseByIdempotencyKey returns a receipt for an already-submitted order, or
// (nil, nil) when the key is unseen and a fresh order should be created.
func (s *Service) reuseByIdempotencyKey(ctx context.Context, req *domain.OrderRequest) (*domain.OrderReceipt, error) {
	exOrder, err := s.repo.ReadOrderByIdempotencyKey(ctx, req.ShopperID, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, nil
		}
		s.logger.Error("Read order by idempotency key", zap.Error(err))
		return nil, domain.ErrInternal
	}

	s.logger.Info("Reusing order for retried submission",
		zap.String("order", exOrder.ID), zap.String("key", req.IdempotencyKey))

	receipt := &domain.OrderReceipt{OrderID: exOrder.ID}
	if exOrder.PaymentMethod.UsesGateway() {
		// The first preference may have failed or expired; request a fresh
		// one against the same order.
		pref, err := s.gateway.CreatePreference(ctx, exOrder)
		if err != nil {
			s.logger.Error("Create preference for reused order",
				zap.String("order", exOrder.ID), zap.Error(err))
			return nil, domain.ErrPaymentGateway
		}
		receipt.CheckoutURL = pref.CheckoutURL
	}

	return receipt, nil
}

// findOrCreateOrder either merges the request into a recent pending order of
// the same shopper (last write wins, collapsing double-clicks) or persists a
// new one.
func (s *Service) findOrCreateOrder(ctx context.Context, req *domain.OrderRequest) (*domain.Order, error) {
	candidate, err := s.recentCandidate(ctx, req)
	if err != nil {
		return nil, err
	}

	if candidate != nil {
		merged, err := s.mergeCandidate(ctx, req, candidate)
		if err == nil {
			return merged, nil
		}
		if !errors.Is(err, domain.ErrStaleOrderVersion) {
			return nil, err
		}

		// A double click racing itself: the other submission bumped the
		// candidate's version first. Re-run the match against the fresh row.
		candidate, err = s.recentCandidate(ctx, req)
		if err != nil {
			return nil, err
		}
		if candidate != nil {
			merged, err = s.mergeCandidate(ctx, req, candidate)
			if err == nil {
				return merged, nil
			}
			if errors.Is(err, domain.ErrStaleOrderVersion) {
				return nil, domain.ErrConflictingData
			}
			return nil, err
		}
	}

	order := &domain.Order{
		ID:             uuid.NewString(),
		ShopperID:      req.ShopperID,
		Status:         req.PaymentMethod.InitialStatus(),
		IdempotencyKey: req.IdempotencyKey,
		TotalAmount:    req.TotalAmount,
		Items:          req.Items,
		PaymentMethod:  req.PaymentMethod,
		Shipping:       req.Shipping,
		CreatedAt:      time.Now(),
	}

	newOrder, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrConflictingData
		}
		s.logger.Error("Create order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newOrder, nil
}

// recentCandidate wraps the double-submission match; (nil, nil) means no
// mergeable order exists.
func (s *Service) recentCandidate(ctx context.Context, req *domain.OrderRequest) (*domain.Order, error) {
	candidate, err := s.repo.FindRecentPending(ctx, req.ShopperID, req.TotalAmount,
		req.ProductRefs(), time.Now().Add(-recentCandidateWindow))
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, nil
		}
		s.logger.Error("Find recent pending order", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return candidate, nil
}

// mergeCandidate overwrites the candidate with the new submission. A stale
// version is passed through for the caller to retry.
func (s *Service) mergeCandidate(ctx context.Context, req *domain.OrderRequest, candidate *domain.Order) (*domain.Order, error) {
	candidate.Items = req.Items
	candidate.Shipping = req.Shipping
	candidate.PaymentMethod = req.PaymentMethod
	candidate.TotalAmount = req.TotalAmount
	candidate.Status = req.PaymentMethod.InitialStatus()
	if req.IdempotencyKey != "" {
		candidate.IdempotencyKey = req.IdempotencyKey
	}

	merged, err := s.repo.UpdateOrder(ctx, candidate)
	if err != nil {
		if errors.Is(err, domain.ErrStaleOrderVersion) {
			return nil, err
		}
		s.logger.Error("Merge into recent order",
			zap.String("order", candidate.ID), zap.Error(err))
		return nil, domain.ErrInternal
	}
	s.logger.Info("Merged submission into recent order", zap.String("order", merged.ID))
	return merged, nil
}

// cancelOrder marks the order cancelled with a reason so a failed gateway
// call never leaves it dangling in pending. Best-effort: a failed save is
// logged, the caller surfaces the original gateway error either way.
func (s *Service) cancelOrder(ctx context.Context, order *domain.Order, reason string) {
	order.PaymentAudit = append(order.PaymentAudit, domain.AuditRecord{
		FromStatus: order.Status,
		ToStatus:   domain.OrderStatusCancelled,
		OccurredAt: time.Now(),
		Detail:     reason,
	})
	order.Status = domain.OrderStatusCancelled
	order.CancelReason = reason

	if _, err := s.repo.UpdateOrder(ctx, order); err != nil {
		s.logger.Error("Cancel order after gateway failure",
			zap.String("order", order.ID), zap.Error(err))
	}
}

func (s *Service) notifyOrderReceived(order *domain.Order) {
	ctx := context.Background()
	if err := s.notifier.NotifyCustomer(ctx, port.NotificationOrderReceived, order); err != nil {
		s.logger.Warn("Notify customer about new order",
			zap.String("order", order.ID), zap.Error(err))
	}
	if err := s.notifier.NotifyMerchant(ctx, port.NotificationOrderReceived, order); err != nil {
		s.logger.Warn("Notify merchant about new order",
			zap.String("order", order.ID), zap.Error(err))
	}
}
