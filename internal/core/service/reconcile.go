package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/tiendago/orders/internal/core/domain"
	"github.com/tiendago/orders/internal/core/port"
	"go.uber.org/zap"
)

// maxTransitionAttempts bounds the optimistic-concurrency retry when two
// deliveries of the same payment race on one order.
const maxTransitionAttempts = 3

// paymentNotification covers the payload shapes the gateway delivers: the
// current {"type":"payment","data":{"id":...}} form and the legacy topic
// form. Payment ids arrive as numbers or strings depending on the channel.
type paymentNotification struct {
	Type   string      `json:"type"`
	Topic  string      `json:"topic"`
	Action string      `json:"action"`
	ID     json.Number `json:"id"`
	Data   struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// HandlePaymentNotification applies an asynchronous payment notification to
// the referenced order. It never signals failure to the caller: the gateway
// retries aggressively on anything but success, so every internal error is
// logged under a correlation id and acked anyway.
func (s *Service) HandlePaymentNotification(ctx context.Context, body []byte, query url.Values) *domain.NotificationAck {
	ack := &domain.NotificationAck{CorrelationID: uuid.NewString()}
	log := s.logger.With(zap.String("correlation_id", ack.CorrelationID))

	paymentID, ok := parseNotification(body, query)
	if !ok {
		ack.Note = "ignored: not a payment notification"
		return ack
	}
	if paymentID == "" {
		log.Info("Payment notification without payment id")
		ack.Note = "ignored: no payment id"
		return ack
	}

	// The webhook body is a pointer, not the source of truth. Fetch the
	// authoritative payment record before touching anything.
	info, err := s.gateway.PaymentByID(ctx, paymentID)
	if err != nil {
		log.Error("Payment lookup", zap.String("payment", paymentID), zap.Error(err))
		ack.Note = "gateway lookup failed"
		return ack
	}

	if info.ExternalReference == "" {
		log.Info("Payment without external reference", zap.String("payment", info.ID))
		ack.Note = "ignored: no external reference"
		return ack
	}

	log = log.With(zap.String("order", info.ExternalReference), zap.String("payment", info.ID))

	return s.settleOrder(ctx, log, info, ack)
}

// settleOrder runs the guarded pending → paid transition, retrying the
// read-check-write cycle when a concurrent writer bumps the order version.
func (s *Service) settleOrder(ctx context.Context, log *zap.Logger,
	info *port.PaymentInfo, ack *domain.NotificationAck) *domain.NotificationAck {

	notified := false
	var outcome domain.AuditRecord

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		order, err := s.repo.ReadOrder(ctx, info.ExternalReference)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				log.Info("Order not found for payment notification")
				ack.Note = "order not found"
				return ack
			}
			log.Error("Order lookup", zap.Error(err))
			ack.Note = "order lookup failed"
			return ack
		}

		ack.PreviousStatus = order.Status
		ack.NewStatus = order.Status

		// Duplicate-suppression point: only an approved payment moves a
		// not-yet-paid order, and each external payment id settles at most
		// once (the audit trail already records replays).
		if info.Status != port.PaymentStatusApproved ||
			order.Status == domain.OrderStatusPaid ||
			order.HasSettlement(info.ID) ||
			!order.Status.CanTransition(domain.OrderStatusPaid) {
			log.Info("No update required for payment notification",
				zap.String("payment_status", info.Status),
				zap.String("order_status", string(order.Status)))
			ack.Note = "no update required"
			return ack
		}

		rec := domain.AuditRecord{
			FromStatus:        order.Status,
			ToStatus:          domain.OrderStatusPaid,
			OccurredAt:        time.Now(),
			ExternalPaymentID: info.ID,
		}

		// Dispatch once across retries; the outcome lands in the audit
		// record but must never block the transition itself.
		if !notified {
			outcome = s.notifyPaymentApproved(ctx, log, order)
			notified = true
		}
		rec.CustomerNotified = outcome.CustomerNotified
		rec.MerchantNotified = outcome.MerchantNotified
		rec.NotifyError = outcome.NotifyError

		order.Status = domain.OrderStatusPaid
		order.PaymentReference = info.ID
		order.PaymentAudit = append(order.PaymentAudit, rec)

		_, err = s.repo.UpdateOrder(ctx, order)
		if err != nil {
			if errors.Is(err, domain.ErrStaleOrderVersion) {
				log.Info("Concurrent order update, re-reading", zap.Int("attempt", attempt+1))
				continue
			}
			log.Error("Persist paid order", zap.Error(err))
			ack.Note = "persist failed"
			return ack
		}

		log.Info("Order settled",
			zap.String("from", string(rec.FromStatus)),
			zap.Bool("customer_notified", rec.CustomerNotified),
			zap.Bool("merchant_notified", rec.MerchantNotified))

		ack.Note = "order settled"
		ack.NewStatus = domain.OrderStatusPaid
		ack.CustomerNotified = rec.CustomerNotified
		ack.MerchantNotified = rec.MerchantNotified
		return ack
	}

	log.Error("Giving up on order settlement after repeated version conflicts")
	ack.Note = "version conflict"
	return ack
}

func (s *Service) notifyPaymentApproved(ctx context.Context, log *zap.Logger, order *domain.Order) domain.AuditRecord {
	var outcome domain.AuditRecord

	if err := s.notifier.NotifyCustomer(ctx, port.NotificationPaymentApproved, order); err != nil {
		log.Warn("Notify customer about payment", zap.Error(err))
		outcome.NotifyError = "customer: " + err.Error()
	} else {
		outcome.CustomerNotified = true
	}

	if err := s.notifier.NotifyMerchant(ctx, port.NotificationPaymentApproved, order); err != nil {
		log.Warn("Notify merchant about payment", zap.Error(err))
		if outcome.NotifyError != "" {
			outcome.NotifyError += "; "
		}
		outcome.NotifyError += "merchant: " + err.Error()
	} else {
		outcome.MerchantNotified = true
	}

	return outcome
}

// parseNotification extracts the payment id from the body or the query form
// of a gateway notification. ok is false when the event is not about a
// payment at all.
func parseNotification(body []byte, query url.Values) (paymentID string, ok bool) {
	var n paymentNotification
	if len(body) > 0 {
		if err := json.Unmarshal(body, &n); err != nil {
			n = paymentNotification{}
		}
	}

	kind := n.Type
	if kind == "" {
		kind = n.Topic
	}
	if kind == "" {
		kind = query.Get("type")
	}
	if kind == "" {
		kind = query.Get("topic")
	}
	if kind != "payment" {
		return "", false
	}

	id := n.Data.ID.String()
	if id == "" {
		id = n.ID.String()
	}
	if id == "" {
		id = query.Get("data.id")
	}
	if id == "" {
		id = query.Get("id")
	}

	return id, true
}
