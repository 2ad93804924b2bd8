package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tiendago/orders/internal/adapter/config"
	"github.com/tiendago/orders/internal/core/domain"
	"github.com/tiendago/orders/internal/core/port"
	"go.uber.org/zap"
)

const (
	recipientCustomer = "customer"
	recipientMerchant = "merchant"
)

// AMQPNotifier publishes order events to a topic exchange. The mail workers
// that consume them live outside this service; from the core's point of view
// a successful publish is a dispatched notification.
type AMQPNotifier struct {
	logger   *zap.Logger
	channel  *amqp.Channel
	exchange string
}

func NewAMQPNotifier(cfg *config.AMQP, log *zap.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to amqp broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}

	err = channel.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &AMQPNotifier{
		logger:   log,
		channel:  channel,
		exchange: cfg.Exchange,
	}, nil
}

type notificationMessage struct {
	Event       string    `json:"event"`
	Recipient   string    `json:"recipient"`
	OrderID     string    `json:"orderId"`
	ShopperID   uint64    `json:"shopperId"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"totalAmount"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func (n *AMQPNotifier) NotifyCustomer(ctx context.Context, event port.NotificationEvent, order *domain.Order) error {
	return n.publish(ctx, recipientCustomer, event, order)
}

func (n *AMQPNotifier) NotifyMerchant(ctx context.Context, event port.NotificationEvent, order *domain.Order) error {
	return n.publish(ctx, recipientMerchant, event, order)
}

func (n *AMQPNotifier) publish(ctx context.Context, recipient string, event port.NotificationEvent, order *domain.Order) error {
	msg := notificationMessage{
		Event:       string(event),
		Recipient:   recipient,
		OrderID:     order.ID,
		ShopperID:   order.ShopperID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount.String(),
		OccurredAt:  time.Now(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	routingKey := fmt.Sprintf("notify.%s.%s", recipient, event)

	err = n.channel.PublishWithContext(ctx, n.exchange, routingKey, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   uuid.NewString(),
			Timestamp:   msg.OccurredAt,
			Body:        body,
		})
	if err != nil {
		return fmt.Errorf("publishing %s: %w", routingKey, err)
	}

	n.logger.Debug("Published notification",
		zap.String("routing_key", routingKey), zap.String("order", order.ID))

	return nil
}
