package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/menu"
	"restaurant-menu/internal/messaging"
	"restaurant-menu/internal/models"
)

type consumer interface {
	StartConsuming(ctx context.Context, handler messaging.MessageHandler) error
	Close() error
}

// Subscriber prints a confirmation line for every placed order
type Subscriber struct {
	consumer consumer
	logger   *logger.Logger
	out      io.Writer
}

// NewSubscriber creates a subscriber writing confirmations to out
func NewSubscriber(c *messaging.Consumer, log *logger.Logger, out io.Writer) *Subscriber {
	return &Subscriber{
		consumer: c,
		logger:   log,
		out:      out,
	}
}

// Start consumes until ctx is cancelled, then closes the consumer
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Order notifier started", requestID, nil)

	err := s.consumer.StartConsuming(ctx, s.handleOrderPlaced)

	s.logger.Info("graceful_shutdown", "Stopping order notifier", requestID, nil)
	if closeErr := s.consumer.Close(); closeErr != nil {
		s.logger.Error("consumer_close_failed", "Failed to close consumer", requestID, closeErr, nil)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("order consumer failed: %w", err)
	}
	return nil
}

func (s *Subscriber) handleOrderPlaced(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var msg models.OrderPlacedMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse order message", requestID, err, nil)
		return err
	}

	if _, err := fmt.Fprintln(s.out, formatNotification(&msg)); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}

	s.logger.Info("notification_displayed", "Order confirmation displayed", requestID, map[string]interface{}{
		"order_number": msg.OrderNumber,
		"total_items":  msg.TotalItems,
		"total_price":  msg.TotalPrice.StringFixed(2),
	})
	return nil
}

func formatNotification(msg *models.OrderPlacedMessage) string {
	price := menu.PriceFormatter{Symbol: msg.Currency}
	timestamp := msg.PlacedAt.Format("2006-01-02 15:04:05")

	lines := make([]string, 0, len(msg.Items))
	for _, item := range msg.Items {
		lines = append(lines, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}

	noun := "items"
	if msg.TotalItems == 1 {
		noun = "item"
	}

	return fmt.Sprintf("🧾 [%s] Order %s placed: %d %s, total %s (%s)",
		timestamp,
		msg.OrderNumber,
		msg.TotalItems,
		noun,
		price.Format(msg.TotalPrice),
		strings.Join(lines, ", "),
	)
}
