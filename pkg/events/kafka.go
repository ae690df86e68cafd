package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderEvent is published on every order status transition.
type OrderEvent struct {
	OrderID      uint      `json:"orderId"`
	OrderNumber  string    `json:"orderNumber"`
	RestaurantID uint      `json:"restaurantId"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Producer wraps a kafka writer. A nil Producer drops events silently so
// the order flow works without a broker configured.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	if broker == "" {
		return nil
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: w}
}

// Publish is best-effort: failures are logged, never returned to the
// order flow.
func (p *Producer) Publish(ctx context.Context, ev OrderEvent) {
	if p == nil || p.writer == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("events: marshal failed: %v", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.RestaurantID), 10)),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("events: publish failed: %v", err)
	}
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
