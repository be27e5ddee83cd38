package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"urban-canvas/models"
)

const EventOrderCreated = "order.created"

// OrderEvent is the envelope written to Kafka for every persisted order.
type OrderEvent struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	OrderID      string          `json:"order_id"`
	Payload      json.RawMessage `json:"payload"`
}

// OrderEventPublisher pushes order.created events to Kafka. Publishing is
// fire-and-forget through a buffered inbox; checkout latency never waits on
// the broker.
type OrderEventPublisher struct {
	w     *kafka.Writer
	inbox chan kafka.Message
	done  chan struct{}
}

func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	p := &OrderEventPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox: make(chan kafka.Message, 256),
		done:  make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *OrderEventPublisher) loop() {
	for m := range p.inbox {
		if err := p.w.WriteMessages(context.Background(), m); err != nil {
			log.Println("order event publish failed:", err)
		}
	}
	_ = p.w.Close()
	close(p.done)
}

func (p *OrderEventPublisher) PublishOrderCreated(order *models.Order) {
	payload, err := json.Marshal(order)
	if err != nil {
		log.Println("order event marshal failed:", err)
		return
	}

	ev := OrderEvent{
		EventID:      uuid.NewString(),
		EventType:    EventOrderCreated,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     "urban-canvas",
		OrderID:      order.ID,
		Payload:      payload,
	}
	value, err := json.Marshal(ev)
	if err != nil {
		log.Println("order event marshal failed:", err)
		return
	}

	select {
	case p.inbox <- kafka.Message{Key: []byte(order.ID), Value: value, Time: time.Now()}:
	default:
		log.Println("order event dropped: publisher backlog full")
	}
}

// Close flushes queued messages and stops the loop.
func (p *OrderEventPublisher) Close() {
	close(p.inbox)
	<-p.done
}
