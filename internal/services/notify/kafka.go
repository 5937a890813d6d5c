package notify

import (
	"context"

	"VaderBoot/internal/domain/models"
)

// EventPublisher is satisfied by *kafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

// KafkaNotifier publishes each evaluation as an Event keyed by ticker.
type KafkaNotifier struct {
	producer EventPublisher
	topic    string
}

func NewKafkaNotifier(producer EventPublisher, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic}
}

func (k *KafkaNotifier) Name() string { return "kafka" }

func (k *KafkaNotifier) Notify(ctx context.Context, n models.Notification) error {
	ev := NewEvent(n)
	return k.producer.Publish(ctx, k.topic, []byte(ev.Ticker), ev)
}
