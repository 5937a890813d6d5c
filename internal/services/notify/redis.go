package notify

import (
	"context"

	"VaderBoot/internal/domain/models"
)

// ChannelPublisher is satisfied by *redis.Client.
type ChannelPublisher interface {
	Publish(ctx context.Context, channel string, value interface{}) (int64, error)
}

// RedisNotifier publishes each evaluation as an Event on a pub/sub channel.
// No subscribers is not an error.
type RedisNotifier struct {
	publisher ChannelPublisher
	channel   string
}

func NewRedisNotifier(publisher ChannelPublisher, channel string) *RedisNotifier {
	return &RedisNotifier{publisher: publisher, channel: channel}
}

func (r *RedisNotifier) Name() string { return "redis" }

func (r *RedisNotifier) Notify(ctx context.Context, n models.Notification) error {
	_, err := r.publisher.Publish(ctx, r.channel, NewEvent(n))
	return err
}
