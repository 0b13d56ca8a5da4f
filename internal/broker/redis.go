package broker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisBroker implements Broker over redis pub/sub, one channel per
// recipient.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(redisURL string) (*RedisBroker, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RedisBroker{client: client}, nil
}

// Client exposes the underlying connection so other redis-backed pieces can
// share it instead of dialing twice.
func (b *RedisBroker) Client() *redis.Client {
	return b.client
}

func inboxChannel(recipient string) string {
	return "inbox:" + recipient
}

func (b *RedisBroker) PublishMessage(ctx context.Context, recipient string, event MessageEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, inboxChannel(recipient), data).Err()
}

// SubscribeInbox delivers events for one recipient until the returned cancel
// function runs. Malformed payloads are dropped rather than closing the
// stream.
func (b *RedisBroker) SubscribeInbox(ctx context.Context, recipient string) (<-chan MessageEvent, func(), error) {
	pubsub := b.client.Subscribe(ctx, inboxChannel(recipient))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, err
	}

	events := make(chan MessageEvent, 16)
	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event MessageEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			events <- event
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return events, cancel, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
