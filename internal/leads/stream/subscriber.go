// Package stream connects the intelligence layer to the external
// mutation-notification channel, carried over Redis pub/sub.
package stream

import (
	"context"

	"crm_intel_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Subscriber publishes and consumes lead mutation notifications.
// Payloads are opaque to this package; they are forwarded unmodified.
type Subscriber struct {
	client  *redis.Client
	channel string
	log     *logger.Logger
}

// New creates a subscriber from a redis URL.
func New(redisURL, channel string, log *logger.Logger) (*Subscriber, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &Subscriber{
		client:  redis.NewClient(opt),
		channel: channel,
		log:     log,
	}, nil
}

// NewWithClient wraps an existing client; used by tests.
func NewWithClient(client *redis.Client, channel string, log *logger.Logger) *Subscriber {
	return &Subscriber{client: client, channel: channel, log: log}
}

// Subscribe starts consuming mutation notifications, invoking handler
// for each payload. The returned function cancels the subscription.
func (s *Subscriber) Subscribe(ctx context.Context, handler func(payload []byte)) (func(), error) {
	pubsub := s.client.Subscribe(ctx, s.channel)

	// Confirm the subscription before returning so callers never miss
	// notifications published right after Subscribe.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	s.log.StreamEvent("subscribed", s.channel)

	go func() {
		for msg := range pubsub.Channel() {
			handler([]byte(msg.Payload))
		}
		s.log.StreamEvent("closed", s.channel)
	}()

	return func() { _ = pubsub.Close() }, nil
}

// Publish sends a mutation notification to all subscribers, including
// other instances of this service.
func (s *Subscriber) Publish(ctx context.Context, payload []byte) error {
	return s.client.Publish(ctx, s.channel, payload).Err()
}

// Close releases the underlying redis connection.
func (s *Subscriber) Close() error {
	return s.client.Close()
}
