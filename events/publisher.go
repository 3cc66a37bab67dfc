package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
	"go.uber.org/zap"
)

// Publisher delivers domain events to the configured bus.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, data interface{}) error
	Close() error
}

// Envelope wraps data in the common event envelope and encodes it.
func Envelope(eventType string, data interface{}) ([]byte, error) {
	return json.Marshal(models.Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

// PublishAsync publishes in the background with a bounded context. Failures
// are logged and otherwise ignored.
func PublishAsync(p Publisher, logger *zap.Logger, eventType, key string, data interface{}) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Publish(ctx, eventType, key, data); err != nil {
			logger.Warn("event publish failed",
				zap.String("event", eventType),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}()
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                               { return nil }
