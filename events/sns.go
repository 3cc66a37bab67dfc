package events

import (
	"context"

	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
)

// SNSPublisher fans events out through a single SNS topic. The event type is
// attached as the "event_type" message attribute for subscription filters.
type SNSPublisher struct {
	client   awspkg.SNSPublisher
	topicArn string
}

func NewSNSPublisher(client awspkg.SNSPublisher, topicArn string) *SNSPublisher {
	return &SNSPublisher{client: client, topicArn: topicArn}
}

func (p *SNSPublisher) Publish(ctx context.Context, eventType, key string, data interface{}) error {
	body, err := Envelope(eventType, data)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.topicArn, body, map[string]string{
		"event_type": eventType,
		"key":        key,
	})
}

func (p *SNSPublisher) Close() error { return nil }
