package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/restaurant-service/models"
	"go.uber.org/zap"
)

func TestSubscribe_IsIdempotent(t *testing.T) {
	repo := &fakeSubscriptionRepository{byEmail: map[string]*models.EmailSubscription{}}
	svc := NewSubscriptionService(repo, zap.NewNop())
	ctx := context.Background()

	first, created, err := svc.Subscribe(ctx, &models.SubscribeRequest{Email: "News@Example.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "news@example.com", first.Email)

	again, created, err := svc.Subscribe(ctx, &models.SubscribeRequest{Email: "news@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Len(t, repo.byEmail, 1)
}
