package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
)

func takenSlugs(slugs ...string) slugExistsFunc {
	taken := map[string]bool{}
	for _, s := range slugs {
		taken[s] = true
	}
	return func(_ context.Context, slug string, _ *uuid.UUID) (bool, error) {
		return taken[slug], nil
	}
}

func TestResolveSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("derives from name", func(t *testing.T) {
		s, err := resolveSlug(ctx, "", "Crème Brûlée", nil, takenSlugs())
		require.NoError(t, err)
		assert.Equal(t, "creme-brulee", s)
	})

	t.Run("suffixes taken slugs", func(t *testing.T) {
		s, err := resolveSlug(ctx, "", "Pad Thai", nil, takenSlugs("pad-thai", "pad-thai-2"))
		require.NoError(t, err)
		assert.Equal(t, "pad-thai-3", s)
	})

	t.Run("never empty", func(t *testing.T) {
		s, err := resolveSlug(ctx, "", "!!!", nil, takenSlugs())
		require.NoError(t, err)
		assert.NotEmpty(t, s)
	})

	t.Run("normalises explicit slug", func(t *testing.T) {
		s, err := resolveSlug(ctx, "Chef Specials", "ignored", nil, takenSlugs())
		require.NoError(t, err)
		assert.Equal(t, "chef-specials", s)
	})

	t.Run("explicit slug conflict", func(t *testing.T) {
		_, err := resolveSlug(ctx, "desserts", "Desserts", nil, takenSlugs("desserts"))
		assert.Equal(t, 409, apperrors.From(err).Code)
	})
}
