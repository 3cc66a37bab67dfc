package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
)

const maxSlugAttempts = 20

// slugExistsFunc reports whether slug is taken by a row other than excludeID.
type slugExistsFunc func(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

// resolveSlug returns the slug to store. An explicit slug is normalised and
// must be free; otherwise one is derived from name and suffixed with -2, -3,
// ... until it is unique.
func resolveSlug(ctx context.Context, explicit, name string, excludeID *uuid.UUID, exists slugExistsFunc) (string, error) {
	if explicit != "" {
		s := slug.Make(explicit)
		if s == "" {
			return "", apperrors.Validation(map[string]string{"slug": "slug must contain letters or digits"})
		}
		taken, err := exists(ctx, s, excludeID)
		if err != nil {
			return "", apperrors.Internal("Failed to check slug", err)
		}
		if taken {
			return "", apperrors.Conflict("Slug already exists")
		}
		return s, nil
	}

	base := slug.Make(name)
	if base == "" {
		base = uuid.NewString()[:8]
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", apperrors.Internal("Failed to check slug", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}
