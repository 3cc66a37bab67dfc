package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
	"go.uber.org/zap"
)

func TestObjectKey(t *testing.T) {
	uuidRe := `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`

	assert.Regexp(t, regexp.MustCompile(`^menus/`+uuidRe+`-tasty-burger\.png$`), objectKey("menus", "Tasty Burger.PNG", "image/png"))
	assert.Regexp(t, regexp.MustCompile(`^campaigns/`+uuidRe+`-summer\.webp$`), objectKey("campaigns", "summer", "image/webp"))
	assert.Regexp(t, regexp.MustCompile(`^menus/`+uuidRe+`-image\.jpg$`), objectKey("menus", "???.jpg", "image/jpeg"))
}

func TestPresign(t *testing.T) {
	ctx := context.Background()
	req := &models.PresignRequest{Folder: "menus", Filename: "ramen.jpg", ContentType: "image/jpeg"}

	t.Run("Not Configured", func(t *testing.T) {
		svc := NewUploadService(nil, "", "", time.Minute, zap.NewNop())
		_, err := svc.Presign(ctx, req)
		assert.Equal(t, 503, apperrors.From(err).Code)
	})

	t.Run("Public Base URL", func(t *testing.T) {
		presigner := &stubPresigner{}
		svc := NewUploadService(presigner, "bucket", "https://cdn.example.com/", 15*time.Minute, zap.NewNop())

		resp, err := svc.Presign(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, presigner.key, resp.Key)
		assert.Equal(t, "https://cdn.example.com/"+resp.Key, resp.ObjectURL)
		assert.Equal(t, "https://upload.example.com/"+resp.Key, resp.UploadURL)
		assert.Equal(t, "image/jpeg", resp.Headers["Content-Type"])
		assert.Equal(t, int64(900), resp.ExpiresIn)
	})

	t.Run("Bucket URL", func(t *testing.T) {
		svc := NewUploadService(&stubPresigner{}, "bucket", "", time.Minute, zap.NewNop())

		resp, err := svc.Presign(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "https://bucket.s3.amazonaws.com/"+resp.Key, resp.ObjectURL)
	})
}
