package services

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
	"go.uber.org/zap"
)

var contentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadService interface {
	Presign(ctx context.Context, req *models.PresignRequest) (*models.PresignResponse, error)
}

type uploadServiceImpl struct {
	presigner     awspkg.Presigner
	bucket        string
	publicBaseURL string
	expiry        time.Duration
	logger        *zap.Logger
}

// NewUploadService hands out presigned PUT URLs. With a nil presigner every
// request fails with 503.
func NewUploadService(presigner awspkg.Presigner, bucket, publicBaseURL string, expiry time.Duration, logger *zap.Logger) UploadService {
	return &uploadServiceImpl{
		presigner:     presigner,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		expiry:        expiry,
		logger:        logger,
	}
}

func (s *uploadServiceImpl) Presign(ctx context.Context, req *models.PresignRequest) (*models.PresignResponse, error) {
	if s.presigner == nil {
		return nil, apperrors.New(http.StatusServiceUnavailable, "Uploads are not configured", nil)
	}

	key := objectKey(req.Folder, req.Filename, req.ContentType)
	url, headers, err := s.presigner.PresignPut(ctx, key, req.ContentType, s.expiry)
	if err != nil {
		return nil, apperrors.Internal("Failed to presign upload", err)
	}

	s.logger.Info("upload presigned", zap.String("key", key))
	return &models.PresignResponse{
		UploadURL: url,
		ObjectURL: s.objectURL(key),
		Key:       key,
		Headers:   headers,
		ExpiresIn: int64(s.expiry.Seconds()),
	}, nil
}

// objectKey builds folder/<uuid>-<slugified name><ext>. The extension follows
// the declared content type when the filename has none.
func objectKey(folder, filename, contentType string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := slug.Make(strings.TrimSuffix(filename, path.Ext(filename)))
	if ext == "" || len(ext) > 6 {
		ext = contentTypeExt[contentType]
	}
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s/%s-%s%s", folder, uuid.NewString(), base, ext)
}

func (s *uploadServiceImpl) objectURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
