package services

import (
	"context"

	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/repository"
)

type StatisticsService interface {
	Summary(ctx context.Context) (*models.StatisticsSummary, error)
}

type statisticsServiceImpl struct {
	repo  repository.StatisticsRepository
	cache *CacheManager
}

// NewStatisticsService serves the dashboard summary. Cached summaries are
// only refreshed when their TTL runs out.
func NewStatisticsService(repo repository.StatisticsRepository, cache *CacheManager) StatisticsService {
	return &statisticsServiceImpl{repo: repo, cache: cache}
}

func (s *statisticsServiceImpl) Summary(ctx context.Context) (*models.StatisticsSummary, error) {
	var cached models.StatisticsSummary
	key, hit := s.cache.Get(ctx, "summary", &cached)
	if hit {
		return &cached, nil
	}

	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to compute statistics", err)
	}
	s.cache.SetAsync(key, summary)
	return summary, nil
}
