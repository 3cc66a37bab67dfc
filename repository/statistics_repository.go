package repository

import (
	"context"

	"github.com/yashrajoria/restaurant-service/models"
	"gorm.io/gorm"
)

type StatisticsRepository interface {
	Summary(ctx context.Context) (*models.StatisticsSummary, error)
}

type GormStatisticsRepository struct {
	db *gorm.DB
}

func NewGormStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &GormStatisticsRepository{db: db}
}

// Summary runs one aggregate per figure; each is an index-backed count.
func (r *GormStatisticsRepository) Summary(ctx context.Context) (*models.StatisticsSummary, error) {
	db := r.db.WithContext(ctx)
	s := &models.StatisticsSummary{}

	counts := []struct {
		dst   *int64
		model interface{}
		where []interface{}
	}{
		{&s.Users, &models.User{}, nil},
		{&s.Orders, &models.Order{}, nil},
		{&s.PaidOrders, &models.Order{}, []interface{}{"is_paid = ?", true}},
		{&s.ServedOrders, &models.Order{}, []interface{}{"is_served = ?", true}},
		{&s.PendingReservations, &models.Reservation{}, []interface{}{"status = ?", models.ReservationPending}},
		{&s.UnreadContacts, &models.Contact{}, []interface{}{"read = ?", false}},
		{&s.ActiveMenus, &models.Menu{}, []interface{}{"is_active = ?", true}},
		{&s.Reviews, &models.Review{}, nil},
	}

	for _, c := range counts {
		q := db.Model(c.model)
		if len(c.where) > 0 {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Model(&models.Order{}).
		Where("is_paid = ?", true).
		Select("COALESCE(SUM(total_price), 0)").
		Row().Scan(&s.Revenue); err != nil {
		return nil, err
	}

	if err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0)::float8").
		Row().Scan(&s.AverageRating); err != nil {
		return nil, err
	}

	return s, nil
}
