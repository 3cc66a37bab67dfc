package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yashrajoria/restaurant-service/models"
	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(ctx context.Context, menu *models.Menu) error
	FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Menu, error)
	List(ctx context.Context, filter models.MenuFilter, page models.Page, scope Scope) ([]models.Menu, int64, error)
	Update(ctx context.Context, menu *models.Menu) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	TopRated(ctx context.Context, limit int) ([]models.Menu, error)
}

type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) MenuRepository {
	return &GormMenuRepository{db: db}
}

func (r *GormMenuRepository) Create(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Omit("Category").Create(menu).Error
}

func (r *GormMenuRepository) FindByID(ctx context.Context, id uuid.UUID, scope Scope) (*models.Menu, error) {
	var menu models.Menu
	query := scope.active(r.db.WithContext(ctx), "menus")
	if err := query.Preload("Category").Where("menus.id = ?", id).First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// List supports a case-insensitive keyword match on the name and a category
// slug filter.
func (r *GormMenuRepository) List(ctx context.Context, filter models.MenuFilter, page models.Page, scope Scope) ([]models.Menu, int64, error) {
	query := scope.active(r.db.WithContext(ctx).Model(&models.Menu{}), "menus")

	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		query = query.Where("menus.name ILIKE ?", "%"+escapeLike(kw)+"%")
	}
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = menus.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}

	return findPage[models.Menu](query, page, "menus.created_at DESC", "Category")
}

func (r *GormMenuRepository) Update(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Omit("Category").Save(menu).Error
}

func (r *GormMenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Menu{}, id)
}

func (r *GormMenuRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	return slugExists(r.db.WithContext(ctx).Model(&models.Menu{}), slug, excludeID)
}

type menuRating struct {
	MenuID      uuid.UUID
	AvgRating   *float64
	ReviewCount int64
}

const topRatedSQL = `SELECT menus.id AS menu_id, AVG(reviews.rating)::float8 AS avg_rating, COUNT(reviews.id) AS review_count
FROM menus
LEFT JOIN reviews ON reviews.menu_id = menus.id AND reviews.is_active = true
WHERE menus.is_active = true
GROUP BY menus.id
ORDER BY avg_rating DESC NULLS LAST, menus.created_at DESC
LIMIT ?`

// TopRated returns active menus by average active-review rating, unrated
// menus last, newest first on ties.
func (r *GormMenuRepository) TopRated(ctx context.Context, limit int) ([]models.Menu, error) {
	var ratings []menuRating
	if err := r.db.WithContext(ctx).Raw(topRatedSQL, limit).Scan(&ratings).Error; err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return []models.Menu{}, nil
	}

	ids := make([]uuid.UUID, len(ratings))
	for i, rt := range ratings {
		ids[i] = rt.MenuID
	}

	var menus []models.Menu
	if err := r.db.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&menus).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Menu, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}

	out := make([]models.Menu, 0, len(ratings))
	for _, rt := range ratings {
		m, ok := byID[rt.MenuID]
		if !ok {
			continue
		}
		count := rt.ReviewCount
		m.AverageRating = rt.AvgRating
		m.ReviewCount = &count
		out = append(out, m)
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
