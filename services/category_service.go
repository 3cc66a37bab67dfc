package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/repository"
	"go.uber.org/zap"
)

type CategoryService interface {
	Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, caller Caller, page models.Page) ([]models.Category, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryServiceImpl struct {
	repo      repository.CategoryRepository
	menuCache *CacheManager
	logger    *zap.Logger
}

// NewCategoryService wires the category service. Menus embed their category,
// so category writes also invalidate menuCache.
func NewCategoryService(repo repository.CategoryRepository, menuCache *CacheManager, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{repo: repo, menuCache: menuCache, logger: logger}
}

func (s *categoryServiceImpl) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	slug, err := resolveSlug(ctx, req.Slug, name, nil, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:     name,
		Slug:     slug,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.Conflict("Category with this name already exists")
		}
		return nil, apperrors.Internal("Failed to create category", err)
	}

	s.logger.Info("category created", zap.String("category_id", category.ID.String()), zap.String("slug", category.Slug))
	return category, nil
}

func (s *categoryServiceImpl) Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id, caller.PublicScope())
	if err != nil {
		return nil, notFoundOr(err, "Category not found")
	}
	return category, nil
}

func (s *categoryServiceImpl) List(ctx context.Context, caller Caller, page models.Page) ([]models.Category, int64, error) {
	categories, total, err := s.repo.List(ctx, page, caller.PublicScope())
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list categories", err)
	}
	return categories, total, nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id, repository.StaffScope())
	if err != nil {
		return nil, notFoundOr(err, "Category not found")
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug, err := resolveSlug(ctx, *req.Slug, category.Name, &category.ID, s.repo.SlugExists)
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.Conflict("Category with this name already exists")
		}
		return nil, apperrors.Internal("Failed to update category", err)
	}

	s.menuCache.Invalidate(ctx)
	return category, nil
}

// Delete removes the category; its menus keep existing uncategorised.
func (s *categoryServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Category not found")
	}
	s.menuCache.Invalidate(ctx)
	s.logger.Info("category deleted", zap.String("category_id", id.String()))
	return nil
}
