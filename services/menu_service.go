package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
	"github.com/yashrajoria/restaurant-service/repository"
	"go.uber.org/zap"
)

type MenuService interface {
	Create(ctx context.Context, req *models.CreateMenuRequest) (*models.Menu, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Menu, error)
	List(ctx context.Context, caller Caller, filter models.MenuFilter, page models.Page) ([]models.Menu, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateMenuRequest) (*models.Menu, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TopRated(ctx context.Context) ([]models.Menu, error)
}

type menuServiceImpl struct {
	repo          repository.MenuRepository
	categoryRepo  repository.CategoryRepository
	cache         *CacheManager
	topRatedLimit int
	logger        *zap.Logger
}

func NewMenuService(
	repo repository.MenuRepository,
	categoryRepo repository.CategoryRepository,
	cache *CacheManager,
	topRatedLimit int,
	logger *zap.Logger,
) MenuService {
	return &menuServiceImpl{
		repo:          repo,
		categoryRepo:  categoryRepo,
		cache:         cache,
		topRatedLimit: topRatedLimit,
		logger:        logger,
	}
}

func (s *menuServiceImpl) Create(ctx context.Context, req *models.CreateMenuRequest) (*models.Menu, error) {
	menu := &models.Menu{
		Name:        strings.TrimSpace(req.Name),
		Image:       req.Image,
		Price:       *req.Price,
		Description: req.Description,
		CookTime:    *req.CookTime,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if req.OfferPrice != nil {
		menu.OfferPrice = *req.OfferPrice
	}
	if err := validatePrices(menu.Price, menu.OfferPrice); err != nil {
		return nil, err
	}
	if err := s.setCategory(ctx, menu, req.CategoryID); err != nil {
		return nil, err
	}

	slug, err := resolveSlug(ctx, req.Slug, menu.Name, nil, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}
	menu.Slug = slug

	if err := s.repo.Create(ctx, menu); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.Conflict("Menu with this name already exists")
		}
		return nil, apperrors.Internal("Failed to create menu", err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("menu created", zap.String("menu_id", menu.ID.String()), zap.String("slug", menu.Slug))
	return menu, nil
}

func (s *menuServiceImpl) Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Menu, error) {
	menu, err := s.repo.FindByID(ctx, id, caller.PublicScope())
	if err != nil {
		return nil, notFoundOr(err, "Menu not found")
	}
	return menu, nil
}

func (s *menuServiceImpl) List(ctx context.Context, caller Caller, filter models.MenuFilter, page models.Page) ([]models.Menu, int64, error) {
	menus, total, err := s.repo.List(ctx, filter, page, caller.PublicScope())
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list menus", err)
	}
	return menus, total, nil
}

func (s *menuServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.UpdateMenuRequest) (*models.Menu, error) {
	menu, err := s.repo.FindByID(ctx, id, repository.StaffScope())
	if err != nil {
		return nil, notFoundOr(err, "Menu not found")
	}

	if req.Name != nil {
		menu.Name = strings.TrimSpace(*req.Name)
	}
	if req.Image != nil {
		menu.Image = *req.Image
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.OfferPrice != nil {
		menu.OfferPrice = *req.OfferPrice
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.CookTime != nil {
		menu.CookTime = *req.CookTime
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}
	if err := validatePrices(menu.Price, menu.OfferPrice); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.setCategory(ctx, menu, req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.Slug != nil {
		slug, err := resolveSlug(ctx, *req.Slug, menu.Name, &menu.ID, s.repo.SlugExists)
		if err != nil {
			return nil, err
		}
		menu.Slug = slug
	}

	if err := s.repo.Update(ctx, menu); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.Conflict("Menu with this name already exists")
		}
		return nil, apperrors.Internal("Failed to update menu", err)
	}

	s.cache.Invalidate(ctx)
	return menu, nil
}

// Delete removes the menu. Order items that referenced it keep their
// snapshot with a null menu link.
func (s *menuServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Menu not found")
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("menu deleted", zap.String("menu_id", id.String()))
	return nil
}

func (s *menuServiceImpl) TopRated(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	key, hit := s.cache.Get(ctx, fmt.Sprintf("top-rated:%d", s.topRatedLimit), &menus)
	if hit {
		return menus, nil
	}

	menus, err := s.repo.TopRated(ctx, s.topRatedLimit)
	if err != nil {
		return nil, apperrors.Internal("Failed to load top rated menus", err)
	}
	s.cache.SetAsync(key, menus)
	return menus, nil
}

func (s *menuServiceImpl) setCategory(ctx context.Context, menu *models.Menu, categoryID *uuid.UUID) error {
	if categoryID == nil || *categoryID == uuid.Nil {
		menu.CategoryID = nil
		menu.Category = nil
		return nil
	}

	category, err := s.categoryRepo.FindByID(ctx, *categoryID, repository.StaffScope())
	if err != nil {
		if repository.IsNotFound(err) {
			return apperrors.Validation(map[string]string{"category": "Category not found"})
		}
		return apperrors.Internal("Failed to look up category", err)
	}
	menu.CategoryID = &category.ID
	menu.Category = category
	return nil
}

func validatePrices(price, offer decimal.Decimal) error {
	fields := map[string]string{}
	if price.IsNegative() {
		fields["price"] = "must be greater than or equal to 0"
	}
	if offer.IsNegative() {
		fields["offer_price"] = "must be greater than or equal to 0"
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}
