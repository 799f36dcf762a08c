package category

import (
	"context"
	"fmt"

	"dealsHub/domain"
	"dealsHub/internal/apperror"
	"dealsHub/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindAllWithCounts(ctx context.Context) ([]domain.CategoryWithCount, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint64) error
}

// DealCounter guards category deletion against dangling deal references.
type DealCounter interface {
	CountByCategory(ctx context.Context, categoryID uint64) (int64, error)
}

type categoryService struct {
	categoryRepo CategoryRepository
	dealCounter  DealCounter
}

func NewCategoryService(categoryRepo CategoryRepository, dealCounter DealCounter) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		dealCounter:  dealCounter,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoriesWithCounts(ctx context.Context) ([]domain.CategoryWithCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAllWithCounts(ctx)
	if err != nil {
		logger.Error("Failed to list categories with counts", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return domain.Category{}, apperror.Validation("invalid category id", nil)
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find category", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	if slug == "" {
		return domain.Category{}, apperror.Validation("invalid category slug", nil)
	}

	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if category.Name == "" {
		return nil, apperror.Validation("category name is required", nil)
	}
	if category.Slug == "" {
		return nil, apperror.Validation("category slug is required", nil)
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("failed to create new category", err)
		return nil, err
	}

	logger.Info("category created successfully", "slug", category.Slug)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if category.ID == 0 {
		return nil, apperror.Validation("category ID is required", nil)
	}
	if category.Name == "" {
		return nil, apperror.Validation("category name is required", nil)
	}
	if category.Slug == "" {
		return nil, apperror.Validation("category slug is required", nil)
	}

	if _, err := s.categoryRepo.FindByID(ctx, category.ID); err != nil {
		logger.Error("category not found", err)
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.Error("failed to update category", err)
		return nil, err
	}

	updatedCategory, err := s.categoryRepo.FindByID(ctx, category.ID)
	if err != nil {
		logger.Error("failed to fetch updated category", err)
		return nil, err
	}

	logger.Info("category updated successfully", "id", category.ID)

	return &updatedCategory, nil
}

// DeleteCategory refuses to remove a category that still has deals pointing
// at it; the caller has to move or delete those first.
func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return apperror.Validation("invalid category id", nil)
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		logger.Error("category not found", err)
		return err
	}

	count, err := s.dealCounter.CountByCategory(ctx, id)
	if err != nil {
		logger.Error("failed to count deals in category", err)
		return err
	}
	if count > 0 {
		return apperror.Conflict(fmt.Sprintf("cannot delete category with %d products", count), nil)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete category", err)
		return err
	}

	logger.Info("category deleted successfully", "id", id)

	return nil
}
