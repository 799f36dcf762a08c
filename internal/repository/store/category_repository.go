package store

import (
	"context"
	"errors"
	"fmt"

	"dealsHub/domain"
	"dealsHub/internal/apperror"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Duplicate("category already exists", err)
		}
		return apperror.Storage("failed to create category", err)
	}

	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	var category domain.Category

	err := r.DB.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, apperror.NotFound("category not found", err)
		}
		return domain.Category{}, apperror.Storage("failed to find category", err)
	}

	return category, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	var category domain.Category

	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, apperror.NotFound("category not found", err)
		}
		return domain.Category{}, apperror.Storage("failed to find category", err)
	}

	return category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.Category
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, apperror.Storage("failed to find categories", err)
	}

	return categories, nil
}

// FindAllWithCounts returns every category with the number of active deals
// referencing it, for the admin listing.
func (r *CategoryRepository) FindAllWithCounts(ctx context.Context) ([]domain.CategoryWithCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.CategoryWithCount
	err := r.DB.WithContext(ctx).
		Table("categories").
		Select("categories.*, COUNT(deals.id) AS product_count").
		Joins("LEFT JOIN deals ON deals.category_id = categories.id AND deals.is_active = ?", true).
		Group("categories.id").
		Order("categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Storage("failed to list categories with counts", err)
	}

	return rows, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":        category.Name,
		"slug":        category.Slug,
		"description": category.Description,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", category.ID).Updates(updateData)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperror.Duplicate("category already exists", result.Error)
		}
		return apperror.Storage("failed to update category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("category not found", nil)
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Category{}, id)
	if result.Error != nil {
		return apperror.Storage("failed to delete category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("category not found", nil)
	}

	return nil
}
