package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dealsHub/domain"
	"dealsHub/internal/apperror"

	"gorm.io/gorm"
)

type DealRepository struct {
	DB *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{
		DB: db,
	}
}

const listingSelect = "deals.*, categories.name AS category_name, categories.slug AS category_slug"

// orderClause maps a sort mode to its ORDER BY expression. Unknown modes fall
// back to newest. Tie-breaks follow the listing contract: discount sorts
// push NULL discounts last.
func orderClause(sortBy string) string {
	switch sortBy {
	case domain.SortDiscount:
		return "deals.discount DESC NULLS LAST, deals.created_at DESC"
	case domain.SortPriceLow:
		return "deals.price ASC, deals.created_at DESC"
	case domain.SortPriceHigh:
		return "deals.price DESC, deals.created_at DESC"
	default:
		return "deals.created_at DESC, deals.id DESC"
	}
}

// List assembles and runs the filtered, sorted listing query. Filters are
// ANDed; the category is always left-joined so deals without one still list.
func (r *DealRepository) List(ctx context.Context, filter domain.DealFilter) ([]domain.DealWithCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).
		Table("deals").
		Select(listingSelect).
		Joins("LEFT JOIN categories ON categories.id = deals.category_id")

	if filter.Search != "" {
		// LOWER on both sides keeps "contains" case-insensitive on sqlite
		// and postgres alike.
		query = query.Where("LOWER(deals.title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("deals.category_id = ?", *filter.CategoryID)
	}
	if filter.CategorySlug != "" {
		query = query.Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.MaxPrice != nil {
		query = query.Where("deals.price <= ?", *filter.MaxPrice)
	}

	var rows []domain.DealWithCategory
	if err := query.Order(orderClause(filter.SortBy)).Scan(&rows).Error; err != nil {
		return nil, apperror.Storage("failed to list deals", err)
	}

	return rows, nil
}

// Recent returns the newest deals with their category names, for the admin
// dashboard.
func (r *DealRepository) Recent(ctx context.Context, limit int) ([]domain.DealWithCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.DealWithCategory
	err := r.DB.WithContext(ctx).
		Table("deals").
		Select(listingSelect).
		Joins("LEFT JOIN categories ON categories.id = deals.category_id").
		Order("deals.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Storage("failed to list recent deals", err)
	}

	return rows, nil
}

// FindActive returns active deals ordered by title, for the featured-deal
// admin form.
func (r *DealRepository) FindActive(ctx context.Context) ([]domain.DealWithCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.DealWithCategory
	err := r.DB.WithContext(ctx).
		Table("deals").
		Select(listingSelect).
		Joins("LEFT JOIN categories ON categories.id = deals.category_id").
		Where("deals.is_active = ?", true).
		Order("deals.title ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Storage("failed to list active deals", err)
	}

	return rows, nil
}

func (r *DealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(deal).Error; err != nil {
		return apperror.Storage("failed to create deal", err)
	}

	return nil
}

func (r *DealRepository) FindByID(ctx context.Context, id uint64) (domain.Deal, error) {
	if err := ctx.Err(); err != nil {
		return domain.Deal{}, fmt.Errorf("context error: %w", err)
	}

	var deal domain.Deal

	err := r.DB.WithContext(ctx).First(&deal, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Deal{}, apperror.NotFound("deal not found", err)
		}
		return domain.Deal{}, apperror.Storage("failed to find deal", err)
	}

	return deal, nil
}

// Update writes every mutable field. updated_at is always refreshed; the
// image filename is only touched when the deal carries a new one.
func (r *DealRepository) Update(ctx context.Context, deal *domain.Deal) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"title":          deal.Title,
		"url":            deal.URL,
		"price":          deal.Price,
		"original_price": deal.OriginalPrice,
		"discount":       deal.Discount,
		"category_id":    deal.CategoryID,
		"description":    deal.Description,
		"stock_quantity": deal.StockQuantity,
		"is_active":      deal.IsActive,
		"updated_at":     time.Now(),
	}
	if deal.ImageFilename != nil {
		updateData["image_filename"] = deal.ImageFilename
	}

	result := r.DB.WithContext(ctx).Model(&domain.Deal{}).Where("id = ?", deal.ID).Updates(updateData)
	if result.Error != nil {
		return apperror.Storage("failed to update deal", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("deal not found", nil)
	}

	return nil
}

// Delete removes the deal. Featured rows referencing it go with it via the
// ON DELETE CASCADE rule.
func (r *DealRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Deal{}, id)
	if result.Error != nil {
		return apperror.Storage("failed to delete deal", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("deal not found", nil)
	}

	return nil
}

// CountByCategory reports how many deals reference a category. Used as the
// referential guard before a category delete.
func (r *DealRepository) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Deal{}).Where("category_id = ?", categoryID).Count(&count).Error
	if err != nil {
		return 0, apperror.Storage("failed to count deals in category", err)
	}

	return count, nil
}

// FirstOrCreateByTitle inserts the deal unless one with the same title
// already exists. Keeps sample seeding idempotent. Reports whether a row
// was actually inserted.
func (r *DealRepository) FirstOrCreateByTitle(ctx context.Context, deal *domain.Deal) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var existing domain.Deal
	result := r.DB.WithContext(ctx).
		Where("title = ?", deal.Title).
		Attrs(*deal).
		FirstOrCreate(&existing)
	if result.Error != nil {
		return false, apperror.Storage("failed to seed deal", result.Error)
	}

	*deal = existing
	return result.RowsAffected > 0, nil
}
