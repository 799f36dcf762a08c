package store

import (
	"context"
	"fmt"
	"time"

	"dealsHub/domain"
	"dealsHub/internal/apperror"

	"gorm.io/gorm"
)

type FeaturedRepository struct {
	DB *gorm.DB
}

func NewFeaturedRepository(db *gorm.DB) *FeaturedRepository {
	return &FeaturedRepository{
		DB: db,
	}
}

// Current resolves the deal of the day: among active, date-in-range featured
// rows pointing at active deals, the most recently created wins. Returns nil
// when no row qualifies.
func (r *FeaturedRepository) Current(ctx context.Context, today time.Time) (*domain.DealWithCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.DealWithCategory
	err := r.DB.WithContext(ctx).
		Table("deal_of_the_day").
		Select(listingSelect).
		Joins("JOIN deals ON deals.id = deal_of_the_day.deal_id").
		Joins("LEFT JOIN categories ON categories.id = deals.category_id").
		Where("deal_of_the_day.is_active = ?", true).
		Where("deal_of_the_day.end_date IS NULL OR deal_of_the_day.end_date >= ?", today.Format("2006-01-02")).
		Where("deals.is_active = ?", true).
		Order("deal_of_the_day.created_at DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Storage("failed to resolve deal of the day", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// FindAllRows returns every featured window joined with its deal and
// category, newest first, for the admin listing.
func (r *FeaturedRepository) FindAllRows(ctx context.Context) ([]domain.FeaturedDealRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.FeaturedDealRow
	err := r.DB.WithContext(ctx).
		Table("deal_of_the_day").
		Select("deal_of_the_day.*, deals.title, deals.price, deals.original_price, deals.discount, deals.image_filename, categories.name AS category_name").
		Joins("JOIN deals ON deals.id = deal_of_the_day.deal_id").
		Joins("LEFT JOIN categories ON categories.id = deals.category_id").
		Order("deal_of_the_day.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Storage("failed to list featured deals", err)
	}

	return rows, nil
}

func (r *FeaturedRepository) Create(ctx context.Context, featured *domain.FeaturedDeal) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(featured).Error; err != nil {
		return apperror.Storage("failed to create featured deal", err)
	}

	return nil
}

func (r *FeaturedRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.FeaturedDeal{}, id)
	if result.Error != nil {
		return apperror.Storage("failed to delete featured deal", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("featured deal not found", nil)
	}

	return nil
}
