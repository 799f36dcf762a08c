package featured

import (
	"context"
	"fmt"
	"time"

	"dealsHub/domain"
	"dealsHub/internal/apperror"
	"dealsHub/pkg/logger"
)

// FeaturedRepository contract interface
type FeaturedRepository interface {
	Current(ctx context.Context, today time.Time) (*domain.DealWithCategory, error)
	FindAllRows(ctx context.Context) ([]domain.FeaturedDealRow, error)
	Create(ctx context.Context, featured *domain.FeaturedDeal) error
	Delete(ctx context.Context, id uint64) error
}

// DealFinder verifies the referenced deal before a window is created.
type DealFinder interface {
	FindByID(ctx context.Context, id uint64) (domain.Deal, error)
}

type featuredService struct {
	featuredRepo FeaturedRepository
	dealFinder   DealFinder
}

func NewFeaturedService(featuredRepo FeaturedRepository, dealFinder DealFinder) *featuredService {
	return &featuredService{
		featuredRepo: featuredRepo,
		dealFinder:   dealFinder,
	}
}

// GetDealOfTheDay returns the current featured deal, or nil when nothing
// qualifies today.
func (s *featuredService) GetDealOfTheDay(ctx context.Context) (*domain.DealWithCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	current, err := s.featuredRepo.Current(ctx, time.Now())
	if err != nil {
		logger.Error("Failed to resolve deal of the day", err)
		return nil, err
	}

	return current, nil
}

func (s *featuredService) GetAllFeatured(ctx context.Context) ([]domain.FeaturedDealRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	rows, err := s.featuredRepo.FindAllRows(ctx)
	if err != nil {
		logger.Error("Failed to list featured deals", err)
		return nil, err
	}

	return rows, nil
}

func (s *featuredService) CreateFeatured(ctx context.Context, dealID uint64, startDate time.Time, endDate *time.Time) (*domain.FeaturedDeal, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if dealID == 0 {
		return nil, apperror.Validation("deal id is required", nil)
	}
	if startDate.IsZero() {
		return nil, apperror.Validation("start date is required", nil)
	}

	deal, err := s.dealFinder.FindByID(ctx, dealID)
	if err != nil {
		logger.Error("featured deal target not found", err)
		return nil, err
	}
	if !deal.IsActive {
		return nil, apperror.Validation("deal is not active", nil)
	}

	featuredDeal := &domain.FeaturedDeal{
		DealID:    dealID,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  true,
	}

	if err := s.featuredRepo.Create(ctx, featuredDeal); err != nil {
		logger.Error("failed to create featured deal", err)
		return nil, err
	}

	logger.Info("featured deal created", "deal_id", dealID)

	return featuredDeal, nil
}

func (s *featuredService) DeleteFeatured(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return apperror.Validation("invalid featured deal id", nil)
	}

	if err := s.featuredRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete featured deal", err)
		return err
	}

	logger.Info("featured deal deleted", "id", id)

	return nil
}
