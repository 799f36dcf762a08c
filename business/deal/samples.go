package deal

import (
	"context"
	"fmt"

	"dealsHub/domain"
	"dealsHub/internal/apperror"
	"dealsHub/pkg/logger"
)

type sampleDeal struct {
	title         string
	url           string
	price         float64
	originalPrice float64
	categorySlug  string
}

var sampleDeals = []sampleDeal{
	{"Apple iPhone 15 Pro Max (256GB)", "https://amazon.in/dp/iphone15", 129999, 159999, "electronics"},
	{"Nike Air Max Running Shoes", "https://amazon.in/dp/nike-airmax", 4999, 9999, "fashion"},
	{"Smart LED TV 55 inch 4K", "https://amazon.in/dp/smart-tv", 34999, 69999, "electronics"},
	{"Instant Pot 6 Qt Pressure Cooker", "https://amazon.in/dp/instant-pot", 7499, 12999, "home"},
	{"Lakme Makeup Kit - Complete Set", "https://amazon.in/dp/lakme-kit", 1299, 2999, "beauty"},
	{"Atomic Habits by James Clear", "https://amazon.in/dp/atomic-habits", 399, 599, "books"},
	{"Yoga Mat Anti-Skid with Bag", "https://amazon.in/dp/yoga-mat", 799, 1999, "sports"},
	{"Levi's Men's Slim Fit Jeans", "https://amazon.in/dp/levis-jeans", 1899, 3999, "fashion"},
	{"Sony WH-1000XM5 Headphones", "https://amazon.in/dp/sony-headphones", 24999, 29999, "electronics"},
	{"Stainless Steel Cookware Set (7 Pcs)", "https://amazon.in/dp/cookware-set", 4999, 9999, "home"},
}

// SeedSampleDeals inserts ten demo deals, skipping any title that already
// exists, so the route can be hit repeatedly.
func (s *dealService) SeedSampleDeals(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	created := 0
	for _, sample := range sampleDeals {
		var categoryID *uint64
		if category, err := s.categoryFinder.FindBySlug(ctx, sample.categorySlug); err == nil {
			categoryID = &category.ID
		} else if !apperror.Is(err, apperror.KindNotFound) {
			return created, err
		}

		originalPrice := sample.originalPrice
		record := domain.Deal{
			Title:         sample.title,
			URL:           sample.url,
			Price:         sample.price,
			OriginalPrice: &originalPrice,
			Discount:      domain.ComputeDiscount(sample.price, &originalPrice),
			CategoryID:    categoryID,
			Description:   fmt.Sprintf("Great deal on %s", sample.title),
			StockQuantity: 100,
			IsActive:      true,
		}

		inserted, err := s.dealRepo.FirstOrCreateByTitle(ctx, &record)
		if err != nil {
			logger.Error("failed to seed sample deal", err)
			return created, err
		}
		if inserted {
			created++
		}
	}

	logger.Info("sample deals seeded", "created", created)

	return created, nil
}
