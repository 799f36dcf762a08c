package deal

import (
	"context"
	"fmt"
	"mime/multipart"
	"regexp"
	"strconv"

	"dealsHub/domain"
	"dealsHub/internal/apperror"
	"dealsHub/pkg/logger"
	"dealsHub/pkg/metrics"
)

// DealRepository contract interface
type DealRepository interface {
	List(ctx context.Context, filter domain.DealFilter) ([]domain.DealWithCategory, error)
	Recent(ctx context.Context, limit int) ([]domain.DealWithCategory, error)
	FindActive(ctx context.Context) ([]domain.DealWithCategory, error)
	Create(ctx context.Context, deal *domain.Deal) error
	FindByID(ctx context.Context, id uint64) (domain.Deal, error)
	Update(ctx context.Context, deal *domain.Deal) error
	Delete(ctx context.Context, id uint64) error
	FirstOrCreateByTitle(ctx context.Context, deal *domain.Deal) (bool, error)
}

// CategoryFinder resolves category references at write time.
type CategoryFinder interface {
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (domain.Category, error)
}

// ImageSaver persists an uploaded image and returns the stored filename.
type ImageSaver interface {
	Save(file *multipart.FileHeader) (string, error)
}

type dealService struct {
	dealRepo       DealRepository
	categoryFinder CategoryFinder
	images         ImageSaver
}

func NewDealService(dealRepo DealRepository, categoryFinder CategoryFinder, images ImageSaver) *dealService {
	return &dealService{
		dealRepo:       dealRepo,
		categoryFinder: categoryFinder,
		images:         images,
	}
}

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// ParseMaxPrice turns the raw max_price query value into a price ceiling.
// Anything that is not an all-digit non-negative value is ignored, so a
// malformed ceiling drops the filter instead of failing the request.
func ParseMaxPrice(raw string) *float64 {
	if raw == "" || !digitsOnly.MatchString(raw) {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &v
}

// NormalizeSort collapses unknown sort modes to the default.
func NormalizeSort(sortBy string) string {
	switch sortBy {
	case domain.SortDiscount, domain.SortPriceLow, domain.SortPriceHigh, domain.SortNewest:
		return sortBy
	default:
		return domain.SortNewest
	}
}

func (s *dealService) ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.DealWithCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	filter.SortBy = NormalizeSort(filter.SortBy)
	metrics.DealListingQueries.WithLabelValues(filter.SortBy).Inc()

	deals, err := s.dealRepo.List(ctx, filter)
	if err != nil {
		logger.Error("Failed to list deals", err)
		return nil, err
	}

	return deals, nil
}

// ToAPIDeals maps listing rows to the public API shape, applying the
// documented fallbacks for missing original price, discount, image and
// category.
func ToAPIDeals(rows []domain.DealWithCategory) []domain.APIDeal {
	out := make([]domain.APIDeal, 0, len(rows))

	for _, row := range rows {
		apiDeal := domain.APIDeal{
			ID:            row.ID,
			Title:         row.Title,
			Price:         row.Price,
			OriginalPrice: row.Price,
			Image:         domain.PlaceholderImageURL,
			Category:      domain.DefaultCategorySlug,
			Affiliate:     row.URL,
		}
		if row.OriginalPrice != nil {
			apiDeal.OriginalPrice = *row.OriginalPrice
		}
		if row.Discount != nil {
			apiDeal.Discount = *row.Discount
		}
		if row.ImageFilename != nil && *row.ImageFilename != "" {
			apiDeal.Image = "/uploads/" + *row.ImageFilename
		}
		if row.CategorySlug != nil && *row.CategorySlug != "" {
			apiDeal.Category = *row.CategorySlug
		}

		out = append(out, apiDeal)
	}

	return out
}

func (s *dealService) GetRecentDeals(ctx context.Context, limit int) ([]domain.DealWithCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	deals, err := s.dealRepo.Recent(ctx, limit)
	if err != nil {
		logger.Error("Failed to list recent deals", err)
		return nil, err
	}

	return deals, nil
}

func (s *dealService) GetActiveDeals(ctx context.Context) ([]domain.DealWithCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	deals, err := s.dealRepo.FindActive(ctx)
	if err != nil {
		logger.Error("Failed to list active deals", err)
		return nil, err
	}

	return deals, nil
}

func (s *dealService) GetDealByID(ctx context.Context, id uint64) (domain.Deal, error) {
	if err := ctx.Err(); err != nil {
		return domain.Deal{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return domain.Deal{}, apperror.Validation("invalid deal id", nil)
	}

	deal, err := s.dealRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find deal", err)
		return domain.Deal{}, err
	}

	return deal, nil
}

// DealInput carries the validated write fields for a deal. The discount is
// never taken from input; it is recomputed from the prices on every write.
type DealInput struct {
	Title         string
	URL           string
	Price         float64
	OriginalPrice *float64
	CategoryID    *uint64
	Description   string
	StockQuantity int
	IsActive      bool
	Image         *multipart.FileHeader
}

func (s *dealService) validateInput(ctx context.Context, input DealInput) error {
	if input.Title == "" {
		return apperror.Validation("deal title is required", nil)
	}
	if input.URL == "" {
		return apperror.Validation("deal url is required", nil)
	}
	if input.Price < 0 {
		return apperror.Validation("price must be a non-negative number", nil)
	}

	if input.CategoryID != nil {
		if _, err := s.categoryFinder.FindByID(ctx, *input.CategoryID); err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				return apperror.Validation("category does not exist", err)
			}
			return err
		}
	}

	return nil
}

func (s *dealService) saveImage(input DealInput) (*string, error) {
	if input.Image == nil {
		return nil, nil
	}

	name, err := s.images.Save(input.Image)
	if err != nil {
		logger.Error("Failed to store deal image", err)
		return nil, err
	}

	return &name, nil
}

func (s *dealService) CreateDeal(ctx context.Context, input DealInput) (*domain.Deal, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	imageFilename, err := s.saveImage(input)
	if err != nil {
		return nil, err
	}

	deal := &domain.Deal{
		Title:         input.Title,
		URL:           input.URL,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Discount:      domain.ComputeDiscount(input.Price, input.OriginalPrice),
		ImageFilename: imageFilename,
		CategoryID:    input.CategoryID,
		Description:   input.Description,
		StockQuantity: input.StockQuantity,
		IsActive:      true,
	}

	if err := s.dealRepo.Create(ctx, deal); err != nil {
		logger.Error("failed to create deal", err)
		return nil, err
	}

	logger.Info("deal created successfully", "id", deal.ID, "title", deal.Title)

	return deal, nil
}

// UpdateDeal rewrites every mutable field from the input. When no new image
// is uploaded the stored filename stays as it is.
func (s *dealService) UpdateDeal(ctx context.Context, id uint64, input DealInput) (*domain.Deal, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return nil, apperror.Validation("invalid deal id", nil)
	}
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	if _, err := s.dealRepo.FindByID(ctx, id); err != nil {
		logger.Error("deal not found", err)
		return nil, err
	}

	imageFilename, err := s.saveImage(input)
	if err != nil {
		return nil, err
	}

	deal := &domain.Deal{
		ID:            id,
		Title:         input.Title,
		URL:           input.URL,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Discount:      domain.ComputeDiscount(input.Price, input.OriginalPrice),
		ImageFilename: imageFilename,
		CategoryID:    input.CategoryID,
		Description:   input.Description,
		StockQuantity: input.StockQuantity,
		IsActive:      input.IsActive,
	}

	if err := s.dealRepo.Update(ctx, deal); err != nil {
		logger.Error("failed to update deal", err)
		return nil, err
	}

	updated, err := s.dealRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to fetch updated deal", err)
		return nil, err
	}

	logger.Info("deal updated successfully", "id", id)

	return &updated, nil
}

func (s *dealService) DeleteDeal(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return apperror.Validation("invalid deal id", nil)
	}

	if err := s.dealRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete deal", err)
		return err
	}

	logger.Info("deal deleted successfully", "id", id)

	return nil
}
