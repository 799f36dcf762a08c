package rest

import (
	"context"
	"net/http"
	"time"

	"dealsHub/business/deal"
	"dealsHub/domain"
	"dealsHub/internal/apperror"
	"dealsHub/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ListingService interface {
	ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.DealWithCategory, error)
	SeedSampleDeals(ctx context.Context) (int, error)
}

type CategoryLookup interface {
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)
}

type FeaturedLookup interface {
	GetDealOfTheDay(ctx context.Context) (*domain.DealWithCategory, error)
}

type PublicHandler struct {
	listings   ListingService
	categories CategoryLookup
	featured   FeaturedLookup
	timeout    time.Duration
}

func NewPublicHandler(listings ListingService, categories CategoryLookup, featured FeaturedLookup) *PublicHandler {
	return &PublicHandler{
		listings:   listings,
		categories: categories,
		featured:   featured,
		timeout:    10 * time.Second,
	}
}

func listingFilter(c echo.Context) domain.DealFilter {
	return domain.DealFilter{
		Search:   c.QueryParam("search"),
		MaxPrice: deal.ParseMaxPrice(c.QueryParam("max_price")),
		SortBy:   c.QueryParam("sort_by"),
	}
}

// Home serves the storefront: the filtered listing, the category list and
// the current deal of the day.
func (h *PublicHandler) Home(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	filter := listingFilter(c)

	deals, err := h.listings.ListDeals(ctx, filter)
	if err != nil {
		logger.Error("Failed to list deals", err)
		return writeError(c, err)
	}

	categories, err := h.categories.GetAllCategories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", err)
		return writeError(c, err)
	}

	dotd, err := h.featured.GetDealOfTheDay(ctx)
	if err != nil {
		logger.Error("Failed to resolve deal of the day", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"deals":           deals,
		"categories":      categories,
		"deal_of_the_day": dotd,
		"search":          filter.Search,
		"sort_by":         deal.NormalizeSort(filter.SortBy),
	})
}

// CategoryPage is the listing scoped to one category. Unknown slugs are a
// not-found outcome here, unlike the JSON API filter.
func (h *PublicHandler) CategoryPage(c echo.Context) error {
	slug := c.Param("slug")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.categories.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "category not found"})
		}
		logger.Error("Failed to find category", err)
		return writeError(c, err)
	}

	filter := listingFilter(c)
	filter.CategoryID = &category.ID

	deals, err := h.listings.ListDeals(ctx, filter)
	if err != nil {
		logger.Error("Failed to list category deals", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"category": category,
		"deals":    deals,
		"search":   filter.Search,
		"sort_by":  deal.NormalizeSort(filter.SortBy),
	})
}

// APIDeals returns the public projection. category=all or empty means no
// category filter; an unknown slug yields an empty array, not an error.
func (h *PublicHandler) APIDeals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	filter := domain.DealFilter{}
	if slug := c.QueryParam("category"); slug != "" && slug != "all" {
		filter.CategorySlug = slug
	}

	deals, err := h.listings.ListDeals(ctx, filter)
	if err != nil {
		logger.Error("Failed to list deals for API", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, deal.ToAPIDeals(deals))
}

func (h *PublicHandler) AddSampleDeals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.listings.SeedSampleDeals(ctx)
	if err != nil {
		logger.Error("Failed to seed sample deals", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "sample deals seeded",
		"created": created,
	})
}

func (h *PublicHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
