package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"dealsHub/domain"
	"dealsHub/internal/apperror"
	"dealsHub/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type FeaturedService interface {
	GetAllFeatured(ctx context.Context) ([]domain.FeaturedDealRow, error)
	CreateFeatured(ctx context.Context, dealID uint64, startDate time.Time, endDate *time.Time) (*domain.FeaturedDeal, error)
	DeleteFeatured(ctx context.Context, id uint64) error
}

type FeaturedDealLister interface {
	GetActiveDeals(ctx context.Context) ([]domain.DealWithCategory, error)
}

type FeaturedHandler struct {
	featuredService FeaturedService
	dealLister      FeaturedDealLister
	validator       *validator.Validate
	timeout         time.Duration
}

func NewFeaturedHandler(featuredService FeaturedService, dealLister FeaturedDealLister) *FeaturedHandler {
	return &FeaturedHandler{
		featuredService: featuredService,
		dealLister:      dealLister,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type CreateFeaturedRequest struct {
	DealID    uint64 `json:"deal_id" form:"deal_id" validate:"required"`
	StartDate string `json:"start_date" form:"start_date" validate:"required"`
	EndDate   string `json:"end_date" form:"end_date"`
}

// GetAllFeatured lists the featured-deal windows along with the active deals
// available for the add form.
func (h *FeaturedHandler) GetAllFeatured(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, err := h.featuredService.GetAllFeatured(ctx)
	if err != nil {
		logger.Error("Failed to list featured deals", err)
		return writeError(c, err)
	}

	activeDeals, err := h.dealLister.GetActiveDeals(ctx)
	if err != nil {
		logger.Error("Failed to list active deals", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"featured_deals": rows,
		"active_deals":   activeDeals,
	})
}

func (h *FeaturedHandler) CreateFeatured(c echo.Context) error {
	var req CreateFeaturedRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind featured request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate featured request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return writeError(c, apperror.Validation("start date must be YYYY-MM-DD", err))
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return writeError(c, apperror.Validation("end date must be YYYY-MM-DD", err))
		}
		endDate = &parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	featured, err := h.featuredService.CreateFeatured(ctx, req.DealID, startDate, endDate)
	if err != nil {
		logger.Error("Failed to create featured deal", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(featured))
}

func (h *FeaturedHandler) DeleteFeatured(c echo.Context) error {
	featuredIDStr := c.Param("id")

	featuredID, err := strconv.ParseUint(featuredIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid featured deal id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid featured deal id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.featuredService.DeleteFeatured(ctx, featuredID); err != nil {
		logger.Error("Failed to delete featured deal", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "featured deal successfully deleted",
		"featured_id": featuredID,
	})
}
