package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"dealsHub/business/deal"
	"dealsHub/domain"
	"dealsHub/internal/apperror"
	"dealsHub/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type DealService interface {
	ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.DealWithCategory, error)
	GetRecentDeals(ctx context.Context, limit int) ([]domain.DealWithCategory, error)
	GetActiveDeals(ctx context.Context) ([]domain.DealWithCategory, error)
	CreateDeal(ctx context.Context, input deal.DealInput) (*domain.Deal, error)
	UpdateDeal(ctx context.Context, id uint64, input deal.DealInput) (*domain.Deal, error)
	DeleteDeal(ctx context.Context, id uint64) error
}

type DealCategoryService interface {
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

type DealHandler struct {
	dealService     DealService
	categoryService DealCategoryService
	timeout         time.Duration
}

func NewDealHandler(dealService DealService, categoryService DealCategoryService) *DealHandler {
	return &DealHandler{
		dealService:     dealService,
		categoryService: categoryService,
		timeout:         10 * time.Second,
	}
}

// dashboard shows the most recent deals alongside the quick-add forms
const recentDealsLimit = 20

// bindDealInput reads the multipart deal form. The image part is optional;
// price must parse as a non-negative number.
func bindDealInput(c echo.Context) (deal.DealInput, error) {
	input := deal.DealInput{
		Title:       c.FormValue("title"),
		URL:         c.FormValue("url"),
		Description: c.FormValue("description"),
	}

	priceStr := c.FormValue("price")
	if priceStr == "" {
		return input, apperror.Validation("price is required", nil)
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return input, apperror.Validation("price must be a non-negative number", err)
	}
	input.Price = price

	if raw := c.FormValue("original_price"); raw != "" {
		originalPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input, apperror.Validation("original price must be a number", err)
		}
		input.OriginalPrice = &originalPrice
	}

	if raw := c.FormValue("category_id"); raw != "" && raw != "0" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return input, apperror.Validation("invalid category id", err)
		}
		input.CategoryID = &categoryID
	}

	if raw := c.FormValue("stock_quantity"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return input, apperror.Validation("stock quantity must be a non-negative integer", err)
		}
		input.StockQuantity = stock
	}

	switch c.FormValue("is_active") {
	case "", "1", "true", "on":
		input.IsActive = true
	}

	if file, err := c.FormFile("image"); err == nil {
		input.Image = file
	}

	return input, nil
}

// GetAllDeals is the admin product list, filterable by title search and
// category.
func (h *DealHandler) GetAllDeals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	filter := domain.DealFilter{
		Search: c.QueryParam("search"),
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid category id"})
		}
		filter.CategoryID = &categoryID
	}

	deals, err := h.dealService.ListDeals(ctx, filter)
	if err != nil {
		logger.Error("Failed to list deals", err)
		return writeError(c, err)
	}

	categories, err := h.categoryService.GetAllCategories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get all products",
		"deals":      deals,
		"categories": categories,
	})
}

func (h *DealHandler) CreateDeal(c echo.Context) error {
	input, err := bindDealInput(c)
	if err != nil {
		logger.Error("Failed to bind deal form", err)
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newDeal, err := h.dealService.CreateDeal(ctx, input)
	if err != nil {
		logger.Error("Failed to create deal", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newDeal))
}

func (h *DealHandler) UpdateDeal(c echo.Context) error {
	dealIDStr := c.Param("id")

	dealID, err := strconv.ParseUint(dealIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid deal id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid deal id"})
	}

	input, err := bindDealInput(c)
	if err != nil {
		logger.Error("Failed to bind deal form", err)
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updatedDeal, err := h.dealService.UpdateDeal(ctx, dealID, input)
	if err != nil {
		logger.Error("Failed to update deal", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updatedDeal))
}

func (h *DealHandler) DeleteDeal(c echo.Context) error {
	dealIDStr := c.Param("id")

	dealID, err := strconv.ParseUint(dealIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid deal id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid deal id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.dealService.DeleteDeal(ctx, dealID); err != nil {
		logger.Error("Failed to delete deal", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "deal successfully deleted",
		"deal_id": dealID,
	})
}

// Dashboard serves the recent deals plus the data the quick-add forms need.
func (h *DealHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recent, err := h.dealService.GetRecentDeals(ctx, recentDealsLimit)
	if err != nil {
		logger.Error("Failed to list recent deals", err)
		return writeError(c, err)
	}

	categories, err := h.categoryService.GetAllCategories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"recent_deals": recent,
		"categories":   categories,
	})
}

// DashboardSubmit is the combined quick-add form: form_type selects whether
// a category or a deal is being created.
func (h *DealHandler) DashboardSubmit(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	switch formType := c.FormValue("form_type"); formType {
	case "category":
		category := &domain.Category{
			Name:        c.FormValue("name"),
			Slug:        c.FormValue("slug"),
			Description: c.FormValue("description"),
		}

		newCategory, err := h.categoryService.CreateCategory(ctx, category)
		if err != nil {
			logger.Error("Failed to quick-add category", err)
			return writeError(c, err)
		}

		return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newCategory))

	case "deal":
		input, err := bindDealInput(c)
		if err != nil {
			logger.Error("Failed to bind deal form", err)
			return writeError(c, err)
		}

		newDeal, err := h.dealService.CreateDeal(ctx, input)
		if err != nil {
			logger.Error("Failed to quick-add deal", err)
			return writeError(c, err)
		}

		return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newDeal))

	default:
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "unknown form type"})
	}
}
