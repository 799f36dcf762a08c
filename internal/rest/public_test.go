package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dealsHub/domain"
	"dealsHub/internal/apperror"

	"github.com/labstack/echo/v4"
)

type stubListingService struct {
	deals      []domain.DealWithCategory
	lastFilter domain.DealFilter
	seeded     int
}

func (s *stubListingService) ListDeals(_ context.Context, filter domain.DealFilter) ([]domain.DealWithCategory, error) {
	s.lastFilter = filter
	if filter.CategorySlug != "" {
		var out []domain.DealWithCategory
		for _, d := range s.deals {
			if d.CategorySlug != nil && *d.CategorySlug == filter.CategorySlug {
				out = append(out, d)
			}
		}
		return out, nil
	}
	return s.deals, nil
}

func (s *stubListingService) SeedSampleDeals(_ context.Context) (int, error) {
	s.seeded++
	return 10, nil
}

type stubCategoryLookup struct {
	categories []domain.Category
}

func (s *stubCategoryLookup) GetAllCategories(_ context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubCategoryLookup) GetCategoryBySlug(_ context.Context, slug string) (domain.Category, error) {
	for _, category := range s.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return domain.Category{}, apperror.NotFound("category not found", nil)
}

type stubFeaturedLookup struct {
	current *domain.DealWithCategory
}

func (s *stubFeaturedLookup) GetDealOfTheDay(_ context.Context) (*domain.DealWithCategory, error) {
	return s.current, nil
}

func strPtr(v string) *string { return &v }
func fPtr(v float64) *float64 { return &v }
func iPtr(v int) *int         { return &v }
func uPtr(v uint64) *uint64   { return &v }

func newPublicHandler() (*PublicHandler, *stubListingService) {
	booksSlug := "books"
	listings := &stubListingService{deals: []domain.DealWithCategory{
		{
			Deal: domain.Deal{
				ID: 1, Title: "Atomic Habits", Price: 399, URL: "https://x/books",
				OriginalPrice: fPtr(599), Discount: iPtr(33), CategoryID: uPtr(5),
			},
			CategoryName: strPtr("Books"),
			CategorySlug: &booksSlug,
		},
		{
			Deal: domain.Deal{ID: 2, Title: "Bare deal", Price: 99, URL: "https://x/bare"},
		},
	}}
	categories := &stubCategoryLookup{categories: []domain.Category{
		{ID: 5, Name: "Books", Slug: "books"},
	}}
	return NewPublicHandler(listings, categories, &stubFeaturedLookup{}), listings
}

func TestAPIDealsProjection(t *testing.T) {
	h, _ := newPublicHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/deals?category=books", nil)
	rec := httptest.NewRecorder()

	if err := h.APIDeals(e.NewContext(req, rec)); err != nil {
		t.Fatalf("APIDeals: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var out []domain.APIDeal
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 deal, got %d", len(out))
	}
	got := out[0]
	if got.OriginalPrice != 599 || got.Discount != 33 || got.Category != "books" {
		t.Fatalf("projection wrong: %+v", got)
	}
	if got.Affiliate != "https://x/books" {
		t.Fatalf("affiliate = %q", got.Affiliate)
	}
}

func TestAPIDealsUnknownSlugIsEmptyArray(t *testing.T) {
	h, _ := newPublicHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/deals?category=nope", nil)
	rec := httptest.NewRecorder()

	if err := h.APIDeals(e.NewContext(req, rec)); err != nil {
		t.Fatalf("APIDeals: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var out []domain.APIDeal
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty array, got %d deals", len(out))
	}
}

func TestAPIDealsCategoryAllSkipsFilter(t *testing.T) {
	h, listings := newPublicHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/deals?category=all", nil)
	rec := httptest.NewRecorder()

	if err := h.APIDeals(e.NewContext(req, rec)); err != nil {
		t.Fatalf("APIDeals: %v", err)
	}
	if listings.lastFilter.CategorySlug != "" {
		t.Fatalf("category=all must not filter, got %q", listings.lastFilter.CategorySlug)
	}
}

func TestCategoryPageUnknownSlugIs404(t *testing.T) {
	h, _ := newPublicHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("unknown-slug")

	if err := h.CategoryPage(c); err != nil {
		t.Fatalf("CategoryPage: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCategoryPageScopesListing(t *testing.T) {
	h, listings := newPublicHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?search=habit", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("books")

	if err := h.CategoryPage(c); err != nil {
		t.Fatalf("CategoryPage: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if listings.lastFilter.CategoryID == nil || *listings.lastFilter.CategoryID != 5 {
		t.Fatalf("listing not scoped to category: %+v", listings.lastFilter)
	}
	if listings.lastFilter.Search != "habit" {
		t.Fatalf("search not carried: %q", listings.lastFilter.Search)
	}
}

func TestHomeIgnoresMalformedMaxPrice(t *testing.T) {
	h, listings := newPublicHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?max_price=cheap", nil)
	rec := httptest.NewRecorder()

	if err := h.Home(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Home: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if listings.lastFilter.MaxPrice != nil {
		t.Fatalf("malformed max_price must be ignored, got %v", *listings.lastFilter.MaxPrice)
	}
}

func TestAddSampleDeals(t *testing.T) {
	h, listings := newPublicHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/add-sample-deals", nil)
	rec := httptest.NewRecorder()

	if err := h.AddSampleDeals(e.NewContext(req, rec)); err != nil {
		t.Fatalf("AddSampleDeals: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if listings.seeded != 1 {
		t.Fatalf("seed called %d times", listings.seeded)
	}
}
