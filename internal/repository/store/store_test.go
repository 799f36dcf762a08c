package store

import (
	"context"
	"testing"
	"time"

	"dealsHub/domain"
	"dealsHub/internal/apperror"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(&domain.Category{}, &domain.Deal{}, &domain.FeaturedDeal{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) domain.Category {
	t.Helper()

	category := domain.Category{Name: name, Slug: slug}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category %s: %v", slug, err)
	}

	return category
}

func seedDeal(t *testing.T, db *gorm.DB, deal domain.Deal) domain.Deal {
	t.Helper()

	if deal.URL == "" {
		deal.URL = "https://example.com/deal"
	}
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = time.Now()
	}
	deal.IsActive = true
	if err := db.Create(&deal).Error; err != nil {
		t.Fatalf("failed to seed deal %s: %v", deal.Title, err)
	}

	return deal
}

func f64(v float64) *float64 { return &v }
func u64(v uint64) *uint64   { return &v }

func TestListSearchIsCaseInsensitiveContains(t *testing.T) {
	db := openTestDB(t)
	repo := NewDealRepository(db)

	seedDeal(t, db, domain.Deal{Title: "Apple iPhone 15", Price: 999})
	seedDeal(t, db, domain.Deal{Title: "Sony Headphones", Price: 249})

	rows, err := repo.List(context.Background(), domain.DealFilter{Search: "IPHONE"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(rows) != 1 || rows[0].Title != "Apple iPhone 15" {
		t.Errorf("expected the iPhone deal only, got %d rows", len(rows))
	}
}

func TestListMaxPriceIsInclusive(t *testing.T) {
	db := openTestDB(t)
	repo := NewDealRepository(db)

	seedDeal(t, db, domain.Deal{Title: "Cheap", Price: 100})
	seedDeal(t, db, domain.Deal{Title: "Exact", Price: 200})
	seedDeal(t, db, domain.Deal{Title: "Expensive", Price: 201})

	rows, err := repo.List(context.Background(), domain.DealFilter{MaxPrice: f64(200)})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows at or under the ceiling, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Price > 200 {
			t.Errorf("deal %q exceeds the price ceiling", row.Title)
		}
	}
}

func TestListCategoryFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewDealRepository(db)

	books := seedCategory(t, db, "Books", "books")
	seedCategory(t, db, "Sports", "sports")

	seedDeal(t, db, domain.Deal{Title: "Atomic Habits", Price: 399, CategoryID: u64(books.ID)})
	seedDeal(t, db, domain.Deal{Title: "Yoga Mat", Price: 799})

	rows, err := repo.List(context.Background(), domain.DealFilter{CategoryID: u64(books.ID)})
	if err != nil {
		t.Fatalf("list by category id failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "Atomic Habits" {
		t.Errorf("expected only the book deal, got %d rows", len(rows))
	}

	rows, err = repo.List(context.Background(), domain.DealFilter{CategorySlug: "books"})
	if err != nil {
		t.Fatalf("list by slug failed: %v", err)
	}
	if len(rows) != 1 || rows[0].CategorySlug == nil || *rows[0].CategorySlug != "books" {
		t.Errorf("expected joined slug books, got %+v", rows)
	}

	// Unknown slug is an empty result, not an error.
	rows, err = repo.List(context.Background(), domain.DealFilter{CategorySlug: "unknown-slug"})
	if err != nil {
		t.Fatalf("list by unknown slug failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty result for unknown slug, got %d rows", len(rows))
	}
}

func TestListSortNewestBreaksTiesByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewDealRepository(db)

	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedDeal(t, db, domain.Deal{Title: "First", Price: 10, CreatedAt: at})
	seedDeal(t, db, domain.Deal{Title: "Second", Price: 20, CreatedAt: at})

	rows, err := repo.List(context.Background(), domain.DealFilter{SortBy: domain.SortNewest})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Title != "Second" || rows[1].Title != "First" {
		t.Errorf("expected id-descending tie-break, got %s then %s", rows[0].Title, rows[1].Title)
	}
}

func TestListSortDiscountPutsNullsLast(t *testing.T) {
	db := openTestDB(t)
	repo := NewDealRepository(db)

	d30 := 30
	d50 := 50
	seedDeal(t, db, domain.Deal{Title: "NoDiscount", Price: 100})
	seedDeal(t, db, domain.Deal{Title: "Thirty", Price: 70, OriginalPrice: f64(100), Discount: &d30})
	seedDeal(t, db, domain.Deal{Title: "Fifty", Price: 50, OriginalPrice: f64(100), Discount: &d50})

	rows, err := repo.List(context.Background(), domain.DealFilter{SortBy: domain.SortDiscount})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Title != "Fifty" || rows[1].Title != "Thirty" || rows[2].Title != "NoDiscount" {
		t.Errorf("expected Fifty, Thirty, NoDiscount; got %s, %s, %s",
			rows[0].Title, rows[1].Title, rows[2].Title)
	}
}

func TestListSortByPrice(t *testing.T) {
	db := openTestDB(t)
	repo := NewDealRepository(db)

	seedDeal(t, db, domain.Deal{Title: "Mid", Price: 50})
	seedDeal(t, db, domain.Deal{Title: "Low", Price: 10})
	seedDeal(t, db, domain.Deal{Title: "High", Price: 90})

	rows, err := repo.List(context.Background(), domain.DealFilter{SortBy: domain.SortPriceLow})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if rows[0].Title != "Low" || rows[2].Title != "High" {
		t.Errorf("price-low: expected Low first and High last, got %s ... %s", rows[0].Title, rows[2].Title)
	}

	rows, err = repo.List(context.Background(), domain.DealFilter{SortBy: domain.SortPriceHigh})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if rows[0].Title != "High" || rows[2].Title != "Low" {
		t.Errorf("price-high: expected High first and Low last, got %s ... %s", rows[0].Title, rows[2].Title)
	}
}

func TestCategoryCreateDuplicateSlug(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)

	ctx := context.Background()
	if err := repo.Create(ctx, &domain.Category{Name: "Books", Slug: "books"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	err := repo.Create(ctx, &domain.Category{Name: "Books Again", Slug: "books"})
	if !apperror.Is(err, apperror.KindDuplicate) {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestDeleteDealCascadesFeaturedRow(t *testing.T) {
	db := openTestDB(t)
	dealRepo := NewDealRepository(db)
	featuredRepo := NewFeaturedRepository(db)

	ctx := context.Background()
	deal := seedDeal(t, db, domain.Deal{Title: "Featured Deal", Price: 10})

	featured := domain.FeaturedDeal{DealID: deal.ID, StartDate: time.Now(), IsActive: true}
	if err := featuredRepo.Create(ctx, &featured); err != nil {
		t.Fatalf("failed to create featured row: %v", err)
	}

	if err := dealRepo.Delete(ctx, deal.ID); err != nil {
		t.Fatalf("failed to delete deal: %v", err)
	}

	var count int64
	if err := db.Model(&domain.FeaturedDeal{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count featured rows: %v", err)
	}
	if count != 0 {
		t.Errorf("expected featured row to cascade away, got %d rows", count)
	}
}

func TestCategoryDeleteClearsDealReference(t *testing.T) {
	db := openTestDB(t)

	category := seedCategory(t, db, "Books", "books")
	deal := seedDeal(t, db, domain.Deal{Title: "Atomic Habits", Price: 399, CategoryID: u64(category.ID)})

	if err := NewCategoryRepository(db).Delete(context.Background(), category.ID); err != nil {
		t.Fatalf("failed to delete category: %v", err)
	}

	var reloaded domain.Deal
	if err := db.First(&reloaded, deal.ID).Error; err != nil {
		t.Fatalf("deal must survive category deletion: %v", err)
	}
	if reloaded.CategoryID != nil {
		t.Errorf("expected category reference cleared, got %v", *reloaded.CategoryID)
	}
}

func TestCurrentFeaturedResolution(t *testing.T) {
	db := openTestDB(t)
	featuredRepo := NewFeaturedRepository(db)

	ctx := context.Background()
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	// Nothing yet.
	current, err := featuredRepo.Current(ctx, today)
	if err != nil {
		t.Fatalf("resolution failed: %v", err)
	}
	if current != nil {
		t.Fatalf("expected no deal of the day, got %+v", current)
	}

	older := seedDeal(t, db, domain.Deal{Title: "Older Feature", Price: 10})
	newer := seedDeal(t, db, domain.Deal{Title: "Newer Feature", Price: 20})
	expired := seedDeal(t, db, domain.Deal{Title: "Expired Feature", Price: 30})

	past := today.AddDate(0, 0, -1)
	if err := featuredRepo.Create(ctx, &domain.FeaturedDeal{
		DealID: older.ID, StartDate: past, IsActive: true,
		CreatedAt: today.Add(-2 * time.Hour),
	}); err != nil {
		t.Fatalf("failed to create older feature: %v", err)
	}
	if err := featuredRepo.Create(ctx, &domain.FeaturedDeal{
		DealID: newer.ID, StartDate: past, IsActive: true,
		CreatedAt: today.Add(-1 * time.Hour),
	}); err != nil {
		t.Fatalf("failed to create newer feature: %v", err)
	}
	if err := featuredRepo.Create(ctx, &domain.FeaturedDeal{
		DealID: expired.ID, StartDate: past, EndDate: &past, IsActive: true,
		CreatedAt: today,
	}); err != nil {
		t.Fatalf("failed to create expired feature: %v", err)
	}

	current, err = featuredRepo.Current(ctx, today)
	if err != nil {
		t.Fatalf("resolution failed: %v", err)
	}
	if current == nil || current.Title != "Newer Feature" {
		t.Fatalf("expected the most recently created in-range feature, got %+v", current)
	}

	// Deactivating the winning deal removes it from resolution.
	if err := db.Model(&domain.Deal{}).Where("id = ?", newer.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate deal: %v", err)
	}

	current, err = featuredRepo.Current(ctx, today)
	if err != nil {
		t.Fatalf("resolution failed: %v", err)
	}
	if current == nil || current.Title != "Older Feature" {
		t.Fatalf("expected fallback to older in-range feature, got %+v", current)
	}
}

func TestDealUpdateKeepsImageWhenAbsent(t *testing.T) {
	db := openTestDB(t)
	repo := NewDealRepository(db)

	ctx := context.Background()
	image := "phone_1700000000.jpg"
	deal := seedDeal(t, db, domain.Deal{Title: "Phone", Price: 500, ImageFilename: &image})

	deal.Title = "Phone v2"
	deal.ImageFilename = nil
	if err := repo.Update(ctx, &deal); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, deal.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Title != "Phone v2" {
		t.Errorf("expected title update, got %s", reloaded.Title)
	}
	if reloaded.ImageFilename == nil || *reloaded.ImageFilename != image {
		t.Errorf("expected image filename untouched, got %v", reloaded.ImageFilename)
	}
}

func TestFirstOrCreateByTitleIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewDealRepository(db)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		deal := domain.Deal{Title: "Sample", URL: "https://example.com", Price: 99, IsActive: true}
		inserted, err := repo.FirstOrCreateByTitle(ctx, &deal)
		if err != nil {
			t.Fatalf("seed attempt %d failed: %v", i, err)
		}
		if inserted != (i == 0) {
			t.Errorf("attempt %d: inserted = %v", i, inserted)
		}
	}

	var count int64
	if err := db.Model(&domain.Deal{}).Where("title = ?", "Sample").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single seeded row, got %d", count)
	}
}

func TestCountByCategory(t *testing.T) {
	db := openTestDB(t)
	dealRepo := NewDealRepository(db)

	books := seedCategory(t, db, "Books", "books")
	seedDeal(t, db, domain.Deal{Title: "A", Price: 1, CategoryID: u64(books.ID)})
	seedDeal(t, db, domain.Deal{Title: "B", Price: 2, CategoryID: u64(books.ID)})
	seedDeal(t, db, domain.Deal{Title: "C", Price: 3})

	count, err := dealRepo.CountByCategory(context.Background(), books.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 referencing deals, got %d", count)
	}
}
