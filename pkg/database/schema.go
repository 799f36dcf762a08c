package database

import (
	"sync"

	"dealsHub/domain"
	"dealsHub/internal/apperror"

	"gorm.io/gorm"
)

var schemaOnce sync.Once

var defaultCategories = []domain.Category{
	{Name: "Electronics", Slug: "electronics"},
	{Name: "Fashion", Slug: "fashion"},
	{Name: "Home & Kitchen", Slug: "home"},
	{Name: "Beauty", Slug: "beauty"},
	{Name: "Books", Slug: "books"},
	{Name: "Sports", Slug: "sports"},
}

// EnsureSchema migrates the three tables and seeds the default categories.
// Runs at most once per process; the underlying work is idempotent either
// way, so a concurrent cold start cannot double-seed or drop anything.
func EnsureSchema(db *gorm.DB) error {
	var err error
	schemaOnce.Do(func() {
		err = ensureSchema(db)
	})
	return err
}

func ensureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Category{}, &domain.Deal{}, &domain.FeaturedDeal{}); err != nil {
		return apperror.Storage("failed to migrate schema", err)
	}

	// Per-row insert-if-absent keyed on slug, never a blind insert.
	for _, c := range defaultCategories {
		var category domain.Category
		err := db.Where(domain.Category{Slug: c.Slug}).
			Attrs(domain.Category{Name: c.Name}).
			FirstOrCreate(&category).Error
		if err != nil {
			return apperror.Storage("failed to seed default categories", err)
		}
	}

	return nil
}
