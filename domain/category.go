package domain

import (
	"time"
)

// CREATE TABLE categories (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        TEXT NOT NULL UNIQUE,
//     slug        TEXT NOT NULL UNIQUE,
//     description TEXT,
//     created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
// );

type Category struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:text;not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"column:slug;type:text;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryWithCount is the admin listing row: a category plus the number of
// active deals currently referencing it.
type CategoryWithCount struct {
	Category
	ProductCount int64 `json:"product_count"`
}
