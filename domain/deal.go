package domain

import (
	"time"
)

// CREATE TABLE deals (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     title           TEXT NOT NULL,
//     url             TEXT NOT NULL,
//     price           NUMERIC NOT NULL,
//     original_price  NUMERIC,
//     discount        INTEGER,
//     image_filename  TEXT,
//     category_id     BIGINT REFERENCES categories(id) ON DELETE SET NULL,
//     description     TEXT,
//     stock_quantity  INTEGER DEFAULT 0,
//     is_active       BOOLEAN DEFAULT TRUE,
//     created_at      TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
//     updated_at      TIMESTAMP DEFAULT CURRENT_TIMESTAMP
// );

type Deal struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string    `gorm:"column:title;type:text;not null" json:"title"`
	URL           string    `gorm:"column:url;type:text;not null" json:"url"`
	Price         float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	OriginalPrice *float64  `gorm:"column:original_price;type:numeric" json:"original_price,omitempty"`
	Discount      *int      `gorm:"column:discount" json:"discount,omitempty"`
	ImageFilename *string   `gorm:"column:image_filename;type:text" json:"image_filename,omitempty"`
	CategoryID    *uint64   `gorm:"column:category_id" json:"category_id,omitempty"`
	Category      *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Description   string    `gorm:"column:description;type:text" json:"description,omitempty"`
	StockQuantity int       `gorm:"column:stock_quantity;default:0" json:"stock_quantity"`
	IsActive      bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Deal) TableName() string {
	return "deals"
}

// DealWithCategory is a listing row: the deal plus the joined category name
// and slug. Both are nil when the deal has no category.
type DealWithCategory struct {
	Deal
	CategoryName *string `json:"category_name,omitempty"`
	CategorySlug *string `json:"category_slug,omitempty"`
}

// ComputeDiscount derives the integer discount percent from price and
// original price. Returns nil unless originalPrice is present and strictly
// greater than price. The division truncates, matching floor for the
// non-negative operands this is called with.
func ComputeDiscount(price float64, originalPrice *float64) *int {
	if originalPrice == nil || *originalPrice <= price {
		return nil
	}

	d := int((*originalPrice - price) / *originalPrice * 100)
	return &d
}
