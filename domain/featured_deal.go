package domain

import (
	"time"
)

// CREATE TABLE deal_of_the_day (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     deal_id    BIGINT NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
//     start_date DATE NOT NULL,
//     end_date   DATE,
//     is_active  BOOLEAN DEFAULT TRUE,
//     created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
// );

type FeaturedDeal struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DealID    uint64     `gorm:"column:deal_id;not null" json:"deal_id"`
	Deal      *Deal      `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE" json:"-"`
	StartDate time.Time  `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate   *time.Time `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	IsActive  bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (FeaturedDeal) TableName() string {
	return "deal_of_the_day"
}

// FeaturedDealRow is the admin listing row: the featured window plus the
// referenced deal's display fields.
type FeaturedDealRow struct {
	FeaturedDeal
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Discount      *int     `json:"discount,omitempty"`
	ImageFilename *string  `json:"image_filename,omitempty"`
	CategoryName  *string  `json:"category_name,omitempty"`
}
