package domain

// Sort modes for deal listings. Anything unrecognized falls back to SortNewest.
const (
	SortNewest    = "newest"
	SortDiscount  = "discount"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// DealFilter holds the three composable listing filters. Zero values mean
// "not applied". Filters are ANDed together.
type DealFilter struct {
	// Search is a case-insensitive substring match on the deal title.
	Search string
	// CategoryID restricts the listing to one category.
	CategoryID *uint64
	// CategorySlug restricts the listing by category slug (JSON API variant).
	// An unknown slug yields an empty result set, not an error.
	CategorySlug string
	// MaxPrice is an inclusive price ceiling.
	MaxPrice *float64
	// SortBy is one of the Sort* constants.
	SortBy string
}

// Fixed fallbacks for the public API projection.
const (
	PlaceholderImageURL = "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400"
	DefaultCategorySlug = "electronics"
)

// APIDeal is the public JSON shape served by /api/deals.
type APIDeal struct {
	ID            uint64  `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Discount      int     `json:"discount"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Affiliate     string  `json:"affiliate"`
}
