package domain

// SearchQuery is a structured filter for the indexed store.
// The zero value matches every active listing.
type SearchQuery struct {
	// Text is matched case-insensitively as a substring across title,
	// description, wasteType, category and location.
	Text string `json:"text,omitempty"`

	// Category filters by category, falling back to wasteType.
	// "all" (or empty) disables the filter.
	Category string `json:"category,omitempty"`

	// Location is matched case-insensitively as a substring.
	Location string `json:"location,omitempty"`

	// Inclusive numeric bounds; nil means unbounded.
	PriceMin  *float64 `json:"priceMin,omitempty"`
	PriceMax  *float64 `json:"priceMax,omitempty"`
	WeightMin *float64 `json:"weightMin,omitempty"`
	WeightMax *float64 `json:"weightMax,omitempty"`
}

// Statistics is the aggregate computed over all stored listings.
type Statistics struct {
	TotalListings    int `json:"totalListings"`
	ActiveListings   int `json:"activeListings"`
	SoldListings     int `json:"soldListings"`
	ThisWeekListings int `json:"thisWeekListings"`
	TotalViews       int `json:"totalViews"`
	TotalLikes       int `json:"totalLikes"`

	// Breakdown keys default to "autres" for listings without a
	// category and "non-spécifié" for listings without a location.
	CategoryBreakdown map[string]int `json:"categoryBreakdown"`
	LocationBreakdown map[string]int `json:"locationBreakdown"`
}

const (
	// FallbackCategory groups listings with no category in statistics.
	FallbackCategory = "autres"
	// FallbackLocation groups listings with no location in statistics.
	FallbackLocation = "non-spécifié"
)
