package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// ListingStatus is the lifecycle state of a listing.
type ListingStatus string

const (
	StatusActive ListingStatus = "active"
	StatusSold   ListingStatus = "sold"
	// StatusExpired exists in stored data but no operation transitions
	// a listing into it today. Kept so imported records round-trip.
	StatusExpired ListingStatus = "expired"
)

// Recognized category vocabulary. The stores do not enforce it:
// unknown categories are tolerated and grouped under "autres" in
// statistics, never rejected.
const (
	CategoryOrganic = "organic"
	CategoryPaper   = "paper"
	CategoryPlastic = "plastic"
	CategoryMetal   = "metal"
	CategoryGlass   = "glass"
)

// Listing represents one tradable unit of organic or recyclable
// material offered by a seller.
//
// A Listing is uniquely identified by its ID, generated at creation
// and immutable afterwards. All other fields are mutable.
type Listing struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Example: listing-1724832000000-k3f9x2a
	ID string `json:"id"`

	// ─────────────────────────────
	// Offer description
	// ─────────────────────────────

	Title       string `json:"title"`
	Description string `json:"description"`

	// WasteType is a free classification tag (ex: "fruits", "carton").
	WasteType string `json:"wasteType"`

	// Category should be one of the recognized categories but is not
	// validated.
	Category string `json:"category"`

	// Weight in kilograms and Price in currency units. Expected
	// non-negative; the stores do not validate this.
	Weight float64 `json:"weight"`
	Price  float64 `json:"price"`

	// Location is an opaque free-text place description.
	Location string `json:"location"`

	Seller  string `json:"seller"`
	Phone   string `json:"phone"`
	Quality string `json:"quality"`
	Organic bool   `json:"organic"`

	// Image is a reference/path, never content.
	Image string `json:"image"`

	// ─────────────────────────────
	// Lifecycle & counters
	// ─────────────────────────────

	// Date is the creation date (YYYY-MM-DD). Redundant with
	// CreatedAt; both are set at creation and never reconciled.
	Date string `json:"date"`

	// CreatedAt is immutable. UpdatedAt is refreshed on every mutation.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Status ListingStatus `json:"status"`

	// Views and Likes are non-negative counters, mutated
	// independently of Status.
	Views int `json:"views"`
	Likes int `json:"likes"`
}

// Clone returns a deep copy of the listing.
func (l *Listing) Clone() *Listing {
	c := *l
	return &c
}

// Draft carries the caller-supplied fields of a new listing.
// Identity, timestamps, status and counters are filled in by
// NewListing.
type Draft struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	WasteType   string  `json:"wasteType"`
	Category    string  `json:"category"`
	Weight      float64 `json:"weight"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	Seller      string  `json:"seller"`
	Phone       string  `json:"phone"`
	Quality     string  `json:"quality"`
	Organic     bool    `json:"organic"`
	Image       string  `json:"image"`
}

// NewListing builds a fully populated listing from a draft.
// The ID combines the creation time in milliseconds with a random
// base36 suffix to avoid collisions between listings created within
// the same millisecond.
func NewListing(draft Draft, now time.Time) *Listing {
	return &Listing{
		ID:          NewListingID(now),
		Title:       draft.Title,
		Description: draft.Description,
		WasteType:   draft.WasteType,
		Category:    draft.Category,
		Weight:      draft.Weight,
		Price:       draft.Price,
		Location:    draft.Location,
		Seller:      draft.Seller,
		Phone:       draft.Phone,
		Quality:     draft.Quality,
		Organic:     draft.Organic,
		Image:       draft.Image,
		Date:        now.Format("2006-01-02"),
		CreatedAt:   now,
		UpdatedAt:   now,
		Status:      StatusActive,
		Views:       0,
		Likes:       0,
	}
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewListingID generates a fresh listing identifier.
func NewListingID(now time.Time) string {
	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("listing-%d-%s", now.UnixMilli(), suffix)
}

// Patch is a partial update of a listing. Nil fields are left
// untouched by Apply.
type Patch struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	WasteType   *string        `json:"wasteType,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Weight      *float64       `json:"weight,omitempty"`
	Price       *float64       `json:"price,omitempty"`
	Location    *string        `json:"location,omitempty"`
	Seller      *string        `json:"seller,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Quality     *string        `json:"quality,omitempty"`
	Organic     *bool          `json:"organic,omitempty"`
	Image       *string        `json:"image,omitempty"`
	Status      *ListingStatus `json:"status,omitempty"`
}

// Apply merges the patch into the listing. The caller is responsible
// for refreshing UpdatedAt.
func (p Patch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.WasteType != nil {
		l.WasteType = *p.WasteType
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Weight != nil {
		l.Weight = *p.Weight
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.Seller != nil {
		l.Seller = *p.Seller
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Quality != nil {
		l.Quality = *p.Quality
	}
	if p.Organic != nil {
		l.Organic = *p.Organic
	}
	if p.Image != nil {
		l.Image = *p.Image
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
}
