package domain

import "time"

// Shop represents a publicly listed döner shop.
type Shop struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Location    Location
	Address     Address
	Attributes  Attributes
	Delivery    Delivery
	Published   bool
	External    ExternalPlace
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Location holds the shop coordinates.
type Location struct {
	Lat float64
	Lng float64
}

// Address is the postal address of a shop.
type Address struct {
	Street     string
	City       string
	PostalCode string
}

// Attributes are the descriptive flags the public filters operate on.
type Attributes struct {
	Halal            bool
	Vegetarian       bool
	MeatType         string
	PriceLevel       int
	HasSpecialOffers bool
}

// Delivery describes the delivery offering. Fee and minimum are in cents.
type Delivery struct {
	Available     bool
	FeeCents      int
	MinOrderCents int
	RadiusMeters  int
}

// ExternalPlace links a shop to an imported place record.
type ExternalPlace struct {
	PlaceID     string
	Rating      *float64
	RatingCount int
	SyncedAt    *time.Time
}

// Photo is an image attached to a shop.
type Photo struct {
	ID        string
	URL       string
	Caption   string
	SortOrder int
	CreatedAt time.Time
}

// RatingSummary is the aggregate over a shop's reviews. AvgRating is 0 without reviews.
type RatingSummary struct {
	AvgRating   float64
	ReviewCount int
}

// RatedShop is a repository row: the shop plus its aggregate rating.
type RatedShop struct {
	Shop
	RatingSummary
}

// RankedShop is a query-engine result item.
type RankedShop struct {
	RatedShop
	DistanceMeters *int
	OpeningHours   []OpeningHours
	RecentReviews  []Review
	Photos         []Photo
	IsOpenNow      bool
	StatusText     string
}

// ShopDetail is the full shop view returned by slug lookup.
type ShopDetail struct {
	Shop
	RatingSummary
	OpeningHours []OpeningHours
	Reviews      []Review
	Photos       []Photo
	IsOpenNow    bool
	StatusText   string
}

// AverageRating computes the arithmetic mean of the ratings, 0 for an empty slice.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
