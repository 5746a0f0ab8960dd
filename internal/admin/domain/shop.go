package domain

import (
	"errors"
	"time"

	publicdomain "github.com/sngm3741/doner-finder/api/internal/public/domain"
)

// ErrSlugTaken is returned by repositories when the unique slug index rejects an insert.
var ErrSlugTaken = errors.New("slug already taken")

// Shop aggregates data required for admin operations.
// Slug is assigned on creation and never rewritten.
type Shop struct {
	ID               string
	Slug             string
	Name             ShopName
	Description      string
	Coordinates      Coordinates
	Street           string
	City             string
	PostalCode       PostalCode
	Halal            bool
	Vegetarian       bool
	MeatType         MeatType
	PriceLevel       PriceLevel
	HasSpecialOffers bool
	Delivery         Delivery
	Published        bool
	ExternalPlaceID  string
	ExternalRating   *float64
	OpeningHours     []publicdomain.OpeningHours
	Photos           []publicdomain.Photo
	ReviewCount      int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Delivery mirrors the commerce settings for delivery.
type Delivery struct {
	Available    bool
	Fee          Cents
	MinOrder     Cents
	RadiusMeters int
}

// ValidateWeek checks that hours hold at most one entry per weekday with both or neither time set.
func ValidateWeek(hours []publicdomain.OpeningHours) error {
	seen := make(map[int]bool, len(hours))
	for _, h := range hours {
		if h.Weekday < 0 || h.Weekday > 6 {
			return errors.New("weekday must be between 0 and 6")
		}
		if seen[h.Weekday] {
			return errors.New("duplicate weekday in opening hours")
		}
		seen[h.Weekday] = true
		if (h.Open == nil) != (h.Close == nil) {
			return errors.New("open and close must both be set or both be empty")
		}
		if h.Open != nil && *h.Open == *h.Close {
			return errors.New("open and close must differ")
		}
	}
	return nil
}
