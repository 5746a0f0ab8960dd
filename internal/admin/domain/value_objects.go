package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/sngm3741/doner-finder/api/internal/shared/geo"
)

var allowedMeatTypes = []string{"chicken", "veal", "beef", "lamb", "mixed", "vegetarian"}

type ShopName string

func NewShopName(value string) (ShopName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("shop name is required")
	}
	if len([]rune(trimmed)) > 120 {
		return "", fmt.Errorf("shop name must be <= 120 characters")
	}
	return ShopName(trimmed), nil
}

func (n ShopName) String() string {
	return string(n)
}

// Coordinates is a validated WGS84 position.
type Coordinates struct {
	Lat float64
	Lng float64
}

func NewCoordinates(lat, lng float64) (Coordinates, error) {
	if !(geo.Point{Lat: lat, Lng: lng}).Valid() {
		return Coordinates{}, fmt.Errorf("coordinates out of range: %v,%v", lat, lng)
	}
	return Coordinates{Lat: lat, Lng: lng}, nil
}

type PriceLevel int

// NewPriceLevel accepts 1 (cheap) to 4 (expensive).
func NewPriceLevel(value int) (PriceLevel, error) {
	if value < 1 || value > 4 {
		return 0, fmt.Errorf("price level must be between 1 and 4")
	}
	return PriceLevel(value), nil
}

func (p PriceLevel) Int() int {
	return int(p)
}

type MeatType string

func NewMeatType(value string) (MeatType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return "", nil
	}
	for _, allowed := range allowedMeatTypes {
		if normalized == allowed {
			return MeatType(normalized), nil
		}
	}
	return "", fmt.Errorf("unsupported meat type: %s", value)
}

func (m MeatType) String() string {
	return string(m)
}

type PostalCode string

// NewPostalCode accepts empty or five-digit German postal codes.
func NewPostalCode(value string) (PostalCode, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) != 5 {
		return "", fmt.Errorf("postal code must have 5 digits")
	}
	for _, r := range trimmed {
		if !unicode.IsDigit(r) {
			return "", fmt.Errorf("postal code must have 5 digits")
		}
	}
	return PostalCode(trimmed), nil
}

// Cents is a non-negative money amount.
type Cents int

func NewCents(value int) (Cents, error) {
	if value < 0 {
		return 0, fmt.Errorf("amount must be >= 0")
	}
	return Cents(value), nil
}

func (c Cents) Int() int {
	return int(c)
}

type PhotoURL string

func NewPhotoURL(value string) (PhotoURL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("photo URL is required")
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", fmt.Errorf("invalid photo URL: %w", err)
	}
	return PhotoURL(trimmed), nil
}

func (u PhotoURL) String() string {
	return string(u)
}
