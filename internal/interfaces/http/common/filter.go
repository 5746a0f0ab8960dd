package common

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	publicapp "github.com/sngm3741/doner-finder/api/internal/public/application"
	"github.com/sngm3741/doner-finder/api/internal/public/domain"
	"github.com/sngm3741/doner-finder/api/internal/shared/geo"
)

// ParseShopFilter coerces untrusted query parameters into a typed filter.
// Unparsable numbers are treated as absent. A reference point needs both lat and lng;
// one that parses but lies outside the coordinate ranges is rejected with ErrInvalidFilter.
func ParseShopFilter(query url.Values) (publicapp.ShopFilter, error) {
	filter := publicapp.ShopFilter{
		City:        strings.TrimSpace(query.Get("city")),
		OpenNow:     ParseFlag(query.Get("openNow")),
		Halal:       ParseFlag(query.Get("halal")),
		Vegetarian:  ParseFlag(query.Get("veg")),
		HasOffers:   ParseFlag(query.Get("hasOffers")),
		HasDelivery: ParseFlag(query.Get("hasDelivery")),
		Limit:       ParseNonNegativeInt(query.Get("limit"), 0),
		Offset:      ParseNonNegativeInt(query.Get("offset"), 0),
	}

	switch publicapp.SortKey(strings.ToLower(strings.TrimSpace(query.Get("sortBy")))) {
	case publicapp.SortRating:
		filter.SortBy = publicapp.SortRating
	case publicapp.SortPrice:
		filter.SortBy = publicapp.SortPrice
	case publicapp.SortDistance:
		filter.SortBy = publicapp.SortDistance
	}

	lat, latOK := ParseFloat(query.Get("lat"))
	lng, lngOK := ParseFloat(query.Get("lng"))
	if latOK && lngOK {
		origin := geo.Point{Lat: lat, Lng: lng}
		if !origin.Valid() {
			return publicapp.ShopFilter{}, fmt.Errorf("lat/lng %v,%v: %w", lat, lng, domain.ErrInvalidFilter)
		}
		filter.Origin = &origin
	}

	if radius, ok := ParseFloat(query.Get("radius")); ok && radius >= 0 && radius <= math.MaxInt32 {
		filter.RadiusMeters = IntPtr(int(math.Round(radius)))
	}
	return filter, nil
}
