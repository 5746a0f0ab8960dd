package main

import (
	"testing"

	admindomain "github.com/sngm3741/doner-finder/api/internal/admin/domain"
	"github.com/sngm3741/doner-finder/api/internal/public/domain"
	"github.com/sngm3741/doner-finder/api/internal/shared/geo"
)

func TestDemoShopsAreValid(t *testing.T) {
	slugs := map[string]bool{}
	for _, fx := range demoShops() {
		if _, err := admindomain.NewShopName(fx.shop.Name); err != nil {
			t.Fatalf("%s: %v", fx.shop.Name, err)
		}
		if _, err := admindomain.NewCoordinates(fx.shop.Lat, fx.shop.Lng); err != nil {
			t.Fatalf("%s: %v", fx.shop.Name, err)
		}
		if _, err := admindomain.NewMeatType(fx.shop.MeatType); err != nil {
			t.Fatalf("%s: %v", fx.shop.Name, err)
		}
		slug := admindomain.Slugify(fx.shop.Name)
		if slugs[slug] {
			t.Fatalf("duplicate slug %s", slug)
		}
		slugs[slug] = true

		hours := make([]domain.OpeningHours, 0, len(fx.hours))
		for _, h := range fx.hours {
			entry := domain.OpeningHours{Weekday: h.Weekday}
			if h.Open != "" {
				open, err := domain.ParseClockTime(h.Open)
				if err != nil {
					t.Fatalf("%s: %v", slug, err)
				}
				closeAt, err := domain.ParseClockTime(h.Close)
				if err != nil {
					t.Fatalf("%s: %v", slug, err)
				}
				entry.Open, entry.Close = &open, &closeAt
			}
			hours = append(hours, entry)
		}
		if err := admindomain.ValidateWeek(hours); err != nil {
			t.Fatalf("%s: %v", slug, err)
		}
		for _, r := range fx.reviews {
			if err := domain.ValidateRating(r.rating); err != nil {
				t.Fatalf("%s: rating %d", slug, r.rating)
			}
		}
	}
	if !slugs["doener-palast-freiberg"] || !slugs["veggie-doener-kassberg"] {
		t.Fatalf("unexpected slugs %v", slugs)
	}
}

func TestDemoCitiesAreAboutThirtyKilometersApart(t *testing.T) {
	shops := demoShops()
	freiberg := geo.Point{Lat: shops[0].shop.Lat, Lng: shops[0].shop.Lng}
	chemnitz := geo.Point{Lat: shops[2].shop.Lat, Lng: shops[2].shop.Lng}
	if d := geo.Between(freiberg, chemnitz); d < 30100 || d > 32100 {
		t.Fatalf("distance = %d m", d)
	}
}
