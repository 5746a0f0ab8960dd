package main

import (
	adminapp "github.com/sngm3741/doner-finder/api/internal/admin/application"
)

type reviewFixture struct {
	userID string
	rating int
	text   string
}

type shopFixture struct {
	shop    adminapp.UpsertShopCommand
	hours   []adminapp.OpeningHoursCommand
	photos  []adminapp.PhotoCommand
	reviews []reviewFixture
}

// week builds Mon-Sat hours with Sunday closed, plus optional overrides.
func week(open, closeAt string, overrides ...adminapp.OpeningHoursCommand) []adminapp.OpeningHoursCommand {
	hours := []adminapp.OpeningHoursCommand{{Weekday: 0}}
	for day := 1; day <= 6; day++ {
		hours = append(hours, adminapp.OpeningHoursCommand{Weekday: day, Open: open, Close: closeAt})
	}
	for _, o := range overrides {
		hours[o.Weekday] = o
	}
	return hours
}

func demoShops() []shopFixture {
	return []shopFixture{
		{
			shop: adminapp.UpsertShopCommand{
				Name:             "Döner Palast Freiberg",
				Description:      "Klassischer Kalbsdöner am Obermarkt.",
				Lat:              50.9167,
				Lng:              13.3417,
				Street:           "Obermarkt 5",
				City:             "Freiberg",
				PostalCode:       "09599",
				Halal:            true,
				MeatType:         "veal",
				PriceLevel:       1,
				HasSpecialOffers: true,
			},
			hours: week("10:00", "22:00",
				adminapp.OpeningHoursCommand{Weekday: 5, Open: "10:00", Close: "02:00"},
				adminapp.OpeningHoursCommand{Weekday: 6, Open: "11:00", Close: "02:00"},
			),
			photos: []adminapp.PhotoCommand{{URL: "https://images.example/doener-palast/front.jpg", Caption: "Theke", SortOrder: 1}},
			reviews: []reviewFixture{
				{userID: "seed-user-1", rating: 5, text: "Bester Döner der Stadt."},
				{rating: 4, text: "Schnell und günstig."},
			},
		},
		{
			shop: adminapp.UpsertShopCommand{
				Name:            "Bergstadt Kebab",
				Description:     "Hähnchendöner und vegetarische Falafel.",
				Lat:             50.92,
				Lng:             13.35,
				Street:          "Erbische Straße 12",
				City:            "Freiberg",
				PostalCode:      "09599",
				Vegetarian:      true,
				MeatType:        "chicken",
				PriceLevel:      2,
				HasDelivery:     true,
				DeliveryFee:     250,
				DeliveryMinimum: 1200,
				DeliveryRadius:  3000,
			},
			hours: week("11:00", "21:30"),
			reviews: []reviewFixture{
				{userID: "seed-user-2", rating: 4, text: "Falafel top, Soße etwas scharf."},
			},
		},
		{
			shop: adminapp.UpsertShopCommand{
				Name:            "Sultan Grill Chemnitz",
				Description:     "Großer Grill mit Lammspießen.",
				Lat:             50.8333,
				Lng:             12.9167,
				Street:          "Straße der Nationen 30",
				City:            "Chemnitz",
				PostalCode:      "09111",
				Halal:           true,
				MeatType:        "lamb",
				PriceLevel:      3,
				HasDelivery:     true,
				DeliveryFee:     300,
				DeliveryMinimum: 1500,
				DeliveryRadius:  5000,
			},
			hours: week("11:00", "23:00", adminapp.OpeningHoursCommand{Weekday: 0, Open: "12:00", Close: "22:00"}),
			photos: []adminapp.PhotoCommand{
				{URL: "https://images.example/sultan-grill/grill.jpg", Caption: "Grill", SortOrder: 1},
				{URL: "https://images.example/sultan-grill/teller.jpg", Caption: "Dönerteller", SortOrder: 2},
			},
			reviews: []reviewFixture{
				{userID: "seed-user-1", rating: 3, text: "Gut, aber teuer."},
				{userID: "seed-user-3", rating: 5, text: "Lamm perfekt gewürzt."},
				{rating: 4},
			},
		},
		{
			shop: adminapp.UpsertShopCommand{
				Name:             "Veggie Döner Kaßberg",
				Description:      "Rein vegetarischer Döner mit Seitan.",
				Lat:              50.8320,
				Lng:              12.9050,
				Street:           "Weststraße 44",
				City:             "Chemnitz",
				PostalCode:       "09112",
				Vegetarian:       true,
				MeatType:         "vegetarian",
				PriceLevel:       2,
				HasSpecialOffers: true,
			},
			hours: week("11:30", "20:00"),
		},
	}
}
