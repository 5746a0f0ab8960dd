package admin

import (
	"time"

	adminapp "github.com/sngm3741/doner-finder/api/internal/admin/application"
	admindomain "github.com/sngm3741/doner-finder/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/doner-finder/api/internal/public/domain"
)

type shopRequest struct {
	Name             string   `json:"name" validate:"required,max=120"`
	Description      string   `json:"description" validate:"max=4000"`
	Lat              float64  `json:"lat" validate:"min=-90,max=90"`
	Lng              float64  `json:"lng" validate:"min=-180,max=180"`
	Street           string   `json:"street"`
	City             string   `json:"city" validate:"required"`
	PostalCode       string   `json:"postalCode" validate:"omitempty,len=5,numeric"`
	Halal            bool     `json:"halal"`
	Vegetarian       bool     `json:"vegetarian"`
	MeatType         string   `json:"meatType" validate:"omitempty,oneof=chicken veal beef lamb mixed vegetarian"`
	PriceLevel       int      `json:"priceLevel" validate:"min=1,max=4"`
	HasSpecialOffers bool     `json:"hasSpecialOffers"`
	HasDelivery      bool     `json:"hasDelivery"`
	DeliveryFee      int      `json:"deliveryFeeCents" validate:"min=0"`
	DeliveryMinimum  int      `json:"deliveryMinOrderCents" validate:"min=0"`
	DeliveryRadius   int      `json:"deliveryRadiusMeters" validate:"min=0"`
	ExternalPlaceID  string   `json:"externalPlaceId"`
	ExternalRating   *float64 `json:"externalRating" validate:"omitempty,min=0,max=5"`
}

func (req shopRequest) command() adminapp.UpsertShopCommand {
	return adminapp.UpsertShopCommand{
		Name:             req.Name,
		Description:      req.Description,
		Lat:              req.Lat,
		Lng:              req.Lng,
		Street:           req.Street,
		City:             req.City,
		PostalCode:       req.PostalCode,
		Halal:            req.Halal,
		Vegetarian:       req.Vegetarian,
		MeatType:         req.MeatType,
		PriceLevel:       req.PriceLevel,
		HasSpecialOffers: req.HasSpecialOffers,
		HasDelivery:      req.HasDelivery,
		DeliveryFee:      req.DeliveryFee,
		DeliveryMinimum:  req.DeliveryMinimum,
		DeliveryRadius:   req.DeliveryRadius,
		ExternalPlaceID:  req.ExternalPlaceID,
		ExternalRating:   req.ExternalRating,
	}
}

type publishRequest struct {
	Published *bool `json:"published" validate:"required"`
}

type openingHoursRequest struct {
	Weekday int    `json:"weekday" validate:"min=0,max=6"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

type hoursRequest struct {
	Hours []openingHoursRequest `json:"hours" validate:"max=7,dive"`
}

type photoRequest struct {
	URL       string `json:"url" validate:"required,url"`
	Caption   string `json:"caption" validate:"max=200"`
	SortOrder int    `json:"sortOrder"`
}

type openingHoursResponse struct {
	Weekday int     `json:"weekday"`
	Open    *string `json:"open"`
	Close   *string `json:"close"`
}

type photoResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

type shopResponse struct {
	ID                    string                 `json:"id"`
	Slug                  string                 `json:"slug"`
	Name                  string                 `json:"name"`
	Description           string                 `json:"description,omitempty"`
	Lat                   float64                `json:"lat"`
	Lng                   float64                `json:"lng"`
	Street                string                 `json:"street,omitempty"`
	City                  string                 `json:"city"`
	PostalCode            string                 `json:"postalCode,omitempty"`
	Halal                 bool                   `json:"halal"`
	Vegetarian            bool                   `json:"vegetarian"`
	MeatType              string                 `json:"meatType,omitempty"`
	PriceLevel            int                    `json:"priceLevel"`
	HasSpecialOffers      bool                   `json:"hasSpecialOffers"`
	HasDelivery           bool                   `json:"hasDelivery"`
	DeliveryFeeCents      int                    `json:"deliveryFeeCents"`
	DeliveryMinOrderCents int                    `json:"deliveryMinOrderCents"`
	DeliveryRadiusMeters  int                    `json:"deliveryRadiusMeters"`
	Published             bool                   `json:"published"`
	ExternalPlaceID       string                 `json:"externalPlaceId,omitempty"`
	ExternalRating        *float64               `json:"externalRating,omitempty"`
	OpeningHours          []openingHoursResponse `json:"openingHours"`
	Photos                []photoResponse        `json:"photos"`
	ReviewCount           int                    `json:"reviewCount"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}

type reviewResponse struct {
	ID          string     `json:"id"`
	ShopID      string     `json:"shopId"`
	UserID      string     `json:"userId,omitempty"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	Rating      int        `json:"rating"`
	Text        string     `json:"text"`
	IsEdited    bool       `json:"isEdited"`
	EditedAt    *time.Time `json:"editedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func buildShopResponse(shop admindomain.Shop) shopResponse {
	hours := make([]openingHoursResponse, 0, len(shop.OpeningHours))
	for _, h := range shop.OpeningHours {
		item := openingHoursResponse{Weekday: h.Weekday}
		if !h.Closed() {
			open, closeAt := h.Open.String(), h.Close.String()
			item.Open, item.Close = &open, &closeAt
		}
		hours = append(hours, item)
	}
	photos := make([]photoResponse, 0, len(shop.Photos))
	for _, p := range shop.Photos {
		photos = append(photos, buildPhotoResponse(p))
	}
	return shopResponse{
		ID:                    shop.ID,
		Slug:                  shop.Slug,
		Name:                  shop.Name.String(),
		Description:           shop.Description,
		Lat:                   shop.Coordinates.Lat,
		Lng:                   shop.Coordinates.Lng,
		Street:                shop.Street,
		City:                  shop.City,
		PostalCode:            string(shop.PostalCode),
		Halal:                 shop.Halal,
		Vegetarian:            shop.Vegetarian,
		MeatType:              shop.MeatType.String(),
		PriceLevel:            shop.PriceLevel.Int(),
		HasSpecialOffers:      shop.HasSpecialOffers,
		HasDelivery:           shop.Delivery.Available,
		DeliveryFeeCents:      shop.Delivery.Fee.Int(),
		DeliveryMinOrderCents: shop.Delivery.MinOrder.Int(),
		DeliveryRadiusMeters:  shop.Delivery.RadiusMeters,
		Published:             shop.Published,
		ExternalPlaceID:       shop.ExternalPlaceID,
		ExternalRating:        shop.ExternalRating,
		OpeningHours:          hours,
		Photos:                photos,
		ReviewCount:           shop.ReviewCount,
		CreatedAt:             shop.CreatedAt,
		UpdatedAt:             shop.UpdatedAt,
	}
}

func buildPhotoResponse(p publicdomain.Photo) photoResponse {
	return photoResponse{ID: p.ID, URL: p.URL, Caption: p.Caption, SortOrder: p.SortOrder, CreatedAt: p.CreatedAt}
}

// 管理画面ではモデレーション用に匿名投稿のフィンガープリントも返す。
func buildReviewResponse(r publicdomain.Review) reviewResponse {
	resp := reviewResponse{
		ID:        r.ID,
		ShopID:    r.ShopID,
		Rating:    r.Rating,
		Text:      r.Text,
		IsEdited:  r.IsEdited,
		EditedAt:  r.EditedAt,
		CreatedAt: r.CreatedAt,
	}
	if userID, ok := r.Author.UserID(); ok {
		resp.UserID = userID
	}
	if fp, ok := r.Author.Fingerprint(); ok {
		resp.Fingerprint = fp
	}
	return resp
}
