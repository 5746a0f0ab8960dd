package public

import (
	"math"
	"time"

	"github.com/sngm3741/doner-finder/api/internal/public/domain"
	"github.com/sngm3741/doner-finder/api/internal/shared/geo"
)

type addressResponse struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
}

type deliveryResponse struct {
	Available     bool `json:"available"`
	FeeCents      int  `json:"feeCents"`
	MinOrderCents int  `json:"minOrderCents"`
	RadiusMeters  int  `json:"radiusMeters"`
}

type openingHoursResponse struct {
	Weekday int     `json:"weekday"`
	Open    *string `json:"open"`
	Close   *string `json:"close"`
}

type photoResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	SortOrder int    `json:"sortOrder"`
}

type reviewResponse struct {
	ID        string     `json:"id"`
	ShopID    string     `json:"shopId"`
	UserID    string     `json:"userId,omitempty"`
	Anonymous bool       `json:"anonymous"`
	Rating    int        `json:"rating"`
	Text      string     `json:"text"`
	IsEdited  bool       `json:"isEdited"`
	EditedAt  *time.Time `json:"editedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type shopResponse struct {
	ID               string                 `json:"id"`
	Slug             string                 `json:"slug"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description,omitempty"`
	Lat              float64                `json:"lat"`
	Lng              float64                `json:"lng"`
	Address          addressResponse        `json:"address"`
	Halal            bool                   `json:"halal"`
	Vegetarian       bool                   `json:"vegetarian"`
	MeatType         string                 `json:"meatType,omitempty"`
	PriceLevel       int                    `json:"priceLevel"`
	HasSpecialOffers bool                   `json:"hasSpecialOffers"`
	Delivery         deliveryResponse       `json:"delivery"`
	AvgRating        float64                `json:"avgRating"`
	ReviewCount      int                    `json:"reviewCount"`
	IsOpenNow        bool                   `json:"isOpenNow"`
	StatusText       string                 `json:"statusText"`
	OpeningHours     []openingHoursResponse `json:"openingHours"`
	Photos           []photoResponse        `json:"photos"`
}

type shopListItemResponse struct {
	shopResponse
	DistanceMeters *int             `json:"distanceMeters,omitempty"`
	DistanceKm     *float64         `json:"distanceKm,omitempty"`
	RecentReviews  []reviewResponse `json:"recentReviews"`
	IsFavorited    bool             `json:"isFavorited"`
}

type shopListResponse struct {
	Items  []shopListItemResponse `json:"items"`
	Offset int                    `json:"offset"`
	Limit  int                    `json:"limit"`
}

type shopDetailResponse struct {
	shopResponse
	Reviews []reviewResponse `json:"reviews"`
}

type favoriteResponse struct {
	ID        string    `json:"id"`
	ShopID    string    `json:"shopId"`
	CreatedAt time.Time `json:"createdAt"`
}

type favoriteListItemResponse struct {
	Favorite favoriteResponse     `json:"favorite"`
	Shop     shopListItemResponse `json:"shop"`
}

type favoriteListResponse struct {
	Items  []favoriteListItemResponse `json:"items"`
	Offset int                        `json:"offset"`
	Limit  int                        `json:"limit"`
}

type createReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"max=2000"`
}

type updateReviewRequest struct {
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Text   *string `json:"text" validate:"omitempty,max=2000"`
}

func buildShopResponse(shop domain.Shop, summary domain.RatingSummary, hours []domain.OpeningHours, photos []domain.Photo, openNow bool, status string) shopResponse {
	return shopResponse{
		ID:          shop.ID,
		Slug:        shop.Slug,
		Name:        shop.Name,
		Description: shop.Description,
		Lat:         shop.Location.Lat,
		Lng:         shop.Location.Lng,
		Address: addressResponse{
			Street:     shop.Address.Street,
			City:       shop.Address.City,
			PostalCode: shop.Address.PostalCode,
		},
		Halal:            shop.Attributes.Halal,
		Vegetarian:       shop.Attributes.Vegetarian,
		MeatType:         shop.Attributes.MeatType,
		PriceLevel:       shop.Attributes.PriceLevel,
		HasSpecialOffers: shop.Attributes.HasSpecialOffers,
		Delivery: deliveryResponse{
			Available:     shop.Delivery.Available,
			FeeCents:      shop.Delivery.FeeCents,
			MinOrderCents: shop.Delivery.MinOrderCents,
			RadiusMeters:  shop.Delivery.RadiusMeters,
		},
		AvgRating:    math.Round(summary.AvgRating*100) / 100,
		ReviewCount:  summary.ReviewCount,
		IsOpenNow:    openNow,
		StatusText:   status,
		OpeningHours: buildHoursResponse(hours),
		Photos:       buildPhotosResponse(photos),
	}
}

// buildShopListItem は一覧用 DTO を組み立てる。origin があれば表示用の km 距離も付与する。
func buildShopListItem(item domain.RankedShop, origin *geo.Point) shopListItemResponse {
	resp := shopListItemResponse{
		shopResponse:   buildShopResponse(item.Shop, item.RatingSummary, item.OpeningHours, item.Photos, item.IsOpenNow, item.StatusText),
		DistanceMeters: item.DistanceMeters,
		RecentReviews:  buildReviewsResponse(item.RecentReviews),
	}
	if origin != nil && item.DistanceMeters != nil {
		km := geo.DistanceKm(origin.Lat, origin.Lng, item.Location.Lat, item.Location.Lng)
		resp.DistanceKm = &km
	}
	return resp
}

func buildShopDetailResponse(detail domain.ShopDetail) shopDetailResponse {
	return shopDetailResponse{
		shopResponse: buildShopResponse(detail.Shop, detail.RatingSummary, detail.OpeningHours, detail.Photos, detail.IsOpenNow, detail.StatusText),
		Reviews:      buildReviewsResponse(detail.Reviews),
	}
}

func buildHoursResponse(hours []domain.OpeningHours) []openingHoursResponse {
	out := make([]openingHoursResponse, 0, len(hours))
	for _, h := range hours {
		item := openingHoursResponse{Weekday: h.Weekday}
		if !h.Closed() {
			open, closeAt := h.Open.String(), h.Close.String()
			item.Open = &open
			item.Close = &closeAt
		}
		out = append(out, item)
	}
	return out
}

func buildPhotosResponse(photos []domain.Photo) []photoResponse {
	out := make([]photoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, photoResponse{ID: p.ID, URL: p.URL, Caption: p.Caption, SortOrder: p.SortOrder})
	}
	return out
}

// buildReviewResponse never exposes the anonymous fingerprint.
func buildReviewResponse(review domain.Review) reviewResponse {
	resp := reviewResponse{
		ID:        review.ID,
		ShopID:    review.ShopID,
		Anonymous: !review.Author.IsAuthenticated(),
		Rating:    review.Rating,
		Text:      review.Text,
		IsEdited:  review.IsEdited,
		EditedAt:  review.EditedAt,
		CreatedAt: review.CreatedAt,
	}
	if userID, ok := review.Author.UserID(); ok {
		resp.UserID = userID
	}
	return resp
}

func buildReviewsResponse(reviews []domain.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, buildReviewResponse(r))
	}
	return out
}

func buildFavoriteResponse(f domain.Favorite) favoriteResponse {
	return favoriteResponse{ID: f.ID, ShopID: f.ShopID, CreatedAt: f.CreatedAt}
}
