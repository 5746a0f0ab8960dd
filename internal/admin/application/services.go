package application

import (
	"context"
	"time"

	admindomain "github.com/sngm3741/doner-finder/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/doner-finder/api/internal/public/domain"
)

// ShopRepository exposes admin operations on shops, published or not.
type ShopRepository interface {
	Find(ctx context.Context, filter ShopFilter) ([]admindomain.Shop, error)
	FindByID(ctx context.Context, id string) (*admindomain.Shop, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Create returns admindomain.ErrSlugTaken when the slug index rejects the insert.
	Create(ctx context.Context, shop *admindomain.Shop) error
	Update(ctx context.Context, shop *admindomain.Shop) error
	SetPublished(ctx context.Context, id string, published bool, at time.Time) error
	// Delete removes the shop together with its reviews and favorites.
	Delete(ctx context.Context, id string) error
	ReplaceOpeningHours(ctx context.Context, id string, hours []publicdomain.OpeningHours, at time.Time) error
	AddPhoto(ctx context.Context, shopID string, photo *publicdomain.Photo) error
	RemovePhoto(ctx context.Context, shopID, photoID string) error
}

// ReviewRepository exposes moderation access to reviews.
type ReviewRepository interface {
	ListForShop(ctx context.Context, shopID string) ([]publicdomain.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

// ShopFilter expresses admin search criteria.
type ShopFilter struct {
	City      string
	Keyword   string
	Published *bool
	Limit     int
	Offset    int
}

// ShopService describes admin shop use-cases.
type ShopService interface {
	List(ctx context.Context, filter ShopFilter) ([]admindomain.Shop, error)
	Detail(ctx context.Context, id string) (*admindomain.Shop, error)
	Create(ctx context.Context, cmd UpsertShopCommand) (*admindomain.Shop, error)
	Update(ctx context.Context, id string, cmd UpsertShopCommand) (*admindomain.Shop, error)
	SetPublished(ctx context.Context, id string, published bool) (*admindomain.Shop, error)
	Delete(ctx context.Context, id string) error
	ReplaceOpeningHours(ctx context.Context, id string, hours []OpeningHoursCommand) (*admindomain.Shop, error)
	AddPhoto(ctx context.Context, id string, cmd PhotoCommand) (*publicdomain.Photo, error)
	RemovePhoto(ctx context.Context, id, photoID string) error
}

// ReviewModerationService lets admins inspect and remove reviews.
type ReviewModerationService interface {
	ListForShop(ctx context.Context, shopID string) ([]publicdomain.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

// UpsertShopCommand contains inputs for creating/updating shops.
type UpsertShopCommand struct {
	Name             string
	Description      string
	Lat              float64
	Lng              float64
	Street           string
	City             string
	PostalCode       string
	Halal            bool
	Vegetarian       bool
	MeatType         string
	PriceLevel       int
	HasSpecialOffers bool
	HasDelivery      bool
	DeliveryFee      int
	DeliveryMinimum  int
	DeliveryRadius   int
	ExternalPlaceID  string
	ExternalRating   *float64
}

// OpeningHoursCommand is one weekday entry; empty Open/Close means closed.
type OpeningHoursCommand struct {
	Weekday int
	Open    string
	Close   string
}

// PhotoCommand holds photo metadata. Files are uploaded elsewhere.
type PhotoCommand struct {
	URL       string
	Caption   string
	SortOrder int
}
