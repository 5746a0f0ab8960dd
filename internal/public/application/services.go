package application

import (
	"context"
	"time"

	"github.com/sngm3741/doner-finder/api/internal/public/domain"
	"github.com/sngm3741/doner-finder/api/internal/shared/geo"
)

// ShopRepository abstracts read access to published shops.
// ShopRepository は Public コンテキストで店舗を読み取るためのポート。
type ShopRepository interface {
	FindPublished(ctx context.Context, criteria ShopCriteria) ([]domain.RatedShop, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*domain.Shop, error)
	FindPublishedByID(ctx context.Context, id string) (*domain.Shop, error)
	FindRatedByIDs(ctx context.Context, ids []string) ([]domain.RatedShop, error)
	RatingSummary(ctx context.Context, shopID string) (domain.RatingSummary, error)
	OpeningHours(ctx context.Context, shopID string) ([]domain.OpeningHours, error)
	OpeningHoursForShops(ctx context.Context, shopIDs []string) (map[string][]domain.OpeningHours, error)
	Photos(ctx context.Context, shopID string) ([]domain.Photo, error)
}

// ReviewRepository handles review reads/writes. Update and delete carry the owner predicate.
type ReviewRepository interface {
	Recent(ctx context.Context, shopID string, limit int) ([]domain.Review, error)
	AllForShop(ctx context.Context, shopID string) ([]domain.Review, error)
	FindByUserAndShop(ctx context.Context, userID, shopID string) (*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
	UpdateOwned(ctx context.Context, reviewID, ownerID string, patch domain.ReviewPatch, editedAt time.Time) (*domain.Review, error)
	DeleteOwned(ctx context.Context, reviewID, ownerID string) error
}

// FavoriteRepository stores (user, shop) bookmarks.
type FavoriteRepository interface {
	// Add returns the stored favorite and whether it was newly inserted.
	Add(ctx context.Context, userID, shopID string, at time.Time) (*domain.Favorite, bool, error)
	Remove(ctx context.Context, userID, shopID string) error
	// ListByUser returns every favorite of the user, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}

// ShopCriteria is the subset of the filter the repository evaluates.
type ShopCriteria struct {
	City        string
	Halal       bool
	Vegetarian  bool
	HasOffers   bool
	HasDelivery bool
}

// SortKey selects the list ordering.
type SortKey string

const (
	SortDefault  SortKey = ""
	SortRating   SortKey = "rating"
	SortPrice    SortKey = "price"
	SortDistance SortKey = "distance"
)

const (
	DefaultLimit       = 20
	MaxLimit           = 100
	RecentReviewsLimit = 3
)

// ShopFilter expresses search criteria for the public shop list.
// Boolean flags only filter when true; false means "don't care".
type ShopFilter struct {
	City         string
	Origin       *geo.Point
	RadiusMeters *int
	OpenNow      bool
	Halal        bool
	Vegetarian   bool
	HasOffers    bool
	HasDelivery  bool
	SortBy       SortKey
	Limit        int
	Offset       int
}

// Criteria extracts the repository-side part of the filter.
func (f ShopFilter) Criteria() ShopCriteria {
	return ShopCriteria{
		City:        f.City,
		Halal:       f.Halal,
		Vegetarian:  f.Vegetarian,
		HasOffers:   f.HasOffers,
		HasDelivery: f.HasDelivery,
	}
}

// ShopQueryService describes read use-cases.
// ShopQueryService は店舗に関するユースケースを提供するリーダーモデル。
type ShopQueryService interface {
	Query(ctx context.Context, filter ShopFilter) ([]domain.RankedShop, error)
	DetailBySlug(ctx context.Context, slug string) (*domain.ShopDetail, error)
}

// ReviewService handles the review lifecycle.
type ReviewService interface {
	Create(ctx context.Context, cmd CreateReviewCommand) (*domain.Review, error)
	Update(ctx context.Context, reviewID, ownerID string, patch domain.ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, reviewID, ownerID string) error
	UserReviewForShop(ctx context.Context, userID, shopID string) (*domain.Review, error)
}

// FavoriteService manages the user's favorite set.
type FavoriteService interface {
	Add(ctx context.Context, userID, shopID string) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, shopID string) error
	List(ctx context.Context, userID string, offset, limit int) ([]domain.FavoriteEntry, error)
	// FavoritedShopIDs returns the set of shop ids the user has favorited.
	FavoritedShopIDs(ctx context.Context, userID string) (map[string]bool, error)
}

// CreateReviewCommand captures review input.
type CreateReviewCommand struct {
	ShopID string
	Rating int
	Text   string
	Author domain.Author
}

// Options carries the clock and hydration settings shared by the services.
type Options struct {
	Now                  func() time.Time
	Location             *time.Location
	HydrationConcurrency int
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.HydrationConcurrency <= 0 {
		o.HydrationConcurrency = 8
	}
	return o
}

func normalizePaging(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
