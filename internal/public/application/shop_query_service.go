package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sngm3741/doner-finder/api/internal/public/domain"
	"github.com/sngm3741/doner-finder/api/internal/shared/geo"
)

// shopQueryService is the concrete implementation of ShopQueryService.
type shopQueryService struct {
	shops   ShopRepository
	reviews ReviewRepository
	opts    Options
}

// NewShopQueryService creates a new shop query service.
func NewShopQueryService(shops ShopRepository, reviews ReviewRepository, opts Options) ShopQueryService {
	return &shopQueryService{shops: shops, reviews: reviews, opts: opts.withDefaults()}
}

// Query runs fetch, sort, distance filter, open-now filter and pagination in that order,
// then hydrates only the returned page.
func (s *shopQueryService) Query(ctx context.Context, filter ShopFilter) ([]domain.RankedShop, error) {
	if filter.Origin != nil && !filter.Origin.Valid() {
		return nil, fmt.Errorf("reference point %v: %w", *filter.Origin, domain.ErrInvalidFilter)
	}
	filter.City = strings.TrimSpace(filter.City)
	offset, limit := normalizePaging(filter.Offset, filter.Limit)

	rated, err := s.shops.FindPublished(ctx, filter.Criteria())
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.RankedShop, 0, len(rated))
	for _, shop := range rated {
		candidates = append(candidates, domain.RankedShop{RatedShop: shop})
	}

	if filter.SortBy != SortDistance {
		sortRanked(candidates, filter.SortBy)
	}

	if filter.Origin != nil {
		candidates = applyDistance(candidates, *filter.Origin, filter.RadiusMeters)
		if filter.SortBy == SortDistance {
			sort.SliceStable(candidates, func(i, j int) bool {
				return *candidates[i].DistanceMeters < *candidates[j].DistanceMeters
			})
		}
	}

	now := s.opts.Now().In(s.opts.Location)
	var knownHours map[string][]domain.OpeningHours
	if filter.OpenNow && len(candidates) > 0 {
		knownHours, err = s.shops.OpeningHoursForShops(ctx, shopIDs(candidates))
		if err != nil {
			return nil, err
		}
		open := candidates[:0]
		for _, c := range candidates {
			if domain.IsOpenAt(knownHours[c.ID], now) {
				open = append(open, c)
			}
		}
		candidates = open
	}

	page := append([]domain.RankedShop{}, paginate(candidates, offset, limit)...)
	h := hydrator{shops: s.shops, reviews: s.reviews, concurrency: s.opts.HydrationConcurrency}
	if err := h.hydrate(ctx, page, knownHours, now); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *shopQueryService) DetailBySlug(ctx context.Context, slug string) (*domain.ShopDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	shop, err := s.shops.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	summary, err := s.shops.RatingSummary(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	hours, err := s.shops.OpeningHours(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.AllForShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	photos, err := s.shops.Photos(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	hours = append([]domain.OpeningHours{}, hours...)
	domain.SortHours(hours)
	now := s.opts.Now().In(s.opts.Location)

	return &domain.ShopDetail{
		Shop:          *shop,
		RatingSummary: summary,
		OpeningHours:  hours,
		Reviews:       nonNilReviews(reviews),
		Photos:        nonNilPhotos(photos),
		IsOpenNow:     domain.IsOpenAt(hours, now),
		StatusText:    domain.StatusText(hours, now),
	}, nil
}

func sortRanked(shops []domain.RankedShop, key SortKey) {
	switch key {
	case SortRating:
		sort.SliceStable(shops, func(i, j int) bool {
			return shops[i].AvgRating > shops[j].AvgRating
		})
	case SortPrice:
		sort.SliceStable(shops, func(i, j int) bool {
			return shops[i].Attributes.PriceLevel < shops[j].Attributes.PriceLevel
		})
	default:
		sort.SliceStable(shops, func(i, j int) bool {
			pi, pj := shops[i].Attributes.PriceLevel, shops[j].Attributes.PriceLevel
			if pi != pj {
				return pi < pj
			}
			return shops[i].AvgRating > shops[j].AvgRating
		})
	}
}

// applyDistance annotates every candidate and drops those beyond the radius.
func applyDistance(shops []domain.RankedShop, origin geo.Point, radius *int) []domain.RankedShop {
	kept := shops[:0]
	for _, shop := range shops {
		d := geo.Between(origin, geo.Point{Lat: shop.Location.Lat, Lng: shop.Location.Lng})
		if radius != nil && *radius >= 0 && d > *radius {
			continue
		}
		shop.DistanceMeters = &d
		kept = append(kept, shop)
	}
	return kept
}

func shopIDs(shops []domain.RankedShop) []string {
	ids := make([]string, 0, len(shops))
	for _, s := range shops {
		ids = append(ids, s.ID)
	}
	return ids
}
