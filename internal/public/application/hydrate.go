package application

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sngm3741/doner-finder/api/internal/public/domain"
)

// hydrator loads per-shop hours, recent reviews and photos for a result page.
type hydrator struct {
	shops       ShopRepository
	reviews     ReviewRepository
	concurrency int
}

// hydrate fills one RankedShop per rated shop, preserving order.
// knownHours may carry hours already fetched for the candidate set.
func (h hydrator) hydrate(ctx context.Context, page []domain.RankedShop, knownHours map[string][]domain.OpeningHours, now time.Time) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for i := range page {
		item := &page[i]
		g.Go(func() error {
			id := item.ID
			hours, ok := knownHours[id]
			if !ok {
				fetched, err := h.shops.OpeningHours(gctx, id)
				if err != nil {
					return fmt.Errorf("opening hours for shop %s: %w", id, err)
				}
				hours = fetched
			}
			recent, err := h.reviews.Recent(gctx, id, RecentReviewsLimit)
			if err != nil {
				return fmt.Errorf("recent reviews for shop %s: %w", id, err)
			}
			photos, err := h.shops.Photos(gctx, id)
			if err != nil {
				return fmt.Errorf("photos for shop %s: %w", id, err)
			}

			hours = append([]domain.OpeningHours{}, hours...)
			domain.SortHours(hours)
			item.OpeningHours = hours
			item.RecentReviews = nonNilReviews(recent)
			item.Photos = nonNilPhotos(photos)
			item.IsOpenNow = domain.IsOpenAt(hours, now)
			item.StatusText = domain.StatusText(hours, now)
			return nil
		})
	}
	return g.Wait()
}

func nonNilReviews(reviews []domain.Review) []domain.Review {
	if reviews == nil {
		return []domain.Review{}
	}
	return reviews
}

func nonNilPhotos(photos []domain.Photo) []domain.Photo {
	if photos == nil {
		return []domain.Photo{}
	}
	return photos
}
