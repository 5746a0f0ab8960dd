package application

import (
	"context"
	"strings"

	"github.com/sngm3741/doner-finder/api/internal/public/domain"
)

// favoriteService implements FavoriteService.
type favoriteService struct {
	shops     ShopRepository
	reviews   ReviewRepository
	favorites FavoriteRepository
	opts      Options
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(shops ShopRepository, reviews ReviewRepository, favorites FavoriteRepository, opts Options) FavoriteService {
	return &favoriteService{shops: shops, reviews: reviews, favorites: favorites, opts: opts.withDefaults()}
}

// Add is idempotent: an existing favorite is returned unchanged.
func (s *favoriteService) Add(ctx context.Context, userID, shopID string) (*domain.Favorite, error) {
	shopID = strings.TrimSpace(shopID)
	if _, err := s.shops.FindPublishedByID(ctx, shopID); err != nil {
		return nil, err
	}
	fav, _, err := s.favorites.Add(ctx, userID, shopID, s.opts.Now().UTC())
	if err != nil {
		return nil, err
	}
	return fav, nil
}

// Remove succeeds when nothing was favorited.
func (s *favoriteService) Remove(ctx context.Context, userID, shopID string) error {
	return s.favorites.Remove(ctx, userID, strings.TrimSpace(shopID))
}

// List pages over favorites whose shop is still published, newest first.
func (s *favoriteService) List(ctx context.Context, userID string, offset, limit int) ([]domain.FavoriteEntry, error) {
	offset, limit = normalizePaging(offset, limit)

	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return []domain.FavoriteEntry{}, nil
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.ShopID)
	}
	rated, err := s.shops.FindRatedByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.RatedShop, len(rated))
	for _, shop := range rated {
		byID[shop.ID] = shop
	}

	visible := make([]domain.Favorite, 0, len(favorites))
	for _, f := range favorites {
		if _, ok := byID[f.ShopID]; ok {
			visible = append(visible, f)
		}
	}
	pageFavs := paginate(visible, offset, limit)

	shops := make([]domain.RankedShop, len(pageFavs))
	for i, f := range pageFavs {
		shops[i] = domain.RankedShop{RatedShop: byID[f.ShopID]}
	}
	h := hydrator{shops: s.shops, reviews: s.reviews, concurrency: s.opts.HydrationConcurrency}
	if err := h.hydrate(ctx, shops, nil, s.opts.Now().In(s.opts.Location)); err != nil {
		return nil, err
	}

	entries := make([]domain.FavoriteEntry, len(pageFavs))
	for i, f := range pageFavs {
		entries[i] = domain.FavoriteEntry{Favorite: f, Shop: shops[i], IsFavorited: true}
	}
	return entries, nil
}

func (s *favoriteService) FavoritedShopIDs(ctx context.Context, userID string) (map[string]bool, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		ids[f.ShopID] = true
	}
	return ids, nil
}
