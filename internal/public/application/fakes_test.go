package application

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sngm3741/doner-finder/api/internal/public/domain"
)

type memoryStore struct {
	mu        sync.Mutex
	shops     []domain.Shop
	hours     map[string][]domain.OpeningHours
	photos    map[string][]domain.Photo
	reviews   []domain.Review
	favorites []domain.Favorite
	seq       int
	// skipPreCheck simulates a concurrent writer that passed the existence check first.
	skipPreCheck bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		hours:  map[string][]domain.OpeningHours{},
		photos: map[string][]domain.Photo{},
	}
}

func (m *memoryStore) nextID(prefix string) string {
	m.seq++
	return prefix + strconv.Itoa(m.seq)
}

func (m *memoryStore) addShop(shop domain.Shop) domain.Shop {
	m.mu.Lock()
	defer m.mu.Unlock()
	if shop.ID == "" {
		shop.ID = m.nextID("shop")
	}
	m.shops = append(m.shops, shop)
	return shop
}

func (m *memoryStore) addReview(shopID string, author domain.Author, rating int, at time.Time) domain.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := domain.Review{ID: m.nextID("review"), ShopID: shopID, Author: author, Rating: rating, CreatedAt: at, UpdatedAt: at}
	m.reviews = append(m.reviews, r)
	return r
}

func (m *memoryStore) summary(shopID string) domain.RatingSummary {
	var ratings []int
	for _, r := range m.reviews {
		if r.ShopID == shopID {
			ratings = append(ratings, r.Rating)
		}
	}
	return domain.RatingSummary{AvgRating: domain.AverageRating(ratings), ReviewCount: len(ratings)}
}

func (m *memoryStore) published(shop domain.Shop, c ShopCriteria) bool {
	if !shop.Published {
		return false
	}
	if c.City != "" && shop.Address.City != c.City {
		return false
	}
	if c.Halal && !shop.Attributes.Halal {
		return false
	}
	if c.Vegetarian && !shop.Attributes.Vegetarian {
		return false
	}
	if c.HasOffers && !shop.Attributes.HasSpecialOffers {
		return false
	}
	if c.HasDelivery && !shop.Delivery.Available {
		return false
	}
	return true
}

// Shops returns a ShopRepository view.
func (m *memoryStore) Shops() ShopRepository { return memoryShops{m} }

// Reviews returns a ReviewRepository view.
func (m *memoryStore) Reviews() ReviewRepository { return memoryReviews{m} }

// Favorites returns a FavoriteRepository view.
func (m *memoryStore) Favorites() FavoriteRepository { return memoryFavorites{m} }

type memoryShops struct{ m *memoryStore }

func (s memoryShops) FindPublished(_ context.Context, c ShopCriteria) ([]domain.RatedShop, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := []domain.RatedShop{}
	for _, shop := range s.m.shops {
		if s.m.published(shop, c) {
			out = append(out, domain.RatedShop{Shop: shop, RatingSummary: s.m.summary(shop.ID)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s memoryShops) FindPublishedBySlug(_ context.Context, slug string) (*domain.Shop, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, shop := range s.m.shops {
		if shop.Slug == slug && shop.Published {
			copied := shop
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s memoryShops) FindPublishedByID(_ context.Context, id string) (*domain.Shop, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, shop := range s.m.shops {
		if shop.ID == id && shop.Published {
			copied := shop
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s memoryShops) FindRatedByIDs(_ context.Context, ids []string) ([]domain.RatedShop, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := []domain.RatedShop{}
	for _, shop := range s.m.shops {
		if wanted[shop.ID] && shop.Published {
			out = append(out, domain.RatedShop{Shop: shop, RatingSummary: s.m.summary(shop.ID)})
		}
	}
	return out, nil
}

func (s memoryShops) RatingSummary(_ context.Context, shopID string) (domain.RatingSummary, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.summary(shopID), nil
}

func (s memoryShops) OpeningHours(_ context.Context, shopID string) ([]domain.OpeningHours, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return append([]domain.OpeningHours{}, s.m.hours[shopID]...), nil
}

func (s memoryShops) OpeningHoursForShops(_ context.Context, ids []string) (map[string][]domain.OpeningHours, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := map[string][]domain.OpeningHours{}
	for _, id := range ids {
		out[id] = append([]domain.OpeningHours{}, s.m.hours[id]...)
	}
	return out, nil
}

func (s memoryShops) Photos(_ context.Context, shopID string) ([]domain.Photo, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return append([]domain.Photo{}, s.m.photos[shopID]...), nil
}

type memoryReviews struct{ m *memoryStore }

func (r memoryReviews) forShop(shopID string) []domain.Review {
	out := []domain.Review{}
	for _, rv := range r.m.reviews {
		if rv.ShopID == shopID {
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memoryReviews) Recent(_ context.Context, shopID string, limit int) ([]domain.Review, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	all := r.forShop(shopID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r memoryReviews) AllForShop(_ context.Context, shopID string) ([]domain.Review, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.forShop(shopID), nil
}

func (r memoryReviews) FindByUserAndShop(_ context.Context, userID, shopID string) (*domain.Review, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.skipPreCheck {
		return nil, domain.ErrNotFound
	}
	for _, rv := range r.m.reviews {
		if uid, ok := rv.Author.UserID(); ok && uid == userID && rv.ShopID == shopID {
			copied := rv
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memoryReviews) Create(_ context.Context, review *domain.Review) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if uid, ok := review.Author.UserID(); ok {
		for _, rv := range r.m.reviews {
			if other, isUser := rv.Author.UserID(); isUser && other == uid && rv.ShopID == review.ShopID {
				return domain.ErrDuplicateReview
			}
		}
	}
	review.ID = r.m.nextID("review")
	r.m.reviews = append(r.m.reviews, *review)
	return nil
}

func (r memoryReviews) UpdateOwned(_ context.Context, reviewID, ownerID string, patch domain.ReviewPatch, editedAt time.Time) (*domain.Review, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, rv := range r.m.reviews {
		uid, ok := rv.Author.UserID()
		if rv.ID != reviewID || !ok || uid != ownerID {
			continue
		}
		if patch.Rating != nil {
			rv.Rating = *patch.Rating
		}
		if patch.Text != nil {
			rv.Text = *patch.Text
		}
		at := editedAt
		rv.IsEdited = true
		rv.EditedAt = &at
		rv.UpdatedAt = editedAt
		r.m.reviews[i] = rv
		return &rv, nil
	}
	return nil, domain.ErrNotFoundOrUnauthorized
}

func (r memoryReviews) DeleteOwned(_ context.Context, reviewID, ownerID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, rv := range r.m.reviews {
		if uid, ok := rv.Author.UserID(); ok && uid == ownerID && rv.ID == reviewID {
			r.m.reviews = append(r.m.reviews[:i], r.m.reviews[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFoundOrUnauthorized
}

type memoryFavorites struct{ m *memoryStore }

func (f memoryFavorites) Add(_ context.Context, userID, shopID string, at time.Time) (*domain.Favorite, bool, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, fav := range f.m.favorites {
		if fav.UserID == userID && fav.ShopID == shopID {
			copied := fav
			return &copied, false, nil
		}
	}
	fav := domain.Favorite{ID: f.m.nextID("fav"), UserID: userID, ShopID: shopID, CreatedAt: at}
	f.m.favorites = append(f.m.favorites, fav)
	return &fav, true, nil
}

func (f memoryFavorites) Remove(_ context.Context, userID, shopID string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for i, fav := range f.m.favorites {
		if fav.UserID == userID && fav.ShopID == shopID {
			f.m.favorites = append(f.m.favorites[:i], f.m.favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f memoryFavorites) ListByUser(_ context.Context, userID string) ([]domain.Favorite, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	out := []domain.Favorite{}
	for _, fav := range f.m.favorites {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
