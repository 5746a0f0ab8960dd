package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	admindomain "github.com/sngm3741/doner-finder/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/doner-finder/api/internal/public/domain"
)

const maxSlugAttempts = 50

// ErrInvalidInput wraps validation failures of admin commands.
var ErrInvalidInput = errors.New("invalid input")

// shopService implements ShopService.
type shopService struct {
	repo ShopRepository
	now  func() time.Time
}

func NewShopService(repo ShopRepository, now func() time.Time) ShopService {
	if now == nil {
		now = time.Now
	}
	return &shopService{repo: repo, now: now}
}

func (s *shopService) List(ctx context.Context, filter ShopFilter) ([]admindomain.Shop, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.Find(ctx, filter)
}

func (s *shopService) Detail(ctx context.Context, id string) (*admindomain.Shop, error) {
	return s.repo.FindByID(ctx, id)
}

// Create は店名から一意な slug を採番して店舗を登録する。新規店舗は非公開で作成される。
func (s *shopService) Create(ctx context.Context, cmd UpsertShopCommand) (*admindomain.Shop, error) {
	shop, err := buildShop(cmd)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	base := admindomain.Slugify(shop.Name.String())
	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := admindomain.SlugCandidate(base, n)
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		shop.Slug = candidate
		err = s.repo.Create(ctx, shop)
		if errors.Is(err, admindomain.ErrSlugTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return shop, nil
	}
	return nil, fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}

// Update rewrites descriptive fields. Slug, publication, hours and photos are kept.
func (s *shopService) Update(ctx context.Context, id string, cmd UpsertShopCommand) (*admindomain.Shop, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	shop, err := buildShop(cmd)
	if err != nil {
		return nil, err
	}
	shop.ID = current.ID
	shop.Slug = current.Slug
	shop.Published = current.Published
	shop.OpeningHours = current.OpeningHours
	shop.Photos = current.Photos
	shop.ReviewCount = current.ReviewCount
	shop.CreatedAt = current.CreatedAt
	shop.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *shopService) SetPublished(ctx context.Context, id string, published bool) (*admindomain.Shop, error) {
	if err := s.repo.SetPublished(ctx, id, published, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *shopService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *shopService) ReplaceOpeningHours(ctx context.Context, id string, cmds []OpeningHoursCommand) (*admindomain.Shop, error) {
	hours := make([]publicdomain.OpeningHours, 0, len(cmds))
	for _, c := range cmds {
		entry := publicdomain.OpeningHours{Weekday: c.Weekday}
		if strings.TrimSpace(c.Open) != "" || strings.TrimSpace(c.Close) != "" {
			open, err := publicdomain.ParseClockTime(c.Open)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			closeAt, err := publicdomain.ParseClockTime(c.Close)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			entry.Open = &open
			entry.Close = &closeAt
		}
		hours = append(hours, entry)
	}
	if err := admindomain.ValidateWeek(hours); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	publicdomain.SortHours(hours)

	if err := s.repo.ReplaceOpeningHours(ctx, id, hours, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *shopService) AddPhoto(ctx context.Context, id string, cmd PhotoCommand) (*publicdomain.Photo, error) {
	photoURL, err := admindomain.NewPhotoURL(cmd.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	photo := &publicdomain.Photo{
		URL:       photoURL.String(),
		Caption:   strings.TrimSpace(cmd.Caption),
		SortOrder: cmd.SortOrder,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.AddPhoto(ctx, id, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *shopService) RemovePhoto(ctx context.Context, id, photoID string) error {
	return s.repo.RemovePhoto(ctx, id, photoID)
}

func buildShop(cmd UpsertShopCommand) (*admindomain.Shop, error) {
	name, err := admindomain.NewShopName(cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	coords, err := admindomain.NewCoordinates(cmd.Lat, cmd.Lng)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	postal, err := admindomain.NewPostalCode(cmd.PostalCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	meat, err := admindomain.NewMeatType(cmd.MeatType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	price, err := admindomain.NewPriceLevel(cmd.PriceLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fee, err := admindomain.NewCents(cmd.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("%w: delivery fee: %v", ErrInvalidInput, err)
	}
	minimum, err := admindomain.NewCents(cmd.DeliveryMinimum)
	if err != nil {
		return nil, fmt.Errorf("%w: delivery minimum: %v", ErrInvalidInput, err)
	}
	if cmd.DeliveryRadius < 0 {
		return nil, fmt.Errorf("%w: delivery radius must be >= 0", ErrInvalidInput)
	}
	city := strings.TrimSpace(cmd.City)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}

	return &admindomain.Shop{
		Name:             name,
		Description:      strings.TrimSpace(cmd.Description),
		Coordinates:      coords,
		Street:           strings.TrimSpace(cmd.Street),
		City:             city,
		PostalCode:       postal,
		Halal:            cmd.Halal,
		Vegetarian:       cmd.Vegetarian,
		MeatType:         meat,
		PriceLevel:       price,
		HasSpecialOffers: cmd.HasSpecialOffers,
		Delivery: admindomain.Delivery{
			Available:    cmd.HasDelivery,
			Fee:          fee,
			MinOrder:     minimum,
			RadiusMeters: cmd.DeliveryRadius,
		},
		ExternalPlaceID: strings.TrimSpace(cmd.ExternalPlaceID),
		ExternalRating:  cmd.ExternalRating,
	}, nil
}
