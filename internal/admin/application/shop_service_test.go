package application

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	admindomain "github.com/sngm3741/doner-finder/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/doner-finder/api/internal/public/domain"
)

var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type fakeShopRepo struct {
	shops map[string]*admindomain.Shop
	seq   int
	// raceSlug makes the next Create for this slug fail as if another writer won.
	raceSlug string
	deleted  []string
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: map[string]*admindomain.Shop{}}
}

func (r *fakeShopRepo) Find(_ context.Context, filter ShopFilter) ([]admindomain.Shop, error) {
	out := []admindomain.Shop{}
	for _, s := range r.shops {
		if filter.Published != nil && s.Published != *filter.Published {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeShopRepo) FindByID(_ context.Context, id string) (*admindomain.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, publicdomain.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeShopRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, s := range r.shops {
		if s.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeShopRepo) Create(_ context.Context, shop *admindomain.Shop) error {
	if shop.Slug == r.raceSlug {
		r.raceSlug = ""
		return admindomain.ErrSlugTaken
	}
	r.seq++
	shop.ID = "shop" + strconv.Itoa(r.seq)
	copied := *shop
	r.shops[shop.ID] = &copied
	return nil
}

func (r *fakeShopRepo) Update(_ context.Context, shop *admindomain.Shop) error {
	if _, ok := r.shops[shop.ID]; !ok {
		return publicdomain.ErrNotFound
	}
	copied := *shop
	r.shops[shop.ID] = &copied
	return nil
}

func (r *fakeShopRepo) SetPublished(_ context.Context, id string, published bool, at time.Time) error {
	s, ok := r.shops[id]
	if !ok {
		return publicdomain.ErrNotFound
	}
	s.Published = published
	s.UpdatedAt = at
	return nil
}

func (r *fakeShopRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.shops[id]; !ok {
		return publicdomain.ErrNotFound
	}
	delete(r.shops, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeShopRepo) ReplaceOpeningHours(_ context.Context, id string, hours []publicdomain.OpeningHours, at time.Time) error {
	s, ok := r.shops[id]
	if !ok {
		return publicdomain.ErrNotFound
	}
	s.OpeningHours = hours
	s.UpdatedAt = at
	return nil
}

func (r *fakeShopRepo) AddPhoto(_ context.Context, shopID string, photo *publicdomain.Photo) error {
	s, ok := r.shops[shopID]
	if !ok {
		return publicdomain.ErrNotFound
	}
	photo.ID = "photo" + strconv.Itoa(len(s.Photos)+1)
	s.Photos = append(s.Photos, *photo)
	return nil
}

func (r *fakeShopRepo) RemovePhoto(_ context.Context, shopID, photoID string) error {
	s, ok := r.shops[shopID]
	if !ok {
		return publicdomain.ErrNotFound
	}
	for i, p := range s.Photos {
		if p.ID == photoID {
			s.Photos = append(s.Photos[:i], s.Photos[i+1:]...)
			return nil
		}
	}
	return publicdomain.ErrNotFound
}

func validCommand(name string) UpsertShopCommand {
	return UpsertShopCommand{
		Name:       name,
		Lat:        50.9167,
		Lng:        13.3417,
		City:       "Freiberg",
		PostalCode: "09599",
		PriceLevel: 2,
		MeatType:   "veal",
	}
}

func TestCreateAssignsUniqueSlug(t *testing.T) {
	repo := newFakeShopRepo()
	svc := NewShopService(repo, func() time.Time { return testNow })
	ctx := context.Background()

	first, err := svc.Create(ctx, validCommand("Zafer Döner"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, validCommand("Zafer  Döner!"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if first.Slug != "zafer-doener" || second.Slug != "zafer-doener-2" {
		t.Fatalf("slugs = %q, %q", first.Slug, second.Slug)
	}
	if first.Published {
		t.Fatalf("new shops must start unpublished")
	}
	if !first.CreatedAt.Equal(testNow) {
		t.Fatalf("createdAt = %v", first.CreatedAt)
	}
}

func TestCreateRetriesWhenSlugIndexRejects(t *testing.T) {
	repo := newFakeShopRepo()
	repo.raceSlug = "anadolu"
	svc := NewShopService(repo, func() time.Time { return testNow })

	shop, err := svc.Create(context.Background(), validCommand("Anadolu"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if shop.Slug != "anadolu-2" {
		t.Fatalf("slug = %q, want anadolu-2", shop.Slug)
	}
}

func TestCreateRejectsInvalidCommand(t *testing.T) {
	svc := NewShopService(newFakeShopRepo(), nil)
	cases := map[string]func(*UpsertShopCommand){
		"blank name":  func(c *UpsertShopCommand) { c.Name = " " },
		"bad price":   func(c *UpsertShopCommand) { c.PriceLevel = 0 },
		"bad lat":     func(c *UpsertShopCommand) { c.Lat = 95 },
		"no city":     func(c *UpsertShopCommand) { c.City = "" },
		"neg fee":     func(c *UpsertShopCommand) { c.DeliveryFee = -10 },
		"meat":        func(c *UpsertShopCommand) { c.MeatType = "pork" },
		"neg radius":  func(c *UpsertShopCommand) { c.DeliveryRadius = -1 },
		"postal code": func(c *UpsertShopCommand) { c.PostalCode = "abc" },
	}
	for name, mutate := range cases {
		cmd := validCommand("Shop")
		mutate(&cmd)
		if _, err := svc.Create(context.Background(), cmd); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: err = %v, want ErrInvalidInput", name, err)
		}
	}
}

func TestUpdateKeepsSlugAndPublication(t *testing.T) {
	repo := newFakeShopRepo()
	svc := NewShopService(repo, func() time.Time { return testNow })
	ctx := context.Background()
	shop, err := svc.Create(ctx, validCommand("Zafer Döner"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.SetPublished(ctx, shop.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}

	updated, err := svc.Update(ctx, shop.ID, validCommand("Zafer Kebap Haus"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "zafer-doener" {
		t.Fatalf("slug changed to %q", updated.Slug)
	}
	if !updated.Published || updated.Name != "Zafer Kebap Haus" {
		t.Fatalf("updated = %+v", updated)
	}

	if _, err := svc.Update(ctx, "missing", validCommand("X")); !errors.Is(err, publicdomain.ErrNotFound) {
		t.Fatalf("missing update err = %v", err)
	}
}

func TestReplaceOpeningHours(t *testing.T) {
	repo := newFakeShopRepo()
	svc := NewShopService(repo, func() time.Time { return testNow })
	ctx := context.Background()
	shop, err := svc.Create(ctx, validCommand("Zafer"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.ReplaceOpeningHours(ctx, shop.ID, []OpeningHoursCommand{
		{Weekday: 5, Open: "18:00", Close: "03:00"},
		{Weekday: 0},
		{Weekday: 1, Open: "11:00", Close: "22:00"},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(got.OpeningHours) != 3 || got.OpeningHours[0].Weekday != 0 || got.OpeningHours[2].Weekday != 5 {
		t.Fatalf("hours = %+v", got.OpeningHours)
	}
	if !got.OpeningHours[0].Closed() {
		t.Fatalf("sunday should be closed")
	}

	_, err = svc.ReplaceOpeningHours(ctx, shop.ID, []OpeningHoursCommand{{Weekday: 2, Open: "25:00", Close: "22:00"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("invalid time err = %v", err)
	}
	_, err = svc.ReplaceOpeningHours(ctx, shop.ID, []OpeningHoursCommand{{Weekday: 2, Open: "10:00"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("half-open day err = %v", err)
	}
}

func TestPhotosAndDelete(t *testing.T) {
	repo := newFakeShopRepo()
	svc := NewShopService(repo, func() time.Time { return testNow })
	ctx := context.Background()
	shop, err := svc.Create(ctx, validCommand("Zafer"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AddPhoto(ctx, shop.ID, PhotoCommand{URL: "nope"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("invalid photo err = %v", err)
	}
	photo, err := svc.AddPhoto(ctx, shop.ID, PhotoCommand{URL: "https://img.example/a.jpg", Caption: " Theke "})
	if err != nil {
		t.Fatalf("add photo: %v", err)
	}
	if photo.ID == "" || photo.Caption != "Theke" {
		t.Fatalf("photo = %+v", photo)
	}
	if err := svc.RemovePhoto(ctx, shop.ID, photo.ID); err != nil {
		t.Fatalf("remove photo: %v", err)
	}

	if err := svc.Delete(ctx, shop.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Detail(ctx, shop.ID); !errors.Is(err, publicdomain.ErrNotFound) {
		t.Fatalf("detail after delete err = %v", err)
	}
}

type fakeReviewRepo struct {
	reviews map[string]publicdomain.Review
}

func (r *fakeReviewRepo) ListForShop(_ context.Context, shopID string) ([]publicdomain.Review, error) {
	out := []publicdomain.Review{}
	for _, rv := range r.reviews {
		if rv.ShopID == shopID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return publicdomain.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func TestReviewModeration(t *testing.T) {
	shops := newFakeShopRepo()
	shop, err := NewShopService(shops, nil).Create(context.Background(), validCommand("Zafer"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	reviews := &fakeReviewRepo{reviews: map[string]publicdomain.Review{
		"r1": {ID: "r1", ShopID: shop.ID, Author: publicdomain.AnonymousAuthor("spam"), Rating: 1},
	}}
	svc := NewReviewModerationService(shops, reviews)
	ctx := context.Background()

	list, err := svc.ListForShop(ctx, shop.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}
	if _, err := svc.ListForShop(ctx, "missing"); !errors.Is(err, publicdomain.ErrNotFound) {
		t.Fatalf("missing shop err = %v", err)
	}
	if err := svc.Delete(ctx, "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, "r1"); !errors.Is(err, publicdomain.ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}
