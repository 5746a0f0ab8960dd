package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sngm3741/doner-finder/api/internal/public/domain"
)

func TestAddFavoriteIsIdempotent(t *testing.T) {
	f := seedFreiberg(t)
	svc := NewFavoriteService(f.store.Shops(), f.store.Reviews(), f.store.Favorites(), testOptions())
	ctx := context.Background()

	first, err := svc.Add(ctx, "alice", f.cheap.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := svc.Add(ctx, "alice", f.cheap.ID)
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("re-add created a new record: %s vs %s", first.ID, second.ID)
	}
	if len(f.store.favorites) != 1 {
		t.Fatalf("stored favorites = %d", len(f.store.favorites))
	}
}

func TestAddFavoriteUnknownShop(t *testing.T) {
	f := seedFreiberg(t)
	svc := NewFavoriteService(f.store.Shops(), f.store.Reviews(), f.store.Favorites(), testOptions())
	if _, err := svc.Add(context.Background(), "alice", "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestRemoveFavoriteIsNoOpWhenAbsent(t *testing.T) {
	f := seedFreiberg(t)
	svc := NewFavoriteService(f.store.Shops(), f.store.Reviews(), f.store.Favorites(), testOptions())
	ctx := context.Background()

	if err := svc.Remove(ctx, "alice", f.cheap.ID); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if _, err := svc.Add(ctx, "alice", f.cheap.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Remove(ctx, "alice", f.cheap.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(f.store.favorites) != 0 {
		t.Fatalf("favorite not removed")
	}
}

func TestListFavoritesHydratesAndSkipsUnpublished(t *testing.T) {
	f := seedFreiberg(t)
	draft := f.store.addShop(domain.Shop{Slug: "draft", Name: "Draft"})
	calls := 0
	opts := testOptions()
	opts.Now = func() time.Time {
		calls++
		return fixedNow.Add(time.Duration(calls) * time.Minute)
	}
	svc := NewFavoriteService(f.store.Shops(), f.store.Reviews(), f.store.Favorites(), opts)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "alice", f.cheap.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "alice", f.fancy.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Shop unpublished after it was favorited.
	f.store.favorites = append(f.store.favorites, domain.Favorite{ID: "stale", UserID: "alice", ShopID: draft.ID, CreatedAt: fixedNow.Add(time.Hour)})

	entries, err := svc.List(ctx, "alice", 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Shop.ID != f.fancy.ID {
		t.Fatalf("newest favorite should come first, got %s", entries[0].Shop.ID)
	}
	for _, e := range entries {
		if !e.IsFavorited {
			t.Fatalf("entry %s not marked favorited", e.Shop.ID)
		}
		if e.Shop.RecentReviews == nil || e.Shop.Photos == nil {
			t.Fatalf("entry %s not hydrated", e.Shop.ID)
		}
	}
	if entries[1].Shop.AvgRating != 5 {
		t.Fatalf("cheap shop rating = %v", entries[1].Shop.AvgRating)
	}

	page, err := svc.List(ctx, "alice", 1, 1)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].Shop.ID != f.cheap.ID {
		t.Fatalf("second page = %+v", page)
	}

	empty, err := svc.List(ctx, "bob", 0, 10)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty list = %v, %v", empty, err)
	}
}

func TestFavoritedShopIDsIsPerUser(t *testing.T) {
	f := seedFreiberg(t)
	svc := NewFavoriteService(f.store.Shops(), f.store.Reviews(), f.store.Favorites(), testOptions())
	ctx := context.Background()

	if _, err := svc.Add(ctx, "alice", f.cheap.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "bob", f.fancy.ID); err != nil {
		t.Fatalf("add: %v", err)
	}

	ids, err := svc.FavoritedShopIDs(ctx, "alice")
	if err != nil {
		t.Fatalf("favorited ids: %v", err)
	}
	if len(ids) != 1 || !ids[f.cheap.ID] || ids[f.fancy.ID] {
		t.Fatalf("alice favorites = %v", ids)
	}

	none, err := svc.FavoritedShopIDs(ctx, "carol")
	if err != nil || len(none) != 0 {
		t.Fatalf("carol favorites = %v, err %v", none, err)
	}
}
