package domain

import "time"

// Favorite is a (user, shop) bookmark.
type Favorite struct {
	ID        string
	UserID    string
	ShopID    string
	CreatedAt time.Time
}

// FavoriteEntry is a favorite joined with its hydrated shop.
// IsFavorited is always true; it keeps the shape aligned with the general shop list.
type FavoriteEntry struct {
	Favorite    Favorite
	Shop        RankedShop
	IsFavorited bool
}
