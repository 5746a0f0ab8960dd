package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddressDocument は店舗ドキュメント内の住所埋め込み構造を表す。
type AddressDocument struct {
	Street     string `bson:"street,omitempty"`
	City       string `bson:"city"`
	PostalCode string `bson:"postalCode,omitempty"`
}

// LocationDocument stores coordinates as plain numbers.
type LocationDocument struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

// DeliveryDocument holds delivery settings in cents and meters.
type DeliveryDocument struct {
	Available     bool `bson:"available"`
	FeeCents      int  `bson:"feeCents,omitempty"`
	MinOrderCents int  `bson:"minOrderCents,omitempty"`
	RadiusMeters  int  `bson:"radiusMeters,omitempty"`
}

// ExternalDocument is the snapshot of an imported place record.
type ExternalDocument struct {
	PlaceID     string     `bson:"placeId,omitempty"`
	Rating      *float64   `bson:"rating,omitempty"`
	RatingCount int        `bson:"ratingCount,omitempty"`
	SyncedAt    *time.Time `bson:"syncedAt,omitempty"`
}

// OpeningHoursDocument is one weekday row. Nil times mean closed.
type OpeningHoursDocument struct {
	Weekday int     `bson:"weekday"`
	Open    *string `bson:"open"`
	Close   *string `bson:"close"`
}

// PhotoDocument is an embedded shop photo.
type PhotoDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	URL       string             `bson:"url"`
	Caption   string             `bson:"caption,omitempty"`
	SortOrder int                `bson:"sortOrder"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ShopDocument は MongoDB 上での店舗スキーマを Go 構造体として表現したもの。
type ShopDocument struct {
	ID               primitive.ObjectID     `bson:"_id"`
	Slug             string                 `bson:"slug"`
	Name             string                 `bson:"name"`
	Description      string                 `bson:"description,omitempty"`
	Location         LocationDocument       `bson:"location"`
	Address          AddressDocument        `bson:"address"`
	Halal            bool                   `bson:"halal"`
	Vegetarian       bool                   `bson:"vegetarian"`
	MeatType         string                 `bson:"meatType,omitempty"`
	PriceLevel       int                    `bson:"priceLevel"`
	HasSpecialOffers bool                   `bson:"hasSpecialOffers"`
	Delivery         DeliveryDocument       `bson:"delivery"`
	Published        bool                   `bson:"published"`
	External         ExternalDocument       `bson:"external,omitempty"`
	OpeningHours     []OpeningHoursDocument `bson:"openingHours"`
	Photos           []PhotoDocument        `bson:"photos"`
	CreatedAt        time.Time              `bson:"createdAt"`
	UpdatedAt        time.Time              `bson:"updatedAt"`
}

// ratedShopDocument is the output row of the list aggregation.
type ratedShopDocument struct {
	ShopDocument `bson:",inline"`
	AvgRating    float64 `bson:"avgRating"`
	ReviewCount  int     `bson:"reviewCount"`
}

// ReviewDocument stores either userId or userHash, never both.
type ReviewDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	ShopID    primitive.ObjectID `bson:"shopId"`
	UserID    string             `bson:"userId,omitempty"`
	UserHash  string             `bson:"userHash,omitempty"`
	Rating    int                `bson:"rating"`
	Text      string             `bson:"text,omitempty"`
	IsEdited  bool               `bson:"isEdited"`
	EditedAt  *time.Time         `bson:"editedAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// FavoriteDocument is the (userId, shopId) join row.
type FavoriteDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    string             `bson:"userId"`
	ShopID    primitive.ObjectID `bson:"shopId"`
	CreatedAt time.Time          `bson:"createdAt"`
}
