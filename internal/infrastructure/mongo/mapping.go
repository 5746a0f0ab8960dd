package mongo

import (
	"errors"
	"strings"

	admindomain "github.com/sngm3741/doner-finder/api/internal/admin/domain"
	"github.com/sngm3741/doner-finder/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// objectIDOr parses a hex id. Malformed ids map to notFound so callers cannot tell them apart from missing rows.
func objectIDOr(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id)); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// translate maps driver "no documents" to the given domain error.
func translate(err, notFound error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	return err
}

func mapShopDocument(doc ShopDocument) domain.Shop {
	return domain.Shop{
		ID:          doc.ID.Hex(),
		Slug:        doc.Slug,
		Name:        doc.Name,
		Description: doc.Description,
		Location:    domain.Location{Lat: doc.Location.Lat, Lng: doc.Location.Lng},
		Address: domain.Address{
			Street:     doc.Address.Street,
			City:       doc.Address.City,
			PostalCode: doc.Address.PostalCode,
		},
		Attributes: domain.Attributes{
			Halal:            doc.Halal,
			Vegetarian:       doc.Vegetarian,
			MeatType:         doc.MeatType,
			PriceLevel:       doc.PriceLevel,
			HasSpecialOffers: doc.HasSpecialOffers,
		},
		Delivery: domain.Delivery{
			Available:     doc.Delivery.Available,
			FeeCents:      doc.Delivery.FeeCents,
			MinOrderCents: doc.Delivery.MinOrderCents,
			RadiusMeters:  doc.Delivery.RadiusMeters,
		},
		Published: doc.Published,
		External: domain.ExternalPlace{
			PlaceID:     doc.External.PlaceID,
			Rating:      doc.External.Rating,
			RatingCount: doc.External.RatingCount,
			SyncedAt:    doc.External.SyncedAt,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// mapHours skips rows whose stored times cannot be parsed; such a day reads as closed.
func mapHours(docs []OpeningHoursDocument) []domain.OpeningHours {
	hours := make([]domain.OpeningHours, 0, len(docs))
	for _, d := range docs {
		entry := domain.OpeningHours{Weekday: d.Weekday}
		if d.Open != nil && d.Close != nil {
			open, errOpen := domain.ParseClockTime(*d.Open)
			closeAt, errClose := domain.ParseClockTime(*d.Close)
			if errOpen == nil && errClose == nil {
				entry.Open = &open
				entry.Close = &closeAt
			}
		}
		hours = append(hours, entry)
	}
	domain.SortHours(hours)
	return hours
}

func hoursToDocuments(hours []domain.OpeningHours) []OpeningHoursDocument {
	docs := make([]OpeningHoursDocument, 0, len(hours))
	for _, h := range hours {
		doc := OpeningHoursDocument{Weekday: h.Weekday}
		if !h.Closed() {
			open, closeAt := h.Open.String(), h.Close.String()
			doc.Open = &open
			doc.Close = &closeAt
		}
		docs = append(docs, doc)
	}
	return docs
}

func mapPhotos(docs []PhotoDocument) []domain.Photo {
	photos := make([]domain.Photo, 0, len(docs))
	for _, d := range docs {
		photos = append(photos, domain.Photo{
			ID:        d.ID.Hex(),
			URL:       d.URL,
			Caption:   d.Caption,
			SortOrder: d.SortOrder,
			CreatedAt: d.CreatedAt,
		})
	}
	return photos
}

func mapReviewDocument(doc ReviewDocument) domain.Review {
	author := domain.AnonymousAuthor(doc.UserHash)
	if doc.UserID != "" {
		author = domain.AuthenticatedAuthor(doc.UserID)
	}
	return domain.Review{
		ID:        doc.ID.Hex(),
		ShopID:    doc.ShopID.Hex(),
		Author:    author,
		Rating:    doc.Rating,
		Text:      doc.Text,
		IsEdited:  doc.IsEdited,
		EditedAt:  doc.EditedAt,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func mapFavoriteDocument(doc FavoriteDocument) domain.Favorite {
	return domain.Favorite{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID,
		ShopID:    doc.ShopID.Hex(),
		CreatedAt: doc.CreatedAt,
	}
}

// mapAdminShop は Mongo 店舗文書を Admin ドメイン Shop へ変換する。
func mapAdminShop(doc ShopDocument, reviewCount int) (admindomain.Shop, error) {
	name, err := admindomain.NewShopName(doc.Name)
	if err != nil {
		return admindomain.Shop{}, err
	}
	postal, err := admindomain.NewPostalCode(doc.Address.PostalCode)
	if err != nil {
		return admindomain.Shop{}, err
	}
	meat, err := admindomain.NewMeatType(doc.MeatType)
	if err != nil {
		return admindomain.Shop{}, err
	}
	return admindomain.Shop{
		ID:               doc.ID.Hex(),
		Slug:             doc.Slug,
		Name:             name,
		Description:      doc.Description,
		Coordinates:      admindomain.Coordinates{Lat: doc.Location.Lat, Lng: doc.Location.Lng},
		Street:           doc.Address.Street,
		City:             doc.Address.City,
		PostalCode:       postal,
		Halal:            doc.Halal,
		Vegetarian:       doc.Vegetarian,
		MeatType:         meat,
		PriceLevel:       admindomain.PriceLevel(doc.PriceLevel),
		HasSpecialOffers: doc.HasSpecialOffers,
		Delivery: admindomain.Delivery{
			Available:    doc.Delivery.Available,
			Fee:          admindomain.Cents(doc.Delivery.FeeCents),
			MinOrder:     admindomain.Cents(doc.Delivery.MinOrderCents),
			RadiusMeters: doc.Delivery.RadiusMeters,
		},
		Published:       doc.Published,
		ExternalPlaceID: doc.External.PlaceID,
		ExternalRating:  doc.External.Rating,
		OpeningHours:    mapHours(doc.OpeningHours),
		Photos:          mapPhotos(doc.Photos),
		ReviewCount:     reviewCount,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}, nil
}

// adminShopToDocument builds the stored form. ID must already be set by the caller.
func adminShopToDocument(shop *admindomain.Shop, id primitive.ObjectID) ShopDocument {
	photos := make([]PhotoDocument, 0, len(shop.Photos))
	for _, p := range shop.Photos {
		pid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			pid = primitive.NewObjectID()
		}
		photos = append(photos, PhotoDocument{ID: pid, URL: p.URL, Caption: p.Caption, SortOrder: p.SortOrder, CreatedAt: p.CreatedAt})
	}
	return ShopDocument{
		ID:          id,
		Slug:        shop.Slug,
		Name:        shop.Name.String(),
		Description: shop.Description,
		Location:    LocationDocument{Lat: shop.Coordinates.Lat, Lng: shop.Coordinates.Lng},
		Address: AddressDocument{
			Street:     shop.Street,
			City:       shop.City,
			PostalCode: string(shop.PostalCode),
		},
		Halal:            shop.Halal,
		Vegetarian:       shop.Vegetarian,
		MeatType:         shop.MeatType.String(),
		PriceLevel:       shop.PriceLevel.Int(),
		HasSpecialOffers: shop.HasSpecialOffers,
		Delivery: DeliveryDocument{
			Available:     shop.Delivery.Available,
			FeeCents:      shop.Delivery.Fee.Int(),
			MinOrderCents: shop.Delivery.MinOrder.Int(),
			RadiusMeters:  shop.Delivery.RadiusMeters,
		},
		Published:    shop.Published,
		External:     ExternalDocument{PlaceID: shop.ExternalPlaceID, Rating: shop.ExternalRating},
		OpeningHours: hoursToDocuments(shop.OpeningHours),
		Photos:       photos,
		CreatedAt:    shop.CreatedAt,
		UpdatedAt:    shop.UpdatedAt,
	}
}
