package mongo

import (
	"context"
	"sort"
	"strings"

	"github.com/sngm3741/doner-finder/api/internal/public/application"
	"github.com/sngm3741/doner-finder/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ShopRepository implements application.ShopRepository using MongoDB.
type ShopRepository struct {
	shops            *mongo.Collection
	reviews          *mongo.Collection
	reviewCollection string
}

// NewShopRepository creates a new Mongo-backed shop repository.
func NewShopRepository(db *mongo.Database, shopCollection, reviewCollection string) *ShopRepository {
	return &ShopRepository{
		shops:            db.Collection(shopCollection),
		reviews:          db.Collection(reviewCollection),
		reviewCollection: reviewCollection,
	}
}

var _ application.ShopRepository = (*ShopRepository)(nil)

// buildShopMatch turns the criteria into a $match stage body. Flags only filter when true.
func buildShopMatch(criteria application.ShopCriteria) bson.M {
	match := bson.M{"published": true}
	if city := strings.TrimSpace(criteria.City); city != "" {
		match["address.city"] = city
	}
	if criteria.Halal {
		match["halal"] = true
	}
	if criteria.Vegetarian {
		match["vegetarian"] = true
	}
	if criteria.HasOffers {
		match["hasSpecialOffers"] = true
	}
	if criteria.HasDelivery {
		match["delivery.available"] = true
	}
	return match
}

// ratedShopsPipeline joins review ratings and annotates avgRating (0 without reviews) and reviewCount.
func ratedShopsPipeline(match bson.M, reviewCollection string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from": reviewCollection,
			"let":  bson.M{"sid": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$shopId", "$$sid"}}}},
				bson.M{"$project": bson.M{"rating": 1}},
			},
			"as": "ratings",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"reviewCount": bson.M{"$size": "$ratings"},
			"avgRating":   bson.M{"$ifNull": bson.A{bson.M{"$avg": "$ratings.rating"}, 0}},
		}}},
		{{Key: "$project", Value: bson.M{"ratings": 0, "openingHours": 0, "photos": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}}},
	}
}

func (r *ShopRepository) aggregateRated(ctx context.Context, match bson.M) ([]domain.RatedShop, error) {
	cursor, err := r.shops.Aggregate(ctx, ratedShopsPipeline(match, r.reviewCollection))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	shops := make([]domain.RatedShop, 0)
	for cursor.Next(ctx) {
		var doc ratedShopDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		shops = append(shops, domain.RatedShop{
			Shop:          mapShopDocument(doc.ShopDocument),
			RatingSummary: domain.RatingSummary{AvgRating: doc.AvgRating, ReviewCount: doc.ReviewCount},
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return shops, nil
}

// FindPublished returns every published shop matching the criteria, ordered by name.
func (r *ShopRepository) FindPublished(ctx context.Context, criteria application.ShopCriteria) ([]domain.RatedShop, error) {
	return r.aggregateRated(ctx, buildShopMatch(criteria))
}

// FindRatedByIDs returns the published shops among ids.
func (r *ShopRepository) FindRatedByIDs(ctx context.Context, ids []string) ([]domain.RatedShop, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []domain.RatedShop{}, nil
	}
	return r.aggregateRated(ctx, bson.M{"_id": bson.M{"$in": oids}, "published": true})
}

func (r *ShopRepository) findOnePublished(ctx context.Context, filter bson.M, projection bson.M) (*ShopDocument, error) {
	filter["published"] = true
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	var doc ShopDocument
	if err := r.shops.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	return &doc, nil
}

func (r *ShopRepository) FindPublishedBySlug(ctx context.Context, slug string) (*domain.Shop, error) {
	doc, err := r.findOnePublished(ctx, bson.M{"slug": strings.TrimSpace(slug)}, bson.M{"openingHours": 0, "photos": 0})
	if err != nil {
		return nil, err
	}
	shop := mapShopDocument(*doc)
	return &shop, nil
}

func (r *ShopRepository) FindPublishedByID(ctx context.Context, id string) (*domain.Shop, error) {
	oid, err := objectIDOr(id, domain.ErrNotFound)
	if err != nil {
		return nil, err
	}
	doc, err := r.findOnePublished(ctx, bson.M{"_id": oid}, bson.M{"openingHours": 0, "photos": 0})
	if err != nil {
		return nil, err
	}
	shop := mapShopDocument(*doc)
	return &shop, nil
}

// RatingSummary aggregates reviews directly, independent of the list pipeline.
func (r *ShopRepository) RatingSummary(ctx context.Context, shopID string) (domain.RatingSummary, error) {
	oid, err := objectIDOr(shopID, domain.ErrNotFound)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"shopId": oid}}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"reviewCount": bson.M{"$sum": 1},
			"avgRating":   bson.M{"$avg": "$rating"},
		}}},
	}
	cursor, err := r.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	defer cursor.Close(ctx)

	var summary domain.RatingSummary
	if cursor.Next(ctx) {
		var row struct {
			ReviewCount int      `bson:"reviewCount"`
			AvgRating   *float64 `bson:"avgRating"`
		}
		if err := cursor.Decode(&row); err != nil {
			return domain.RatingSummary{}, err
		}
		summary.ReviewCount = row.ReviewCount
		if row.AvgRating != nil {
			summary.AvgRating = *row.AvgRating
		}
	}
	return summary, cursor.Err()
}

func (r *ShopRepository) OpeningHours(ctx context.Context, shopID string) ([]domain.OpeningHours, error) {
	oid, err := objectIDOr(shopID, domain.ErrNotFound)
	if err != nil {
		return nil, err
	}
	doc, err := r.findOnePublished(ctx, bson.M{"_id": oid}, bson.M{"openingHours": 1})
	if err != nil {
		return nil, err
	}
	return mapHours(doc.OpeningHours), nil
}

// OpeningHoursForShops batch-loads hours keyed by shop id.
func (r *ShopRepository) OpeningHoursForShops(ctx context.Context, shopIDs []string) (map[string][]domain.OpeningHours, error) {
	result := make(map[string][]domain.OpeningHours, len(shopIDs))
	oids := objectIDs(shopIDs)
	if len(oids) == 0 {
		return result, nil
	}
	opts := options.Find().SetProjection(bson.M{"openingHours": 1})
	cursor, err := r.shops.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			ID           primitive.ObjectID     `bson:"_id"`
			OpeningHours []OpeningHoursDocument `bson:"openingHours"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result[doc.ID.Hex()] = mapHours(doc.OpeningHours)
	}
	return result, cursor.Err()
}

// Photos returns photos ordered by sortOrder, then upload time.
func (r *ShopRepository) Photos(ctx context.Context, shopID string) ([]domain.Photo, error) {
	oid, err := objectIDOr(shopID, domain.ErrNotFound)
	if err != nil {
		return nil, err
	}
	doc, err := r.findOnePublished(ctx, bson.M{"_id": oid}, bson.M{"photos": 1})
	if err != nil {
		return nil, err
	}
	photos := mapPhotos(doc.Photos)
	sortPhotos(photos)
	return photos, nil
}

func sortPhotos(photos []domain.Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].SortOrder != photos[j].SortOrder {
			return photos[i].SortOrder < photos[j].SortOrder
		}
		return photos[i].CreatedAt.Before(photos[j].CreatedAt)
	})
}
