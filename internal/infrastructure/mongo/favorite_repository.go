package mongo

import (
	"context"
	"time"

	"github.com/sngm3741/doner-finder/api/internal/public/application"
	"github.com/sngm3741/doner-finder/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FavoriteRepository persists user favorites, one row per (userId, shopId).
type FavoriteRepository struct {
	collection *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database, collectionName string) *FavoriteRepository {
	return &FavoriteRepository{collection: db.Collection(collectionName)}
}

var _ application.FavoriteRepository = (*FavoriteRepository)(nil)

// Add upserts with $setOnInsert so an existing row is left untouched and returned.
// Two concurrent upserts can both miss and race on the unique index; the loser retries once and reads the winner.
func (r *FavoriteRepository) Add(ctx context.Context, userID, shopID string, at time.Time) (*domain.Favorite, bool, error) {
	oid, err := objectIDOr(shopID, domain.ErrNotFound)
	if err != nil {
		return nil, false, err
	}
	filter := bson.M{"userId": userID, "shopId": oid}
	update := bson.M{"$setOnInsert": bson.M{"createdAt": at}}
	opts := options.Update().SetUpsert(true)

	var result *mongo.UpdateResult
	for attempt := 0; attempt < 2; attempt++ {
		result, err = r.collection.UpdateOne(ctx, filter, update, opts)
		if err == nil || !mongo.IsDuplicateKeyError(err) {
			break
		}
	}
	if err != nil {
		return nil, false, err
	}

	var doc FavoriteDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, false, translate(err, domain.ErrNotFound)
	}
	fav := mapFavoriteDocument(doc)
	return &fav, result.UpsertedCount > 0, nil
}

// Remove deletes the pair if present. Absence is not an error.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, shopID string) error {
	oid, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return nil
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"userId": userID, "shopId": oid})
	return err
}

// ListByUser returns all favorites of the user, newest first.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	favorites := make([]domain.Favorite, 0)
	for cursor.Next(ctx) {
		var doc FavoriteDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		favorites = append(favorites, mapFavoriteDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return favorites, nil
}

// DeleteForShop removes every favorite of a shop.
func (r *FavoriteRepository) DeleteForShop(ctx context.Context, shopID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"shopId": shopID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
