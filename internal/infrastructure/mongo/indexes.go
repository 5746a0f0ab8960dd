package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections names the collections the service uses.
type Collections struct {
	Shops     string
	Reviews   string
	Favorites string
}

// indexPlan returns the index models per collection.
// reviews: one authenticated review per (userId, shopId); anonymous rows carry no userId and are exempt.
func indexPlan(c Collections) map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		c.Shops: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
			{Keys: bson.D{{Key: "published", Value: 1}, {Key: "address.city", Value: 1}}, Options: options.Index().SetName("published_city")},
		},
		c.Reviews: {
			{
				Keys: bson.D{{Key: "userId", Value: 1}, {Key: "shopId", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName("user_shop_unique").
					SetPartialFilterExpression(bson.M{"userId": bson.M{"$exists": true}}),
			},
			{Keys: bson.D{{Key: "shopId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("shop_recent")},
			{Keys: bson.D{{Key: "userHash", Value: 1}}, Options: options.Index().SetName("user_hash").SetSparse(true)},
		},
		c.Favorites: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "shopId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("user_shop_unique")},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("user_recent")},
			{Keys: bson.D{{Key: "shopId", Value: 1}}, Options: options.Index().SetName("shop")},
		},
	}
}

// EnsureIndexes creates the indexes the repositories rely on. Existing indexes are left as is.
func EnsureIndexes(ctx context.Context, db *mongo.Database, c Collections) error {
	for collection, models := range indexPlan(c) {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
