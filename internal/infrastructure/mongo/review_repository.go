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

// ReviewRepository はレビューの読み書きを MongoDB で扱う実装リポジトリ。
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository binds the review collection.
func NewReviewRepository(db *mongo.Database, collectionName string) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(collectionName)}
}

var _ application.ReviewRepository = (*ReviewRepository)(nil)

func (r *ReviewRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Review, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, mapReviewDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func newestFirst() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
}

// Recent returns at most limit reviews, newest first.
func (r *ReviewRepository) Recent(ctx context.Context, shopID string, limit int) ([]domain.Review, error) {
	oid, err := objectIDOr(shopID, domain.ErrNotFound)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(newestFirst()).SetLimit(int64(limit))
	return r.find(ctx, bson.M{"shopId": oid}, opts)
}

// AllForShop returns the full review history, newest first.
func (r *ReviewRepository) AllForShop(ctx context.Context, shopID string) ([]domain.Review, error) {
	oid, err := objectIDOr(shopID, domain.ErrNotFound)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"shopId": oid}, options.Find().SetSort(newestFirst()))
}

func (r *ReviewRepository) FindByUserAndShop(ctx context.Context, userID, shopID string) (*domain.Review, error) {
	oid, err := objectIDOr(shopID, domain.ErrNotFound)
	if err != nil {
		return nil, err
	}
	var doc ReviewDocument
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID, "shopId": oid}).Decode(&doc); err != nil {
		return nil, translate(err, domain.ErrNotFound)
	}
	review := mapReviewDocument(doc)
	return &review, nil
}

// Create inserts the review. The partial unique index on (userId, shopId) turns a lost race into ErrDuplicateReview.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	shopID, err := objectIDOr(review.ShopID, domain.ErrNotFound)
	if err != nil {
		return err
	}
	doc := ReviewDocument{
		ID:        primitive.NewObjectID(),
		ShopID:    shopID,
		Rating:    review.Rating,
		Text:      review.Text,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
	if userID, ok := review.Author.UserID(); ok {
		doc.UserID = userID
	} else if hash, ok := review.Author.Fingerprint(); ok {
		doc.UserHash = hash
	} else {
		return domain.ErrInvalidReview
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateReview
		}
		return err
	}
	review.ID = doc.ID.Hex()
	return nil
}

// reviewPatchUpdate builds the $set document for an owner edit.
func reviewPatchUpdate(patch domain.ReviewPatch, editedAt time.Time) bson.M {
	set := bson.M{
		"isEdited":  true,
		"editedAt":  editedAt,
		"updatedAt": editedAt,
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	return bson.M{"$set": set}
}

// UpdateOwned applies the patch in a single conditional write on (_id, userId).
func (r *ReviewRepository) UpdateOwned(ctx context.Context, reviewID, ownerID string, patch domain.ReviewPatch, editedAt time.Time) (*domain.Review, error) {
	oid, err := objectIDOr(reviewID, domain.ErrNotFoundOrUnauthorized)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc ReviewDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid, "userId": ownerID}, reviewPatchUpdate(patch, editedAt), opts).Decode(&doc)
	if err != nil {
		return nil, translate(err, domain.ErrNotFoundOrUnauthorized)
	}
	review := mapReviewDocument(doc)
	return &review, nil
}

// DeleteOwned removes the review only when ownerID wrote it.
func (r *ReviewRepository) DeleteOwned(ctx context.Context, reviewID, ownerID string) error {
	oid, err := objectIDOr(reviewID, domain.ErrNotFoundOrUnauthorized)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "userId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFoundOrUnauthorized
	}
	return nil
}

// ListForShop serves moderation: every review of the shop, newest first.
func (r *ReviewRepository) ListForShop(ctx context.Context, shopID string) ([]domain.Review, error) {
	return r.AllForShop(ctx, shopID)
}

// Delete removes any review regardless of author.
func (r *ReviewRepository) Delete(ctx context.Context, reviewID string) error {
	oid, err := objectIDOr(reviewID, domain.ErrNotFound)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteForShop removes every review of a shop and reports how many were deleted.
func (r *ReviewRepository) DeleteForShop(ctx context.Context, shopID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"shopId": shopID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
