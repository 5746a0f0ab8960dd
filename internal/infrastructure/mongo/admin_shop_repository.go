package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sngm3741/doner-finder/api/internal/admin/application"
	admindomain "github.com/sngm3741/doner-finder/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/doner-finder/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminShopRepository は管理者向け Shop 集約の Mongo 実装。
type AdminShopRepository struct {
	collection *mongo.Collection
	reviews    *ReviewRepository
	favorites  *FavoriteRepository
}

// NewAdminShopRepository は店舗・レビュー・お気に入りのコレクションを束縛した AdminShopRepository を生成する。
func NewAdminShopRepository(db *mongo.Database, shopCollection string, reviews *ReviewRepository, favorites *FavoriteRepository) *AdminShopRepository {
	return &AdminShopRepository{
		collection: db.Collection(shopCollection),
		reviews:    reviews,
		favorites:  favorites,
	}
}

var _ application.ShopRepository = (*AdminShopRepository)(nil)

// buildAdminShopFilter は管理画面の検索条件を Mongo フィルタへ変換する。
func buildAdminShopFilter(filter application.ShopFilter) bson.M {
	mongoFilter := bson.M{}
	if city := strings.TrimSpace(filter.City); city != "" {
		mongoFilter["address.city"] = city
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		mongoFilter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"slug": regex},
			bson.M{"address.street": regex},
		}
	}
	if filter.Published != nil {
		mongoFilter["published"] = *filter.Published
	}
	return mongoFilter
}

// Find は曖昧検索とページングをサポートした管理者用の店舗一覧を返す。
func (r *AdminShopRepository) Find(ctx context.Context, filter application.ShopFilter) ([]admindomain.Shop, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection.Find(ctx, buildAdminShopFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]ShopDocument, 0)
	for cursor.Next(ctx) {
		var doc ShopDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	counts, err := r.reviewCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	shops := make([]admindomain.Shop, 0, len(docs))
	for _, doc := range docs {
		shop, err := mapAdminShop(doc, counts[doc.ID])
		if err != nil {
			return nil, fmt.Errorf("shop %s: %w", doc.ID.Hex(), err)
		}
		shops = append(shops, shop)
	}
	return shops, nil
}

func (r *AdminShopRepository) reviewCounts(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	counts := make(map[primitive.ObjectID]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"shopId": bson.M{"$in": ids}}}},
		{{Key: "$group", Value: bson.M{"_id": "$shopId", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.reviews.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	for cursor.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Count int                `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cursor.Err()
}

// FindByID は店舗 ID で 1 件取得する。公開状態は問わない。
func (r *AdminShopRepository) FindByID(ctx context.Context, id string) (*admindomain.Shop, error) {
	oid, err := objectIDOr(id, publicdomain.ErrNotFound)
	if err != nil {
		return nil, err
	}
	var doc ShopDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err, publicdomain.ErrNotFound)
	}
	counts, err := r.reviewCounts(ctx, []primitive.ObjectID{oid})
	if err != nil {
		return nil, err
	}
	shop, err := mapAdminShop(doc, counts[oid])
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *AdminShopRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create は新しい店舗を登録する。slug の一意インデックス違反は ErrSlugTaken として返す。
func (r *AdminShopRepository) Create(ctx context.Context, shop *admindomain.Shop) error {
	if shop == nil {
		return errors.New("shop payload is nil")
	}
	id := primitive.NewObjectID()
	doc := adminShopToDocument(shop, id)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return admindomain.ErrSlugTaken
		}
		return err
	}
	shop.ID = id.Hex()
	return nil
}

// Update rewrites descriptive fields. slug, published, hours, photos and createdAt are left alone.
func (r *AdminShopRepository) Update(ctx context.Context, shop *admindomain.Shop) error {
	if shop == nil {
		return errors.New("shop payload is nil")
	}
	oid, err := objectIDOr(shop.ID, publicdomain.ErrNotFound)
	if err != nil {
		return err
	}
	doc := adminShopToDocument(shop, oid)
	set := bson.M{
		"name":             doc.Name,
		"description":      doc.Description,
		"location":         doc.Location,
		"address":          doc.Address,
		"halal":            doc.Halal,
		"vegetarian":       doc.Vegetarian,
		"meatType":         doc.MeatType,
		"priceLevel":       doc.PriceLevel,
		"hasSpecialOffers": doc.HasSpecialOffers,
		"delivery":         doc.Delivery,
		"external.placeId": doc.External.PlaceID,
		"external.rating":  doc.External.Rating,
		"updatedAt":        doc.UpdatedAt,
	}
	return r.updateOne(ctx, oid, bson.M{"$set": set})
}

func (r *AdminShopRepository) updateOne(ctx context.Context, oid primitive.ObjectID, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return publicdomain.ErrNotFound
	}
	return nil
}

func (r *AdminShopRepository) SetPublished(ctx context.Context, id string, published bool, at time.Time) error {
	oid, err := objectIDOr(id, publicdomain.ErrNotFound)
	if err != nil {
		return err
	}
	return r.updateOne(ctx, oid, bson.M{"$set": bson.M{"published": published, "updatedAt": at}})
}

// Delete は店舗を削除し、紐づくレビューとお気に入りも削除する。営業時間と写真は埋め込みのため同時に消える。
func (r *AdminShopRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectIDOr(id, publicdomain.ErrNotFound)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return publicdomain.ErrNotFound
	}
	if _, err := r.reviews.DeleteForShop(ctx, oid); err != nil {
		return fmt.Errorf("delete reviews of shop %s: %w", id, err)
	}
	if _, err := r.favorites.DeleteForShop(ctx, oid); err != nil {
		return fmt.Errorf("delete favorites of shop %s: %w", id, err)
	}
	return nil
}

func (r *AdminShopRepository) ReplaceOpeningHours(ctx context.Context, id string, hours []publicdomain.OpeningHours, at time.Time) error {
	oid, err := objectIDOr(id, publicdomain.ErrNotFound)
	if err != nil {
		return err
	}
	return r.updateOne(ctx, oid, bson.M{"$set": bson.M{"openingHours": hoursToDocuments(hours), "updatedAt": at}})
}

func (r *AdminShopRepository) AddPhoto(ctx context.Context, shopID string, photo *publicdomain.Photo) error {
	oid, err := objectIDOr(shopID, publicdomain.ErrNotFound)
	if err != nil {
		return err
	}
	doc := PhotoDocument{
		ID:        primitive.NewObjectID(),
		URL:       photo.URL,
		Caption:   photo.Caption,
		SortOrder: photo.SortOrder,
		CreatedAt: photo.CreatedAt,
	}
	if err := r.updateOne(ctx, oid, bson.M{"$push": bson.M{"photos": doc}}); err != nil {
		return err
	}
	photo.ID = doc.ID.Hex()
	return nil
}

func (r *AdminShopRepository) RemovePhoto(ctx context.Context, shopID, photoID string) error {
	oid, err := objectIDOr(shopID, publicdomain.ErrNotFound)
	if err != nil {
		return err
	}
	pid, err := objectIDOr(photoID, publicdomain.ErrNotFound)
	if err != nil {
		return err
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "photos._id": pid},
		bson.M{"$pull": bson.M{"photos": bson.M{"_id": pid}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return publicdomain.ErrNotFound
	}
	return nil
}
