package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

// ProductRepository is the MongoDB implementation of services.ProductRepo.
// It owns the conditional stock primitives the order engine relies on.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection("products")}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID().Hex()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, f services.ProductFilter) ([]models.Product, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	if f.Category != "" {
		filter["categories"] = f.Category
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// DecrementStock performs the conditional decrement: a single UpdateOne
// that matches only when the variant still has qty in stock. A matched
// count of zero means either the product vanished or the stock check
// failed; both surface as ErrInsufficientStock to the caller, which has
// already confirmed the product and variant exist.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID, sku string, qty int) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id":      productID,
			"variants": bson.M{"$elemMatch": bson.M{"sku": sku, "stock": bson.M{"$gte": qty}}},
		},
		bson.M{
			"$inc": bson.M{"variants.$.stock": -qty},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrInsufficientStock
	}
	return nil
}

// IncrementStock restores qty onto the variant's stock. Used by checkout
// compensation and order cancellation.
func (r *ProductRepository) IncrementStock(ctx context.Context, productID, sku string, qty int) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id":          productID,
			"variants.sku": sku,
		},
		bson.M{
			"$inc": bson.M{"variants.$.stock": qty},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) AddImage(ctx context.Context, productID string, img models.Image) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{
			"$push": bson.M{"images": img},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) AddReview(ctx context.Context, productID string, review models.Review) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{
			"$push": bson.M{"reviews": review},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}
