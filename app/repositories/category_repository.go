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

// CategoryRepository is the MongoDB implementation of services.CategoryRepo.
type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection("categories")}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID().Hex()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return services.ErrDuplicate
	}
	return err
}

func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if mongo.IsDuplicateKeyError(err) {
		return services.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context, f services.CategoryFilter) ([]models.Category, error) {
	filter := bson.M{}
	if f.ParentID != nil {
		if *f.ParentID == "" {
			filter["parent_id"] = bson.M{"$in": bson.A{nil, ""}}
		} else {
			filter["parent_id"] = *f.ParentID
		}
	}
	if f.IsActive != nil {
		filter["is_active"] = *f.IsActive
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CategoryRepository) HasChildren(ctx context.Context, id string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"parent_id": id})
	return n > 0, err
}

func (r *CategoryRepository) ExistsOther(ctx context.Context, name, slug, excludeID string) (bool, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"name": name},
			bson.M{"slug": slug},
		},
	}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	return n > 0, err
}
