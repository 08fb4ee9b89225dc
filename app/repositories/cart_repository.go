package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

// CartRepository is the MongoDB implementation of services.CartRepo.
type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection("carts")}
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) Create(ctx context.Context, cart *models.Cart) error {
	now := time.Now().UTC()
	cart.ID = primitive.NewObjectID().Hex()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	_, err := r.coll.InsertOne(ctx, cart)
	if mongo.IsDuplicateKeyError(err) {
		// Lost a create race; the caller re-reads the winner's cart.
		return services.ErrDuplicate
	}
	return err
}

// ReplaceItems swaps the cart's full item list in one write.
func (r *CartRepository) ReplaceItems(ctx context.Context, cartID string, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": cartID},
		bson.M{"$set": bson.M{"items": items, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}
