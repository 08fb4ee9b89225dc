package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/auth"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("catalog", SeedCatalog)
}

// SeedAdminUser creates the default admin account if none exists.
func SeedAdminUser(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")

	n, err := users.CountDocuments(ctx, bson.M{"email": "admin@vastra.app"})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin12345")
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = users.InsertOne(ctx, models.User{
		ID:         primitive.NewObjectID().Hex(),
		Email:      "admin@vastra.app",
		Username:   "admin",
		FullName:   "Vastra Admin",
		Password:   hash,
		Roles:      []models.Role{models.RoleAdmin},
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	return err
}

// SeedCatalog inserts a small demo taxonomy and product set.
func SeedCatalog(ctx context.Context, db *mongo.Database) error {
	categories := db.Collection("categories")
	products := db.Collection("products")

	n, err := categories.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()
	clothing := models.Category{
		ID: primitive.NewObjectID().Hex(), Name: "Clothing", Slug: "clothing",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	sarees := models.Category{
		ID: primitive.NewObjectID().Hex(), Name: "Sarees", Slug: "sarees",
		ParentID: clothing.ID, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	kurtas := models.Category{
		ID: primitive.NewObjectID().Hex(), Name: "Kurtas", Slug: "kurtas",
		ParentID: clothing.ID, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	if _, err := categories.InsertMany(ctx, []any{clothing, sarees, kurtas}); err != nil {
		return err
	}

	demo := []any{
		models.Product{
			ID:          primitive.NewObjectID().Hex(),
			Name:        "Banarasi Silk Saree",
			Description: "Handwoven Banarasi silk saree with zari border.",
			Price:       129.99,
			Categories:  []string{sarees.ID},
			Variants: []models.Variant{
				{SKU: "BSS-RED", Color: "Red", Stock: 25},
				{SKU: "BSS-GLD", Color: "Gold", Stock: 10},
			},
			Images:    []models.Image{},
			Reviews:   []models.Review{},
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.Product{
			ID:          primitive.NewObjectID().Hex(),
			Name:        "Cotton Straight Kurta",
			Description: "Everyday cotton kurta, breathable and lightweight.",
			Price:       34.50,
			Categories:  []string{kurtas.ID},
			Variants: []models.Variant{
				{SKU: "CSK-S-WHT", Size: "S", Color: "White", Stock: 40},
				{SKU: "CSK-M-WHT", Size: "M", Color: "White", Stock: 40},
				{SKU: "CSK-L-BLU", Size: "L", Color: "Blue", Stock: 15},
			},
			Images:    []models.Image{},
			Reviews:   []models.Review{},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	_, err = products.InsertMany(ctx, demo)
	return err
}
