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

// OTPRepository is the MongoDB implementation of services.OTPRepo.
type OTPRepository struct {
	coll *mongo.Collection
}

func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{coll: db.Collection("otps")}
}

func (r *OTPRepository) Create(ctx context.Context, otp *models.OTP) error {
	otp.ID = primitive.NewObjectID().Hex()
	otp.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, otp)
	return err
}

// LatestByEmail returns the most recently created code for an email.
func (r *OTPRepository) LatestByEmail(ctx context.Context, email string) (*models.OTP, error) {
	var otp models.OTP
	err := r.coll.FindOne(ctx,
		bson.M{"email": email},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	).Decode(&otp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"email": email})
	return err
}
