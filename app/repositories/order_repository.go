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

// OrderRepository is the MongoDB implementation of services.OrderRepo.
type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection("orders")}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	now := time.Now().UTC()
	o.ID = primitive.NewObjectID().Hex()
	o.CreatedAt = now
	o.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, o)
	if mongo.IsDuplicateKeyError(err) {
		return services.ErrDuplicate
	}
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string, page, limit int, status string) ([]models.Order, int64, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter, page, limit, true)
}

func (r *OrderRepository) ListAll(ctx context.Context, f services.OrderFilter) ([]models.Order, int64, float64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	created := bson.M{}
	if f.From != nil {
		created["$gte"] = *f.From
	}
	if f.To != nil {
		created["$lte"] = *f.To
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	orders, total, err := r.list(ctx, filter, f.Page, f.Limit, f.SortDesc)
	if err != nil {
		return nil, 0, 0, err
	}

	revenue, err := r.revenue(ctx, filter)
	if err != nil {
		return nil, 0, 0, err
	}
	return orders, total, revenue, nil
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M, page, limit int, desc bool) ([]models.Order, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	dir := 1
	if desc {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: dir}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// revenue sums payment.amount over the filtered orders, excluding
// cancelled ones.
func (r *OrderRepository) revenue(ctx context.Context, filter bson.M) (float64, error) {
	match := bson.M{"status": bson.M{"$ne": models.StatusCancelled}}
	// An explicit status filter replaces the cancelled exclusion.
	for k, v := range filter {
		match[k] = v
	}

	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": "$payment.amount"},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return models.Round2(rows[0].Revenue), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

// Stats runs a single faceted aggregation producing the admin dashboard
// numbers: totals, average order value and the per-status distribution.
func (r *OrderRepository) Stats(ctx context.Context) (*services.OrderStats, error) {
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"totals": bson.A{
				bson.M{"$match": bson.M{"status": bson.M{"$ne": models.StatusCancelled}}},
				bson.M{"$group": bson.M{
					"_id":     nil,
					"count":   bson.M{"$sum": 1},
					"revenue": bson.M{"$sum": "$payment.amount"},
					"average": bson.M{"$avg": "$payment.amount"},
				}},
			},
			"byStatus": bson.A{
				bson.M{"$group": bson.M{
					"_id":   "$status",
					"count": bson.M{"$sum": 1},
				}},
			},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Totals []struct {
			Count   int64   `bson:"count"`
			Revenue float64 `bson:"revenue"`
			Average float64 `bson:"average"`
		} `bson:"totals"`
		ByStatus []struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		} `bson:"byStatus"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &services.OrderStats{StatusCounts: map[string]int64{}}
	if len(rows) == 0 {
		return stats, nil
	}
	if len(rows[0].Totals) > 0 {
		t := rows[0].Totals[0]
		stats.TotalOrders = t.Count
		stats.TotalRevenue = models.Round2(t.Revenue)
		stats.AverageOrderValue = models.Round2(t.Average)
	}
	for _, s := range rows[0].ByStatus {
		stats.StatusCounts[s.Status] = s.Count
	}
	return stats, nil
}
