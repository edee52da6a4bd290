package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

func (m *mongoOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	order.ID = newID()
	order.CreatedAt = time.Now()

	if _, err := m.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (m *mongoOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var order domain.Order
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (m *mongoOrderRepository) DeleteIfNotDelivered(ctx context.Context, id string) (*domain.Order, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	// Guarding the delete on status keeps a cancellation from racing a
	// seller marking the order delivered.
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$ne": domain.StatusDelivered},
	}

	var order domain.Order
	err := m.collection.FindOneAndDelete(ctx, filter).Decode(&order)
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	// Distinguish a delivered order from a vanished one
	findErr := m.collection.FindOne(ctx, bson.M{"_id": id}).Err()
	if findErr == nil {
		return nil, ErrOrderDelivered
	}
	if errors.Is(findErr, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	return nil, fmt.Errorf("failed to check order: %w", findErr)
}

func (m *mongoOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"status": status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order domain.Order
	err := m.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &order, nil
}

func (m *mongoOrderRepository) ListByCustomer(ctx context.Context, email string) ([]domain.OrderWithPlant, error) {
	return m.listJoined(ctx, bson.M{"customer.email": email})
}

func (m *mongoOrderRepository) ListBySeller(ctx context.Context, email string) ([]domain.OrderWithPlant, error) {
	return m.listJoined(ctx, bson.M{"seller": email})
}

// listJoined joins each order with the current state of its plant. Orders
// whose plant was deleted are kept, with empty joined fields.
func (m *mongoOrderRepository) listJoined(ctx context.Context, match bson.M) ([]domain.OrderWithPlant, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "plants",
			"localField":   "plantId",
			"foreignField": "_id",
			"as":           "plantDetails",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$plantDetails",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$addFields", Value: bson.M{
			"category": "$plantDetails.category",
			"image":    "$plantDetails.image",
		}}},
		{{Key: "$project", Value: bson.M{"plantDetails": 0}}},
		{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}

	cursor, err := m.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var orders []domain.OrderWithPlant
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (m *mongoOrderRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "customer.email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "seller", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}
