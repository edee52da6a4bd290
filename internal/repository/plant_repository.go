package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPlantRepository struct {
	collection *mongo.Collection
}

func NewMongoPlantRepository(db *mongo.Database) PlantRepository {
	return &mongoPlantRepository{
		collection: db.Collection("plants"),
	}
}

// Plant ids are stored as object-id hex strings so that orders can
// reference them without a type conversion in the lookup stage.
func newID() string {
	return primitive.NewObjectID().Hex()
}

func validateID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func (m *mongoPlantRepository) Insert(ctx context.Context, plant *domain.Plant) error {
	now := time.Now()
	plant.ID = newID()
	plant.CreatedAt = now
	plant.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, plant); err != nil {
		return fmt.Errorf("failed to insert plant: %w", err)
	}
	return nil
}

func (m *mongoPlantRepository) FindAll(ctx context.Context) ([]domain.Plant, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}

	var plants []domain.Plant
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("failed to decode plants: %w", err)
	}
	return plants, nil
}

func (m *mongoPlantRepository) FindByID(ctx context.Context, id string) (*domain.Plant, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var plant domain.Plant
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlantNotFound
		}
		return nil, fmt.Errorf("failed to get plant: %w", err)
	}
	return &plant, nil
}

func (m *mongoPlantRepository) FindBySeller(ctx context.Context, email string) ([]domain.Plant, error) {
	cursor, err := m.collection.Find(ctx, bson.M{"seller.email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list seller plants: %w", err)
	}

	var plants []domain.Plant
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("failed to decode seller plants: %w", err)
	}
	return plants, nil
}

func (m *mongoPlantRepository) Update(ctx context.Context, id string, update domain.PlantUpdate) (*domain.Plant, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.ImageURL != nil {
		set["image"] = *update.ImageURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var plant domain.Plant
	err := m.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&plant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlantNotFound
		}
		return nil, fmt.Errorf("failed to update plant: %w", err)
	}
	return &plant, nil
}

func (m *mongoPlantRepository) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrPlantNotFound
	}
	return nil
}

func (m *mongoPlantRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	if err := validateID(id); err != nil {
		return err
	}

	// The $gte guard makes check-and-decrement a single server-side
	// operation; two concurrent purchases can never jointly drive the
	// stock negative.
	filter := bson.M{
		"_id":      id,
		"quantity": bson.M{"$gte": quantity},
	}
	update := bson.M{
		"$inc": bson.M{"quantity": -quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if result.MatchedCount == 0 {
		// Distinguish a vanished plant from a stock shortfall
		err := m.collection.FindOne(ctx, bson.M{"_id": id}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPlantNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check plant: %w", err)
		}
		return ErrInsufficientStock
	}
	return nil
}

func (m *mongoPlantRepository) IncrementStock(ctx context.Context, id string, quantity int) error {
	if err := validateID(id); err != nil {
		return err
	}

	update := bson.M{
		"$inc": bson.M{"quantity": quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrPlantNotFound
	}
	return nil
}

func (m *mongoPlantRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "seller.email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create plant indexes: %w", err)
	}
	return nil
}
