package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes for all collections. Safe to call
// on every start; existing indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	plants := &mongoPlantRepository{collection: db.Collection("plants")}
	if err := plants.CreateIndexes(ctx); err != nil {
		return err
	}

	orders := &mongoOrderRepository{collection: db.Collection("orders")}
	if err := orders.CreateIndexes(ctx); err != nil {
		return err
	}

	users := &mongoUserRepository{collection: db.Collection("users")}
	return users.CreateIndexes(ctx)
}
