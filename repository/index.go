package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes backing the ownership-scoped queries.
func SetupIndexes(db *mongo.Database, collection string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	noteIndexes := []mongo.IndexModel{
		// List query: all notes of a user, newest first.
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_notes_date").
				SetUnique(false),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_index"),
		},
	}

	if _, err := db.Collection(collection).Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return fmt.Errorf("creating note indexes: %w", err)
	}

	return nil
}
