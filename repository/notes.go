package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"notevault/model"
)

// ErrNoteNotFound covers both a nonexistent id and an id owned by another
// user. The two cases are deliberately indistinguishable: ownership filtering
// happens inside the Mongo query, so a mismatched owner simply matches
// nothing.
var ErrNoteNotFound = errors.New("note not found")

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client, database, collection string) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(database).Collection(collection),
	}
}

// noteFilter builds the ownership-scoped lookup filter. An empty userID means
// unscoped access (legacy global-auth deployments).
func noteFilter(noteID, userID string) bson.M {
	filter := bson.M{"_id": noteID}
	if userID != "" {
		filter["user_id"] = userID
	}
	return filter
}

// CreateNote inserts a new note. The caller is responsible for having set
// ID, UserID and timestamps.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	if note.ID == "" {
		return errors.New("note ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, note)
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

// GetUserNotes retrieves all notes for a user, newest first. An empty userID
// returns every note in the collection.
func (r *NotesRepo) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decoding notes: %w", err)
	}
	return notes, nil
}

// GetNote retrieves a specific note scoped to its owner.
func (r *NotesRepo) GetNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOne(ctx, noteFilter(noteID, userID)).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("fetching note: %w", err)
	}
	return &note, nil
}

// UpdateNote overwrites title and content unconditionally. Images are
// replaced only when replaceImages is set; otherwise the stored value is
// left untouched, so an update without new media never clears existing media.
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID, userID string, updates *model.Note, replaceImages bool) error {
	updates.UpdatedAt = time.Now()

	set := bson.M{
		"title":      updates.Title,
		"content":    updates.Content,
		"updated_at": updates.UpdatedAt,
	}
	if replaceImages {
		set["images"] = updates.Images
	}

	result, err := r.MongoCollection.UpdateOne(ctx, noteFilter(noteID, userID), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// DeleteNote deletes a specific note scoped to its owner. Deleting an id
// that no longer matches anything reports ErrNoteNotFound, so a repeated
// delete is observably a miss.
func (r *NotesRepo) DeleteNote(ctx context.Context, noteID, userID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx, noteFilter(noteID, userID))
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}

	return nil
}
