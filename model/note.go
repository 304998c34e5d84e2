package model

import (
	"time"
)

// Note is the persisted shape of a user note. ID, UserID and CreatedAt are
// set once at creation and never change afterwards.
type Note struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title" binding:"required"`
	Content   string    `bson:"content" json:"content" binding:"required"`
	Images    []string  `bson:"images" json:"images"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
