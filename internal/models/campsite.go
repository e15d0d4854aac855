package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campsite represents a bookable location stored in MongoDB.
// Comments live embedded in the campsite document and have no
// existence outside of it.
type Campsite struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	Elevation   int                `json:"elevation" bson:"elevation"`
	Cost        float64            `json:"cost" bson:"cost"`
	Featured    bool               `json:"featured" bson:"featured"`
	Comments    []Comment          `json:"comments" bson:"comments"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Comment is a rated review embedded in exactly one campsite.
// Author is the PostgreSQL user ID and is immutable after creation.
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Rating    int                `json:"rating" bson:"rating"`
	Text      string             `json:"text" bson:"text"`
	Author    uint               `json:"author" bson:"author"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateCampsiteRequest defines the request body for creating a campsite
type CreateCampsiteRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image,omitempty" validate:"omitempty"`
	Elevation   int     `json:"elevation,omitempty"`
	Cost        float64 `json:"cost,omitempty" validate:"omitempty,min=0"`
	Featured    bool    `json:"featured,omitempty"`
}

// UpdateCampsiteRequest defines a partial update; nil fields are untouched
type UpdateCampsiteRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Elevation   *int     `json:"elevation,omitempty"`
	Cost        *float64 `json:"cost,omitempty" validate:"omitempty,min=0"`
	Featured    *bool    `json:"featured,omitempty"`
}

// CreateCommentRequest defines the request body for adding a comment.
// The author field of the stored comment is always taken from the
// authenticated requester, never from the payload.
type CreateCommentRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text" validate:"required,min=1"`
}

// UpdateCommentRequest defines a partial comment update; only rating and
// text are mutable, and each only when present in the payload
type UpdateCommentRequest struct {
	Rating *int    `json:"rating,omitempty"`
	Text   *string `json:"text,omitempty" validate:"omitempty,min=1"`
}
