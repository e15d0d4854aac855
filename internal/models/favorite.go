package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is the per-user set of favorited campsites stored in MongoDB.
// At most one document exists per user; it is created lazily on the
// first add and removed only by deleting the whole document.
type Favorite struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint                 `json:"user" bson:"user"`
	Campsites []primitive.ObjectID `json:"campsites" bson:"campsites"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time            `json:"updated_at" bson:"updated_at"`
}

// Contains reports whether the campsite is already in the favorites set
func (f *Favorite) Contains(campsiteID primitive.ObjectID) bool {
	for _, id := range f.Campsites {
		if id == campsiteID {
			return true
		}
	}
	return false
}

// CampsiteRef is one entry of a bulk favorite-add payload
type CampsiteRef struct {
	ID string `json:"_id" validate:"required"`
}
