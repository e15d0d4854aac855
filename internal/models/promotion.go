package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Promotion is a standalone marketing record stored in MongoDB
type Promotion struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	Cost        float64            `json:"cost" bson:"cost"`
	Description string             `json:"description" bson:"description"`
	Featured    bool               `json:"featured" bson:"featured"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePromotionRequest defines the request body for creating a promotion
type CreatePromotionRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Image       string  `json:"image,omitempty"`
	Cost        float64 `json:"cost,omitempty" validate:"omitempty,min=0"`
	Description string  `json:"description" validate:"required"`
	Featured    bool    `json:"featured,omitempty"`
}

// UpdatePromotionRequest defines a partial update; nil fields are untouched
type UpdatePromotionRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Image       *string  `json:"image,omitempty"`
	Cost        *float64 `json:"cost,omitempty" validate:"omitempty,min=0"`
	Description *string  `json:"description,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
}
