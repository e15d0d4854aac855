package repositories

import (
	"context"
	"time"

	"github.com/ebralte/campground-api/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FavoriteRepository defines the interface for favorite data operations.
// There is at most one favorite document per user.
type FavoriteRepository interface {
	GetFavoriteByUser(ctx context.Context, userID uint) (*models.Favorite, error)
	AddCampsites(ctx context.Context, userID uint, campsiteIDs []primitive.ObjectID) (*models.Favorite, error)
	RemoveCampsite(ctx context.Context, userID uint, campsiteID primitive.ObjectID) (*models.Favorite, error)
	DeleteFavorite(ctx context.Context, userID uint) (*models.Favorite, error)
}

// MongoFavoriteRepository implements FavoriteRepository for MongoDB
type MongoFavoriteRepository struct {
	collection *mongo.Collection
}

// NewMongoFavoriteRepository creates a new MongoFavoriteRepository
func NewMongoFavoriteRepository(db *mongo.Database) *MongoFavoriteRepository {
	return &MongoFavoriteRepository{collection: db.Collection("favorites")}
}

// GetFavoriteByUser retrieves the one favorite document of a user
func (r *MongoFavoriteRepository) GetFavoriteByUser(ctx context.Context, userID uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&favorite)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFavoriteNotFound
		}
		return nil, err
	}
	return &favorite, nil
}

// AddCampsites merges the given campsite IDs into the user's favorite set
// with one upserting $addToSet write. The document is created on first use
// and duplicates are skipped by the set semantics.
func (r *MongoFavoriteRepository) AddCampsites(ctx context.Context, userID uint, campsiteIDs []primitive.ObjectID) (*models.Favorite, error) {
	now := time.Now()
	update := bson.M{
		"$addToSet": bson.M{"campsites": bson.M{"$each": campsiteIDs}},
		"$set":      bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"user":       userID,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var favorite models.Favorite
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&favorite)
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// RemoveCampsite pulls one campsite ID out of the user's favorite set and
// returns the updated document
func (r *MongoFavoriteRepository) RemoveCampsite(ctx context.Context, userID uint, campsiteID primitive.ObjectID) (*models.Favorite, error) {
	update := bson.M{
		"$pull": bson.M{"campsites": campsiteID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var favorite models.Favorite
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&favorite)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFavoriteNotFound
		}
		return nil, err
	}
	return &favorite, nil
}

// DeleteFavorite removes the user's whole favorite document and returns it
func (r *MongoFavoriteRepository) DeleteFavorite(ctx context.Context, userID uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.collection.FindOneAndDelete(ctx, bson.M{"user": userID}).Decode(&favorite)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFavoriteNotFound
		}
		return nil, err
	}
	return &favorite, nil
}
