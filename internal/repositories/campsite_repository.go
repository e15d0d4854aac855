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

// CampsiteRepository defines the interface for campsite data operations.
// Comments are part of the campsite document; ReplaceComments persists the
// whole comment array in one write, relying on per-document atomicity.
type CampsiteRepository interface {
	GetAllCampsites(ctx context.Context) ([]models.Campsite, error)
	GetCampsiteByID(ctx context.Context, id string) (*models.Campsite, error)
	CreateCampsite(ctx context.Context, campsite *models.Campsite) error
	UpdateCampsite(ctx context.Context, id string, update bson.M) (*models.Campsite, error)
	DeleteCampsite(ctx context.Context, id string) (*models.Campsite, error)
	DeleteAllCampsites(ctx context.Context) (int64, error)
	ReplaceComments(ctx context.Context, id string, comments []models.Comment) error
}

// MongoCampsiteRepository implements CampsiteRepository for MongoDB
type MongoCampsiteRepository struct {
	collection *mongo.Collection
}

// NewMongoCampsiteRepository creates a new MongoCampsiteRepository
func NewMongoCampsiteRepository(db *mongo.Database) *MongoCampsiteRepository {
	return &MongoCampsiteRepository{collection: db.Collection("campsites")}
}

// GetAllCampsites retrieves every campsite from MongoDB
func (r *MongoCampsiteRepository) GetAllCampsites(ctx context.Context) ([]models.Campsite, error) {
	campsites := []models.Campsite{}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &campsites); err != nil {
		return nil, err
	}
	return campsites, nil
}

// GetCampsiteByID retrieves a campsite by ID from MongoDB
func (r *MongoCampsiteRepository) GetCampsiteByID(ctx context.Context, id string) (*models.Campsite, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var campsite models.Campsite
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&campsite)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCampsiteNotFound
		}
		return nil, err
	}
	return &campsite, nil
}

// CreateCampsite inserts a new campsite into MongoDB
func (r *MongoCampsiteRepository) CreateCampsite(ctx context.Context, campsite *models.Campsite) error {
	campsite.ID = primitive.NewObjectID()
	campsite.CreatedAt = time.Now()
	campsite.UpdatedAt = time.Now()
	if campsite.Comments == nil {
		campsite.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, campsite)
	return err
}

// UpdateCampsite merges the given fields into an existing campsite and
// returns the updated document
func (r *MongoCampsiteRepository) UpdateCampsite(ctx context.Context, id string, update bson.M) (*models.Campsite, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var campsite models.Campsite
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": update}, opts).Decode(&campsite)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCampsiteNotFound
		}
		return nil, err
	}
	return &campsite, nil
}

// DeleteCampsite removes a campsite by ID and returns the deleted document
func (r *MongoCampsiteRepository) DeleteCampsite(ctx context.Context, id string) (*models.Campsite, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var campsite models.Campsite
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&campsite)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCampsiteNotFound
		}
		return nil, err
	}
	return &campsite, nil
}

// DeleteAllCampsites removes every campsite and returns the deleted count.
// Embedded comments go with their campsites.
func (r *MongoCampsiteRepository) DeleteAllCampsites(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ReplaceComments persists the whole comment array of one campsite in a
// single write
func (r *MongoCampsiteRepository) ReplaceComments(ctx context.Context, id string, comments []models.Comment) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	update := bson.M{
		"$set": bson.M{
			"comments":   comments,
			"updated_at": time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCampsiteNotFound
	}
	return nil
}
