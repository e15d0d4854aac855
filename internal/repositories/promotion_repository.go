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

// PromotionRepository defines the interface for promotion data operations
type PromotionRepository interface {
	GetAllPromotions(ctx context.Context) ([]models.Promotion, error)
	GetPromotionByID(ctx context.Context, id string) (*models.Promotion, error)
	CreatePromotion(ctx context.Context, promotion *models.Promotion) error
	UpdatePromotion(ctx context.Context, id string, update bson.M) (*models.Promotion, error)
	DeletePromotion(ctx context.Context, id string) (*models.Promotion, error)
	DeleteAllPromotions(ctx context.Context) (int64, error)
}

// MongoPromotionRepository implements PromotionRepository for MongoDB
type MongoPromotionRepository struct {
	collection *mongo.Collection
}

// NewMongoPromotionRepository creates a new MongoPromotionRepository
func NewMongoPromotionRepository(db *mongo.Database) *MongoPromotionRepository {
	return &MongoPromotionRepository{collection: db.Collection("promotions")}
}

// GetAllPromotions retrieves every promotion from MongoDB
func (r *MongoPromotionRepository) GetAllPromotions(ctx context.Context) ([]models.Promotion, error) {
	promotions := []models.Promotion{}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

// GetPromotionByID retrieves a promotion by ID from MongoDB
func (r *MongoPromotionRepository) GetPromotionByID(ctx context.Context, id string) (*models.Promotion, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var promotion models.Promotion
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&promotion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

// CreatePromotion inserts a new promotion into MongoDB
func (r *MongoPromotionRepository) CreatePromotion(ctx context.Context, promotion *models.Promotion) error {
	promotion.ID = primitive.NewObjectID()
	promotion.CreatedAt = time.Now()
	promotion.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, promotion)
	return err
}

// UpdatePromotion merges the given fields into an existing promotion and
// returns the updated document
func (r *MongoPromotionRepository) UpdatePromotion(ctx context.Context, id string, update bson.M) (*models.Promotion, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var promotion models.Promotion
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": update}, opts).Decode(&promotion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

// DeletePromotion removes a promotion by ID and returns the deleted document
func (r *MongoPromotionRepository) DeletePromotion(ctx context.Context, id string) (*models.Promotion, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var promotion models.Promotion
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&promotion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

// DeleteAllPromotions removes every promotion and returns the deleted count
func (r *MongoPromotionRepository) DeleteAllPromotions(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
