package db

import (
	"context"
	"time"

	"github.com/ukydev/trip-ledger/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdCollection defines the interface for advertising expense records.
type AdCollection interface {
	InsertAd(ctx context.Context, ad models.Ad) (string, error)
	FindAdByID(ctx context.Context, id string) (*models.Ad, error)
	FindAds(ctx context.Context, filter bson.M) ([]models.Ad, error)
	UpdateAd(ctx context.Context, id string, ad models.Ad) error
	DeleteAd(ctx context.Context, id string) error
}

// MongoAdCollection implements AdCollection for MongoDB.
type MongoAdCollection struct {
	Collection *mongo.Collection
}

// InsertAd inserts an ad record and returns its id.
func (c *MongoAdCollection) InsertAd(ctx context.Context, ad models.Ad) (string, error) {
	ad.CreatedAt = time.Now()
	ad.UpdatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, ad)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// FindAdByID finds an ad record by its id.
func (c *MongoAdCollection) FindAdByID(ctx context.Context, id string) (*models.Ad, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var ad models.Ad
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&ad)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ad, nil
}

// FindAds queries ad records matching the filter.
func (c *MongoAdCollection) FindAds(ctx context.Context, filter bson.M) ([]models.Ad, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var ads []models.Ad
	if err := cursor.All(ctx, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

// UpdateAd replaces an ad record by its id.
func (c *MongoAdCollection) UpdateAd(ctx context.Context, id string, ad models.Ad) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	ad.ID = objectID
	ad.UpdatedAt = time.Now()
	res, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, ad)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAd removes an ad record by its id.
func (c *MongoAdCollection) DeleteAd(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
