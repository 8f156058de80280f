package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skatespot/skatespot-api/internal/core/domain"
)

const (
	featuresCollection = "features"
	featuresSequence   = "features"
)

// FeatureRepository is the MongoDB-backed feature catalog.
type FeatureRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewFeatureRepository(db *mongo.Database) *FeatureRepository {
	return &FeatureRepository{db: db, coll: db.Collection(featuresCollection)}
}

func (r *FeatureRepository) CreateFeature(ctx context.Context, feature *domain.Feature) (*domain.Feature, error) {
	id, err := nextID(ctx, r.db, featuresSequence)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *feature
	created.ID = id
	if _, err := r.coll.InsertOne(ctx, &created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFeatureExists
		}
		return nil, fmt.Errorf("insert feature: %w", err)
	}
	return &created, nil
}

func (r *FeatureRepository) FindFeatureByID(ctx context.Context, id int64) (*domain.Feature, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var feature domain.Feature
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&feature); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeatureNotFound
		}
		return nil, fmt.Errorf("find feature: %w", err)
	}
	return &feature, nil
}

func (r *FeatureRepository) FindFeaturesByIDs(ctx context.Context, ids []int64) ([]*domain.Feature, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find features: %w", err)
	}
	defer cursor.Close(ctx)

	var features []*domain.Feature
	for cursor.Next(ctx) {
		var feature domain.Feature
		if err := cursor.Decode(&feature); err != nil {
			return nil, fmt.Errorf("decode feature: %w", err)
		}
		features = append(features, &feature)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate features: %w", err)
	}
	return features, nil
}

func (r *FeatureRepository) ListFeatures(ctx context.Context) ([]*domain.Feature, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	defer cursor.Close(ctx)

	var features []*domain.Feature
	for cursor.Next(ctx) {
		var feature domain.Feature
		if err := cursor.Decode(&feature); err != nil {
			return nil, fmt.Errorf("decode feature: %w", err)
		}
		features = append(features, &feature)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate features: %w", err)
	}
	return features, nil
}

func (r *FeatureRepository) UpdateFeature(ctx context.Context, feature *domain.Feature) (*domain.Feature, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": feature.ID}, feature)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFeatureExists
		}
		return nil, fmt.Errorf("update feature: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrFeatureNotFound
	}
	return feature, nil
}

func (r *FeatureRepository) DeleteFeature(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete feature: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFeatureNotFound
	}
	return nil
}

// EnsureIndexes creates the unique name index on the features collection.
func (r *FeatureRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
