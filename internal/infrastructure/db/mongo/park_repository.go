package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skatespot/skatespot-api/internal/core/domain"
	"github.com/skatespot/skatespot-api/internal/core/ports"
)

const (
	parksCollection = "parks"
	parksSequence   = "parks"
)

// ParkRepository is the MongoDB-backed park catalog. Parks carry their
// ratings embedded, so a single document read serves the detail view.
type ParkRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewParkRepository(db *mongo.Database) *ParkRepository {
	return &ParkRepository{db: db, coll: db.Collection(parksCollection)}
}

func (r *ParkRepository) Create(ctx context.Context, park *domain.Park) (*domain.Park, error) {
	id, err := nextID(ctx, r.db, parksSequence)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *park
	created.ID = id
	if _, err := r.coll.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert park: %w", err)
	}
	return &created, nil
}

func (r *ParkRepository) FindByID(ctx context.Context, id int64) (*domain.Park, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var park domain.Park
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&park); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrParkNotFound
		}
		return nil, fmt.Errorf("find park: %w", err)
	}
	return &park, nil
}

func (r *ParkRepository) Update(ctx context.Context, park *domain.Park) (*domain.Park, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	park.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": park.ID}, park)
	if err != nil {
		return nil, fmt.Errorf("update park: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrParkNotFound
	}
	return park, nil
}

func (r *ParkRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete park: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrParkNotFound
	}
	return nil
}

func (r *ParkRepository) List(ctx context.Context, filter ports.ListParksFilter) ([]*domain.Park, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Query != "" {
		pattern := primitive.Regex{Pattern: filter.Query, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}
	if filter.Type != "" {
		query["park_type"] = string(filter.Type)
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.Country != "" {
		query["country"] = filter.Country
	}
	if filter.IsFree != nil {
		query["is_free"] = *filter.IsFree
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count parks: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list parks: %w", err)
	}
	defer cursor.Close(ctx)

	var parks []*domain.Park
	for cursor.Next(ctx) {
		var park domain.Park
		if err := cursor.Decode(&park); err != nil {
			return nil, 0, fmt.Errorf("decode park: %w", err)
		}
		parks = append(parks, &park)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate parks: %w", err)
	}
	return parks, total, nil
}

// UpsertRating replaces the user's existing rating in place, or appends a new
// one. Both paths are single atomic updates on the park document.
func (r *ParkRepository) UpsertRating(ctx context.Context, parkID int64, rating domain.Rating) (*domain.Park, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": parkID, "ratings.user_id": rating.UserID},
		bson.M{"$set": bson.M{
			"ratings.$.stars":      rating.Stars,
			"ratings.$.review":     rating.Review,
			"ratings.$.updated_at": rating.UpdatedAt,
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}

	if res.MatchedCount == 0 {
		push, err := r.coll.UpdateOne(ctx,
			bson.M{"_id": parkID},
			bson.M{"$push": bson.M{"ratings": rating}},
		)
		if err != nil {
			return nil, fmt.Errorf("insert rating: %w", err)
		}
		if push.MatchedCount == 0 {
			return nil, domain.ErrParkNotFound
		}
	}

	return r.FindByID(ctx, parkID)
}

// EnsureIndexes creates the search indexes on the parks collection.
func (r *ParkRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "park_type", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "country", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
