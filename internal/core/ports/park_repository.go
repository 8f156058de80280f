package ports

import (
	"context"

	"github.com/skatespot/skatespot-api/internal/core/domain"
)

// ListParksFilter carries all query parameters for searching the catalog.
type ListParksFilter struct {
	Query   string            // optional: partial match on name, description, city, address
	Type    domain.ParkType   // optional: filter by park type
	Status  domain.ParkStatus // optional: filter by status
	City    string            // optional: partial, case-insensitive
	Country string            // optional: partial, case-insensitive
	IsFree  *bool             // optional: filter by free admission
	Tag     string            // optional: exact tag match
	Page    int               // 1-based
	Limit   int               // max rows per page (capped at 100 by the service)
}

// ParkRepository defines persistence operations for parks. Ratings live
// embedded in the park document; the repository exposes an atomic upsert so
// concurrent raters cannot clobber each other.
type ParkRepository interface {
	Create(ctx context.Context, park *domain.Park) (*domain.Park, error)
	FindByID(ctx context.Context, id int64) (*domain.Park, error)
	Update(ctx context.Context, park *domain.Park) (*domain.Park, error)
	Delete(ctx context.Context, id int64) error
	// List returns a page of parks matching filter and the total count.
	List(ctx context.Context, filter ListParksFilter) ([]*domain.Park, int64, error)
	// UpsertRating inserts or replaces the calling user's rating and returns
	// the park as stored afterwards.
	UpsertRating(ctx context.Context, parkID int64, rating domain.Rating) (*domain.Park, error)
}

// FeatureRepository defines persistence operations for the feature catalog.
type FeatureRepository interface {
	CreateFeature(ctx context.Context, feature *domain.Feature) (*domain.Feature, error)
	FindFeatureByID(ctx context.Context, id int64) (*domain.Feature, error)
	FindFeaturesByIDs(ctx context.Context, ids []int64) ([]*domain.Feature, error)
	ListFeatures(ctx context.Context) ([]*domain.Feature, error)
	UpdateFeature(ctx context.Context, feature *domain.Feature) (*domain.Feature, error)
	DeleteFeature(ctx context.Context, id int64) error
}
