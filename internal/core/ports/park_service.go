package ports

import (
	"context"

	"github.com/skatespot/skatespot-api/internal/core/domain"
)

// CreateParkInput carries all data needed to create a park.
type CreateParkInput struct {
	Name         string
	Description  string
	Type         domain.ParkType
	Status       domain.ParkStatus // defaults to active when empty
	Address      string
	City         string
	State        string
	Country      string
	PostalCode   string
	Latitude     *float64
	Longitude    *float64
	IsFree       bool
	OpeningHours map[string]string
	WebsiteURL   string
	PhoneNumber  string
	Email        string
	Tags         []string
	FeatureIDs   []int64
}

// UpdateParkInput carries a partial park update; nil fields are left untouched.
type UpdateParkInput struct {
	Name         *string
	Description  *string
	Type         *domain.ParkType
	Status       *domain.ParkStatus
	Address      *string
	City         *string
	State        *string
	Country      *string
	PostalCode   *string
	Latitude     *float64
	Longitude    *float64
	IsFree       *bool
	OpeningHours map[string]string
	WebsiteURL   *string
	PhoneNumber  *string
	Email        *string
	Tags         []string
	FeatureIDs   []int64
}

// SearchParksInput carries the parameters for the park list endpoint.
type SearchParksInput struct {
	Query   string
	Type    domain.ParkType
	Status  domain.ParkStatus
	City    string
	Country string
	IsFree  *bool
	Tag     string
	Page    int
	Limit   int
}

// ParkSummary is the lightweight view used in list responses (no ratings,
// feature ids unresolved).
type ParkSummary struct {
	ID            int64
	Name          string
	Type          domain.ParkType
	Status        domain.ParkStatus
	City          string
	Country       string
	IsFree        bool
	Tags          []string
	AverageRating *float64
}

// ParkPage is one page of search results.
type ParkPage struct {
	Items      []ParkSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

/// ParkDetail is the full park view: the aggregate plus resolved features.
type ParkDetail struct {
	Park          *domain.Park
	Features      []*domain.Feature
	AverageRating *float64
}

// RateParkInput carries one user's rating of a park.
type RateParkInput struct {
	ParkID int64
	UserID int64
	Stars  int
	Review string
}

// FeatureInput carries feature create/update data.
type FeatureInput struct {
	Name        string
	Description string
	IconURL     string
}

// ParkService defines catalog use cases.
type ParkService interface {
	Search(ctx context.Context, input SearchParksInput) (*ParkPage, error)
	Get(ctx context.Context, id int64) (*ParkDetail, error)
	Create(ctx context.Context, input CreateParkInput) (*domain.Park, error)
	Update(ctx context.Context, id int64, input UpdateParkInput) (*domain.Park, error)
	Delete(ctx context.Context, id int64) error
	Rate(ctx context.Context, input RateParkInput) (*domain.Park, error)

	ListFeatures(ctx context.Context) ([]*domain.Feature, error)
	GetFeature(ctx context.Context, id int64) (*domain.Feature, error)
	CreateFeature(ctx context.Context, input FeatureInput) (*domain.Feature, error)
	UpdateFeature(ctx context.Context, id int64, input FeatureInput) (*domain.Feature, error)
	DeleteFeature(ctx context.Context, id int64) error
}
