package handler

import (
	"github.com/skatespot/skatespot-api/internal/core/domain"
	"github.com/skatespot/skatespot-api/internal/core/ports"
)

type createParkRequest struct {
	Name         string            `json:"name" validate:"required,max=120"`
	Description  string            `json:"description" validate:"max=2000"`
	Type         string            `json:"park_type" validate:"required,oneof=street vert bowl plaza diy indoor hybrid"`
	Status       string            `json:"status" validate:"omitempty,oneof=active closed_temporarily closed_permanently under_construction planned"`
	Address      string            `json:"address"`
	City         string            `json:"city" validate:"required"`
	State        string            `json:"state"`
	Country      string            `json:"country" validate:"required"`
	PostalCode   string            `json:"postal_code"`
	Latitude     *float64          `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64          `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsFree       bool              `json:"is_free"`
	OpeningHours map[string]string `json:"opening_hours"`
	WebsiteURL   string            `json:"website_url" validate:"omitempty,url"`
	PhoneNumber  string            `json:"phone_number"`
	Email        string            `json:"email" validate:"omitempty,email"`
	Tags         []string          `json:"tags"`
	FeatureIDs   []int64           `json:"feature_ids"`
}

type updateParkRequest struct {
	Name         *string           `json:"name" validate:"omitempty,max=120"`
	Description  *string           `json:"description" validate:"omitempty,max=2000"`
	Type         *string           `json:"park_type" validate:"omitempty,oneof=street vert bowl plaza diy indoor hybrid"`
	Status       *string           `json:"status" validate:"omitempty,oneof=active closed_temporarily closed_permanently under_construction planned"`
	Address      *string           `json:"address"`
	City         *string           `json:"city"`
	State        *string           `json:"state"`
	Country      *string           `json:"country"`
	PostalCode   *string           `json:"postal_code"`
	Latitude     *float64          `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64          `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsFree       *bool             `json:"is_free"`
	OpeningHours map[string]string `json:"opening_hours"`
	WebsiteURL   *string           `json:"website_url" validate:"omitempty,url"`
	PhoneNumber  *string           `json:"phone_number"`
	Email        *string           `json:"email" validate:"omitempty,email"`
	Tags         []string          `json:"tags"`
	FeatureIDs   []int64           `json:"feature_ids"`
}

func (r updateParkRequest) toInput() ports.UpdateParkInput {
	input := ports.UpdateParkInput{
		Name:         r.Name,
		Description:  r.Description,
		Address:      r.Address,
		City:         r.City,
		State:        r.State,
		Country:      r.Country,
		PostalCode:   r.PostalCode,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		IsFree:       r.IsFree,
		OpeningHours: r.OpeningHours,
		WebsiteURL:   r.WebsiteURL,
		PhoneNumber:  r.PhoneNumber,
		Email:        r.Email,
		Tags:         r.Tags,
		FeatureIDs:   r.FeatureIDs,
	}
	if r.Type != nil {
		parkType := domain.ParkType(*r.Type)
		input.Type = &parkType
	}
	if r.Status != nil {
		status := domain.ParkStatus(*r.Status)
		input.Status = &status
	}
	return input
}

type rateParkRequest struct {
	Stars  int    `json:"stars" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"max=2000"`
}

type parkSummaryResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"park_type"`
	Status        string   `json:"status"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	IsFree        bool     `json:"is_free"`
	Tags          []string `json:"tags,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
}

type parkListResponse struct {
	Items      []parkSummaryResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

type parkDetailResponse struct {
	*domain.Park
	Features      []*domain.Feature `json:"features"`
	AverageRating *float64          `json:"average_rating,omitempty"`
}

func newParkSummaryResponse(s ports.ParkSummary) parkSummaryResponse {
	return parkSummaryResponse{
		ID:            s.ID,
		Name:          s.Name,
		Type:          string(s.Type),
		Status:        string(s.Status),
		City:          s.City,
		Country:       s.Country,
		IsFree:        s.IsFree,
		Tags:          s.Tags,
		AverageRating: s.AverageRating,
	}
}
