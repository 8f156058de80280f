package domain

import "time"

// ParkType classifies the terrain of a skate park.
type ParkType string

const (
	TypeStreet ParkType = "street"
	TypeVert   ParkType = "vert"
	TypeBowl   ParkType = "bowl"
	TypePlaza  ParkType = "plaza"
	TypeDIY    ParkType = "diy"
	TypeIndoor ParkType = "indoor"
	TypeHybrid ParkType = "hybrid"
)

// Valid reports whether t is a known park type.
func (t ParkType) Valid() bool {
	switch t {
	case TypeStreet, TypeVert, TypeBowl, TypePlaza, TypeDIY, TypeIndoor, TypeHybrid:
		return true
	}
	return false
}

// ParkStatus represents the operational state of a park.
type ParkStatus string

const (
	StatusActive            ParkStatus = "active"
	StatusClosedTemporarily ParkStatus = "closed_temporarily"
	StatusClosedPermanently ParkStatus = "closed_permanently"
	StatusUnderConstruction ParkStatus = "under_construction"
	StatusPlanned           ParkStatus = "planned"
)

// Valid reports whether s is a known park status.
func (s ParkStatus) Valid() bool {
	switch s {
	case StatusActive, StatusClosedTemporarily, StatusClosedPermanently,
		StatusUnderConstruction, StatusPlanned:
		return true
	}
	return false
}

// Feature is an obstacle or amenity a park can offer (rails, stairs, bowls, ...).
// Names are unique across the catalog.
type Feature struct {
	ID          int64  `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	IconURL     string `json:"icon_url,omitempty" bson:"icon_url,omitempty"`
}

// Rating is a single user's 1-5 star rating of a park. A user rates a park at
// most once; re-rating updates the existing entry in place.
type Rating struct {
	UserID    int64     `json:"user_id" bson:"user_id"`
	Stars     int       `json:"stars" bson:"stars"`
	Review    string    `json:"review,omitempty" bson:"review,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Park is the catalog aggregate. Ratings are embedded; features are stored as
// ids and resolved against the feature catalog on read.
type Park struct {
	ID           int64             `json:"id" bson:"_id,omitempty"`
	Name         string            `json:"name" bson:"name"`
	Description  string            `json:"description,omitempty" bson:"description,omitempty"`
	Type         ParkType          `json:"park_type" bson:"park_type"`
	Status       ParkStatus        `json:"status" bson:"status"`
	Address      string            `json:"address,omitempty" bson:"address,omitempty"`
	City         string            `json:"city" bson:"city"`
	State        string            `json:"state,omitempty" bson:"state,omitempty"`
	Country      string            `json:"country" bson:"country"`
	PostalCode   string            `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Latitude     *float64          `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude    *float64          `json:"longitude,omitempty" bson:"longitude,omitempty"`
	IsFree       bool              `json:"is_free" bson:"is_free"`
	OpeningHours map[string]string `json:"opening_hours,omitempty" bson:"opening_hours,omitempty"`
	WebsiteURL   string            `json:"website_url,omitempty" bson:"website_url,omitempty"`
	PhoneNumber  string            `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Email        string            `json:"email,omitempty" bson:"email,omitempty"`
	Tags         []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	FeatureIDs   []int64           `json:"feature_ids,omitempty" bson:"feature_ids,omitempty"`
	Ratings      []Rating          `json:"ratings,omitempty" bson:"ratings,omitempty"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" bson:"updated_at"`
}

// AverageRating returns the mean of all ratings, or nil when unrated.
func (p *Park) AverageRating() *float64 {
	if len(p.Ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r.Stars
	}
	avg := float64(sum) / float64(len(p.Ratings))
	return &avg
}

// RatingBy returns the rating left by the given user, or nil.
func (p *Park) RatingBy(userID int64) *Rating {
	for i := range p.Ratings {
		if p.Ratings[i].UserID == userID {
			return &p.Ratings[i]
		}
	}
	return nil
}
