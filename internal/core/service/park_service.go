package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skatespot/skatespot-api/internal/api/metrics"
	"github.com/skatespot/skatespot-api/internal/core/domain"
	"github.com/skatespot/skatespot-api/internal/core/ports"
)

const parkCacheTTL = time.Minute

// ParkService implements the catalog use cases. Detail reads go through a
// read-through cache; every write to a park invalidates its cache entry.
type ParkService struct {
	parks    ports.ParkRepository
	features ports.FeatureRepository
	cache    ports.Cache
	log      zerolog.Logger
}

func NewParkService(parks ports.ParkRepository, features ports.FeatureRepository, cache ports.Cache, log zerolog.Logger) *ParkService {
	return &ParkService{parks: parks, features: features, cache: cache, log: log}
}

func (s *ParkService) Search(ctx context.Context, input ports.SearchParksInput) (*ports.ParkPage, error) {
	if input.Type != "" && !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown park type %q", domain.ErrInvalidInput, input.Type)
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown park status %q", domain.ErrInvalidInput, input.Status)
	}

	page, limit := clampPage(input.Page, input.Limit)
	parks, total, err := s.parks.List(ctx, ports.ListParksFilter{
		Query:   input.Query,
		Type:    input.Type,
		Status:  input.Status,
		City:    input.City,
		Country: input.Country,
		IsFree:  input.IsFree,
		Tag:     input.Tag,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]ports.ParkSummary, 0, len(parks))
	for _, p := range parks {
		items = append(items, ports.ParkSummary{
			ID:            p.ID,
			Name:          p.Name,
			Type:          p.Type,
			Status:        p.Status,
			City:          p.City,
			Country:       p.Country,
			IsFree:        p.IsFree,
			Tags:          p.Tags,
			AverageRating: p.AverageRating(),
		})
	}

	return &ports.ParkPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Get returns the full park view. The park document itself is cached; the
// feature catalog is small and read fresh so feature edits show up
// immediately.
func (s *ParkService) Get(ctx context.Context, id int64) (*ports.ParkDetail, error) {
	park, err := s.cachedPark(ctx, id)
	if err != nil {
		return nil, err
	}

	features, err := s.features.FindFeaturesByIDs(ctx, park.FeatureIDs)
	if err != nil {
		return nil, err
	}

	return &ports.ParkDetail{
		Park:          park,
		Features:      features,
		AverageRating: park.AverageRating(),
	}, nil
}

func (s *ParkService) Create(ctx context.Context, input ports.CreateParkInput) (*domain.Park, error) {
	if input.Name == "" || input.City == "" || input.Country == "" {
		return nil, fmt.Errorf("%w: name, city and country are required", domain.ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown park type %q", domain.ErrInvalidInput, input.Type)
	}
	status := input.Status
	if status == "" {
		status = domain.StatusActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown park status %q", domain.ErrInvalidInput, status)
	}
	if err := s.checkFeatureIDs(ctx, input.FeatureIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	park := &domain.Park{
		Name:         input.Name,
		Description:  input.Description,
		Type:         input.Type,
		Status:       status,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		Country:      input.Country,
		PostalCode:   input.PostalCode,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		IsFree:       input.IsFree,
		OpeningHours: input.OpeningHours,
		WebsiteURL:   input.WebsiteURL,
		PhoneNumber:  input.PhoneNumber,
		Email:        input.Email,
		Tags:         input.Tags,
		FeatureIDs:   input.FeatureIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.parks.Create(ctx, park)
	if err != nil {
		return nil, err
	}

	metrics.ParksCreatedTotal.WithLabelValues(string(created.Type)).Inc()
	s.log.Info().Int64("park_id", created.ID).Str("name", created.Name).Msg("park created")
	return created, nil
}

func (s *ParkService) Update(ctx context.Context, id int64, input ports.UpdateParkInput) (*domain.Park, error) {
	park, err := s.parks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		park.Name = *input.Name
	}
	if input.Description != nil {
		park.Description = *input.Description
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown park type %q", domain.ErrInvalidInput, *input.Type)
		}
		park.Type = *input.Type
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown park status %q", domain.ErrInvalidInput, *input.Status)
		}
		park.Status = *input.Status
	}
	if input.Address != nil {
		park.Address = *input.Address
	}
	if input.City != nil {
		park.City = *input.City
	}
	if input.State != nil {
		park.State = *input.State
	}
	if input.Country != nil {
		park.Country = *input.Country
	}
	if input.PostalCode != nil {
		park.PostalCode = *input.PostalCode
	}
	if input.Latitude != nil {
		park.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		park.Longitude = input.Longitude
	}
	if input.IsFree != nil {
		park.IsFree = *input.IsFree
	}
	if input.OpeningHours != nil {
		park.OpeningHours = input.OpeningHours
	}
	if input.WebsiteURL != nil {
		park.WebsiteURL = *input.WebsiteURL
	}
	if input.PhoneNumber != nil {
		park.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		park.Email = *input.Email
	}
	if input.Tags != nil {
		park.Tags = input.Tags
	}
	if input.FeatureIDs != nil {
		if err := s.checkFeatureIDs(ctx, input.FeatureIDs); err != nil {
			return nil, err
		}
		park.FeatureIDs = input.FeatureIDs
	}

	park.UpdatedAt = time.Now().UTC()
	updated, err := s.parks.Update(ctx, park)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return updated, nil
}

func (s *ParkService) Delete(ctx context.Context, id int64) error {
	if err := s.parks.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.log.Info().Int64("park_id", id).Msg("park deleted")
	return nil
}

// Rate records one user's rating. Re-rating the same park replaces the
// previous entry.
func (s *ParkService) Rate(ctx context.Context, input ports.RateParkInput) (*domain.Park, error) {
	if input.Stars < 1 || input.Stars > 5 {
		return nil, fmt.Errorf("%w: stars must be between 1 and 5", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	park, err := s.parks.UpsertRating(ctx, input.ParkID, domain.Rating{
		UserID:    input.UserID,
		Stars:     input.Stars,
		Review:    input.Review,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	metrics.RatingsSubmittedTotal.Inc()
	s.invalidate(ctx, input.ParkID)
	return park, nil
}

func (s *ParkService) ListFeatures(ctx context.Context) ([]*domain.Feature, error) {
	return s.features.ListFeatures(ctx)
}

func (s *ParkService) GetFeature(ctx context.Context, id int64) (*domain.Feature, error) {
	return s.features.FindFeatureByID(ctx, id)
}

func (s *ParkService) CreateFeature(ctx context.Context, input ports.FeatureInput) (*domain.Feature, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: feature name is required", domain.ErrInvalidInput)
	}
	return s.features.CreateFeature(ctx, &domain.Feature{
		Name:        input.Name,
		Description: input.Description,
		IconURL:     input.IconURL,
	})
}

func (s *ParkService) UpdateFeature(ctx context.Context, id int64, input ports.FeatureInput) (*domain.Feature, error) {
	feature, err := s.features.FindFeatureByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		feature.Name = input.Name
	}
	if input.Description != "" {
		feature.Description = input.Description
	}
	if input.IconURL != "" {
		feature.IconURL = input.IconURL
	}
	return s.features.UpdateFeature(ctx, feature)
}

func (s *ParkService) DeleteFeature(ctx context.Context, id int64) error {
	return s.features.DeleteFeature(ctx, id)
}

// cachedPark loads a park through the cache. Cache failures degrade to
// repository reads; they never fail the request.
func (s *ParkService) cachedPark(ctx context.Context, id int64) (*domain.Park, error) {
	key := parkCacheKey(id)

	if raw, found, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn().Err(err).Int64("park_id", id).Msg("park cache read failed")
	} else if found {
		var park domain.Park
		if err := json.Unmarshal([]byte(raw), &park); err == nil {
			metrics.ParkCacheTotal.WithLabelValues("hit").Inc()
			return &park, nil
		}
		s.log.Warn().Int64("park_id", id).Msg("corrupt park cache entry, discarding")
		s.invalidate(ctx, id)
	}

	metrics.ParkCacheTotal.WithLabelValues("miss").Inc()
	park, err := s.parks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(park); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), parkCacheTTL); err != nil {
			s.log.Warn().Err(err).Int64("park_id", id).Msg("park cache write failed")
		}
	}
	return park, nil
}

func (s *ParkService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, parkCacheKey(id)); err != nil {
		s.log.Warn().Err(err).Int64("park_id", id).Msg("park cache invalidation failed")
	}
}

func parkCacheKey(id int64) string {
	return fmt.Sprintf("park:%d", id)
}

func (s *ParkService) checkFeatureIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.features.FindFeaturesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return fmt.Errorf("%w: unknown feature id", domain.ErrFeatureNotFound)
	}
	return nil
}
