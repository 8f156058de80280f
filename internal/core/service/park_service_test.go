package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skatespot/skatespot-api/internal/core/domain"
	"github.com/skatespot/skatespot-api/internal/core/ports"
)

type stubParkRepo struct {
	parks  map[int64]*domain.Park
	nextID int64
}

func newStubParkRepo() *stubParkRepo {
	return &stubParkRepo{parks: make(map[int64]*domain.Park)}
}

func clonePark(p *domain.Park) *domain.Park {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Ratings = append([]domain.Rating(nil), p.Ratings...)
	clone.FeatureIDs = append([]int64(nil), p.FeatureIDs...)
	clone.Tags = append([]string(nil), p.Tags...)
	return &clone
}

func (r *stubParkRepo) Create(_ context.Context, park *domain.Park) (*domain.Park, error) {
	r.nextID++
	copy := clonePark(park)
	copy.ID = r.nextID
	r.parks[copy.ID] = clonePark(copy)
	return copy, nil
}

func (r *stubParkRepo) FindByID(_ context.Context, id int64) (*domain.Park, error) {
	if p, ok := r.parks[id]; ok {
		return clonePark(p), nil
	}
	return nil, domain.ErrParkNotFound
}

func (r *stubParkRepo) Update(_ context.Context, park *domain.Park) (*domain.Park, error) {
	if _, ok := r.parks[park.ID]; !ok {
		return nil, domain.ErrParkNotFound
	}
	r.parks[park.ID] = clonePark(park)
	return clonePark(park), nil
}

func (r *stubParkRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.parks[id]; !ok {
		return domain.ErrParkNotFound
	}
	delete(r.parks, id)
	return nil
}

func (r *stubParkRepo) List(_ context.Context, filter ports.ListParksFilter) ([]*domain.Park, int64, error) {
	var out []*domain.Park
	for _, p := range r.parks {
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		if filter.City != "" && p.City != filter.City {
			continue
		}
		out = append(out, clonePark(p))
	}
	return out, int64(len(out)), nil
}

func (r *stubParkRepo) UpsertRating(_ context.Context, parkID int64, rating domain.Rating) (*domain.Park, error) {
	p, ok := r.parks[parkID]
	if !ok {
		return nil, domain.ErrParkNotFound
	}
	replaced := false
	for i := range p.Ratings {
		if p.Ratings[i].UserID == rating.UserID {
			rating.CreatedAt = p.Ratings[i].CreatedAt
			p.Ratings[i] = rating
			replaced = true
			break
		}
	}
	if !replaced {
		p.Ratings = append(p.Ratings, rating)
	}
	return clonePark(p), nil
}

type stubFeatureRepo struct {
	features map[int64]*domain.Feature
	nextID   int64
}

func newStubFeatureRepo() *stubFeatureRepo {
	return &stubFeatureRepo{features: make(map[int64]*domain.Feature)}
}

func (r *stubFeatureRepo) CreateFeature(_ context.Context, f *domain.Feature) (*domain.Feature, error) {
	for _, existing := range r.features {
		if existing.Name == f.Name {
			return nil, domain.ErrFeatureExists
		}
	}
	r.nextID++
	copy := *f
	copy.ID = r.nextID
	r.features[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubFeatureRepo) FindFeatureByID(_ context.Context, id int64) (*domain.Feature, error) {
	if f, ok := r.features[id]; ok {
		copy := *f
		return &copy, nil
	}
	return nil, domain.ErrFeatureNotFound
}

func (r *stubFeatureRepo) FindFeaturesByIDs(_ context.Context, ids []int64) ([]*domain.Feature, error) {
	var out []*domain.Feature
	for _, id := range ids {
		if f, ok := r.features[id]; ok {
			copy := *f
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *stubFeatureRepo) ListFeatures(_ context.Context) ([]*domain.Feature, error) {
	var out []*domain.Feature
	for _, f := range r.features {
		copy := *f
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubFeatureRepo) UpdateFeature(_ context.Context, f *domain.Feature) (*domain.Feature, error) {
	if _, ok := r.features[f.ID]; !ok {
		return nil, domain.ErrFeatureNotFound
	}
	copy := *f
	r.features[f.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubFeatureRepo) DeleteFeature(_ context.Context, id int64) error {
	if _, ok := r.features[id]; !ok {
		return domain.ErrFeatureNotFound
	}
	delete(r.features, id)
	return nil
}

type stubCache struct {
	entries map[string]string
	sets    int
	hits    int
	deletes int
	failing bool
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]string)}
}

func (c *stubCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.failing {
		return "", false, errors.New("cache down")
	}
	v, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *stubCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if c.failing {
		return errors.New("cache down")
	}
	c.sets++
	c.entries[key] = value
	return nil
}

func (c *stubCache) Delete(_ context.Context, keys ...string) error {
	if c.failing {
		return errors.New("cache down")
	}
	for _, k := range keys {
		delete(c.entries, k)
		c.deletes++
	}
	return nil
}

func testParkService(parks *stubParkRepo, features *stubFeatureRepo, cache *stubCache) *ParkService {
	return NewParkService(parks, features, cache, zerolog.Nop())
}

func seedPark(t *testing.T, repo *stubParkRepo, name string, parkType domain.ParkType) *domain.Park {
	t.Helper()
	park, err := repo.Create(context.Background(), &domain.Park{
		Name:      name,
		Type:      parkType,
		Status:    domain.StatusActive,
		City:      "Barcelona",
		Country:   "ES",
		IsFree:    true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return park
}

func TestParkService_Create(t *testing.T) {
	parks := newStubParkRepo()
	features := newStubFeatureRepo()
	svc := testParkService(parks, features, newStubCache())

	feature, err := features.CreateFeature(context.Background(), &domain.Feature{Name: "mini ramp"})
	if err != nil {
		t.Fatalf("seed feature: %v", err)
	}

	park, err := svc.Create(context.Background(), ports.CreateParkInput{
		Name:       "MACBA",
		Type:       domain.TypePlaza,
		City:       "Barcelona",
		Country:    "ES",
		IsFree:     true,
		FeatureIDs: []int64{feature.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if park.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if park.Status != domain.StatusActive {
		t.Fatalf("expected default status active, got %s", park.Status)
	}
}

func TestParkService_Create_Validation(t *testing.T) {
	svc := testParkService(newStubParkRepo(), newStubFeatureRepo(), newStubCache())

	tests := []struct {
		name  string
		input ports.CreateParkInput
	}{
		{"missing name", ports.CreateParkInput{Type: domain.TypeStreet, City: "x", Country: "x"}},
		{"missing city", ports.CreateParkInput{Name: "x", Type: domain.TypeStreet, Country: "x"}},
		{"bad type", ports.CreateParkInput{Name: "x", Type: "skyscraper", City: "x", Country: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.input); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestParkService_Create_UnknownFeature(t *testing.T) {
	svc := testParkService(newStubParkRepo(), newStubFeatureRepo(), newStubCache())

	_, err := svc.Create(context.Background(), ports.CreateParkInput{
		Name: "MACBA", Type: domain.TypePlaza, City: "Barcelona", Country: "ES",
		FeatureIDs: []int64{42},
	})
	if !errors.Is(err, domain.ErrFeatureNotFound) {
		t.Fatalf("expected ErrFeatureNotFound, got %v", err)
	}
}

func TestParkService_Get_CachesDetail(t *testing.T) {
	parks := newStubParkRepo()
	cache := newStubCache()
	svc := testParkService(parks, newStubFeatureRepo(), cache)
	park := seedPark(t, parks, "MACBA", domain.TypePlaza)
	ctx := context.Background()

	detail, err := svc.Get(ctx, park.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Park.Name != "MACBA" {
		t.Fatalf("unexpected park: %+v", detail.Park)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache fill, sets=%d", cache.sets)
	}

	// Second read is served from the cache, even after the repo copy changes.
	parks.parks[park.ID].Name = "renamed behind the cache"
	detail, err = svc.Get(ctx, park.ID)
	if err != nil {
		t.Fatalf("cached get: %v", err)
	}
	if detail.Park.Name != "MACBA" {
		t.Fatalf("expected cached name, got %q", detail.Park.Name)
	}
	if cache.hits != 1 {
		t.Fatalf("expected one cache hit, got %d", cache.hits)
	}
}

func TestParkService_Get_CacheFailureFallsBack(t *testing.T) {
	parks := newStubParkRepo()
	cache := newStubCache()
	cache.failing = true
	svc := testParkService(parks, newStubFeatureRepo(), cache)
	park := seedPark(t, parks, "MACBA", domain.TypePlaza)

	detail, err := svc.Get(context.Background(), park.ID)
	if err != nil {
		t.Fatalf("get with failing cache: %v", err)
	}
	if detail.Park.ID != park.ID {
		t.Fatalf("unexpected park: %+v", detail.Park)
	}
}

func TestParkService_Get_CorruptCacheEntryDiscarded(t *testing.T) {
	parks := newStubParkRepo()
	cache := newStubCache()
	svc := testParkService(parks, newStubFeatureRepo(), cache)
	park := seedPark(t, parks, "MACBA", domain.TypePlaza)

	cache.entries[parkCacheKey(park.ID)] = "{not json"
	detail, err := svc.Get(context.Background(), park.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Park.Name != "MACBA" {
		t.Fatalf("expected repo read, got %+v", detail.Park)
	}
}

func TestParkService_Update_InvalidatesCache(t *testing.T) {
	parks := newStubParkRepo()
	cache := newStubCache()
	svc := testParkService(parks, newStubFeatureRepo(), cache)
	park := seedPark(t, parks, "MACBA", domain.TypePlaza)
	ctx := context.Background()

	if _, err := svc.Get(ctx, park.ID); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	name := "MACBA Plaza"
	updated, err := svc.Update(ctx, park.ID, ports.UpdateParkInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if _, ok := cache.entries[parkCacheKey(park.ID)]; ok {
		t.Fatalf("expected cache entry to be invalidated")
	}

	detail, err := svc.Get(ctx, park.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if detail.Park.Name != name {
		t.Fatalf("stale read after update: %q", detail.Park.Name)
	}
}

func TestParkService_Update_InvalidEnum(t *testing.T) {
	parks := newStubParkRepo()
	svc := testParkService(parks, newStubFeatureRepo(), newStubCache())
	park := seedPark(t, parks, "MACBA", domain.TypePlaza)

	bad := domain.ParkStatus("vaporized")
	_, err := svc.Update(context.Background(), park.ID, ports.UpdateParkInput{Status: &bad})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParkService_Delete(t *testing.T) {
	parks := newStubParkRepo()
	cache := newStubCache()
	svc := testParkService(parks, newStubFeatureRepo(), cache)
	park := seedPark(t, parks, "MACBA", domain.TypePlaza)
	ctx := context.Background()

	if _, err := svc.Get(ctx, park.ID); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	if err := svc.Delete(ctx, park.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := cache.entries[parkCacheKey(park.ID)]; ok {
		t.Fatalf("expected cache entry to be invalidated")
	}
	if _, err := svc.Get(ctx, park.ID); !errors.Is(err, domain.ErrParkNotFound) {
		t.Fatalf("expected ErrParkNotFound, got %v", err)
	}
}

func TestParkService_Rate(t *testing.T) {
	parks := newStubParkRepo()
	svc := testParkService(parks, newStubFeatureRepo(), newStubCache())
	park := seedPark(t, parks, "MACBA", domain.TypePlaza)
	ctx := context.Background()

	rated, err := svc.Rate(ctx, ports.RateParkInput{ParkID: park.ID, UserID: 7, Stars: 4, Review: "smooth ledges"})
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if avg := rated.AverageRating(); avg == nil || *avg != 4 {
		t.Fatalf("unexpected average: %v", avg)
	}

	// Re-rating by the same user replaces the previous rating.
	rated, err = svc.Rate(ctx, ports.RateParkInput{ParkID: park.ID, UserID: 7, Stars: 2})
	if err != nil {
		t.Fatalf("re-rate: %v", err)
	}
	if len(rated.Ratings) != 1 {
		t.Fatalf("expected a single rating, got %d", len(rated.Ratings))
	}
	if avg := rated.AverageRating(); avg == nil || *avg != 2 {
		t.Fatalf("unexpected average after re-rate: %v", avg)
	}
}

func TestParkService_Rate_StarsOutOfRange(t *testing.T) {
	parks := newStubParkRepo()
	svc := testParkService(parks, newStubFeatureRepo(), newStubCache())
	park := seedPark(t, parks, "MACBA", domain.TypePlaza)

	for _, stars := range []int{0, 6, -1} {
		_, err := svc.Rate(context.Background(), ports.RateParkInput{ParkID: park.ID, UserID: 7, Stars: stars})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("stars=%d: expected ErrInvalidInput, got %v", stars, err)
		}
	}
}

func TestParkService_Search_FilterValidation(t *testing.T) {
	svc := testParkService(newStubParkRepo(), newStubFeatureRepo(), newStubCache())

	_, err := svc.Search(context.Background(), ports.SearchParksInput{Type: "skyscraper"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParkService_Search(t *testing.T) {
	parks := newStubParkRepo()
	svc := testParkService(parks, newStubFeatureRepo(), newStubCache())
	seedPark(t, parks, "MACBA", domain.TypePlaza)
	seedPark(t, parks, "La Kantera", domain.TypeBowl)

	page, err := svc.Search(context.Background(), ports.SearchParksInput{Type: domain.TypeBowl})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Items[0].Name != "La Kantera" {
		t.Fatalf("unexpected item: %+v", page.Items[0])
	}
}

func TestParkService_Features(t *testing.T) {
	svc := testParkService(newStubParkRepo(), newStubFeatureRepo(), newStubCache())
	ctx := context.Background()

	created, err := svc.CreateFeature(ctx, ports.FeatureInput{Name: "mini ramp", Description: "3ft"})
	if err != nil {
		t.Fatalf("create feature: %v", err)
	}

	if _, err := svc.CreateFeature(ctx, ports.FeatureInput{Name: "mini ramp"}); !errors.Is(err, domain.ErrFeatureExists) {
		t.Fatalf("expected ErrFeatureExists, got %v", err)
	}

	updated, err := svc.UpdateFeature(ctx, created.ID, ports.FeatureInput{Name: "mini ramp", Description: "4ft"})
	if err != nil {
		t.Fatalf("update feature: %v", err)
	}
	if updated.Description != "4ft" {
		t.Fatalf("description not updated: %q", updated.Description)
	}

	all, err := svc.ListFeatures(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("list features: %v, n=%d", err, len(all))
	}

	if err := svc.DeleteFeature(ctx, created.ID); err != nil {
		t.Fatalf("delete feature: %v", err)
	}
	if _, err := svc.GetFeature(ctx, created.ID); !errors.Is(err, domain.ErrFeatureNotFound) {
		t.Fatalf("expected ErrFeatureNotFound, got %v", err)
	}
}
