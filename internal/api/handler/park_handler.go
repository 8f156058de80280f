package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/skatespot/skatespot-api/internal/core/domain"
	"github.com/skatespot/skatespot-api/internal/core/ports"
)

// ParkHandler handles catalog requests.
type ParkHandler struct {
	parkService ports.ParkService
}

func NewParkHandler(parkService ports.ParkService) *ParkHandler {
	return &ParkHandler{parkService: parkService}
}

// Search returns a page of parks matching the query filters.
//
// @Summary      Search parks
// @Tags         parks
// @Produce      json
// @Param        q          query     string  false  "Free-text query over name and description"
// @Param        park_type  query     string  false  "Filter by park type"
// @Param        status     query     string  false  "Filter by status"
// @Param        city       query     string  false  "Filter by city"
// @Param        country    query     string  false  "Filter by country"
// @Param        is_free    query     bool    false  "Filter by free access"
// @Param        tag        query     string  false  "Filter by tag"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200  {object}  parkListResponse
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/parks [get]
func (h *ParkHandler) Search(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	input := ports.SearchParksInput{
		Query:   c.QueryParam("q"),
		Type:    domain.ParkType(c.QueryParam("park_type")),
		Status:  domain.ParkStatus(c.QueryParam("status")),
		City:    c.QueryParam("city"),
		Country: c.QueryParam("country"),
		Tag:     c.QueryParam("tag"),
		Page:    page,
		Limit:   limit,
	}
	if raw := c.QueryParam("is_free"); raw != "" {
		isFree, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "is_free must be a boolean")
		}
		input.IsFree = &isFree
	}

	result, err := h.parkService.Search(c.Request().Context(), input)
	if err != nil {
		return err
	}

	items := make([]parkSummaryResponse, 0, len(result.Items))
	for _, s := range result.Items {
		items = append(items, newParkSummaryResponse(s))
	}
	return c.JSON(http.StatusOK, parkListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns the full park detail with resolved features.
//
// @Summary      Get a park by id
// @Tags         parks
// @Produce      json
// @Param        id   path      int  true  "Park id"
// @Success      200  {object}  parkDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/parks/{id} [get]
func (h *ParkHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.parkService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parkDetailResponse{
		Park:          detail.Park,
		Features:      detail.Features,
		AverageRating: detail.AverageRating,
	})
}

// Create adds a new park to the catalog.
//
// @Summary      Create a park
// @Tags         parks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createParkRequest  true  "Park details"
// @Success      201   {object}  domain.Park
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/parks [post]
func (h *ParkHandler) Create(c echo.Context) error {
	var req createParkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	park, err := h.parkService.Create(c.Request().Context(), ports.CreateParkInput{
		Name:         req.Name,
		Description:  req.Description,
		Type:         domain.ParkType(req.Type),
		Status:       domain.ParkStatus(req.Status),
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsFree:       req.IsFree,
		OpeningHours: req.OpeningHours,
		WebsiteURL:   req.WebsiteURL,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		Tags:         req.Tags,
		FeatureIDs:   req.FeatureIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, park)
}

// Update applies a partial update to a park.
//
// @Summary      Update a park
// @Tags         parks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Park id"
// @Param        body  body      updateParkRequest  true  "Fields to update"
// @Success      200   {object}  domain.Park
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/parks/{id} [patch]
func (h *ParkHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateParkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	park, err := h.parkService.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, park)
}

// Delete removes a park from the catalog.
//
// @Summary      Delete a park
// @Tags         parks
// @Security     BearerAuth
// @Param        id  path  int  true  "Park id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/parks/{id} [delete]
func (h *ParkHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.parkService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Rate records the authenticated user's rating of a park. A second rating by
// the same user replaces the first.
//
// @Summary      Rate a park
// @Tags         parks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Park id"
// @Param        body  body      rateParkRequest  true  "Rating"
// @Success      200   {object}  domain.Park
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/parks/{id}/ratings [post]
func (h *ParkHandler) Rate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req rateParkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	park, err := h.parkService.Rate(c.Request().Context(), ports.RateParkInput{
		ParkID: id,
		UserID: user.ID,
		Stars:  req.Stars,
		Review: req.Review,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, park)
}
