package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skatespot/skatespot-api/internal/core/ports"
)

// FeatureHandler handles the feature catalog.
type FeatureHandler struct {
	parkService ports.ParkService
}

func NewFeatureHandler(parkService ports.ParkService) *FeatureHandler {
	return &FeatureHandler{parkService: parkService}
}

type featureRequest struct {
	Name        string `json:"name" validate:"required,max=80"`
	Description string `json:"description" validate:"max=500"`
	IconURL     string `json:"icon_url" validate:"omitempty,url"`
}

// List returns the full feature catalog.
//
// @Summary      List features
// @Tags         features
// @Produce      json
// @Success      200  {array}  domain.Feature
// @Router       /api/v1/features [get]
func (h *FeatureHandler) List(c echo.Context) error {
	features, err := h.parkService.ListFeatures(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, features)
}

// Get returns a feature by id.
//
// @Summary      Get a feature by id
// @Tags         features
// @Produce      json
// @Param        id   path      int  true  "Feature id"
// @Success      200  {object}  domain.Feature
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/features/{id} [get]
func (h *FeatureHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	feature, err := h.parkService.GetFeature(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feature)
}

// Create adds a feature to the catalog.
//
// @Summary      Create a feature
// @Tags         features
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      featureRequest  true  "Feature details"
// @Success      201   {object}  domain.Feature
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/features [post]
func (h *FeatureHandler) Create(c echo.Context) error {
	var req featureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	feature, err := h.parkService.CreateFeature(c.Request().Context(), ports.FeatureInput{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, feature)
}

// Update replaces a feature's details.
//
// @Summary      Update a feature
// @Tags         features
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Feature id"
// @Param        body  body      featureRequest  true  "Feature details"
// @Success      200   {object}  domain.Feature
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/features/{id} [patch]
func (h *FeatureHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req featureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	feature, err := h.parkService.UpdateFeature(c.Request().Context(), id, ports.FeatureInput{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feature)
}

// Delete removes a feature from the catalog.
//
// @Summary      Delete a feature
// @Tags         features
// @Security     BearerAuth
// @Param        id  path  int  true  "Feature id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/features/{id} [delete]
func (h *FeatureHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.parkService.DeleteFeature(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
