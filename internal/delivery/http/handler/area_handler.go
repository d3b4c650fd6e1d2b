package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maskmap-service/internal/pkg/utils"
	"github.com/maskmap-service/internal/pkg/validator"
	"github.com/maskmap-service/internal/usecase"
	"github.com/maskmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// AreaHandler serves the city/district hierarchy and the current selection.
type AreaHandler struct {
	areaUC *usecase.AreaUseCase
	logger *zap.Logger
}

func NewAreaHandler(areaUC *usecase.AreaUseCase, logger *zap.Logger) *AreaHandler {
	return &AreaHandler{
		areaUC: areaUC,
		logger: logger,
	}
}

// GetCities godoc
// @Summary List cities
// @Description Returns the loaded city names in source order, duplicates removed.
// @Tags Areas
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CityListResponse}
// @Router /api/v1/areas/cities [get]
func (h *AreaHandler) GetCities(c *fiber.Ctx) error {
	result := h.areaUC.Cities()
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Cities)})
}

// GetDistricts godoc
// @Summary List districts of the current city
// @Description Returns the district list for the currently selected city; empty when the selection matches no loaded city.
// @Tags Areas
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.DistrictListResponse}
// @Router /api/v1/areas/districts [get]
func (h *AreaHandler) GetDistricts(c *fiber.Ctx) error {
	result := h.areaUC.Districts()
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Districts)})
}

// GetSelection godoc
// @Summary Current area selection
// @Description Returns the current city/district selection with the resolved district coordinates.
// @Tags Areas
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.AreaSelectionResponse}
// @Router /api/v1/areas/selection [get]
func (h *AreaHandler) GetSelection(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.areaUC.Selection(), nil)
}

// UpdateSelection godoc
// @Summary Change area selection
// @Description Updates the current city and/or district. Empty fields are left untouched; invalid selections are normalized against the loaded data.
// @Tags Areas
// @Accept json
// @Produce json
// @Param request body dto.SelectAreaRequest true "Selection change"
// @Success 200 {object} utils.SuccessResponse{data=dto.AreaSelectionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/areas/selection [put]
func (h *AreaHandler) UpdateSelection(c *fiber.Ctx) error {
	var req dto.SelectAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, h.areaUC.Select(req), nil)
}

// Refresh godoc
// @Summary Re-fetch the area hierarchy
// @Description Invalidates the cached payload and reloads the city/district hierarchy from the upstream source. On failure the previous data is kept.
// @Tags Areas
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CityListResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/areas/refresh [post]
func (h *AreaHandler) Refresh(c *fiber.Ctx) error {
	if err := h.areaUC.ForceRefresh(c.Context()); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.areaUC.Cities(), nil)
}
