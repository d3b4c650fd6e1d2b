package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maskmap-service/internal/pkg/utils"
	"github.com/maskmap-service/internal/pkg/validator"
	"github.com/maskmap-service/internal/usecase"
	"github.com/maskmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// PharmacyHandler serves the filtered pharmacy list, keyword, detail panel
// and nearby search.
type PharmacyHandler struct {
	pharmacyUC *usecase.PharmacyUseCase
	logger     *zap.Logger
}

func NewPharmacyHandler(pharmacyUC *usecase.PharmacyUseCase, logger *zap.Logger) *PharmacyHandler {
	return &PharmacyHandler{
		pharmacyUC: pharmacyUC,
		logger:     logger,
	}
}

// List godoc
// @Summary Filtered pharmacy list
// @Description Returns the pharmacies matching the current city, district and keyword, in source order. With highlight=true each item carries its name with the keyword emphasized as sanitized markup.
// @Tags Pharmacies
// @Produce json
// @Param highlight query bool false "Include highlighted name markup" default(false)
// @Success 200 {object} utils.SuccessResponse{data=dto.PharmacyListResponse}
// @Router /api/v1/pharmacies [get]
func (h *PharmacyHandler) List(c *fiber.Ctx) error {
	highlighted := c.QueryBool("highlight", false)
	result := h.pharmacyUC.List(highlighted)
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Pharmacies)})
}

// UpdateKeyword godoc
// @Summary Set the filter keyword
// @Description Updates the free-text keyword applied to pharmacy names. An empty keyword matches everything.
// @Tags Pharmacies
// @Accept json
// @Produce json
// @Param request body dto.UpdateKeywordRequest true "Keyword"
// @Success 200 {object} utils.SuccessResponse{data=dto.PharmacyListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/pharmacies/keyword [put]
func (h *PharmacyHandler) UpdateKeyword(c *fiber.Ctx) error {
	var req dto.UpdateKeywordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	h.pharmacyUC.SetKeyword(req)
	result := h.pharmacyUC.List(false)
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Pharmacies)})
}

// Nearby godoc
// @Summary Pharmacies near a point
// @Description Returns the pharmacies within the given radius (km) of a coordinate, in source order.
// @Tags Pharmacies
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Radius in kilometers (0.1 - 100)" default(1)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/pharmacies/nearby [get]
func (h *PharmacyHandler) Nearby(c *fiber.Ctx) error {
	lat := c.QueryFloat("lat")
	lon := c.QueryFloat("lon")
	radius := c.QueryFloat("radius", 1)

	result, err := h.pharmacyUC.Nearby(lat, lon, radius)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Pharmacies)})
}

// Get godoc
// @Summary Pharmacy detail
// @Description Returns one pharmacy with its derived weekly service grid.
// @Tags Pharmacies
// @Produce json
// @Param id path string true "Pharmacy id"
// @Success 200 {object} utils.SuccessResponse{data=dto.PharmacyDetailResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/pharmacies/{id} [get]
func (h *PharmacyHandler) Get(c *fiber.Ctx) error {
	result, err := h.pharmacyUC.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Open godoc
// @Summary Open the detail panel for a pharmacy
// @Description Selects the pharmacy for the detail panel and opens its map marker popup when attached.
// @Tags Pharmacies
// @Produce json
// @Param id path string true "Pharmacy id"
// @Success 200 {object} utils.SuccessResponse{data=dto.PharmacyDetailResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/pharmacies/{id}/open [post]
func (h *PharmacyHandler) Open(c *fiber.Ctx) error {
	result, err := h.pharmacyUC.Open(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Close godoc
// @Summary Dismiss the detail panel
// @Tags Pharmacies
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/pharmacies/close [post]
func (h *PharmacyHandler) Close(c *fiber.Ctx) error {
	h.pharmacyUC.Close()
	return utils.SendSuccess(c, fiber.Map{"closed": true}, nil)
}

// Refresh godoc
// @Summary Re-fetch the pharmacy list
// @Description Invalidates the cached payload and reloads the pharmacy GeoJSON from the upstream source. On failure the previous list is kept and the loading flag is reset.
// @Tags Pharmacies
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.PharmacyListResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/pharmacies/refresh [post]
func (h *PharmacyHandler) Refresh(c *fiber.Ctx) error {
	if err := h.pharmacyUC.ForceRefresh(c.Context()); err != nil {
		return utils.SendError(c, err)
	}
	result := h.pharmacyUC.List(false)
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Pharmacies)})
}
