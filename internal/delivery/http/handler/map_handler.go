package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maskmap-service/internal/infrastructure/mapview"
	"github.com/maskmap-service/internal/pkg/utils"
	"github.com/maskmap-service/internal/usecase"
	"github.com/maskmap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// MapHandler serves the map widget state: markers, viewport and popups.
type MapHandler struct {
	mapCtrl *usecase.MapController
	view    *mapview.View
	logger  *zap.Logger
}

func NewMapHandler(mapCtrl *usecase.MapController, view *mapview.View, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		mapCtrl: mapCtrl,
		view:    view,
		logger:  logger,
	}
}

// GetMarkers godoc
// @Summary Current map markers
// @Description Returns the markers attached to the map, one per filtered pharmacy, in sync order.
// @Tags Map
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.MarkerListResponse}
// @Router /api/v1/map/markers [get]
func (h *MapHandler) GetMarkers(c *fiber.Ctx) error {
	markers := h.mapCtrl.Markers()
	return utils.SendSuccess(c, dto.MarkerListResponse{Markers: markers}, &utils.Meta{Total: len(markers)})
}

// GetViewport godoc
// @Summary Current map state
// @Description Returns the viewport, tile layer and open popup for a frontend to render.
// @Tags Map
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.MapStateResponse}
// @Router /api/v1/map/viewport [get]
func (h *MapHandler) GetViewport(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.MapStateResponse{
		Viewport:    h.view.Viewport(),
		TileLayer:   h.view.TileLayer(),
		OpenPopupID: h.view.OpenPopupID(),
	}, nil)
}

// TriggerPopup godoc
// @Summary Open a marker popup
// @Description Opens the popup of the marker tagged with the given pharmacy id. An unknown id is a no-op, not an error.
// @Tags Map
// @Produce json
// @Param id path string true "Pharmacy id"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/map/markers/{id}/popup [post]
func (h *MapHandler) TriggerPopup(c *fiber.Ctx) error {
	id := c.Params("id")
	found := h.mapCtrl.TriggerPopup(id)
	return utils.SendSuccess(c, fiber.Map{"id": id, "opened": found}, nil)
}
