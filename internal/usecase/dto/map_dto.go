package dto

import "github.com/maskmap-service/internal/domain"

// MarkerListResponse is the current marker set attached to the map.
type MarkerListResponse struct {
	Markers []domain.Marker `json:"markers"`
}

// MapStateResponse is the visible map state for a frontend to render.
type MapStateResponse struct {
	Viewport    domain.Viewport  `json:"viewport"`
	TileLayer   domain.TileLayer `json:"tile_layer"`
	OpenPopupID string           `json:"open_popup_id,omitempty"`
}
