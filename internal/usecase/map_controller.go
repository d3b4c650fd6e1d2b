package usecase

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/maskmap-service/internal/config"
	"github.com/maskmap-service/internal/domain"
	"github.com/maskmap-service/internal/domain/repository"
	"github.com/maskmap-service/internal/pkg/utils"
)

// MapController owns the single long-lived map view and keeps its markers in
// sync with the filtered pharmacy list. All marker mutations happen under one
// lock, so observers never see a mix of old and new markers.
type MapController struct {
	view   repository.MapView
	logger *zap.Logger

	mu      sync.Mutex
	markers map[string]domain.Marker
	order   []string
}

// NewMapController positions the view at the configured default viewport and
// takes ownership of it.
func NewMapController(view repository.MapView, cfg *config.MapConfig, logger *zap.Logger) *MapController {
	view.SetView(domain.LatLng{Lat: cfg.CenterLat, Lng: cfg.CenterLon}, cfg.Zoom)

	return &MapController{
		view:    view,
		logger:  logger,
		markers: make(map[string]domain.Marker),
	}
}

// SyncMarkers replaces every attached marker with one marker per pharmacy.
// Removal happens before creation so no stale or duplicate marker survives.
// Per-marker failures are logged and skipped; one bad record does not abort
// the pass.
func (mc *MapController) SyncMarkers(pharmacies []domain.Pharmacy) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for _, id := range mc.order {
		if err := mc.view.RemoveMarker(id); err != nil {
			mc.logger.Warn("Failed to remove marker", zap.String("id", id), zap.Error(err))
		}
	}
	mc.markers = make(map[string]domain.Marker, len(pharmacies))
	mc.order = mc.order[:0]

	for _, p := range pharmacies {
		if !utils.ValidateCoordinates(p.Latitude, p.Longitude) {
			mc.logger.Warn("Skipping pharmacy with malformed coordinates",
				zap.String("id", p.ID),
				zap.Float64("lat", p.Latitude),
				zap.Float64("lng", p.Longitude))
			continue
		}
		if _, exists := mc.markers[p.ID]; exists {
			mc.logger.Warn("Skipping duplicate pharmacy id", zap.String("id", p.ID))
			continue
		}

		marker := domain.Marker{
			ID:       p.ID,
			Position: domain.LatLng{Lat: p.Latitude, Lng: p.Longitude},
			Popup:    fmt.Sprintf("%s<br>%s", p.Name, p.Address),
		}
		if err := mc.view.AddMarker(marker); err != nil {
			mc.logger.Warn("Failed to add marker", zap.String("id", p.ID), zap.Error(err))
			continue
		}
		mc.markers[p.ID] = marker
		mc.order = append(mc.order, p.ID)
	}

	mc.logger.Debug("Marker sync complete", zap.Int("count", len(mc.order)))
}

// Recenter pans the viewport to the district's coordinate. A nil district is
// a no-op.
func (mc *MapController) Recenter(district *domain.District) {
	if district == nil {
		return
	}
	mc.view.PanTo(domain.LatLng{Lat: district.Latitude, Lng: district.Longitude})
}

// TriggerPopup opens the popup of the marker tagged with id. An unknown id is
// a silent no-op; found reports whether the marker was attached.
func (mc *MapController) TriggerPopup(id string) (found bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, ok := mc.markers[id]; !ok {
		return false
	}
	if err := mc.view.OpenPopup(id); err != nil {
		mc.logger.Warn("Failed to open popup", zap.String("id", id), zap.Error(err))
		return false
	}
	return true
}

// Markers returns the attached markers in sync order.
func (mc *MapController) Markers() []domain.Marker {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	out := make([]domain.Marker, 0, len(mc.order))
	for _, id := range mc.order {
		out = append(out, mc.markers[id])
	}
	return out
}

// MarkerCount returns the number of attached markers.
func (mc *MapController) MarkerCount() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return len(mc.order)
}

// Close releases the underlying view.
func (mc *MapController) Close() error {
	return mc.view.Close()
}
