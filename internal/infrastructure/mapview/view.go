// Package mapview is the in-process implementation of the MapView port. It
// tracks the widget state (viewport, tile layer, attached markers, open popup)
// that the HTTP layer serves to a map frontend.
package mapview

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/maskmap-service/internal/config"
	"github.com/maskmap-service/internal/domain"
)

type View struct {
	mu        sync.RWMutex
	viewport  domain.Viewport
	tileLayer domain.TileLayer
	markers   map[string]domain.Marker
	openPopup string
	closed    bool
	logger    *zap.Logger
}

// New creates the map widget state with its base tile layer. A missing tile
// URL makes the view non-functional, so it is rejected here.
func New(cfg *config.MapConfig, logger *zap.Logger) (*View, error) {
	if cfg.TileURL == "" {
		return nil, fmt.Errorf("map view requires a tile layer URL")
	}

	return &View{
		tileLayer: domain.TileLayer{
			URL:         cfg.TileURL,
			Attribution: cfg.TileAttribution,
			MaxZoom:     cfg.MaxZoom,
		},
		markers: make(map[string]domain.Marker),
		logger:  logger,
	}, nil
}

func (v *View) SetView(center domain.LatLng, zoom int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewport = domain.Viewport{Center: center, Zoom: zoom}
}

func (v *View) PanTo(center domain.LatLng) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewport.Center = center
}

func (v *View) AddMarker(marker domain.Marker) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return fmt.Errorf("map view is closed")
	}
	if _, exists := v.markers[marker.ID]; exists {
		return fmt.Errorf("marker %s already attached", marker.ID)
	}
	v.markers[marker.ID] = marker
	return nil
}

func (v *View) RemoveMarker(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.markers[id]; !exists {
		return fmt.Errorf("marker %s not attached", id)
	}
	delete(v.markers, id)
	if v.openPopup == id {
		v.openPopup = ""
	}
	return nil
}

func (v *View) OpenPopup(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.markers[id]; !exists {
		return fmt.Errorf("marker %s not attached", id)
	}
	v.openPopup = id
	return nil
}

func (v *View) Viewport() domain.Viewport {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.viewport
}

// TileLayer returns the base layer configuration.
func (v *View) TileLayer() domain.TileLayer {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.tileLayer
}

// OpenPopupID returns the id of the marker whose popup is open, or empty.
func (v *View) OpenPopupID() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.openPopup
}

// MarkerCount returns the number of attached markers.
func (v *View) MarkerCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.markers)
}

func (v *View) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.markers = make(map[string]domain.Marker)
	v.openPopup = ""
	v.logger.Info("Map view released")
	return nil
}
