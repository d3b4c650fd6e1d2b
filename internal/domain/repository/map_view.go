package repository

import "github.com/maskmap-service/internal/domain"

// MapView is the map widget the controller drives. Exactly one controller
// owns a view; nothing else may mutate it.
type MapView interface {
	// SetView positions the viewport and attaches nothing else.
	SetView(center domain.LatLng, zoom int)

	// PanTo smoothly moves the viewport to center.
	PanTo(center domain.LatLng)

	// AddMarker attaches a marker to the map.
	AddMarker(marker domain.Marker) error

	// RemoveMarker detaches the marker with the given id.
	RemoveMarker(id string) error

	// OpenPopup opens the popup of an attached marker.
	OpenPopup(id string) error

	// Viewport returns the current visible state.
	Viewport() domain.Viewport

	// Close releases the widget.
	Close() error
}
