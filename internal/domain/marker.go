package domain

// LatLng is a map coordinate in latitude/longitude order.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is one map marker, tagged with the id of the pharmacy it represents.
type Marker struct {
	ID       string `json:"id"`
	Position LatLng `json:"position"`
	Popup    string `json:"popup"`
}

// TileLayer describes the base tile layer attached to the map.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"max_zoom"`
}

// Viewport is the visible map state.
type Viewport struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
}
