// Package docs Mask Map Service API.
//
// Backend for the mask-map application: loads the city/district hierarchy and
// the pharmacy GeoJSON points from their upstream sources, keeps the filtered
// pharmacy view and the map marker state in sync with the current selection,
// and serves both to a map frontend.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
