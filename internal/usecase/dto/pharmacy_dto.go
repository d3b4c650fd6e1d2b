package dto

import "github.com/maskmap-service/internal/domain"

// UpdateKeywordRequest sets the free-text filter keyword. An empty keyword
// matches everything.
type UpdateKeywordRequest struct {
	Keyword string `json:"keyword" validate:"max=100"`
}

// PharmacyListItem is one entry of the filtered list. HighlightedName carries
// sanitized markup with the keyword emphasized and is only set on request.
type PharmacyListItem struct {
	domain.Pharmacy
	HighlightedName string `json:"highlighted_name,omitempty"`
}

// PharmacyListResponse is the filtered pharmacy list in source order.
type PharmacyListResponse struct {
	Pharmacies []PharmacyListItem `json:"pharmacies"`
	Keyword    string             `json:"keyword"`
	IsLoading  bool               `json:"is_loading"`
}

// PharmacyDetailResponse is the detail-panel payload: the record plus the
// derived weekly service grid.
type PharmacyDetailResponse struct {
	Pharmacy    domain.Pharmacy         `json:"pharmacy"`
	ServiceGrid []domain.ServiceGridRow `json:"service_grid"`
}

// NearbyResponse lists pharmacies within a radius of a point.
type NearbyResponse struct {
	Pharmacies []domain.Pharmacy `json:"pharmacies"`
	RadiusKm   float64           `json:"radius_km"`
}
