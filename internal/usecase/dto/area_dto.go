package dto

import "github.com/maskmap-service/internal/domain"

// SelectAreaRequest updates the current city and/or district. Empty fields
// leave the corresponding selection untouched.
type SelectAreaRequest struct {
	City     string `json:"city" validate:"max=50"`
	District string `json:"district" validate:"max=50"`
}

// AreaSelectionResponse is the current selection with the resolved district.
type AreaSelectionResponse struct {
	City         string           `json:"city"`
	District     string           `json:"district"`
	DistrictInfo *domain.District `json:"district_info,omitempty"`
}

// CityListResponse lists the loaded city names.
type CityListResponse struct {
	Cities []string `json:"cities"`
}

// DistrictListResponse lists the districts of the current city.
type DistrictListResponse struct {
	Districts []domain.District `json:"districts"`
}
