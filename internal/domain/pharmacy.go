package domain

// Pharmacy is one mask-selling pharmacy. Identity is ID, unique across the set.
// Latitude/Longitude are already in lat/lng order; the GeoJSON [lng, lat] swap
// happens at ingestion.
type Pharmacy struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	County         string  `json:"county"`
	Town           string  `json:"town"`
	Cunli          string  `json:"cunli,omitempty"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	Note           string  `json:"note,omitempty"`
	CustomNote     string  `json:"custom_note,omitempty"`
	Website        string  `json:"website,omitempty"`
	Updated        string  `json:"updated,omitempty"`
	MaskAdult      int     `json:"mask_adult"`
	MaskChild      int     `json:"mask_child"`
	ServicePeriods string  `json:"service_periods,omitempty"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

// PharmacyProperties mirrors the properties object of one upstream GeoJSON feature.
type PharmacyProperties struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	County         string `json:"county"`
	Town           string `json:"town"`
	Cunli          string `json:"cunli"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Note           string `json:"note"`
	CustomNote     string `json:"custom_note"`
	Website        string `json:"website"`
	Updated        string `json:"updated"`
	MaskAdult      int    `json:"mask_adult"`
	MaskChild      int    `json:"mask_child"`
	ServicePeriods string `json:"service_periods"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type Feature struct {
	Type       string             `json:"type"`
	Properties PharmacyProperties `json:"properties"`
	Geometry   Geometry           `json:"geometry"`
}

// FeatureCollection is the upstream pharmacy GeoJSON document.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Pharmacy converts a feature into a Pharmacy, swapping GeoJSON [lng, lat]
// into latitude/longitude. ok is false when the geometry carries fewer than
// two coordinates.
func (f Feature) Pharmacy() (Pharmacy, bool) {
	if len(f.Geometry.Coordinates) < 2 {
		return Pharmacy{}, false
	}
	p := f.Properties
	return Pharmacy{
		ID:             p.ID,
		Name:           p.Name,
		County:         p.County,
		Town:           p.Town,
		Cunli:          p.Cunli,
		Address:        p.Address,
		Phone:          p.Phone,
		Note:           p.Note,
		CustomNote:     p.CustomNote,
		Website:        p.Website,
		Updated:        p.Updated,
		MaskAdult:      p.MaskAdult,
		MaskChild:      p.MaskChild,
		ServicePeriods: p.ServicePeriods,
		Latitude:       f.Geometry.Coordinates[1],
		Longitude:      f.Geometry.Coordinates[0],
	}, true
}

const servicePeriodsLength = 21

// servicePeriodNames are the grid rows; the 21-char status string is
// period-major: chars 0..6 are the morning slots for Monday..Sunday.
var servicePeriodNames = [3]string{"morning", "noon", "evening"}

// ServiceGridRow is one period row of the weekly availability grid.
type ServiceGridRow struct {
	Period string   `json:"period"`
	Cells  []string `json:"cells"`
}

// ServiceGrid derives the 3x7 weekly availability grid from a service-period
// status string. In the source encoding N means open and Y means closed, so
// cells render "O" for N and "X" for Y. Only the first 21 characters are read;
// anything past them is ignored. Shorter strings yield no rows.
func ServiceGrid(servicePeriods string) []ServiceGridRow {
	if len(servicePeriods) < servicePeriodsLength {
		return nil
	}

	rows := make([]ServiceGridRow, 0, len(servicePeriodNames))
	for i, period := range servicePeriodNames {
		cells := make([]string, 0, 7)
		for day := 0; day < 7; day++ {
			if servicePeriods[i*7+day] == 'Y' {
				cells = append(cells, "X")
			} else {
				cells = append(cells, "O")
			}
		}
		rows = append(rows, ServiceGridRow{Period: period, Cells: cells})
	}
	return rows
}
