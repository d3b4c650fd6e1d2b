package domain

// District is a single district within a city. Identity is Name within its city.
type District struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// City holds the district hierarchy for one city, in upstream order.
type City struct {
	Name      string     `json:"name"`
	Districts []District `json:"districts"`
}

// CityNames returns city names in first-occurrence order with duplicates removed.
func CityNames(cities []City) []string {
	seen := make(map[string]struct{}, len(cities))
	names := make([]string, 0, len(cities))
	for _, c := range cities {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}
	return names
}
