// Package store holds the in-memory session state of the mask map: the area
// hierarchy with its city/district selection and the pharmacy list with its
// keyword and detail state. Stores notify subscribers after every mutation so
// derived views recompute explicitly instead of through an implicit
// reactivity graph.
package store

import (
	"sync"

	"github.com/maskmap-service/internal/domain"
)

// AreaStore holds the city/district hierarchy and the current selection.
//
// Invariant: whenever the city list is non-empty, the current city is a member
// of it, and the current district is a member of the current city's district
// list. The invariant is restored by normalization after every mutation that
// could break it. SetCity alone may leave a transiently invalid city; the next
// data load corrects it.
type AreaStore struct {
	mu           sync.RWMutex
	data         []domain.City
	currCity     string
	currDistrict string
	subscribers  []func()
}

func NewAreaStore() *AreaStore {
	return &AreaStore{}
}

// Subscribe registers fn to run after every mutation. Callbacks run outside
// the store lock, in registration order.
func (s *AreaStore) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Load replaces the area hierarchy wholesale and re-normalizes the selection.
func (s *AreaStore) Load(data []domain.City) {
	s.mu.Lock()
	s.data = data
	s.normalizeCityLocked()
	s.normalizeDistrictLocked()
	s.mu.Unlock()

	s.notify()
}

// SetCity changes the current city. A value absent from the city list is
// accepted; consumers see an empty district list until the next data load
// replaces it.
func (s *AreaStore) SetCity(city string) {
	s.mu.Lock()
	s.currCity = city
	s.normalizeDistrictLocked()
	s.mu.Unlock()

	s.notify()
}

// SetDistrict changes the current district within the current city.
func (s *AreaStore) SetDistrict(district string) {
	s.mu.Lock()
	s.currDistrict = district
	s.mu.Unlock()

	s.notify()
}

// City returns the currently selected city name.
func (s *AreaStore) City() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currCity
}

// District returns the currently selected district name.
func (s *AreaStore) District() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currDistrict
}

// CityList returns city names in first-occurrence order, duplicates removed.
func (s *AreaStore) CityList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CityNames(s.data)
}

// DistrictList returns the districts of the current city, or an empty slice
// when the current city matches no loaded city.
func (s *AreaStore) DistrictList() []domain.District {
	s.mu.RLock()
	defer s.mu.RUnlock()

	districts := s.districtListLocked()
	out := make([]domain.District, len(districts))
	copy(out, districts)
	return out
}

// CurrentDistrictInfo looks up the current district. A nil result is a normal
// outcome, not an error.
func (s *AreaStore) CurrentDistrictInfo() *domain.District {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.districtListLocked() {
		if d.Name == s.currDistrict {
			info := d
			return &info
		}
	}
	return nil
}

func (s *AreaStore) districtListLocked() []domain.District {
	for _, c := range s.data {
		if c.Name == s.currCity {
			return c.Districts
		}
	}
	return nil
}

// normalizeCityLocked resets an empty or invalid current city to the first
// loaded city. No-op while no cities are loaded.
func (s *AreaStore) normalizeCityLocked() {
	cities := domain.CityNames(s.data)
	if len(cities) == 0 {
		return
	}
	for _, name := range cities {
		if name == s.currCity {
			return
		}
	}
	s.currCity = cities[0]
}

// normalizeDistrictLocked resets an invalid current district to the first
// district of the current city, or to empty when the city has none.
func (s *AreaStore) normalizeDistrictLocked() {
	districts := s.districtListLocked()
	if len(districts) == 0 {
		s.currDistrict = ""
		return
	}
	for _, d := range districts {
		if d.Name == s.currDistrict {
			return
		}
	}
	s.currDistrict = districts[0].Name
}

func (s *AreaStore) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}
