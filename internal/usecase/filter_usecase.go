package usecase

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/maskmap-service/internal/domain"
	"github.com/maskmap-service/internal/store"
)

// Filter returns the pharmacies matching the current selection, in source
// order: county equals city, town equals district, and name contains keyword
// as a case-sensitive substring. An empty keyword matches everything. The
// input slice is never mutated.
func Filter(city, district, keyword string, pharmacies []domain.Pharmacy) []domain.Pharmacy {
	out := make([]domain.Pharmacy, 0)
	for _, p := range pharmacies {
		if p.County != city || p.Town != district {
			continue
		}
		if !strings.Contains(p.Name, keyword) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterUseCase derives the filtered pharmacy list from the two stores and
// fans it out to the map controller. Everything downstream of the stores
// (list view, markers, re-center) flows through here.
type FilterUseCase struct {
	areas      *store.AreaStore
	pharmacies *store.PharmacyStore
	mapCtrl    *MapController
	logger     *zap.Logger

	mu           sync.Mutex
	lastDistrict string
}

func NewFilterUseCase(
	areas *store.AreaStore,
	pharmacies *store.PharmacyStore,
	mapCtrl *MapController,
	logger *zap.Logger,
) *FilterUseCase {
	return &FilterUseCase{
		areas:      areas,
		pharmacies: pharmacies,
		mapCtrl:    mapCtrl,
		logger:     logger,
	}
}

// Bind subscribes the derivation to both stores. Every store mutation then
// recomputes the filtered list synchronously.
func (uc *FilterUseCase) Bind() {
	uc.areas.Subscribe(uc.refresh)
	uc.pharmacies.Subscribe(uc.refresh)
}

// Filtered recomputes the filtered list from current store state. It is
// side-effect-free and idempotent.
func (uc *FilterUseCase) Filtered() []domain.Pharmacy {
	return Filter(
		uc.areas.City(),
		uc.areas.District(),
		uc.pharmacies.Keyword(),
		uc.pharmacies.Pharmacies(),
	)
}

// refresh runs after every store mutation: re-centers the map when the
// selected district changed, then rebuilds the markers from the filtered list.
func (uc *FilterUseCase) refresh() {
	info := uc.areas.CurrentDistrictInfo()
	if info != nil {
		key := uc.areas.City() + "/" + info.Name
		uc.mu.Lock()
		changed := key != uc.lastDistrict
		uc.lastDistrict = key
		uc.mu.Unlock()

		if changed {
			uc.mapCtrl.Recenter(info)
		}
	}

	filtered := uc.Filtered()
	uc.mapCtrl.SyncMarkers(filtered)
	uc.logger.Debug("Filtered pharmacies recomputed", zap.Int("count", len(filtered)))
}
