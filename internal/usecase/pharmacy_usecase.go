package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/maskmap-service/internal/domain"
	"github.com/maskmap-service/internal/domain/repository"
	"github.com/maskmap-service/internal/pkg/errors"
	"github.com/maskmap-service/internal/pkg/highlight"
	"github.com/maskmap-service/internal/pkg/utils"
	"github.com/maskmap-service/internal/repository/cache"
	"github.com/maskmap-service/internal/store"
	"github.com/maskmap-service/internal/usecase/dto"
)

// PharmacyUseCase loads the pharmacy list into the PharmacyStore and exposes
// the list, keyword, detail and nearby operations.
type PharmacyUseCase struct {
	store     *store.PharmacyStore
	filter    *FilterUseCase
	mapCtrl   *MapController
	upstream  repository.UpstreamRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

func NewPharmacyUseCase(
	store *store.PharmacyStore,
	filter *FilterUseCase,
	mapCtrl *MapController,
	upstream repository.UpstreamRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *PharmacyUseCase {
	return &PharmacyUseCase{
		store:     store,
		filter:    filter,
		mapCtrl:   mapCtrl,
		upstream:  upstream,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// Refresh loads the pharmacy GeoJSON, cache-aside. The loading flag is set for
// the duration of the refresh and reset on every path. On failure the store
// keeps its previous list.
func (uc *PharmacyUseCase) Refresh(ctx context.Context) error {
	uc.store.SetLoading(true)
	defer uc.store.SetLoading(false)

	if cached, err := uc.cacheRepo.Get(ctx, cache.KeyPharmacyData); err == nil && cached != nil {
		var fc domain.FeatureCollection
		if err := json.Unmarshal(cached, &fc); err == nil {
			uc.load(&fc)
			uc.logger.Info("Pharmacy data loaded from cache", zap.Int("features", len(fc.Features)))
			return nil
		}
		uc.logger.Warn("Discarding unreadable cached pharmacy payload", zap.Error(err))
	}

	fc, err := uc.upstream.FetchPharmacies(ctx)
	if err != nil {
		uc.logger.Error("Failed to refresh pharmacy data", zap.Error(err))
		return errors.ErrUpstreamUnavailable
	}

	uc.load(fc)
	uc.logger.Info("Pharmacy data loaded", zap.Int("features", len(fc.Features)))

	if payload, err := json.Marshal(fc); err == nil {
		if err := uc.cacheRepo.Set(ctx, cache.KeyPharmacyData, payload, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache pharmacy payload", zap.Error(err))
		}
	}

	return nil
}

// ForceRefresh invalidates the cached payload and refetches from the
// upstream, so an explicit refresh never replays stale cache contents.
func (uc *PharmacyUseCase) ForceRefresh(ctx context.Context) error {
	if err := uc.cacheRepo.Delete(ctx, cache.KeyPharmacyData); err != nil {
		uc.logger.Warn("Failed to invalidate cached pharmacy payload", zap.Error(err))
	}
	return uc.Refresh(ctx)
}

func (uc *PharmacyUseCase) load(fc *domain.FeatureCollection) {
	if dropped := uc.store.Load(fc); dropped > 0 {
		uc.logger.Warn("Dropped features without coordinates", zap.Int("count", dropped))
	}
}

// List returns the filtered pharmacy list. With highlighted set, each item
// carries its name with the current keyword emphasized as sanitized markup.
func (uc *PharmacyUseCase) List(highlighted bool) dto.PharmacyListResponse {
	keyword := uc.store.Keyword()
	filtered := uc.filter.Filtered()

	items := make([]dto.PharmacyListItem, 0, len(filtered))
	for _, p := range filtered {
		item := dto.PharmacyListItem{Pharmacy: p}
		if highlighted {
			item.HighlightedName = highlight.Mark(p.Name, keyword, highlight.Options{})
		}
		items = append(items, item)
	}

	return dto.PharmacyListResponse{
		Pharmacies: items,
		Keyword:    keyword,
		IsLoading:  uc.store.IsLoading(),
	}
}

// SetKeyword updates the filter keyword.
func (uc *PharmacyUseCase) SetKeyword(req dto.UpdateKeywordRequest) {
	uc.store.SetKeyword(req.Keyword)
}

// Get looks up one pharmacy by id and derives its service grid.
func (uc *PharmacyUseCase) Get(id string) (*dto.PharmacyDetailResponse, error) {
	for _, p := range uc.store.Pharmacies() {
		if p.ID == id {
			return &dto.PharmacyDetailResponse{
				Pharmacy:    p,
				ServiceGrid: domain.ServiceGrid(p.ServicePeriods),
			}, nil
		}
	}
	return nil, errors.ErrPharmacyNotFound
}

// Open selects a pharmacy for the detail panel and opens its map popup when a
// matching marker is attached. The popup trigger is a no-op on a miss.
func (uc *PharmacyUseCase) Open(id string) (*dto.PharmacyDetailResponse, error) {
	detail, err := uc.Get(id)
	if err != nil {
		return nil, err
	}

	uc.store.OpenDetail(id)
	uc.mapCtrl.TriggerPopup(id)
	return detail, nil
}

// Close dismisses the detail panel.
func (uc *PharmacyUseCase) Close() {
	uc.store.CloseDetail()
}

// Detail returns the currently opened pharmacy, or nil when nothing is opened
// or the opened id matches nothing.
func (uc *PharmacyUseCase) Detail() *dto.PharmacyDetailResponse {
	p := uc.store.CurrentOpenedPharmacy()
	if p == nil {
		return nil
	}
	return &dto.PharmacyDetailResponse{
		Pharmacy:    *p,
		ServiceGrid: domain.ServiceGrid(p.ServicePeriods),
	}
}

// Nearby returns the pharmacies within radiusKm of a point, in source order.
func (uc *PharmacyUseCase) Nearby(lat, lon, radiusKm float64) (*dto.NearbyResponse, error) {
	if !utils.ValidateCoordinates(lat, lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(radiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	matched := make([]domain.Pharmacy, 0)
	for _, p := range uc.store.Pharmacies() {
		if utils.HaversineDistance(lat, lon, p.Latitude, p.Longitude) <= radiusKm {
			matched = append(matched, p)
		}
	}

	return &dto.NearbyResponse{
		Pharmacies: matched,
		RadiusKm:   radiusKm,
	}, nil
}
