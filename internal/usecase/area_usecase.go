package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/maskmap-service/internal/domain"
	"github.com/maskmap-service/internal/domain/repository"
	"github.com/maskmap-service/internal/pkg/errors"
	"github.com/maskmap-service/internal/repository/cache"
	"github.com/maskmap-service/internal/store"
	"github.com/maskmap-service/internal/usecase/dto"
)

// AreaUseCase loads the city/district hierarchy into the AreaStore and
// exposes the selection operations.
type AreaUseCase struct {
	store     *store.AreaStore
	upstream  repository.UpstreamRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

func NewAreaUseCase(
	store *store.AreaStore,
	upstream repository.UpstreamRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *AreaUseCase {
	return &AreaUseCase{
		store:     store,
		upstream:  upstream,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// Refresh loads the area hierarchy, cache-aside: a cached payload is used when
// present, otherwise the upstream is fetched and cached best-effort. On
// failure the store keeps its previous data.
func (uc *AreaUseCase) Refresh(ctx context.Context) error {
	if cached, err := uc.cacheRepo.Get(ctx, cache.KeyAreaData); err == nil && cached != nil {
		var cities []domain.City
		if err := json.Unmarshal(cached, &cities); err == nil {
			uc.store.Load(cities)
			uc.logger.Info("Area data loaded from cache", zap.Int("cities", len(cities)))
			return nil
		}
		uc.logger.Warn("Discarding unreadable cached area payload", zap.Error(err))
	}

	cities, err := uc.upstream.FetchAreaData(ctx)
	if err != nil {
		uc.logger.Error("Failed to refresh area data", zap.Error(err))
		return errors.ErrUpstreamUnavailable
	}

	uc.store.Load(cities)
	uc.logger.Info("Area data loaded", zap.Int("cities", len(cities)))

	if payload, err := json.Marshal(cities); err == nil {
		if err := uc.cacheRepo.Set(ctx, cache.KeyAreaData, payload, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache area payload", zap.Error(err))
		}
	}

	return nil
}

// ForceRefresh invalidates the cached payload and refetches from the
// upstream, so an explicit refresh never replays stale cache contents.
func (uc *AreaUseCase) ForceRefresh(ctx context.Context) error {
	if err := uc.cacheRepo.Delete(ctx, cache.KeyAreaData); err != nil {
		uc.logger.Warn("Failed to invalidate cached area payload", zap.Error(err))
	}
	return uc.Refresh(ctx)
}

// Cities returns the loaded city names.
func (uc *AreaUseCase) Cities() dto.CityListResponse {
	return dto.CityListResponse{Cities: uc.store.CityList()}
}

// Districts returns the districts of the currently selected city.
func (uc *AreaUseCase) Districts() dto.DistrictListResponse {
	districts := uc.store.DistrictList()
	if districts == nil {
		districts = []domain.District{}
	}
	return dto.DistrictListResponse{Districts: districts}
}

// Selection returns the current selection with the resolved district info.
func (uc *AreaUseCase) Selection() dto.AreaSelectionResponse {
	return dto.AreaSelectionResponse{
		City:         uc.store.City(),
		District:     uc.store.District(),
		DistrictInfo: uc.store.CurrentDistrictInfo(),
	}
}

// Select applies a selection change. Empty fields are left untouched; the
// store normalizes whatever results.
func (uc *AreaUseCase) Select(req dto.SelectAreaRequest) dto.AreaSelectionResponse {
	if req.City != "" {
		uc.store.SetCity(req.City)
	}
	if req.District != "" {
		uc.store.SetDistrict(req.District)
	}
	return uc.Selection()
}
