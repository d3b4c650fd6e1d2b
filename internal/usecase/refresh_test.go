package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maskmap-service/internal/domain"
	"github.com/maskmap-service/internal/pkg/errors"
	"github.com/maskmap-service/internal/repository/cache"
	"github.com/maskmap-service/internal/store"
	"github.com/maskmap-service/internal/usecase"
)

// MockUpstreamRepository is a mock of the UpstreamRepository port
type MockUpstreamRepository struct {
	mock.Mock
}

func (m *MockUpstreamRepository) FetchAreaData(ctx context.Context) ([]domain.City, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *MockUpstreamRepository) FetchPharmacies(ctx context.Context) (*domain.FeatureCollection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeatureCollection), args.Error(1)
}

// MockCacheRepository is a mock of the CacheRepository port
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestAreaUseCase_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches upstream on cache miss and caches the payload", func(t *testing.T) {
		upstream := &MockUpstreamRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Get", ctx, cache.KeyAreaData).Return(nil, nil)
		upstream.On("FetchAreaData", ctx).Return(filterAreaData(), nil)
		cacheRepo.On("Set", ctx, cache.KeyAreaData, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil)

		areas := store.NewAreaStore()
		uc := usecase.NewAreaUseCase(areas, upstream, cacheRepo, zap.NewNop(), time.Hour)

		require.NoError(t, uc.Refresh(ctx))

		assert.Equal(t, []string{"臺北市", "新北市"}, areas.CityList())
		assert.Equal(t, "臺北市", areas.City())
		assert.Equal(t, "大安區", areas.District())
		cacheRepo.AssertCalled(t, "Set", ctx, cache.KeyAreaData, mock.AnythingOfType("[]uint8"), time.Hour)
	})

	t.Run("uses the cached payload without hitting upstream", func(t *testing.T) {
		payload, err := json.Marshal(filterAreaData())
		require.NoError(t, err)

		upstream := &MockUpstreamRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Get", ctx, cache.KeyAreaData).Return(payload, nil)

		areas := store.NewAreaStore()
		uc := usecase.NewAreaUseCase(areas, upstream, cacheRepo, zap.NewNop(), time.Hour)

		require.NoError(t, uc.Refresh(ctx))

		assert.Equal(t, []string{"臺北市", "新北市"}, areas.CityList())
		upstream.AssertNotCalled(t, "FetchAreaData", mock.Anything)
	})

	t.Run("unreadable cached payload falls through to upstream", func(t *testing.T) {
		upstream := &MockUpstreamRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Get", ctx, cache.KeyAreaData).Return([]byte("{not json"), nil)
		upstream.On("FetchAreaData", ctx).Return(filterAreaData(), nil)
		cacheRepo.On("Set", ctx, cache.KeyAreaData, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil)

		areas := store.NewAreaStore()
		uc := usecase.NewAreaUseCase(areas, upstream, cacheRepo, zap.NewNop(), time.Hour)

		require.NoError(t, uc.Refresh(ctx))
		assert.Equal(t, "臺北市", areas.City())
	})

	t.Run("fetch failure leaves the store untouched", func(t *testing.T) {
		upstream := &MockUpstreamRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Get", ctx, cache.KeyAreaData).Return(nil, nil)
		upstream.On("FetchAreaData", ctx).Return(nil, assert.AnError).Once()

		areas := store.NewAreaStore()
		areas.Load(filterAreaData())
		areas.SetCity("新北市")

		uc := usecase.NewAreaUseCase(areas, upstream, cacheRepo, zap.NewNop(), time.Hour)

		err := uc.Refresh(ctx)
		assert.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
		assert.Equal(t, "新北市", areas.City())
		assert.Equal(t, "板橋區", areas.District())
		assert.Equal(t, []string{"臺北市", "新北市"}, areas.CityList())
	})

	t.Run("force refresh invalidates the cache before fetching", func(t *testing.T) {
		upstream := &MockUpstreamRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Delete", ctx, cache.KeyAreaData).Return(nil)
		cacheRepo.On("Get", ctx, cache.KeyAreaData).Return(nil, nil)
		upstream.On("FetchAreaData", ctx).Return(filterAreaData(), nil)
		cacheRepo.On("Set", ctx, cache.KeyAreaData, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil)

		areas := store.NewAreaStore()
		uc := usecase.NewAreaUseCase(areas, upstream, cacheRepo, zap.NewNop(), time.Hour)

		require.NoError(t, uc.ForceRefresh(ctx))

		cacheRepo.AssertCalled(t, "Delete", ctx, cache.KeyAreaData)
		upstream.AssertCalled(t, "FetchAreaData", ctx)
		assert.Equal(t, "臺北市", areas.City())
	})

	t.Run("cache write failure is not fatal", func(t *testing.T) {
		upstream := &MockUpstreamRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Get", ctx, cache.KeyAreaData).Return(nil, nil)
		upstream.On("FetchAreaData", ctx).Return(filterAreaData(), nil)
		cacheRepo.On("Set", ctx, cache.KeyAreaData, mock.AnythingOfType("[]uint8"), time.Hour).Return(assert.AnError)

		areas := store.NewAreaStore()
		uc := usecase.NewAreaUseCase(areas, upstream, cacheRepo, zap.NewNop(), time.Hour)

		assert.NoError(t, uc.Refresh(ctx))
		assert.Equal(t, "臺北市", areas.City())
	})
}

func TestPharmacyUseCase_Refresh(t *testing.T) {
	ctx := context.Background()

	newPharmacyUseCase := func(upstream *MockUpstreamRepository, cacheRepo *MockCacheRepository) (*usecase.PharmacyUseCase, *store.PharmacyStore) {
		view := &MockMapView{}
		mc := newController(view)
		view.On("AddMarker", mock.AnythingOfType("domain.Marker")).Return(nil)
		view.On("RemoveMarker", mock.AnythingOfType("string")).Return(nil)
		view.On("PanTo", mock.AnythingOfType("domain.LatLng")).Return()

		areas := store.NewAreaStore()
		pharmacies := store.NewPharmacyStore()
		filter := usecase.NewFilterUseCase(areas, pharmacies, mc, zap.NewNop())
		filter.Bind()

		return usecase.NewPharmacyUseCase(pharmacies, filter, mc, upstream, cacheRepo, zap.NewNop(), time.Hour), pharmacies
	}

	t.Run("fetches upstream on cache miss", func(t *testing.T) {
		upstream := &MockUpstreamRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Get", ctx, cache.KeyPharmacyData).Return(nil, nil)
		upstream.On("FetchPharmacies", ctx).Return(filterFeatureCollection(), nil)
		cacheRepo.On("Set", ctx, cache.KeyPharmacyData, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil)

		uc, pharmacies := newPharmacyUseCase(upstream, cacheRepo)

		require.NoError(t, uc.Refresh(ctx))

		assert.Len(t, pharmacies.Pharmacies(), 4)
		assert.False(t, pharmacies.IsLoading())
	})

	t.Run("fetch failure keeps the previous list and resets loading", func(t *testing.T) {
		upstream := &MockUpstreamRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Get", ctx, cache.KeyPharmacyData).Return(nil, nil)
		upstream.On("FetchPharmacies", ctx).Return(filterFeatureCollection(), nil).Once()
		cacheRepo.On("Set", ctx, cache.KeyPharmacyData, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil)

		uc, pharmacies := newPharmacyUseCase(upstream, cacheRepo)
		require.NoError(t, uc.Refresh(ctx))
		require.Len(t, pharmacies.Pharmacies(), 4)

		upstream.On("FetchPharmacies", ctx).Return(nil, assert.AnError)

		err := uc.Refresh(ctx)
		assert.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
		assert.Len(t, pharmacies.Pharmacies(), 4)
		assert.False(t, pharmacies.IsLoading())
	})

	t.Run("cached payload skips the upstream", func(t *testing.T) {
		payload, err := json.Marshal(filterFeatureCollection())
		require.NoError(t, err)

		upstream := &MockUpstreamRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Get", ctx, cache.KeyPharmacyData).Return(payload, nil)

		uc, pharmacies := newPharmacyUseCase(upstream, cacheRepo)

		require.NoError(t, uc.Refresh(ctx))
		assert.Len(t, pharmacies.Pharmacies(), 4)
		upstream.AssertNotCalled(t, "FetchPharmacies", mock.Anything)
	})

	t.Run("force refresh goes to the upstream even with a cached payload", func(t *testing.T) {
		upstream := &MockUpstreamRepository{}
		cacheRepo := &MockCacheRepository{}
		cacheRepo.On("Delete", ctx, cache.KeyPharmacyData).Return(nil)
		cacheRepo.On("Get", ctx, cache.KeyPharmacyData).Return(nil, nil)
		upstream.On("FetchPharmacies", ctx).Return(filterFeatureCollection(), nil)
		cacheRepo.On("Set", ctx, cache.KeyPharmacyData, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil)

		uc, pharmacies := newPharmacyUseCase(upstream, cacheRepo)

		require.NoError(t, uc.ForceRefresh(ctx))

		cacheRepo.AssertCalled(t, "Delete", ctx, cache.KeyPharmacyData)
		upstream.AssertCalled(t, "FetchPharmacies", ctx)
		assert.Len(t, pharmacies.Pharmacies(), 4)
	})
}

func TestPharmacyUseCase_Detail(t *testing.T) {
	ctx := context.Background()

	upstream := &MockUpstreamRepository{}
	cacheRepo := &MockCacheRepository{}
	cacheRepo.On("Get", ctx, cache.KeyPharmacyData).Return(nil, nil)
	upstream.On("FetchPharmacies", ctx).Return(filterFeatureCollection(), nil)
	cacheRepo.On("Set", ctx, cache.KeyPharmacyData, mock.AnythingOfType("[]uint8"), time.Hour).Return(nil)

	view := &MockMapView{}
	mc := newController(view)
	view.On("AddMarker", mock.AnythingOfType("domain.Marker")).Return(nil)
	view.On("RemoveMarker", mock.AnythingOfType("string")).Return(nil)
	view.On("PanTo", mock.AnythingOfType("domain.LatLng")).Return()
	view.On("OpenPopup", mock.AnythingOfType("string")).Return(nil)

	areas := store.NewAreaStore()
	pharmacies := store.NewPharmacyStore()
	filter := usecase.NewFilterUseCase(areas, pharmacies, mc, zap.NewNop())
	filter.Bind()

	uc := usecase.NewPharmacyUseCase(pharmacies, filter, mc, upstream, cacheRepo, zap.NewNop(), time.Hour)
	require.NoError(t, uc.Refresh(ctx))

	t.Run("get unknown id returns not found", func(t *testing.T) {
		_, err := uc.Get("999")
		assert.ErrorIs(t, err, errors.ErrPharmacyNotFound)
	})

	t.Run("open selects the pharmacy and exposes the detail", func(t *testing.T) {
		detail, err := uc.Open("1")
		require.NoError(t, err)
		assert.Equal(t, "健康藥局", detail.Pharmacy.Name)

		current := uc.Detail()
		require.NotNil(t, current)
		assert.Equal(t, "1", current.Pharmacy.ID)
	})

	t.Run("close dismisses the detail", func(t *testing.T) {
		uc.Close()
		assert.Nil(t, uc.Detail())
	})

	t.Run("nearby validates coordinates and radius", func(t *testing.T) {
		_, err := uc.Nearby(91.0, 121.5, 1)
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)

		_, err = uc.Nearby(25.03, 121.5, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidRadius)
	})

	t.Run("nearby returns pharmacies within the radius", func(t *testing.T) {
		resp, err := uc.Nearby(25.033, 121.543, 1)
		require.NoError(t, err)
		require.NotEmpty(t, resp.Pharmacies)
		for _, p := range resp.Pharmacies {
			assert.InDelta(t, 25.033, p.Latitude, 0.1)
		}
	})
}
