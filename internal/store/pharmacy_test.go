package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maskmap-service/internal/domain"
	"github.com/maskmap-service/internal/store"
)

func mockFeatureCollection() *domain.FeatureCollection {
	return &domain.FeatureCollection{
		Type: "FeatureCollection",
		Features: []domain.Feature{
			{
				Properties: domain.PharmacyProperties{
					ID: "1", Name: "健康藥局", County: "台北市", Town: "大安區",
				},
				Geometry: domain.Geometry{Coordinates: []float64{121.543, 25.033}},
			},
			{
				Properties: domain.PharmacyProperties{
					ID: "2", Name: "安心藥局", County: "台北市", Town: "信義區",
				},
				Geometry: domain.Geometry{Coordinates: []float64{121.565, 25.033}},
			},
		},
	}
}

func TestPharmacyStore_Load(t *testing.T) {
	t.Run("replaces the list with swapped coordinates", func(t *testing.T) {
		s := store.NewPharmacyStore()
		dropped := s.Load(mockFeatureCollection())

		assert.Zero(t, dropped)
		pharmacies := s.Pharmacies()
		require.Len(t, pharmacies, 2)
		assert.Equal(t, 25.033, pharmacies[0].Latitude)
		assert.Equal(t, 121.543, pharmacies[0].Longitude)
	})

	t.Run("drops features without usable coordinates", func(t *testing.T) {
		s := store.NewPharmacyStore()
		fc := mockFeatureCollection()
		fc.Features = append(fc.Features, domain.Feature{
			Properties: domain.PharmacyProperties{ID: "3", Name: "壞資料藥局"},
			Geometry:   domain.Geometry{Coordinates: []float64{}},
		})

		dropped := s.Load(fc)
		assert.Equal(t, 1, dropped)
		assert.Len(t, s.Pharmacies(), 2)
	})

	t.Run("reload is wholesale", func(t *testing.T) {
		s := store.NewPharmacyStore()
		s.Load(mockFeatureCollection())

		s.Load(&domain.FeatureCollection{
			Features: []domain.Feature{
				{
					Properties: domain.PharmacyProperties{ID: "9", Name: "新藥局"},
					Geometry:   domain.Geometry{Coordinates: []float64{121.5, 25.0}},
				},
			},
		})

		pharmacies := s.Pharmacies()
		require.Len(t, pharmacies, 1)
		assert.Equal(t, "9", pharmacies[0].ID)
	})
}

func TestPharmacyStore_CurrentOpenedPharmacy(t *testing.T) {
	t.Run("nil when nothing opened", func(t *testing.T) {
		s := store.NewPharmacyStore()
		s.Load(mockFeatureCollection())
		assert.Nil(t, s.CurrentOpenedPharmacy())
	})

	t.Run("returns the opened pharmacy", func(t *testing.T) {
		s := store.NewPharmacyStore()
		s.Load(mockFeatureCollection())
		s.OpenDetail("1")

		p := s.CurrentOpenedPharmacy()
		require.NotNil(t, p)
		assert.Equal(t, "健康藥局", p.Name)
		assert.True(t, s.ShowModal())
	})

	t.Run("nil when id matches nothing", func(t *testing.T) {
		s := store.NewPharmacyStore()
		s.Load(mockFeatureCollection())
		s.OpenDetail("999")

		assert.Nil(t, s.CurrentOpenedPharmacy())
		assert.True(t, s.ShowModal())
	})

	t.Run("close clears selection and modal", func(t *testing.T) {
		s := store.NewPharmacyStore()
		s.Load(mockFeatureCollection())
		s.OpenDetail("1")
		s.CloseDetail()

		assert.Nil(t, s.CurrentOpenedPharmacy())
		assert.False(t, s.ShowModal())
		assert.Empty(t, s.CurrentOpenedID())
	})
}

func TestPharmacyStore_KeywordAndLoading(t *testing.T) {
	s := store.NewPharmacyStore()

	assert.Empty(t, s.Keyword())
	s.SetKeyword("健康")
	assert.Equal(t, "健康", s.Keyword())

	assert.False(t, s.IsLoading())
	s.SetLoading(true)
	assert.True(t, s.IsLoading())
	s.SetLoading(false)
	assert.False(t, s.IsLoading())
}

func TestPharmacyStore_Subscribe(t *testing.T) {
	s := store.NewPharmacyStore()

	calls := 0
	s.Subscribe(func() { calls++ })

	s.Load(mockFeatureCollection())
	s.SetKeyword("藥")
	s.OpenDetail("1")
	s.CloseDetail()

	assert.Equal(t, 4, calls)
}
