package mapview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maskmap-service/internal/config"
	"github.com/maskmap-service/internal/domain"
	"github.com/maskmap-service/internal/infrastructure/mapview"
)

func testMapConfig() *config.MapConfig {
	return &config.MapConfig{
		TileURL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		TileAttribution: "© OpenStreetMap contributors",
		MaxZoom:         18,
	}
}

func TestNew(t *testing.T) {
	t.Run("carries the tile layer", func(t *testing.T) {
		v, err := mapview.New(testMapConfig(), zap.NewNop())
		require.NoError(t, err)

		layer := v.TileLayer()
		assert.Equal(t, "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", layer.URL)
		assert.Equal(t, 18, layer.MaxZoom)
	})

	t.Run("rejects a missing tile URL", func(t *testing.T) {
		_, err := mapview.New(&config.MapConfig{}, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestView_Viewport(t *testing.T) {
	v, err := mapview.New(testMapConfig(), zap.NewNop())
	require.NoError(t, err)

	v.SetView(domain.LatLng{Lat: 25.033964, Lng: 121.564468}, 14)
	vp := v.Viewport()
	assert.Equal(t, 25.033964, vp.Center.Lat)
	assert.Equal(t, 14, vp.Zoom)

	v.PanTo(domain.LatLng{Lat: 25.011, Lng: 121.458})
	vp = v.Viewport()
	assert.Equal(t, 25.011, vp.Center.Lat)
	assert.Equal(t, 14, vp.Zoom, "pan keeps the zoom level")
}

func TestView_Markers(t *testing.T) {
	newView := func(t *testing.T) *mapview.View {
		v, err := mapview.New(testMapConfig(), zap.NewNop())
		require.NoError(t, err)
		return v
	}
	marker := domain.Marker{ID: "1", Position: domain.LatLng{Lat: 25.033, Lng: 121.543}, Popup: "健康藥局"}

	t.Run("add and remove", func(t *testing.T) {
		v := newView(t)

		require.NoError(t, v.AddMarker(marker))
		assert.Equal(t, 1, v.MarkerCount())

		require.NoError(t, v.RemoveMarker("1"))
		assert.Zero(t, v.MarkerCount())
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		v := newView(t)

		require.NoError(t, v.AddMarker(marker))
		assert.Error(t, v.AddMarker(marker))
	})

	t.Run("removing an unattached marker errors", func(t *testing.T) {
		v := newView(t)
		assert.Error(t, v.RemoveMarker("999"))
	})

	t.Run("popup follows its marker", func(t *testing.T) {
		v := newView(t)

		require.NoError(t, v.AddMarker(marker))
		require.NoError(t, v.OpenPopup("1"))
		assert.Equal(t, "1", v.OpenPopupID())

		require.NoError(t, v.RemoveMarker("1"))
		assert.Empty(t, v.OpenPopupID(), "removing a marker closes its popup")
	})

	t.Run("popup on unattached marker errors", func(t *testing.T) {
		v := newView(t)
		assert.Error(t, v.OpenPopup("999"))
	})

	t.Run("closed view rejects markers", func(t *testing.T) {
		v := newView(t)

		require.NoError(t, v.AddMarker(marker))
		require.NoError(t, v.Close())

		assert.Zero(t, v.MarkerCount())
		assert.Error(t, v.AddMarker(marker))
	})
}
