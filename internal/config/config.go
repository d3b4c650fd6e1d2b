package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Upstream UpstreamConfig
	Map      MapConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	AreaCacheTTL     time.Duration
	PharmacyCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type UpstreamConfig struct {
	AreaURL        string
	PharmacyURL    string
	RequestTimeout int
	RetryCount     int
}

type MapConfig struct {
	CenterLat       float64
	CenterLon       float64
	Zoom            int
	MaxZoom         int
	TileURL         string
	TileAttribution string
}

type WorkerConfig struct {
	Enabled         bool
	RefreshInterval time.Duration
	AreaRefreshSkip int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			AreaCacheTTL:     time.Duration(viper.GetInt("AREA_CACHE_TTL")) * time.Second,
			PharmacyCacheTTL: time.Duration(viper.GetInt("PHARMACY_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Upstream: UpstreamConfig{
			AreaURL:        viper.GetString("UPSTREAM_AREA_URL"),
			PharmacyURL:    viper.GetString("UPSTREAM_PHARMACY_URL"),
			RequestTimeout: viper.GetInt("UPSTREAM_REQUEST_TIMEOUT"),
			RetryCount:     viper.GetInt("UPSTREAM_RETRY_COUNT"),
		},
		Map: MapConfig{
			CenterLat:       viper.GetFloat64("MAP_CENTER_LAT"),
			CenterLon:       viper.GetFloat64("MAP_CENTER_LON"),
			Zoom:            viper.GetInt("MAP_ZOOM"),
			MaxZoom:         viper.GetInt("MAP_MAX_ZOOM"),
			TileURL:         viper.GetString("MAP_TILE_URL"),
			TileAttribution: viper.GetString("MAP_TILE_ATTRIBUTION"),
		},
		Worker: WorkerConfig{
			Enabled:         viper.GetBool("WORKER_ENABLED"),
			RefreshInterval: time.Duration(viper.GetInt("WORKER_REFRESH_INTERVAL")) * time.Second,
			AreaRefreshSkip: viper.GetInt("WORKER_AREA_REFRESH_SKIP"),
		},
	}

	// Set default values if not provided
	if cfg.Upstream.AreaURL == "" {
		cfg.Upstream.AreaURL = "https://raw.githubusercontent.com/kurotanshi/mask-map/master/raw/area-location.json"
	}
	if cfg.Upstream.PharmacyURL == "" {
		cfg.Upstream.PharmacyURL = "https://raw.githubusercontent.com/kiang/pharmacies/master/json/points.json"
	}
	if cfg.Upstream.RequestTimeout == 0 {
		cfg.Upstream.RequestTimeout = 30
	}
	if cfg.Upstream.RetryCount == 0 {
		cfg.Upstream.RetryCount = 3
	}
	if cfg.Map.CenterLat == 0 {
		cfg.Map.CenterLat = 25.033964
	}
	if cfg.Map.CenterLon == 0 {
		cfg.Map.CenterLon = 121.564468
	}
	if cfg.Map.Zoom == 0 {
		cfg.Map.Zoom = 14
	}
	if cfg.Map.MaxZoom == 0 {
		cfg.Map.MaxZoom = 18
	}
	if cfg.Map.TileURL == "" {
		cfg.Map.TileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	}
	if cfg.Map.TileAttribution == "" {
		cfg.Map.TileAttribution = `<a href="https://www.openstreetmap.org/copyright" target="_blank">OpenStreetMap</a> contributors`
	}
	if cfg.Cache.AreaCacheTTL == 0 {
		cfg.Cache.AreaCacheTTL = 24 * time.Hour
	}
	if cfg.Cache.PharmacyCacheTTL == 0 {
		cfg.Cache.PharmacyCacheTTL = 5 * time.Minute
	}
	if cfg.Worker.RefreshInterval == 0 {
		cfg.Worker.RefreshInterval = 10 * time.Minute
	}
	if cfg.Worker.AreaRefreshSkip == 0 {
		cfg.Worker.AreaRefreshSkip = 24
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
