package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Maps     MapsConfig
	Provider ProviderConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Reports  ReportsConfig
	Routing  RoutingConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	StaticDir    string
	RateLimitMax int
	CORSOrigins  string
}

// MapsConfig - настройки внешнего провайдера карт (directions/elevation/geocode)
type MapsConfig struct {
	Provider       string // google | mapbox
	APIKey         string // для mapbox - access token
	BaseURL        string
	TravelMode     string
	RequestTimeout int // seconds
}

// ProviderConfig - ограничения на fan-out запросов к провайдеру
type ProviderConfig struct {
	WaypointTimeout  time.Duration
	ElevationTimeout time.Duration
	MaxParallel      int
}

type RedisConfig struct {
	Enabled   bool
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

type CacheConfig struct {
	ProviderCacheTTL time.Duration
}

// ReportsConfig - хранилище пользовательских отчётов
type ReportsConfig struct {
	Store           string // memory | redis
	TTL             time.Duration
	SweepSchedule   string
	// ExternalSweeper - просрочку чистит отдельный процесс cmd/worker
	ExternalSweeper bool
}

type RoutingConfig struct {
	RoughnessSeed uint64
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	// .env is optional: environment variables alone are enough in containers
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("API_HOST"),
			Port:         viper.GetInt("API_PORT"),
			Env:          viper.GetString("API_ENV"),
			StaticDir:    viper.GetString("STATIC_DIR"),
			RateLimitMax: viper.GetInt("RATE_LIMIT_MAX"),
			CORSOrigins:  viper.GetString("CORS_ORIGINS"),
		},
		Maps: MapsConfig{
			Provider:       strings.ToLower(strings.TrimSpace(viper.GetString("MAPS_PROVIDER"))),
			APIKey:         viper.GetString("MAPS_API_KEY"),
			BaseURL:        viper.GetString("MAPS_BASE_URL"),
			TravelMode:     viper.GetString("MAPS_TRAVEL_MODE"),
			RequestTimeout: viper.GetInt("MAPS_REQUEST_TIMEOUT"),
		},
		Provider: ProviderConfig{
			WaypointTimeout:  time.Duration(viper.GetInt("PROVIDER_WAYPOINT_TIMEOUT")) * time.Millisecond,
			ElevationTimeout: time.Duration(viper.GetInt("PROVIDER_ELEVATION_TIMEOUT")) * time.Millisecond,
			MaxParallel:      viper.GetInt("PROVIDER_MAX_PARALLEL"),
		},
		Redis: RedisConfig{
			Enabled:   viper.GetBool("REDIS_ENABLED"),
			Host:      viper.GetString("REDIS_HOST"),
			Port:      viper.GetInt("REDIS_PORT"),
			Password:  viper.GetString("REDIS_PASSWORD"),
			DB:        viper.GetInt("REDIS_DB"),
			KeyPrefix: viper.GetString("REDIS_KEY_PREFIX"),
		},
		Cache: CacheConfig{
			ProviderCacheTTL: time.Duration(viper.GetInt("PROVIDER_CACHE_TTL")) * time.Second,
		},
		Reports: ReportsConfig{
			Store:           strings.ToLower(strings.TrimSpace(viper.GetString("REPORT_STORE"))),
			TTL:             time.Duration(viper.GetInt("REPORT_TTL")) * time.Second,
			SweepSchedule:   viper.GetString("REPORT_SWEEP_SCHEDULE"),
			ExternalSweeper: viper.GetBool("REPORT_SWEEPER_EXTERNAL"),
		},
		Routing: RoutingConfig{
			RoughnessSeed: viper.GetUint64("ROUGHNESS_SEED"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults - значения по умолчанию для незаданных параметров
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.RateLimitMax == 0 {
		c.Server.RateLimitMax = 60
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "*"
	}
	if c.Maps.Provider == "" {
		c.Maps.Provider = "google"
	}
	if c.Maps.BaseURL == "" {
		switch c.Maps.Provider {
		case "mapbox":
			c.Maps.BaseURL = "https://api.mapbox.com"
		default:
			c.Maps.BaseURL = "https://maps.googleapis.com/maps/api"
		}
	}
	if c.Maps.TravelMode == "" {
		c.Maps.TravelMode = "walking"
	}
	if c.Maps.RequestTimeout == 0 {
		c.Maps.RequestTimeout = 15
	}
	if c.Provider.WaypointTimeout == 0 {
		c.Provider.WaypointTimeout = 8000 * time.Millisecond
	}
	if c.Provider.ElevationTimeout == 0 {
		c.Provider.ElevationTimeout = 4000 * time.Millisecond
	}
	if c.Provider.MaxParallel == 0 {
		c.Provider.MaxParallel = 6
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "skate:"
	}
	if c.Cache.ProviderCacheTTL == 0 {
		c.Cache.ProviderCacheTTL = 10 * time.Minute
	}
	if c.Reports.Store == "" {
		c.Reports.Store = "memory"
	}
	if c.Reports.SweepSchedule == "" {
		c.Reports.SweepSchedule = "@every 1m"
	}
	if c.Routing.RoughnessSeed == 0 {
		c.Routing.RoughnessSeed = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	switch c.Maps.Provider {
	case "google", "mapbox":
	default:
		return fmt.Errorf("unknown MAPS_PROVIDER %q", c.Maps.Provider)
	}
	switch c.Reports.Store {
	case "memory":
	case "redis":
		if !c.Redis.Enabled {
			return fmt.Errorf("REPORT_STORE=redis requires REDIS_ENABLED=true")
		}
	default:
		return fmt.Errorf("unknown REPORT_STORE %q", c.Reports.Store)
	}
	if c.Provider.MaxParallel < 0 {
		return fmt.Errorf("PROVIDER_MAX_PARALLEL must be positive, got %d", c.Provider.MaxParallel)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
