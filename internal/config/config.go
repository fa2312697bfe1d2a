package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Env             string
	HTTPAddr        string
	GRPCAddr        string
	ShutdownTimeout time.Duration

	StorageBackend   string
	StorageNamespace string
	MemoryQuotaBytes int
	RedisAddr        string
	MySQLDSN         string

	CatalogURL        string
	PlacesURL         string
	PlacesAPIKey      string
	HTTPClientTimeout time.Duration

	// DefaultLocation seeds the store locator when both DEFAULT_LAT and
	// DEFAULT_LNG are set.
	DefaultLocation *[2]float64
}

const (
	defaultEnv               = "development"
	defaultHTTPAddr          = ":8080"
	defaultGRPCAddr          = ":50051"
	defaultShutdownTimeout   = 5 * time.Second
	defaultStorageBackend    = "memory"
	defaultStorageNamespace  = "shoplist"
	defaultMemoryQuotaBytes  = 5 << 20
	defaultRedisAddr         = "localhost:6379"
	defaultMySQLDSN          = "root:root@tcp(localhost:3306)/shoplist?parseTime=true"
	defaultCatalogURL        = "https://fakestoreapi.com"
	defaultPlacesURL         = "https://places.googleapis.com/v1/places:searchNearby"
	defaultHTTPClientTimeout = 10 * time.Second
)

// Load reads configuration values from the environment, applying defaults where necessary.
func Load() (Config, error) {
	cfg := Config{
		Env:      getEnv("APP_ENV", defaultEnv),
		HTTPAddr: getEnv("HTTP_ADDR", defaultHTTPAddr),
		GRPCAddr: getEnv("GRPC_ADDR", defaultGRPCAddr),

		StorageBackend:   strings.ToLower(getEnv("STORAGE_BACKEND", defaultStorageBackend)),
		StorageNamespace: getEnv("STORAGE_NAMESPACE", defaultStorageNamespace),
		RedisAddr:        getEnv("REDIS_ADDR", defaultRedisAddr),
		MySQLDSN:         getEnv("MYSQL_DSN", defaultMySQLDSN),

		CatalogURL:   getEnv("CATALOG_URL", defaultCatalogURL),
		PlacesURL:    getEnv("PLACES_URL", defaultPlacesURL),
		PlacesAPIKey: os.Getenv("PLACES_API_KEY"),
	}

	var err error
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return Config{}, err
	}
	if cfg.HTTPClientTimeout, err = getDuration("HTTP_CLIENT_TIMEOUT", defaultHTTPClientTimeout); err != nil {
		return Config{}, err
	}
	if cfg.MemoryQuotaBytes, err = getInt("MEMORY_QUOTA_BYTES", defaultMemoryQuotaBytes); err != nil {
		return Config{}, err
	}
	if cfg.MemoryQuotaBytes < 0 {
		return Config{}, fmt.Errorf("invalid MEMORY_QUOTA_BYTES: must not be negative")
	}

	switch cfg.StorageBackend {
	case "memory", "redis", "mysql":
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND value: %s", cfg.StorageBackend)
	}

	lat := strings.TrimSpace(os.Getenv("DEFAULT_LAT"))
	lng := strings.TrimSpace(os.Getenv("DEFAULT_LNG"))
	if (lat == "") != (lng == "") {
		return Config{}, fmt.Errorf("DEFAULT_LAT and DEFAULT_LNG must be set together")
	}
	if lat != "" {
		la, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DEFAULT_LAT: %w", err)
		}
		ln, err := strconv.ParseFloat(lng, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DEFAULT_LNG: %w", err)
		}
		cfg.DefaultLocation = &[2]float64{la, ln}
	}

	return cfg, nil
}

func getEnv(key string, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// getDuration parses a positive duration such as "5s" or "250ms".
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
