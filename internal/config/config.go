package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything the hosting environment supplies.
type AppConfig struct {
	// OpenWeatherAPIKey authenticates both provider endpoints. Required;
	// a missing key is a startup error, never a per-request failure.
	OpenWeatherAPIKey string

	// OpenWeatherBaseURL overrides the provider root, mainly for tests.
	OpenWeatherBaseURL string

	// HTTPTimeout bounds outbound provider calls.
	HTTPTimeout time.Duration

	// GeolocationTimeout bounds how long a device-coordinate lookup waits.
	GeolocationTimeout time.Duration

	// PrefetchCities are warmed into the cache at the top of each hour.
	// Empty disables the prefetch job.
	PrefetchCities []string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	cfg.OpenWeatherBaseURL = os.Getenv("OPENWEATHER_BASE_URL")

	httpTimeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	httpTimeout, err := time.ParseDuration(httpTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = httpTimeout

	geoTimeoutStr := getenvDefault("GEOLOCATION_TIMEOUT", "5s")
	geoTimeout, err := time.ParseDuration(geoTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOLOCATION_TIMEOUT: %w", err)
	}
	cfg.GeolocationTimeout = geoTimeout

	cfg.PrefetchCities = splitCities(os.Getenv("PREFETCH_CITIES"))
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func splitCities(raw string) []string {
	if raw == "" {
		return nil
	}
	var cities []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	return cities
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
