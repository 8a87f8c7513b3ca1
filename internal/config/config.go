// README: Config loader with env defaults for HTTP, optional backends, and the route cache.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RoutingConfig struct {
	CacheTTL   time.Duration
	Region     string
	Language   string
	Components string // country restriction for autocomplete/geocoding

	BreakerFailures uint32
	BreakerCooldown time.Duration
}

type Config struct {
	Env  string
	HTTP struct {
		Addr         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		CORSOrigins  []string
	}
	DB struct {
		DSN     string
		Migrate bool
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey string
	}
	AI struct {
		GeminiKey string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	Sentry struct {
		DSN string
	}
	Routing RoutingConfig
}

// Load reads the process environment (and a .env file when present).
// Empty DSN, Redis address, API keys, Sentry DSN or Firebase project disable the matching subsystem.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.Env = envOrDefault("RIDECOMPARE_ENV", "development")
	cfg.HTTP.Addr = envOrDefault("RIDECOMPARE_HTTP_ADDR", ":8080")
	cfg.HTTP.ReadTimeout = envOrDefaultDuration("RIDECOMPARE_HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTP.WriteTimeout = envOrDefaultDuration("RIDECOMPARE_HTTP_WRITE_TIMEOUT", 15*time.Second)
	cfg.HTTP.CORSOrigins = envOrDefaultList("RIDECOMPARE_CORS_ORIGINS", []string{"http://localhost:3000"})
	cfg.DB.DSN = os.Getenv("RIDECOMPARE_DB_DSN")
	cfg.DB.Migrate = envOrDefaultBool("RIDECOMPARE_DB_MIGRATE", false)
	cfg.Redis.Addr = os.Getenv("RIDECOMPARE_REDIS_ADDR")
	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Firebase.ProjectID = os.Getenv("RIDECOMPARE_FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("RIDECOMPARE_FIREBASE_CREDENTIALS")
	cfg.Sentry.DSN = os.Getenv("SENTRY_DSN")
	cfg.Routing.CacheTTL = envOrDefaultDuration("RIDECOMPARE_ROUTE_CACHE_TTL", 10*time.Minute)
	cfg.Routing.Region = envOrDefault("RIDECOMPARE_REGION", "in")
	cfg.Routing.Language = envOrDefault("RIDECOMPARE_LANGUAGE", "en")
	cfg.Routing.Components = envOrDefault("RIDECOMPARE_COUNTRY", "in")
	cfg.Routing.BreakerFailures = uint32(envOrDefaultInt("RIDECOMPARE_MAPS_BREAKER_FAILURES", 5))
	cfg.Routing.BreakerCooldown = envOrDefaultDuration("RIDECOMPARE_MAPS_BREAKER_COOLDOWN", 30*time.Second)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return def
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
