package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the service.
// Empty integration keys disable the matching adapter; the service
// then runs on its deterministic fallbacks.
type Config struct {
	Port        string
	DatabaseURL string
	AutoMigrate bool
	SeedPath    string

	ORSAPIKey  string
	ORSBaseURL string

	GoogleMapsAPIKey string

	GeminiAPIKey string
	GeminiModel  string

	NominatimBaseURL   string
	NominatimUserAgent string
	NominatimRPS       float64

	RedisAddr string

	KafkaBrokers []string
	KafkaTopic   string

	ProviderTimeout             time.Duration
	PerishabilityExternalWeight float64
	MatchLimit                  int
	ScoringConcurrency          int
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	return Config{
		Port:        Get("PORT", "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AutoMigrate: GetBool("AUTO_MIGRATE", true),
		SeedPath:    Get("SEED_PATH", "data/seeds"),

		ORSAPIKey:  strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		ORSBaseURL: Get("ORS_BASE_URL", "https://api.openrouteservice.org"),

		GoogleMapsAPIKey: strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),

		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:  Get("GEMINI_MODEL", "gemini-2.0-flash"),

		NominatimBaseURL:   Get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: Get("NOMINATIM_USER_AGENT", "food_rescue_route_ai"),
		NominatimRPS:       GetFloat("NOMINATIM_RPS", 1),

		RedisAddr: strings.TrimSpace(os.Getenv("REDIS_ADDR")),

		KafkaBrokers: GetList("KAFKA_BROKERS"),
		KafkaTopic:   Get("KAFKA_TOPIC", "food-rescue.events"),

		ProviderTimeout:             GetDuration("PROVIDER_TIMEOUT", 10*time.Second),
		PerishabilityExternalWeight: GetFloat("PERISHABILITY_EXTERNAL_WEIGHT", 0.5),
		MatchLimit:                  GetInt("MATCH_LIMIT", 5),
		ScoringConcurrency:          GetInt("SCORING_CONCURRENCY", 8),
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func GetFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(Get(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func GetBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(Get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(Get(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// GetList splits a comma separated variable, dropping empty items.
func GetList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
