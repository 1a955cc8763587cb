package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Database URLs
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string

	// Serving cache
	CacheTTL time.Duration

	// Relationship aggregation
	RelationshipMinGames uint64
}

// PipelineConfig configures a batch pipeline run. Unlike the server config
// it has no required variables: every path has a sensible default relative
// to the data directory.
type PipelineConfig struct {
	DataDir       string
	ExtractPath   string
	DetailPath    string
	WikiPath      string
	PatchDir      string
	ArchetypePath string
	OutDir        string

	Workers int

	// Classifier tuning
	MarksmanTieScore         float64
	MarksmanTieDPSPercentile float64

	// Optional: persist assignments when set
	PostgresURL string
}

// Load loads server configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		CacheTTL:             getEnvDuration("CACHE_TTL", 5*time.Minute),
		RelationshipMinGames: uint64(getEnvInt("RELATIONSHIP_MIN_GAMES", 50)),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadPipeline loads pipeline configuration. Nothing is required; POSTGRES_URL
// being unset just skips the assignment-store step.
func LoadPipeline() *PipelineConfig {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")
	return &PipelineConfig{
		DataDir:       dataDir,
		ExtractPath:   getEnv("EXTRACT_PATH", dataDir+"/damage_extract.json"),
		DetailPath:    getEnv("DETAIL_PATH", dataDir+"/champion_details.json"),
		WikiPath:      getEnv("WIKI_PATH", dataDir+"/wiki_details.json"),
		PatchDir:      getEnv("PATCH_DIR", dataDir+"/patches"),
		ArchetypePath: getEnv("ARCHETYPE_PATH", "config/archetypes.yaml"),
		OutDir:        getEnv("OUT_DIR", dataDir+"/out"),

		Workers: getEnvInt("WORKER_COUNT", 8),

		MarksmanTieScore:         getEnvFloat("MARKSMAN_TIE_SCORE", 0.95),
		MarksmanTieDPSPercentile: getEnvFloat("MARKSMAN_TIE_DPS_PERCENTILE", 0.75),

		PostgresURL: getEnv("POSTGRES_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
