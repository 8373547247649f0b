package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`
	RedisURL    string `mapstructure:"REDIS_URL"`
	// SeedDemoData loads the demo prescriptions into the in-memory store.
	SeedDemoData bool `mapstructure:"SEED_DEMO_DATA"`

	AnalysisCacheTTL time.Duration `mapstructure:"ANALYSIS_CACHE_TTL"`
	AnalysisDelay    time.Duration `mapstructure:"ANALYSIS_DELAY"`
	// ProducerDelay stands in for transcription and image analysis latency.
	ProducerDelay time.Duration `mapstructure:"PRODUCER_DELAY"`

	AuthSigningKey string `mapstructure:"AUTH_SIGNING_KEY"`
	AuthIssuer     string `mapstructure:"AUTH_ISSUER"`
	AuthAudience   string `mapstructure:"AUTH_AUDIENCE"`

	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int           `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	BodyLimit      string        `mapstructure:"BODY_LIMIT"`

	MatchKeywordWeight     int `mapstructure:"MATCH_KEYWORD_WEIGHT"`
	MatchDescriptionWeight int `mapstructure:"MATCH_DESCRIPTION_WEIGHT"`
	MatchCodeWeight        int `mapstructure:"MATCH_CODE_WEIGHT"`
	MatchLimit             int `mapstructure:"MATCH_LIMIT"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"REDIS_URL", "SEED_DEMO_DATA", "ANALYSIS_CACHE_TTL", "ANALYSIS_DELAY", "PRODUCER_DELAY",
	"AUTH_SIGNING_KEY", "AUTH_ISSUER", "AUTH_AUDIENCE", "CORS_ORIGINS",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REQUEST_TIMEOUT", "BODY_LIMIT",
	"MATCH_KEYWORD_WEIGHT", "MATCH_DESCRIPTION_WEIGHT", "MATCH_CODE_WEIGHT", "MATCH_LIMIT",
}

// Load reads .env (if present) and the environment. Environment variables
// win over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("ANALYSIS_CACHE_TTL", 10*time.Minute)
	v.SetDefault("ANALYSIS_DELAY", time.Duration(0))
	v.SetDefault("PRODUCER_DELAY", time.Duration(0))
	v.SetDefault("AUTH_ISSUER", "erx")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("REQUEST_TIMEOUT", 30*time.Second)
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("MATCH_KEYWORD_WEIGHT", 10)
	v.SetDefault("MATCH_DESCRIPTION_WEIGHT", 20)
	v.SetDefault("MATCH_CODE_WEIGHT", 50)
	v.SetDefault("MATCH_LIMIT", 5)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDatabase reports whether prescriptions live in PostgreSQL rather than
// process memory.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// Validate checks that the configuration is safe to run. Outside
// development every request is authenticated with a JWT, so a signing key
// of at least 32 bytes is required.
func (c *Config) Validate() error {
	if !c.IsDev() {
		if c.AuthSigningKey == "" {
			return fmt.Errorf("AUTH_SIGNING_KEY is required when ENV=%q", c.Env)
		}
		if len(c.AuthSigningKey) < 32 {
			return fmt.Errorf("AUTH_SIGNING_KEY must be at least 32 bytes, got %d", len(c.AuthSigningKey))
		}
	}

	weights := map[string]int{
		"MATCH_KEYWORD_WEIGHT":     c.MatchKeywordWeight,
		"MATCH_DESCRIPTION_WEIGHT": c.MatchDescriptionWeight,
		"MATCH_CODE_WEIGHT":        c.MatchCodeWeight,
		"MATCH_LIMIT":              c.MatchLimit,
	}
	for _, k := range []string{"MATCH_KEYWORD_WEIGHT", "MATCH_DESCRIPTION_WEIGHT", "MATCH_CODE_WEIGHT", "MATCH_LIMIT"} {
		if weights[k] <= 0 {
			return fmt.Errorf("%s must be positive, got %d", k, weights[k])
		}
	}

	if c.AnalysisDelay < 0 {
		return fmt.Errorf("ANALYSIS_DELAY must not be negative")
	}
	if c.ProducerDelay < 0 {
		return fmt.Errorf("PRODUCER_DELAY must not be negative")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}
