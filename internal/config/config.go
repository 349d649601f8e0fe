// Package config loads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

var (
	ErrAPIURLNotSet    = errors.New("environment variable API_URL must be set")
	ErrAPIURLInvalid   = errors.New("environment variable API_URL must be a valid URL")
	ErrDatabaseDriver  = errors.New("DB_DRIVER must be one of 'sqlite' or 'postgres'")
	ErrJWTSecretNotSet = errors.New("environment variable JWT_SECRET must be set")
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	APIURL            *url.URL
	Port              string
	DatabaseDriver    string
	DatabaseDSN       string
	JWTSecret         string
	JWTIssuer         string
	CORSAllowOrigins  []string
	EnablePprof       bool
	RateLimit         string // ulule/limiter format, e.g. "300-M". Empty disables rate limiting.
	DefaultCategories bool   // Create the default category groups for new owners
}

// Load reads the configuration from a .env file, if present, and the environment.
//
// Values set in the environment take precedence over the .env file.
func Load() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_DSN", "data/tracker.db")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("CORS_ALLOW_ORIGINS", "")
	v.SetDefault("ENABLE_PPROF", false)
	v.SetDefault("RATE_LIMIT", "")
	v.SetDefault("DEFAULT_CATEGORIES", true)
	v.AutomaticEnv()

	apiURL := v.GetString("API_URL")
	if apiURL == "" {
		return nil, ErrAPIURLNotSet
	}

	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: '%s'", ErrAPIURLInvalid, apiURL)
	}

	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	if !slices.Contains([]string{DriverSQLite, DriverPostgres}, driver) {
		return nil, fmt.Errorf("%w, got '%s'", ErrDatabaseDriver, driver)
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, ErrJWTSecretNotSet
	}

	cfg := &Config{
		APIURL:            parsed,
		Port:              v.GetString("PORT"),
		DatabaseDriver:    driver,
		DatabaseDSN:       v.GetString("DB_DSN"),
		JWTSecret:         secret,
		JWTIssuer:         v.GetString("JWT_ISSUER"),
		CORSAllowOrigins:  strings.Fields(v.GetString("CORS_ALLOW_ORIGINS")),
		EnablePprof:       v.GetBool("ENABLE_PPROF"),
		RateLimit:         v.GetString("RATE_LIMIT"),
		DefaultCategories: v.GetBool("DEFAULT_CATEGORIES"),
	}

	log.Debug().
		Str("api-url", cfg.APIURL.String()).
		Str("db-driver", cfg.DatabaseDriver).
		Bool("pprof", cfg.EnablePprof).
		Str("rate-limit", cfg.RateLimit).
		Msg("Config")

	return cfg, nil
}
