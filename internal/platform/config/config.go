// Package config loads the host settings for the form scripts from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	dErrors "cadastro/pkg/domain-errors"
	"cadastro/pkg/validation"
)

// DefaultPostalLookupBaseURL is the public ViaCEP endpoint.
const DefaultPostalLookupBaseURL = "https://viacep.com.br"

// Config captures everything a host needs to wire the form.
type Config struct {
	// PostalLookupBaseURL is the root of a ViaCEP-compatible service.
	PostalLookupBaseURL string `json:"POSTAL_LOOKUP_BASE_URL" validate:"required,http_url"`
	// PostalLookupTimeout bounds each lookup. Zero leaves requests unbounded.
	PostalLookupTimeout time.Duration `json:"POSTAL_LOOKUP_TIMEOUT" validate:"gte=0s"`
	// LookupOnKeystroke also runs the lookup from the postal field's text-changed event.
	LookupOnKeystroke bool   `json:"LOOKUP_ON_KEYSTROKE"`
	LogLevel          string `json:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	FakeViaCEPAddr    string `json:"FAKE_VIACEP_ADDR" validate:"required"`
	// MetricsAddr serves /metrics when set.
	MetricsAddr string `json:"METRICS_ADDR"`
}

// Load reads an optional .env file at path, then builds the config from the environment.
// A missing .env file is not an error; variables already set win over the file.
func Load(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return Config{}, dErrors.Wrap(err, dErrors.CodeConfig, "failed to read "+path)
		}
	}
	return FromEnv()
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Config{
		PostalLookupBaseURL: getEnv("POSTAL_LOOKUP_BASE_URL", DefaultPostalLookupBaseURL),
		LogLevel:            strings.ToLower(os.Getenv("LOG_LEVEL")),
		FakeViaCEPAddr:      getEnv("FAKE_VIACEP_ADDR", ":8089"),
		MetricsAddr:         os.Getenv("METRICS_ADDR"),
	}
	cfg.PostalLookupBaseURL = strings.TrimRight(cfg.PostalLookupBaseURL, "/")

	if v := os.Getenv("POSTAL_LOOKUP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, dErrors.Wrap(err, dErrors.CodeConfig, "POSTAL_LOOKUP_TIMEOUT must be a duration")
		}
		cfg.PostalLookupTimeout = d
	}

	if v := os.Getenv("LOOKUP_ON_KEYSTROKE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, dErrors.Wrap(err, dErrors.CodeConfig, "LOOKUP_ON_KEYSTROKE must be a boolean")
		}
		cfg.LookupOnKeystroke = b
	}

	if err := validation.Validate(cfg); err != nil {
		return Config{}, &dErrors.Error{
			Code:    dErrors.CodeConfig,
			Field:   dErrors.FieldOf(err),
			Message: err.Error(),
			Err:     err,
		}
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
