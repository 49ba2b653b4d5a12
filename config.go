package access

import (
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvSigningSecret       = "ACCESS_SIGNING_SECRET"
	EnvTokenTTL            = "ACCESS_TOKEN_TTL"
	EnvTokenIssuer         = "ACCESS_TOKEN_ISSUER"
	EnvBcryptCost          = "ACCESS_BCRYPT_COST"
	EnvMaxConcurrentHashes = "ACCESS_MAX_CONCURRENT_HASHES"
)

// DefaultTokenTTL is the token lifetime when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// Config carries the process-wide settings. The signing secret and TTL are
// established at startup and never rotated within a running instance.
type Config struct {
	SigningSecret       string
	TokenTTL            time.Duration
	Issuer              string
	BcryptCost          int
	MaxConcurrentHashes int
}

// DefaultConfig returns a config with everything except the secret filled in.
func DefaultConfig() Config {
	return Config{
		TokenTTL:            DefaultTokenTTL,
		BcryptCost:          DefaultHashCost,
		MaxConcurrentHashes: DefaultMaxConcurrentHashes,
	}
}

// ConfigFromEnv loads the config from the process environment, falling back
// to defaults for everything but the signing secret.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.SigningSecret = os.Getenv(EnvSigningSecret)
	cfg.Issuer = os.Getenv(EnvTokenIssuer)

	if raw := os.Getenv(EnvTokenTTL); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, errors.Wrap(err, errors.CategoryValidation, "invalid "+EnvTokenTTL)
		}
		cfg.TokenTTL = ttl
	}

	if raw := os.Getenv(EnvBcryptCost); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, errors.Wrap(err, errors.CategoryValidation, "invalid "+EnvBcryptCost)
		}
		cfg.BcryptCost = cost
	}

	if raw := os.Getenv(EnvMaxConcurrentHashes); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, errors.Wrap(err, errors.CategoryValidation, "invalid "+EnvMaxConcurrentHashes)
		}
		cfg.MaxConcurrentHashes = limit
	}

	return cfg, cfg.Validate()
}

// Validate will run validation rules
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(
			&c.SigningSecret,
			validation.Required,
			validation.Length(16, 0),
		),
		validation.Field(
			&c.TokenTTL,
			validation.Required,
			validation.Min(time.Minute),
		),
	)
}
