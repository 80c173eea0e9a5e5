package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// EnvPrefix is stripped from every environment variable read by Load.
const EnvPrefix = "LANDING_"

const (
	DefaultTrackingEndpoint = "https://collection.apinext.in/forms/metadata"
	DefaultIPLookupTimeout  = 3 * time.Second
	DefaultRequestTimeout   = 10 * time.Second
)

// DefaultIPLookupServices is the ordered fallback chain used to discover a public address.
var DefaultIPLookupServices = []string{
	"https://api.ipify.org?format=json",
	"https://api64.ipify.org?format=json",
	"https://ipapi.co/json/",
}

type Config struct {
	Environment    string   `koanf:"environment" validate:"oneof=development production test"`
	ServerPort     string   `koanf:"server_port" validate:"required,numeric"`
	AppURL         string   `koanf:"app_url" validate:"required,url"`
	LogLevel       string   `koanf:"log_level" validate:"oneof=debug info warn error"`
	AllowedOrigins []string `koanf:"allowed_origins"`

	// Lead CRM
	APIHost  string `koanf:"api_host" validate:"omitempty,url"`
	ClientID string `koanf:"client_id"`
	APIKey   string `koanf:"api_key"`

	// Click tracking
	TrackingEndpoint  string `koanf:"tracking_endpoint" validate:"required,url"`
	TrackingClientID  string `koanf:"tracking_client_id"`
	TrackingProjectID string `koanf:"tracking_project_id"`
	TrackingAPIKey    string `koanf:"tracking_api_key"`

	// Outbound HTTP
	IPLookupServices []string      `koanf:"ip_lookup_services" validate:"dive,url"`
	IPLookupTimeout  time.Duration `koanf:"ip_lookup_timeout" validate:"gt=0"`
	// ServerIPLookup also queries IPLookupServices from the server when
	// neither the request nor the browser supplied a public address.
	ServerIPLookup bool `koanf:"server_ip_lookup"`
	RequestTimeout   time.Duration `koanf:"request_timeout" validate:"gt=0"`

	DefaultLanguage string `koanf:"default_language" validate:"oneof=en es"`

	// Media storage (local directory or Cloudflare R2)
	MediaDir          string `koanf:"media_dir" validate:"required"`
	R2AccountID       string `koanf:"r2_account_id"`
	R2AccessKeyID     string `koanf:"r2_access_key_id"`
	R2SecretAccessKey string `koanf:"r2_secret_access_key"`
	R2BucketName      string `koanf:"r2_bucket_name"`
	R2PublicURL       string `koanf:"r2_public_url" validate:"omitempty,url"`
}

// Load reads configuration from the environment (and an optional .env file).
// Invalid configuration is fatal.
func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

// FromEnv builds and validates a Config from LANDING_* environment variables.
func FromEnv() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Environment = withDefault("ENVIRONMENT", c.Environment, "development")
	c.ServerPort = withDefault("SERVER_PORT", c.ServerPort, "8080")
	c.AppURL = withDefault("APP_URL", c.AppURL, "http://localhost:"+c.ServerPort)
	c.LogLevel = withDefault("LOG_LEVEL", c.LogLevel, "info")
	c.TrackingEndpoint = withDefault("TRACKING_ENDPOINT", c.TrackingEndpoint, DefaultTrackingEndpoint)
	c.DefaultLanguage = withDefault("DEFAULT_LANGUAGE", c.DefaultLanguage, "en")
	c.MediaDir = withDefault("MEDIA_DIR", c.MediaDir, "static/media")

	c.APIHost = strings.TrimSuffix(strings.TrimSpace(c.APIHost), "/")

	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{c.AppURL}
	}
	if len(c.IPLookupServices) == 0 {
		c.IPLookupServices = append([]string{}, DefaultIPLookupServices...)
	}
	if c.IPLookupTimeout <= 0 {
		c.IPLookupTimeout = DefaultIPLookupTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
}

func withDefault(key, value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		log.Debug().Msgf("Using default value for %s%s: %s", EnvPrefix, key, defaultValue)
		return defaultValue
	}
	return value
}

// Validate checks field formats and, in production, that the CRM credentials are present.
// Credentials have no built-in fallback: a production deploy without them must not start.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.IsProduction() {
		required := map[string]string{
			"API_HOST":  c.APIHost,
			"CLIENT_ID": c.ClientID,
			"API_KEY":   c.APIKey,
		}
		var missing []string
		for _, key := range []string{"API_HOST", "CLIENT_ID", "API_KEY"} {
			if err := validate.Var(required[key], "required"); err != nil {
				missing = append(missing, EnvPrefix+key)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required production settings: %s", strings.Join(missing, ", "))
		}
	}

	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// TrackingEnabled reports whether click tracking has an identity to report under.
func (c *Config) TrackingEnabled() bool {
	return c.TrackingClientID != ""
}

// R2Configured reports whether every Cloudflare R2 setting is present.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}
