// Package config loads the service configuration from the environment.
//
// Variables are read with the ATTENDANCE_ prefix (optionally from a
// `.env` file), mapped into the Config struct, defaulted and validated
// so the process fails fast on bad or missing values.
//
// Nesting uses a double underscore:
//
//	ATTENDANCE_PRIMARY__ENV=local            -> primary.env
//	ATTENDANCE_DATABASE__SSL_MODE=disable    -> database.ssl_mode
//	ATTENDANCE_LIFECYCLE__DEDUPE_INTERVAL=1h -> lifecycle.dedupe_interval
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "ATTENDANCE_"

// ServiceName identifies this service in logs and traces.
const ServiceName = "attendance-bot"

// Config is the root configuration object for the application.
//
// Observability is a pointer so a nil value can be told apart from a
// zero one; Load always leaves it populated.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Bot           BotConfig            `koanf:"bot" validate:"required"`
	Lifecycle     LifecycleConfig      `koanf:"lifecycle" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP command API. Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// URL, when set, is used verbatim as the connection string and the
// individual host/port/user fields are ignored.
type DatabaseConfig struct {
	URL             string `koanf:"url"`
	Host            string `koanf:"host" validate:"required_without=URL"`
	Port            int    `koanf:"port" validate:"required_without=URL"`
	User            string `koanf:"user" validate:"required_without=URL"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required_without=URL"`
	SSLMode         string `koanf:"ssl_mode" validate:"required_without=URL"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required,min=1"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required,min=1"`
}

// RedisConfig contains Redis connection details. Redis backs the
// assignment drafts and the on-demand sweep queue.
type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// BotConfig holds settings of the command layer.
type BotConfig struct {
	// AdminToken gates the admin-only commands (add/remove module, etc.).
	AdminToken string `koanf:"admin_token" validate:"required,min=16"`

	// SourceURL is returned by the "source" command.
	SourceURL string `koanf:"source_url" validate:"omitempty,url"`

	// DraftTTL bounds how long a two-step code assignment may stay open.
	DraftTTL time.Duration `koanf:"draft_ttl" validate:"min=1s"`

	// CodeRateLimit is the sustained code submissions per second per client.
	CodeRateLimit float64 `koanf:"code_rate_limit" validate:"gt=0"`
}

// LifecycleConfig controls code expiry, deduplication and the default
// window of the "codes" command.
type LifecycleConfig struct {
	// ExpireAfter is the age after which the expiry sweep deletes a code.
	ExpireAfter time.Duration `koanf:"expire_after" validate:"min=1m"`

	// ExpireInterval is the pause between two expiry sweeps.
	ExpireInterval time.Duration `koanf:"expire_interval" validate:"min=1s"`

	// DedupeInterval is the pause between two deduplication sweeps and
	// therefore the longest a duplicate code can live.
	DedupeInterval time.Duration `koanf:"dedupe_interval" validate:"min=1s"`

	// ListLookBack and ListLookAhead bound the default listing window
	// around "now".
	ListLookBack  time.Duration `koanf:"list_look_back" validate:"min=1m"`
	ListLookAhead time.Duration `koanf:"list_look_ahead" validate:"min=0"`

	// SweepOnStart runs both sweeps once when the scheduler starts.
	SweepOnStart bool `koanf:"sweep_on_start"`
}

// DefaultConfig returns the values used for anything the environment
// does not set.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "local"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Name:            "attendance",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		Bot: BotConfig{
			SourceURL:     "https://github.com/Scot-Survivor/AttendanceCodeBot",
			DraftTTL:      10 * time.Minute,
			CodeRateLimit: 1,
		},
		Lifecycle: LifecycleConfig{
			ExpireAfter:    24 * time.Hour,
			ExpireInterval: 24 * time.Hour,
			DedupeInterval: time.Hour,
			ListLookBack:   2 * time.Hour,
			ListLookAhead:  time.Hour,
			SweepOnStart:   true,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey maps ATTENDANCE_DATABASE__SSL_MODE to database.ssl_mode.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Load reads the environment into a Config, applies defaults and
// validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	// Fields absent from the environment keep their default.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are not configurable on their own.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()

	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
