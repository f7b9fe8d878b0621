package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/bbernstein/nearbystops/internal/postcode"
	"github.com/bbernstein/nearbystops/internal/runner"
	"github.com/bbernstein/nearbystops/internal/stoppoint"
)

const envPrefix = "NEARBYSTOPS"

type Config struct {
	Environment      string
	LogLevel         zerolog.Level
	HTTPTimeout      time.Duration `validate:"gte=0"`
	PostcodesBaseURL string        `validate:"required,url"`
	TfL              TfLConfig
	StopCount        int `validate:"gte=0"`
}

// TfLConfig holds the stop search settings. AppID and AppKey may be empty.
type TfLConfig struct {
	BaseURL   string `validate:"required,url"`
	AppID     string
	AppKey    string
	Radius    int    `validate:"gt=0"`
	StopTypes string `validate:"required"`
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil || level == "" {
			parsedLevel = zerolog.WarnLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout. Zero means no client-side timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

func WithPostcodesBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.PostcodesBaseURL = baseURL
	}
}

func WithTfLBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.TfL.BaseURL = baseURL
	}
}

// WithTfLCredentials sets the app id and key sent with every stop search.
func WithTfLCredentials(appID, appKey string) Option {
	return func(c *Config) {
		c.TfL.AppID = appID
		c.TfL.AppKey = appKey
	}
}

func WithSearchRadius(radius int) Option {
	return func(c *Config) {
		c.TfL.Radius = radius
	}
}

func WithStopTypes(stopTypes string) Option {
	return func(c *Config) {
		c.TfL.StopTypes = stopTypes
	}
}

func WithStopCount(count int) Option {
	return func(c *Config) {
		c.StopCount = count
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:      "production",
		LogLevel:         zerolog.WarnLevel,
		HTTPTimeout:      0,
		PostcodesBaseURL: postcode.DefaultBaseURL,
		TfL: TfLConfig{
			BaseURL:   stoppoint.DefaultBaseURL,
			Radius:    stoppoint.DefaultRadius,
			StopTypes: stoppoint.DefaultStopTypes,
		},
		StopCount: runner.DefaultStopCount,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

var validate = validator.New()

// Validate checks URLs and numeric bounds. Credentials are not checked.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// InitializeLogging sets up logging based on the configuration. Logs go to
// stderr so stdout only carries the prompt and the stop names.
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).
			With().
			Timestamp().
			Logger()
	}

	zerolog.DefaultContextLogger = &log.Logger
}

// Load reads configuration from an optional config.yaml and NEARBYSTOPS_*
// environment variables, e.g. NEARBYSTOPS_TFL_APP_KEY for tfl.app_key.
func Load() (*Config, error) {
	v := viper.New()

	defaults := New()
	v.SetDefault("env", defaults.Environment)
	v.SetDefault("log.level", defaults.LogLevel.String())
	v.SetDefault("http.timeout", defaults.HTTPTimeout)
	v.SetDefault("postcodes.base_url", defaults.PostcodesBaseURL)
	v.SetDefault("tfl.base_url", defaults.TfL.BaseURL)
	v.SetDefault("tfl.app_id", "")
	v.SetDefault("tfl.app_key", "")
	v.SetDefault("tfl.radius", defaults.TfL.Radius)
	v.SetDefault("tfl.stop_types", defaults.TfL.StopTypes)
	v.SetDefault("stops.count", defaults.StopCount)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.nearbystops")
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := New(
		WithEnvironment(v.GetString("env")),
		WithLogLevel(v.GetString("log.level")),
		WithHTTPTimeout(v.GetDuration("http.timeout")),
		WithPostcodesBaseURL(v.GetString("postcodes.base_url")),
		WithTfLBaseURL(v.GetString("tfl.base_url")),
		WithTfLCredentials(v.GetString("tfl.app_id"), v.GetString("tfl.app_key")),
		WithSearchRadius(v.GetInt("tfl.radius")),
		WithStopTypes(v.GetString("tfl.stop_types")),
		WithStopCount(v.GetInt("stops.count")),
	)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LogConfiguration writes the loaded settings at debug level. Call it after
// InitializeLogging so the configured level applies. The app key is never logged.
func (c *Config) LogConfiguration() {
	log.Debug().
		Str("env", c.Environment).
		Dur("http_timeout", c.HTTPTimeout).
		Str("postcodes_base_url", c.PostcodesBaseURL).
		Str("tfl_base_url", c.TfL.BaseURL).
		Bool("tfl_app_key_set", c.TfL.AppKey != "").
		Int("radius", c.TfL.Radius).
		Int("stop_count", c.StopCount).
		Msg("Configuration loaded")
}
