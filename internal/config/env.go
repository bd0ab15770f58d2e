package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	apperrors "scribe/internal/app/errors"
)

// Config is the process configuration, read once at startup and passed to
// constructors.
type Config struct {
	Environment string
	LogLevel    string

	Server   ServerConfig
	LLM      LLMConfig
	Deepgram DeepgramConfig
	Storage  StorageConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type LLMConfig struct {
	Provider string
	// KeyEnv names the environment variable the key was read from.
	KeyEnv  string
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type DeepgramConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	UploadDir string
	CSVPath   string
}

// RedisConfig enables record events when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	Channel  string
}

// MinIOConfig enables the upload archive when Endpoint is set.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}

// LLMConfigured reports whether an LLM API key is available.
func (c *Config) LLMConfigured() bool {
	return !isMissingKey(c.LLM.APIKey)
}

// DeepgramConfigured reports whether a Deepgram API key is available.
func (c *Config) DeepgramConfigured() bool {
	return !isMissingKey(c.Deepgram.APIKey)
}

// RequireLLM fails when the selected LLM provider has no usable key.
func (c *Config) RequireLLM() error {
	if !c.LLMConfigured() {
		return apperrors.ErrConfiguration.Withf("%s not configured; set it in the environment or a .env file", c.LLM.KeyEnv)
	}
	return nil
}

// RequireDeepgram fails when no Deepgram key is available.
func (c *Config) RequireDeepgram() error {
	if !c.DeepgramConfigured() {
		return apperrors.ErrConfiguration.Withf("DEEPGRAM_API_KEY not configured")
	}
	return nil
}

// LoadEnv loads environment variables from the first .env file found and
// returns its path, or "" when none exists. Variables already set in the
// process environment win.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", apperrors.ErrConfiguration.Wrap(err, fmt.Sprintf("load %s", envPath))
			}
			return envPath, nil
		}
	}

	return "", nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: strings.ToLower(getEnvOrDefault("ENVIRONMENT", "development")),
		LogLevel:    strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Server: ServerConfig{
			Host: getEnvOrDefault("HOST", DefaultHost),
		},
		Deepgram: DeepgramConfig{
			APIKey:  strings.TrimSpace(os.Getenv("DEEPGRAM_API_KEY")),
			BaseURL: strings.TrimRight(getEnvOrDefault("DEEPGRAM_BASE_URL", DefaultDeepgramBaseURL), "/"),
		},
		Storage: StorageConfig{
			UploadDir: getEnvOrDefault("UPLOAD_DIR", DefaultUploadDir),
			CSVPath:   getEnvOrDefault("CSV_PATH", DefaultCSVPath),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			Channel:  getEnvOrDefault("REDIS_CHANNEL", DefaultRedisChannel),
		},
		MinIO: MinIOConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnvOrDefault("MINIO_BUCKET", DefaultMinIOBucket),
		},
	}

	var err error
	if cfg.Server.Port, err = cast.ToIntE(getEnvOrDefault("PORT", strconv.Itoa(DefaultPort))); err != nil {
		return nil, apperrors.ErrConfiguration.Wrap(err, "PORT")
	}
	if err := ValidatePort(cfg.Server.Port, "server"); err != nil {
		return nil, apperrors.ErrConfiguration.Wrap(err, "PORT")
	}

	if cfg.MinIO.UseSSL, err = cast.ToBoolE(getEnvOrDefault("MINIO_USE_SSL", "false")); err != nil {
		return nil, apperrors.ErrConfiguration.Wrap(err, "MINIO_USE_SSL")
	}

	if err := loadLLM(cfg); err != nil {
		return nil, err
	}

	if err := ValidateURL(cfg.Deepgram.BaseURL, "Deepgram"); err != nil {
		return nil, apperrors.ErrConfiguration.Wrap(err, "DEEPGRAM_BASE_URL")
	}
	if cfg.Deepgram.Timeout, err = parseTimeout("DEEPGRAM_TIMEOUT", "Deepgram"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadLLM(cfg *Config) error {
	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", DefaultLLMProvider))
	if err := ValidateProvider(provider); err != nil {
		return apperrors.ErrConfiguration.Wrap(err, "LLM_PROVIDER")
	}
	defaults, _ := GetProviderDefaults(provider)

	cfg.LLM = LLMConfig{
		Provider: provider,
		KeyEnv:   defaults.KeyEnv,
		APIKey:   strings.TrimSpace(os.Getenv(defaults.KeyEnv)),
		Model:    getEnvOrDefault("LLM_MODEL", defaults.Model),
		BaseURL:  getEnvOrDefault("LLM_BASE_URL", defaults.BaseURL),
	}
	if cfg.LLM.BaseURL != "" {
		if err := ValidateURL(cfg.LLM.BaseURL, "LLM"); err != nil {
			return apperrors.ErrConfiguration.Wrap(err, "LLM_BASE_URL")
		}
	}

	timeout, err := parseTimeout("LLM_TIMEOUT", "LLM")
	if err != nil {
		return err
	}
	cfg.LLM.Timeout = timeout
	return nil
}

// parseTimeout accepts Go durations ("90s") or plain seconds ("90").
// Unset means no timeout.
func parseTimeout(key, name string) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}

	var timeout time.Duration
	if seconds, err := cast.ToFloat64E(raw); err == nil {
		timeout = time.Duration(seconds * float64(time.Second))
	} else if timeout, err = cast.ToDurationE(raw); err != nil {
		return 0, apperrors.ErrConfiguration.Wrap(err, key)
	}

	if err := ValidateTimeout(timeout, name); err != nil {
		return 0, apperrors.ErrConfiguration.Wrap(err, key)
	}
	return timeout, nil
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
