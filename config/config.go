package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherdesk.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	Weather WeatherConfig `split_words:"true"`
	Geo     GeoConfig     `split_words:"true"`
	Storage StorageConfig `split_words:"true"`
	Client  ClientConfig  `split_words:"true"`
	Refresh RefreshConfig `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// WeatherConfig contains settings for the weather data provider
type WeatherConfig struct {
	APIKey  string `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
}

// GeoConfig contains settings for the IP geolocation provider
type GeoConfig struct {
	BaseURL string `envconfig:"GEO_API_BASE_URL" default:"http://ip-api.com/json"`
}

// StorageType identifies the key/value persistence backend
type StorageType string

const (
	StorageTypeFile     StorageType = "file"
	StorageTypeRedis    StorageType = "redis"
	StorageTypePostgres StorageType = "postgres"
)

// StorageConfig contains settings for the persistence substrate
type StorageConfig struct {
	Type     StorageType    `envconfig:"STORAGE_TYPE" default:"file"`
	FilePath string         `envconfig:"STORAGE_FILE_PATH" default:"weatherdesk.db"`
	Redis    RedisConfig    `split_words:"true"`
	Postgres PostgresConfig `split_words:"true"`
}

// RedisConfig contains redis connection settings
type RedisConfig struct {
	Addr         string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"REDIS_PASSWORD" default:""`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// PostgresConfig contains postgres connection settings
type PostgresConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"weatherdesk"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode)
}

// ClientConfig contains lookup client behavior settings
type ClientConfig struct {
	HistoryLimit int           `envconfig:"HISTORY_LIMIT" default:"6"`
	NoticeTTL    time.Duration `envconfig:"NOTICE_TTL" default:"3s"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

// RefreshConfig contains settings for background re-fetching of the active location
type RefreshConfig struct {
	Interval time.Duration `envconfig:"REFRESH_INTERVAL" default:"0"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Geo.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Client.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks weather provider configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	if w.BaseURL == "" {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks geolocation provider configuration
func (g *GeoConfig) Validate() error {
	if g.BaseURL == "" {
		return errors.NewConfigurationError("GEO_API_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(g.BaseURL, "http://") && !strings.HasPrefix(g.BaseURL, "https://") {
		return errors.NewConfigurationError("GEO_API_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks storage configuration
func (s *StorageConfig) Validate() error {
	switch s.Type {
	case StorageTypeFile:
		if s.FilePath == "" {
			return errors.NewConfigurationError("STORAGE_FILE_PATH cannot be empty", nil)
		}
	case StorageTypeRedis:
		if s.Redis.Addr == "" {
			return errors.NewConfigurationError("REDIS_ADDR cannot be empty", nil)
		}
	case StorageTypePostgres:
		if err := s.Postgres.Validate(); err != nil {
			return err
		}
	default:
		return errors.NewConfigurationError(
			fmt.Sprintf("STORAGE_TYPE must be one of: %s, %s, %s",
				StorageTypeFile, StorageTypeRedis, StorageTypePostgres), nil)
	}
	return nil
}

// Validate checks postgres configuration
func (p *PostgresConfig) Validate() error {
	if p.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if p.Port < 1 || p.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if p.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if p.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if p.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks client behavior configuration
func (c *ClientConfig) Validate() error {
	if c.HistoryLimit < 1 {
		return errors.NewConfigurationError("HISTORY_LIMIT must be at least 1", nil)
	}
	if c.NoticeTTL <= 0 {
		return errors.NewConfigurationError("NOTICE_TTL must be positive", nil)
	}
	if c.HTTPTimeout <= 0 {
		return errors.NewConfigurationError("HTTP_TIMEOUT must be positive", nil)
	}
	return nil
}
