package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Pipeline PipelineConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Sources  SourcesConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string `envconfig:"PORT" default:"8080"`
	Host            string `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// PipelineConfig holds pipeline tuning that varies per deployment
type PipelineConfig struct {
	InternalDomains []string      `envconfig:"INTERNAL_DOMAINS" default:"ourcompany.com"`
	LookbackDays    int           `envconfig:"SOURCE_LOOKBACK_DAYS" default:"90"`
	SourceTimeout   time.Duration `envconfig:"SOURCE_TIMEOUT" default:"30s"`
	EnrichTimeout   time.Duration `envconfig:"ENRICH_TIMEOUT" default:"15s"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"account_intel"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"5"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string        `envconfig:"REDIS_PORT" default:"6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_DOSSIER_TTL" default:"1h"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	Expiry time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"account-intel"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// SourcesConfig holds upstream source provider configuration
type SourcesConfig struct {
	AssemblyAIKey      string `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	CallFeedURL        string `envconfig:"CALL_FEED_URL" default:""`
	CallFeedToken      string `envconfig:"CALL_FEED_TOKEN" default:""`
	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID" default:""`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET" default:""`
	GoogleRefreshToken string `envconfig:"GOOGLE_REFRESH_TOKEN" default:""`
	ChatExportURL      string `envconfig:"CHAT_EXPORT_URL" default:""`
	ChatExportToken    string `envconfig:"CHAT_EXPORT_TOKEN" default:""`
	EnrichmentURL      string `envconfig:"ENRICHMENT_URL" default:""`
	EnrichmentKey      string `envconfig:"ENRICHMENT_API_KEY" default:""`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Pipeline.InternalDomains) == 0 {
		return fmt.Errorf("INTERNAL_DOMAINS is required")
	}
	if c.Pipeline.LookbackDays <= 0 {
		return fmt.Errorf("SOURCE_LOOKBACK_DAYS must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
