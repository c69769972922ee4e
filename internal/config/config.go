// Package config loads the service configuration from an optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"

	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Supported backends
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverAMQP     = "amqp"
	DriverMinio    = "minio"
	DriverGCS      = "gcs"
	DriverNone     = ""
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Redis    RedisConfig    `yaml:"redis"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Storage  StorageConfig  `yaml:"storage"`
	Events   EventsConfig   `yaml:"events"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port               int           `yaml:"port"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	AllowOrigins       []string      `yaml:"allow_origins"`
	RateLimitPerSecond uint          `yaml:"rate_limit_per_second"`
}

// DatabaseConfig selects and configures the job and user store
type DatabaseConfig struct {
	Driver           string `yaml:"driver"`
	Host             string `yaml:"host"`
	Port             string `yaml:"port"`
	User             string `yaml:"user"`
	Password         string `yaml:"password"`
	Name             string `yaml:"name"`
	ConnectionString string `yaml:"connection_string"`
	UseConnectionStr bool   `yaml:"use_connection_string"`
	MongoURI         string `yaml:"mongo_uri"`
	MongoDatabase    string `yaml:"mongo_database"`
}

// AuthConfig holds token and account settings
type AuthConfig struct {
	Secret        string        `yaml:"secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	SecureCookie  bool          `yaml:"secure_cookie"`
	Revocation    string        `yaml:"revocation"`
	AdminEmail    string        `yaml:"admin_email"`
	AdminPassword string        `yaml:"admin_password"`
}

// RedisConfig holds the Redis connection URL
type RedisConfig struct {
	URL string `yaml:"url"`
}

// JobsConfig holds job listing and validation settings
type JobsConfig struct {
	PageLimit      int      `yaml:"page_limit"`
	MaxClientLimit int      `yaml:"max_client_limit"`
	Types          []string `yaml:"types"`
	MonthlyWindow  int      `yaml:"monthly_window"`
}

// StorageConfig holds the avatar object storage settings
type StorageConfig struct {
	Driver        string `yaml:"driver"`
	Bucket        string `yaml:"bucket"`
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	UseSSL        bool   `yaml:"use_ssl"`
	PublicBaseURL string `yaml:"public_base_url"`
}

// EventsConfig holds job event publishing settings
type EventsConfig struct {
	Driver   string `yaml:"driver"`
	Channel  string `yaml:"channel"`
	AMQPURL  string `yaml:"amqp_url"`
	Exchange string `yaml:"exchange"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               5100,
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       30 * time.Second,
			IdleTimeout:        time.Minute,
			ShutdownTimeout:    10 * time.Second,
			RateLimitPerSecond: 5,
		},
		Database: DatabaseConfig{
			Driver:        DriverPostgres,
			MongoDatabase: "job_tracker",
		},
		Auth: AuthConfig{
			TokenTTL:   24 * time.Hour,
			Revocation: DriverMemory,
		},
		Jobs: JobsConfig{
			PageLimit:     10,
			Types:         append([]string(nil), model.DefaultJobTypes...),
			MonthlyWindow: 6,
		},
		Events: EventsConfig{
			Channel:  "job-events",
			Exchange: "job-events",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML file at path when path is not empty, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []string
	setInt := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s must be an integer", key))
				return
			}
			*dst = n
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s must be a boolean", key))
				return
			}
			*dst = b
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s must be a duration", key))
				return
			}
			*dst = d
		}
	}
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	setList := func(key string, dst *[]string) {
		if v, ok := lookup(key); ok {
			*dst = splitList(v)
		}
	}

	setInt("PORT", &c.Server.Port)
	setList("ALLOW_ORIGIN", &c.Server.AllowOrigins)
	if v, ok := lookup("RATE_LIMIT_REQUESTS_PER_SECOND"); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			errs = append(errs, "RATE_LIMIT_REQUESTS_PER_SECOND must be a positive integer")
		} else {
			c.Server.RateLimitPerSecond = uint(n)
		}
	}

	setString("DB_DRIVER", &c.Database.Driver)
	setString("DB_HOST", &c.Database.Host)
	setString("DB_PORT", &c.Database.Port)
	setString("DB_USERNAME", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_DATABASE", &c.Database.Name)
	setString("DB_CONNECTION_STR", &c.Database.ConnectionString)
	setBool("USE_CONNECTION_STR", &c.Database.UseConnectionStr)
	setString("MONGO_URI", &c.Database.MongoURI)
	setString("MONGO_DB", &c.Database.MongoDatabase)

	setString("JWT_SECRET", &c.Auth.Secret)
	setDuration("JWT_EXPIRES_IN", &c.Auth.TokenTTL)
	setBool("SECURE_COOKIE", &c.Auth.SecureCookie)
	setString("TOKEN_REVOCATION", &c.Auth.Revocation)
	setString("ADMIN_EMAIL", &c.Auth.AdminEmail)
	setString("ADMIN_PASSWORD", &c.Auth.AdminPassword)

	setString("REDIS_URL", &c.Redis.URL)

	setInt("JOBS_PAGE_LIMIT", &c.Jobs.PageLimit)
	setInt("JOBS_MAX_CLIENT_LIMIT", &c.Jobs.MaxClientLimit)
	setList("JOB_TYPES", &c.Jobs.Types)
	setInt("JOBS_MONTHLY_WINDOW", &c.Jobs.MonthlyWindow)

	setString("STORAGE_DRIVER", &c.Storage.Driver)
	setString("STORAGE_BUCKET", &c.Storage.Bucket)
	setString("MINIO_ENDPOINT", &c.Storage.Endpoint)
	setString("MINIO_ACCESS_KEY", &c.Storage.AccessKey)
	setString("MINIO_SECRET_KEY", &c.Storage.SecretKey)
	setBool("MINIO_USE_SSL", &c.Storage.UseSSL)
	setString("STORAGE_PUBLIC_BASE_URL", &c.Storage.PublicBaseURL)

	setString("EVENTS_DRIVER", &c.Events.Driver)
	setString("EVENTS_CHANNEL", &c.Events.Channel)
	setString("AMQP_URL", &c.Events.AMQPURL)
	setString("AMQP_EXCHANGE", &c.Events.Exchange)

	setString("LOG_LEVEL", &c.Logging.Level)
	setString("LOG_FORMAT", &c.Logging.Format)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks if the configuration is usable by the API service
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.Auth.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.UseConnectionStr && c.Database.ConnectionString == "" {
			return fmt.Errorf("DB_CONNECTION_STR is empty")
		}
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("mongo uri is required")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	switch c.Auth.Revocation {
	case DriverMemory:
	case DriverRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("redis url is required for redis token revocation")
		}
	default:
		return fmt.Errorf("unknown token revocation backend %q", c.Auth.Revocation)
	}

	if c.Jobs.PageLimit < 1 {
		return fmt.Errorf("jobs page limit must be at least 1")
	}

	if c.Jobs.MaxClientLimit < 0 {
		return fmt.Errorf("jobs max client limit must not be negative")
	}

	if len(c.Jobs.Types) == 0 {
		return fmt.Errorf("at least one job type is required")
	}

	if c.Jobs.MonthlyWindow < 1 {
		return fmt.Errorf("jobs monthly window must be at least 1")
	}

	switch c.Storage.Driver {
	case DriverNone:
	case DriverMinio:
		if c.Storage.Endpoint == "" || c.Storage.Bucket == "" {
			return fmt.Errorf("minio endpoint and bucket are required")
		}
	case DriverGCS:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("gcs bucket is required")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Events.Driver {
	case DriverNone:
	case DriverRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("redis url is required for redis events")
		}
	case DriverAMQP:
		if c.Events.AMQPURL == "" {
			return fmt.Errorf("amqp url is required for amqp events")
		}
	default:
		return fmt.Errorf("unknown events driver %q", c.Events.Driver)
	}

	return nil
}

// IsRelease reports whether GIN_MODE is release
func IsRelease() bool {
	return strings.EqualFold(os.Getenv("GIN_MODE"), "release")
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
