package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	SQLite  SQLiteConfig  `mapstructure:"sqlite"`
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	OTP     OTPConfig     `mapstructure:"otp"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig configures the advisory API client.
// Timeout, Retry and RateLimit are disabled at their zero values.
type APIConfig struct {
	BaseURL   string          `mapstructure:"base_url"`
	UserAgent string          `mapstructure:"user_agent"`
	Timeout   time.Duration   `mapstructure:"timeout"`
	Retry     RetryConfig     `mapstructure:"retry"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RetryConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// SessionConfig selects where the access token lives between invocations.
type SessionConfig struct {
	Store         string        `mapstructure:"store"`
	Profile       string        `mapstructure:"profile"`
	Path          string        `mapstructure:"path"`
	EncryptionKey string        `mapstructure:"encryption_key"`
	TTL           time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// DSN returns a modernc.org/sqlite connection string with WAL and a busy timeout.
func (c SQLiteConfig) DSN() string {
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", c.Path)
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MiddlewareTimeout time.Duration `mapstructure:"middleware_timeout"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
}

type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type OTPConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	MaxAttempts int           `mapstructure:"max_attempts"`

	// Static, when set, replaces the random code. Development only.
	Static string `mapstructure:"static"`

	// SendLimit > 0 throttles send-otp per phone number through Redis.
	SendLimit  int           `mapstructure:"send_limit"`
	SendWindow time.Duration `mapstructure:"send_window"`
}

type LoggingConfig struct {
	Level        string        `mapstructure:"level"`
	Format       string        `mapstructure:"format"`
	File         string        `mapstructure:"file"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags is Load with command-line overrides. Flags that were not
// set on the command line do not shadow file or environment values.
func LoadWithFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set config file path
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	// Override with environment variables
	v.AutomaticEnv()
	bindEnvVars(v)

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// isNotFound reports whether err means the config file is simply absent.
// viper returns ConfigFileNotFoundError only for search paths; an explicit
// SetConfigFile yields a *fs.PathError instead.
func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return os.IsNotExist(err)
}

func setDefaults(v *viper.Viper) {
	// API client
	v.SetDefault("api.base_url", "http://localhost:8000/api/v1")
	v.SetDefault("api.user_agent", "cropctl/1.0")
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("api.retry.max_attempts", 0)
	v.SetDefault("api.retry.initial_backoff", "200ms")
	v.SetDefault("api.retry.max_backoff", "5s")
	v.SetDefault("api.rate_limit.requests_per_second", 0)
	v.SetDefault("api.rate_limit.burst", 1)

	// Session
	v.SetDefault("session.store", "file")
	v.SetDefault("session.profile", "default")
	v.SetDefault("session.path", defaultSessionPath())
	v.SetDefault("session.ttl", "0s")

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// SQLite
	v.SetDefault("sqlite.path", "./cropctl.db")

	// Development server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.middleware_timeout", "60s")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})

	// Auth
	v.SetDefault("auth.jwt_secret", "dev-secret-change-in-production!")
	v.SetDefault("auth.access_token_ttl", "30m")

	// OTP
	v.SetDefault("otp.ttl", "5m")
	v.SetDefault("otp.max_attempts", 3)
	v.SetDefault("otp.send_limit", 0)
	v.SetDefault("otp.send_window", "10m")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "auto")
	v.SetDefault("logging.max_age", "168h") // 7 days
	v.SetDefault("logging.rotation_time", "24h")
}

func bindEnvVars(v *viper.Viper) {
	// API
	v.BindEnv("api.base_url", "API_URL")

	// Session
	v.BindEnv("session.encryption_key", "SESSION_ENCRYPTION_KEY")
	v.BindEnv("session.store", "SESSION_STORE")

	// Redis
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Auth
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"api-url":       "api.base_url",
	"session-store": "session.store",
	"profile":       "session.profile",
	"log-level":     "logging.level",
	"timeout":       "api.timeout",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".cropctl-session.json"
	}
	return dir + string(os.PathSeparator) + "cropctl" + string(os.PathSeparator) + "session.json"
}
