// Package config provides centralized configuration management for the
// inventory service. Settings come from environment variables (optionally
// overlaid from a .env file by the binaries) with defaults, and are validated
// on startup so misconfiguration fails fast.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Import   ImportConfig
	Export   ExportConfig
	Cache    CacheConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Audit    AuditConfig
	Worker   WorkerConfig
	Catalog  CatalogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required).
	// DATABASE_URL and DB_URL are both accepted.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// RedisConfig holds the Redis connection used by the query cache and the
// background job queue. An empty Addr disables both: the cache falls back to
// memory and imports run inline.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" default:"0"`
}

// Enabled reports whether a Redis address is configured.
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// AuthConfig holds session and credential settings.
type AuthConfig struct {
	// JWTSecret signs session tokens (HS256). At least 32 characters.
	JWTSecret string `env:"AUTH_JWT_SECRET" envAlt:"JWT_SECRET"`

	// TokenTTL is how long an issued token stays valid (default: 8h)
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" default:"8h"`

	// Issuer is the iss claim written into tokens.
	Issuer string `env:"AUTH_ISSUER" default:"sistema-patrimonial"`

	// Users is the placeholder allow-list, one entry per user in the form
	// email|role|bcrypt-hash, comma separated.
	Users []string `env:"AUTH_USERS"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum upload size in bytes (default: 10MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of imports processed at once (default: 3)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"3"`

	// MaxWaitTime is how long a request waits for an import slot (default: 30s)
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"30s"`

	// BatchSize is the number of assets inserted per batch (default: 10)
	BatchSize int `env:"IMPORT_BATCH_SIZE" default:"10"`

	// Timeout bounds a single import (default: 5m)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"5m"`

	// DecimalSeparator is the separator used in money columns (default: ",")
	DecimalSeparator string `env:"IMPORT_DECIMAL_SEPARATOR" default:","`
}

// ExportConfig holds file export formatting settings.
type ExportConfig struct {
	Delimiter      string `env:"EXPORT_DELIMITER" default:","`
	CurrencySymbol string `env:"EXPORT_CURRENCY_SYMBOL" default:"R$"`
	DateLayout     string `env:"EXPORT_DATE_LAYOUT" default:"02/01/2006"`
	ExportedBy     string `env:"EXPORT_EXPORTED_BY" default:"Sistema de Estoque da Clínica"`
	Version        string `env:"EXPORT_VERSION" default:"1.0"`
}

// CacheConfig holds query cache settings.
type CacheConfig struct {
	Enabled    bool          `env:"CACHE_ENABLED" default:"true"`
	MaxEntries int           `env:"CACHE_MAX_ENTRIES" default:"50"`
	TTL        time.Duration `env:"CACHE_TTL" default:"5m"`
	KeyPrefix  string        `env:"CACHE_KEY_PREFIX" default:"patrimonio:assets:"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ImportLimit is requests per minute for import endpoints (default: 10)
	ImportLimit int `env:"RATE_LIMIT_IMPORT" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// AuditConfig holds audit log retention settings.
type AuditConfig struct {
	// RetentionDays is how long audit entries are kept (default: 365)
	RetentionDays int `env:"AUDIT_RETENTION_DAYS" default:"365"`

	// BatchSize is rows deleted per purge statement (default: 5000)
	BatchSize int `env:"AUDIT_PURGE_BATCH_SIZE" default:"5000"`

	// CheckInterval is how often the purge job runs (default: 24h)
	CheckInterval time.Duration `env:"AUDIT_CHECK_INTERVAL" default:"24h"`
}

// WorkerConfig holds background worker settings.
type WorkerConfig struct {
	Concurrency int    `env:"WORKER_CONCURRENCY" default:"5"`
	Queue       string `env:"WORKER_QUEUE" default:"default"`
}

// CatalogConfig points at the YAML file with the form option lists. An
// empty path uses the embedded defaults.
type CatalogConfig struct {
	Path string `env:"CATALOG_PATH"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
