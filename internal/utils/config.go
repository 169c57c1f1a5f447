package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrUnknownDriver = errors.New("unknown database driver")

type DatabaseConfig struct {
	Driver            string
	SQLitePath        string
	SQLiteBusyTimeout int
	PostgresHost      string
	PostgresPort      string
	PostgresUser      string
	PostgresPassword  string
	PostgresDB        string
	MaxOpenConns      int
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
			c.SQLitePath, c.SQLiteBusyTimeout*1000)
	}
	return "host=" + c.PostgresHost +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" port=" + c.PostgresPort + " sslmode=disable TimeZone=UTC"
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	// AllowedOrigins is empty when every origin is allowed
	AllowedOrigins []string
	// RateLimit is requests per second per client, 0 disables limiting
	RateLimit float64
	// TrustedProxies may set X-Forwarded-For; empty trusts no proxy
	TrustedProxies []string
}

// AdminConfig guards the Swagger UI. Both fields empty disables the guard.
type AdminConfig struct {
	Username string
	Password string
}

func (c *AdminConfig) Enabled() bool {
	return c.Username != "" && c.Password != ""
}

type LogConfig struct {
	Mode  string
	Level string
}

type Config struct {
	Database *DatabaseConfig
	Server   *ServerConfig
	Admin    *AdminConfig
	Log      *LogConfig
}

// LoadConfig reads the dotenv file if present, then builds the configuration
// from the process environment.
func LoadConfig(dotenvPath string) (*Config, error) {
	err := godotenv.Load(dotenvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	busyTimeout, err := intEnv("SQLITE_BUSY_TIMEOUT", 5)
	if err != nil {
		return nil, err
	}
	maxOpenConns, err := intEnv("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := intEnv("SERVER_SHUTDOWN_TIMEOUT", 10)
	if err != nil {
		return nil, err
	}
	rateLimit, err := floatEnv("RATE_LIMIT_RPS", 0)
	if err != nil {
		return nil, err
	}

	dbCfg := &DatabaseConfig{
		Driver:            strings.ToLower(stringEnv("DB_DRIVER", DriverSQLite)),
		SQLitePath:        stringEnv("SQLITE_PATH", "test.db"),
		SQLiteBusyTimeout: busyTimeout,
		PostgresHost:      stringEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:      stringEnv("POSTGRES_PORT", "5432"),
		PostgresUser:      os.Getenv("POSTGRES_USER"),
		PostgresPassword:  os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:        os.Getenv("POSTGRES_DB"),
		MaxOpenConns:      maxOpenConns,
	}
	if dbCfg.Driver != DriverSQLite && dbCfg.Driver != DriverPostgres {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, dbCfg.Driver)
	}

	serverCfg := &ServerConfig{
		Port:            stringEnv("SERVER_PORT", "5000"),
		ShutdownTimeout: time.Duration(shutdownTimeout) * time.Second,
		AllowedOrigins:  originsEnv("CORS_ALLOWED_ORIGINS"),
		RateLimit:       rateLimit,
		TrustedProxies:  listEnv("TRUSTED_PROXIES"),
	}
	adminCfg := &AdminConfig{
		Username: os.Getenv("ADMIN_USERNAME"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	logCfg := &LogConfig{
		Mode:  stringEnv("LOG_MODE", "production"),
		Level: stringEnv("LOG_LEVEL", "info"),
	}

	cfg := &Config{dbCfg, serverCfg, adminCfg, logCfg}
	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q: expected a non-negative integer", key, raw)
	}
	return v, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q: expected a non-negative number", key, raw)
	}
	return v, nil
}

func listEnv(key string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// originsEnv returns nil when the variable is unset, empty or contains "*".
func originsEnv(key string) []string {
	var origins []string
	for _, o := range strings.Split(os.Getenv(key), ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			return nil
		}
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
