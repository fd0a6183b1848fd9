package config

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

// Config captures the runtime configuration for the application.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	Session     SessionConfig
	Composition CompositionConfig
	Studio      StudioConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	RateLimitRPS   int
	RateLimitBurst int
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	Driver          string
	URL             string
	UseMock         bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoggingConfig selects the verbosity and output format of the process logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// SessionConfig configures the cookie session that carries studio drafts.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// CompositionConfig toggles server-side checks on composition writes.
type CompositionConfig struct {
	// EnforceTotal rejects compositions whose volume is not 50 or 100 ml or
	// whose details do not add up to the declared total.
	EnforceTotal bool
}

// StudioConfig selects the look of the studio pages.
type StudioConfig struct {
	Theme string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLiteURL = "file:parfumerie.db?_foreign_keys=on"
)

// Load inspects the environment and builds a Config value. Variables from an
// optional .env file in the working directory are applied first without
// overriding anything already exported.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			portAddr(os.Getenv("PORT")),
			":5001",
		),
		AllowedOrigins: splitList(firstNonEmpty(os.Getenv("ALLOWED_ORIGINS"), "*")),
		RateLimitRPS:   parseIntWithDefault(os.Getenv("RATE_LIMIT_RPS"), 0),
		RateLimitBurst: parseIntWithDefault(os.Getenv("RATE_LIMIT_BURST"), 20),
	}

	driver := strings.ToLower(firstNonEmpty(os.Getenv("DATABASE_DRIVER"), DriverSQLite))
	defaultURL := ""
	if driver == DriverSQLite {
		defaultURL = defaultSQLiteURL
	}
	cfg.Database = DatabaseConfig{
		Driver: driver,
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			defaultURL,
		),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 5),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 25),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 30*time.Minute),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 5*time.Minute),
	}

	cfg.Logging = LoggingConfig{
		Level:  firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		Format: firstNonEmpty(os.Getenv("LOG_FORMAT"), "text"),
	}

	cfg.Session = SessionConfig{
		Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
		CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "parfumerie_session"),
		CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
		CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), false),
	}

	cfg.Composition = CompositionConfig{
		EnforceTotal: parseBoolWithDefault(os.Getenv("COMPOSITION_ENFORCE_TOTAL"), false),
	}

	cfg.Studio = StudioConfig{
		Theme: firstNonEmpty(os.Getenv("STUDIO_THEME"), "atelier"),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if !cfg.Database.UseMock && strings.TrimSpace(cfg.Database.URL) == "" {
		return Config{}, fmt.Errorf("database url must be set for driver %s", cfg.Database.Driver)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func portAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ""
	}
	return ":" + port
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
