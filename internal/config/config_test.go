package config

import (
	"testing"
	"time"
)

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"all empty", []string{"", "   "}, ""},
		{"first non empty", []string{"foo", "bar"}, "foo"},
		{"skips whitespace", []string{"   ", "bar"}, "bar"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := firstNonEmpty(tt.values...); got != tt.want {
				t.Fatalf("firstNonEmpty(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestParseIntWithDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		def   int
		want  int
	}{
		{"blank returns default", "", 7, 7},
		{"invalid returns default", "abc", 3, 3},
		{"valid parses value", "42", 0, 42},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseIntWithDefault(tt.value, tt.def); got != tt.want {
				t.Fatalf("parseIntWithDefault(%q, %d) = %d, want %d", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseDurationWithDefault(t *testing.T) {
	t.Parallel()

	def := 5 * time.Second
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"blank returns default", "", def},
		{"invalid returns default", "nonsense", def},
		{"valid parses", "2m", 2 * time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseDurationWithDefault(tt.value, def); got != tt.want {
				t.Fatalf("parseDurationWithDefault(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseBoolWithDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		def   bool
		want  bool
	}{
		{"blank returns default", "", true, true},
		{"invalid returns default", "nope", false, false},
		{"valid parses", "true", false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseBoolWithDefault(tt.value, tt.def); got != tt.want {
				t.Fatalf("parseBoolWithDefault(%q, %t) = %t, want %t", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := splitList(" http://a.example , ,http://b.example")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("splitList() = %v", got)
	}
	if got := splitList(""); got != nil {
		t.Fatalf("splitList(\"\") = %v, want nil", got)
	}
}

func TestLoadUsesEnvironmentDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "10")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "100")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "1h")
	t.Setenv("DATABASE_CONN_MAX_IDLE_TIME", "30m")
	t.Setenv("DATABASE_USE_MOCK", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,http://studio.local")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("SESSION_LIFETIME", "45m")
	t.Setenv("SESSION_COOKIE_NAME", "custom_session")
	t.Setenv("SESSION_COOKIE_DOMAIN", "example.com")
	t.Setenv("SESSION_COOKIE_SECURE", "false")
	t.Setenv("COMPOSITION_ENFORCE_TOTAL", "true")
	t.Setenv("STUDIO_THEME", "nocturne")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":5001" {
		t.Fatalf("Server.Addr = %q, want %q", cfg.Server.Addr, ":5001")
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Fatalf("Server.AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Studio.Theme != "nocturne" {
		t.Fatalf("Studio.Theme = %q, want nocturne", cfg.Studio.Theme)
	}
	if cfg.Server.RateLimitRPS != 0 {
		t.Fatalf("Server.RateLimitRPS = %d, want 0", cfg.Server.RateLimitRPS)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Fatalf("Database.Driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.URL != "postgres://example" {
		t.Fatalf("Database.URL = %q", cfg.Database.URL)
	}
	if cfg.Database.MaxIdleConns != 10 {
		t.Fatalf("Database.MaxIdleConns = %d", cfg.Database.MaxIdleConns)
	}
	if cfg.Database.MaxOpenConns != 100 {
		t.Fatalf("Database.MaxOpenConns = %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.ConnMaxLifetime != time.Hour {
		t.Fatalf("Database.ConnMaxLifetime = %s", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Database.ConnMaxIdleTime != 30*time.Minute {
		t.Fatalf("Database.ConnMaxIdleTime = %s", cfg.Database.ConnMaxIdleTime)
	}
	if !cfg.Database.UseMock {
		t.Fatalf("Database.UseMock = %t, want true", cfg.Database.UseMock)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Fatalf("Logging.Format = %q", cfg.Logging.Format)
	}
	if cfg.Session.Lifetime != 45*time.Minute {
		t.Fatalf("Session.Lifetime = %s", cfg.Session.Lifetime)
	}
	if cfg.Session.CookieName != "custom_session" {
		t.Fatalf("Session.CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.Session.CookieDomain != "example.com" {
		t.Fatalf("Session.CookieDomain = %q", cfg.Session.CookieDomain)
	}
	if cfg.Session.CookieSecure {
		t.Fatalf("Session.CookieSecure = %t, want false", cfg.Session.CookieSecure)
	}
	if !cfg.Composition.EnforceTotal {
		t.Fatalf("Composition.EnforceTotal = %t, want true", cfg.Composition.EnforceTotal)
	}
}

func TestLoadDefaultsToSQLite(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("DATABASE_USE_MOCK", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Fatalf("Database.Driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.URL != defaultSQLiteURL {
		t.Fatalf("Database.URL = %q, want %q", cfg.Database.URL, defaultSQLiteURL)
	}
}

func TestLoadRejectsPostgresWithoutURL(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("DATABASE_USE_MOCK", "false")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() error = nil, want missing url error")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() error = nil, want unsupported driver error")
	}
}

func TestLoadPrefersServerAddr(t *testing.T) {
	t.Setenv("SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_URL", "file::memory:")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:9000")
	}
}

func TestLoadFallsBackToPort(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("ADDR", "")
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_DRIVER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Fatalf("Server.Addr = %q, want %q", cfg.Server.Addr, ":7000")
	}
}
