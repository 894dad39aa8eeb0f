package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config keeps runtime settings for the server.
type Config struct {
	HTTPAddr       string
	Database       Database
	Auth           Auth
	AllowedOrigins []string
	Seed           Seed
	Report         Report
	Telegram       Telegram
	Log            Log
}

// Database selects the store.
type Database struct {
	Driver string
	URL    string
}

// Auth configures token issuance.
type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Seed names the default sector and administrator created on first start.
type Seed struct {
	SectorName    string
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Report schedules the periodic digest. Both zero values disable it.
type Report struct {
	Interval time.Duration
	DailyAt  string
}

// Telegram is where scheduled digests are delivered.
type Telegram struct {
	Token  string
	ChatID int64
}

// Enabled reports whether digests should be sent to Telegram.
func (t Telegram) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// Log configures the application logger.
type Log struct {
	Level  string
	Format string
}

// env maps every config key to the environment variables that may set it.
var env = map[string][]string{
	"http.addr":             {"HTTP_ADDR", "PORT"},
	"database.driver":       {"DATABASE_DRIVER"},
	"database.url":          {"DATABASE_URL"},
	"auth.jwt_secret":       {"JWT_SECRET"},
	"auth.token_ttl":        {"TOKEN_TTL"},
	"cors.allowed_origins":  {"CORS_ALLOWED_ORIGINS"},
	"seed.sector_name":      {"SEED_SECTOR_NAME"},
	"seed.admin_name":       {"SEED_ADMIN_NAME"},
	"seed.admin_email":      {"SEED_ADMIN_EMAIL"},
	"seed.admin_password":   {"SEED_ADMIN_PASSWORD"},
	"report.interval_hours": {"REPORT_INTERVAL_HOURS"},
	"report.daily_at":       {"REPORT_DAILY_AT"},
	"telegram.token":        {"TELEGRAM_TOKEN"},
	"telegram.chat_id":      {"TELEGRAM_CHAT_ID"},
	"log.level":             {"LOG_LEVEL"},
	"log.format":            {"LOG_FORMAT"},
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":3000")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "universo.db")
	v.SetDefault("auth.token_ttl", "8h")
	v.SetDefault("cors.allowed_origins", "http://localhost:5173")
	v.SetDefault("seed.sector_name", "Administración")
	v.SetDefault("seed.admin_name", "Admin")
	v.SetDefault("seed.admin_email", "admin@universo.com")
	v.SetDefault("seed.admin_password", "admin123")
	v.SetDefault("report.interval_hours", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load reads configuration from v (flags, config file, environment) with sane
// defaults.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	for key, names := range env {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	cfg := Config{
		HTTPAddr: normalizeAddr(strings.TrimSpace(v.GetString("http.addr"))),
		Database: Database{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
			URL:    strings.TrimSpace(v.GetString("database.url")),
		},
		Auth: Auth{
			JWTSecret: strings.TrimSpace(v.GetString("auth.jwt_secret")),
			TokenTTL:  v.GetDuration("auth.token_ttl"),
		},
		AllowedOrigins: splitList(v.GetStringSlice("cors.allowed_origins")),
		Seed: Seed{
			SectorName:    strings.TrimSpace(v.GetString("seed.sector_name")),
			AdminName:     strings.TrimSpace(v.GetString("seed.admin_name")),
			AdminEmail:    strings.ToLower(strings.TrimSpace(v.GetString("seed.admin_email"))),
			AdminPassword: v.GetString("seed.admin_password"),
		},
		Report: Report{
			Interval: parseInterval(strings.TrimSpace(v.GetString("report.interval_hours"))),
			DailyAt:  strings.TrimSpace(v.GetString("report.daily_at")),
		},
		Telegram: Telegram{
			Token:  strings.TrimSpace(v.GetString("telegram.token")),
			ChatID: v.GetInt64("telegram.chat_id"),
		},
		Log: Log{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
		},
	}

	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return cfg, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Database.URL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.Auth.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 8 * time.Hour
	}

	return cfg, nil
}

// normalizeAddr accepts a bare port as PORT-style platforms provide it.
func normalizeAddr(addr string) string {
	if addr != "" && !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}

// splitList flattens a config list whose items may themselves be
// comma-separated, as they are when set through the environment.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
