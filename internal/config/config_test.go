package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/viper"

	"universo/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	c := qt.New(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load(viper.New())
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.HTTPAddr, qt.Equals, ":3000")
	c.Assert(cfg.Database, qt.DeepEquals, config.Database{Driver: config.DriverSQLite, URL: "universo.db"})
	c.Assert(cfg.Auth.TokenTTL, qt.Equals, 8*time.Hour)
	c.Assert(cfg.AllowedOrigins, qt.DeepEquals, []string{"http://localhost:5173"})
	c.Assert(cfg.Seed.AdminEmail, qt.Equals, "admin@universo.com")
	c.Assert(cfg.Report.Interval, qt.Equals, time.Duration(0))
	c.Assert(cfg.Telegram.Enabled(), qt.IsFalse)
}

func TestLoadFromEnvironment(t *testing.T) {
	c := qt.New(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://app@localhost/universo")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://universo-app.vercel.app")
	t.Setenv("REPORT_INTERVAL_HOURS", "6")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")

	cfg, err := config.Load(viper.New())
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.HTTPAddr, qt.Equals, ":8080")
	c.Assert(cfg.Database.Driver, qt.Equals, config.DriverPostgres)
	c.Assert(cfg.Auth.TokenTTL, qt.Equals, 30*time.Minute)
	c.Assert(cfg.AllowedOrigins, qt.DeepEquals, []string{"http://localhost:5173", "https://universo-app.vercel.app"})
	c.Assert(cfg.Report.Interval, qt.Equals, 6*time.Hour)
	c.Assert(cfg.Telegram.Enabled(), qt.IsTrue)
	c.Assert(cfg.Telegram.ChatID, qt.Equals, int64(-100200))
}

func TestLoadConfigFile(t *testing.T) {
	c := qt.New(t)
	t.Setenv("JWT_SECRET", "from-env")

	path := filepath.Join(t.TempDir(), "universo.yaml")
	c.Assert(os.WriteFile(path, []byte(`
http:
  addr: "127.0.0.1:9000"
cors:
  allowed_origins:
    - http://a.example
    - http://b.example
log:
  level: debug
`), 0o600), qt.IsNil)

	v := viper.New()
	v.SetConfigFile(path)
	c.Assert(v.ReadInConfig(), qt.IsNil)

	cfg, err := config.Load(v)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.HTTPAddr, qt.Equals, "127.0.0.1:9000")
	c.Assert(cfg.AllowedOrigins, qt.DeepEquals, []string{"http://a.example", "http://b.example"})
	c.Assert(cfg.Log.Level, qt.Equals, "debug")
	c.Assert(cfg.Auth.JWTSecret, qt.Equals, "from-env")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing secret",
			env:  map[string]string{"JWT_SECRET": ""},
			want: "JWT_SECRET is required",
		},
		{
			name: "unknown driver",
			env:  map[string]string{"JWT_SECRET": "x", "DATABASE_DRIVER": "oracle"},
			want: `unsupported database driver "oracle"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(viper.New())
			c.Assert(err, qt.ErrorMatches, tt.want)
		})
	}
}
