package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_NAME", "PORT", "STORE_DRIVER", "UPLOAD_BACKEND", "UPLOAD_DIR",
		"MAX_BODY_BYTES", "BCRYPT_COST", "DB_MAX_CONN_LIFETIME", "CORS_ALLOWED_ORIGINS", "TRUSTED_PROXIES"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "noticeboard", cfg.AppName)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, UploadLocal, cfg.UploadBackend)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, time.Hour, cfg.DBMaxConnLife)
	assert.True(t, cfg.AllowAllOrigins())
	assert.Nil(t, cfg.TrustedProxyList())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("DB_MAX_CONN_LIFETIME", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example ,")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 5*time.Minute, cfg.DBMaxConnLife)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins())
	assert.False(t, cfg.AllowAllOrigins())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "ten")
	t.Setenv("GZIP_ENABLED", "maybe")
	t.Setenv("DB_MAX_CONN_LIFETIME", "forever")
	t.Setenv("MAX_BODY_BYTES", "big")

	cfg := Load()
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.GzipEnabled)
	assert.Equal(t, time.Hour, cfg.DBMaxConnLife)
	assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:1/n?sslmode=disable", cfg.PostgresDSN())
}

func TestAllowAllOrigins_Wildcard(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "http://a.example,*"}
	assert.True(t, cfg.AllowAllOrigins())
}

func TestTrustedProxyList(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1,")
	cfg := Load()
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxyList())
}
