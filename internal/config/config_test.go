package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("MAX_UPLOAD_MB", "")
		t.Setenv("CORS_ALLOWED_ORIGINS", "")

		cfg := Load()

		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
		assert.Equal(t, 3*time.Second, cfg.OutboxInterval)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("APP_ENV", "production")
		t.Setenv("DB_AUTO_MIGRATE", "true")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
		t.Setenv("APP_TIMEZONE", "UTC")
		t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "12345")

		cfg := Load()

		assert.Equal(t, "8080", cfg.Port)
		assert.True(t, cfg.IsProduction())
		assert.True(t, cfg.DB.AutoMigrate)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
		assert.Equal(t, time.UTC, cfg.Timezone)
		assert.Equal(t, int64(12345), cfg.Telegram.AdminChatID)
	})

	t.Run("negative invalid values fall back", func(t *testing.T) {
		t.Setenv("MAX_UPLOAD_MB", "abc")
		t.Setenv("OUTBOX_POLL_INTERVAL", "soon")
		t.Setenv("APP_TIMEZONE", "Mars/Olympus")

		cfg := Load()

		assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
		assert.Equal(t, 3*time.Second, cfg.OutboxInterval)
		assert.Equal(t, time.UTC, cfg.Timezone)
	})
}
