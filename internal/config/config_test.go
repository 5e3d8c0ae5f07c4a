package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"ADDRESS", "PORT", "DEBUG", "ROOT_DIR", "USE_KEY", "KEY", "USER_URL",
		"TITLE", "USE_CORS", "RESPONSE_MODE", "REPORT_SCHEDULE",
		"TEAMS_WEBHOOK_URL", "NOTIFICATION_EMAIL", "SMTP_HOST", "SMTP_PORT",
		"SMTP_USERNAME", "SMTP_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/files", cfg.RootDir)
	assert.False(t, cfg.UseKey)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.UserURL)
	assert.Equal(t, "QuickDrop", cfg.Title)
	assert.False(t, cfg.UseCORS)
	assert.Equal(t, ResponseModeRedirect, cfg.ResponseMode)
	assert.False(t, cfg.DigestEnabled())
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROOT_DIR", "/srv/drop")
	t.Setenv("USE_KEY", "true")
	t.Setenv("KEY", "secret123")
	t.Setenv("USER_URL", "https://drop.example.com/")
	t.Setenv("TITLE", "Drop")
	t.Setenv("USE_CORS", "1")
	t.Setenv("RESPONSE_MODE", "HTML")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/drop", cfg.RootDir)
	assert.True(t, cfg.UseKey)
	assert.Equal(t, "secret123", cfg.Key)
	assert.Equal(t, "https://drop.example.com", cfg.UserURL)
	assert.Equal(t, "Drop", cfg.Title)
	assert.True(t, cfg.UseCORS)
	assert.Equal(t, ResponseModeHTML, cfg.ResponseMode)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr())
}

func TestLoad_UserURLFollowsBindAddress(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDRESS", "0.0.0.0")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://0.0.0.0:8080", cfg.UserURL)
}

func TestLoad_InvalidBoolFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("USE_KEY", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.UseKey)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "Key enabled without key",
			env:  map[string]string{"USE_KEY": "true"},
		},
		{
			name: "Unknown response mode",
			env:  map[string]string{"RESPONSE_MODE": "json"},
		},
		{
			name: "Unknown schedule",
			env:  map[string]string{"REPORT_SCHEDULE": "hourly", "TEAMS_WEBHOOK_URL": "http://hook"},
		},
		{
			name: "Schedule without channel",
			env:  map[string]string{"REPORT_SCHEDULE": "daily"},
		},
		{
			name: "Email without SMTP",
			env:  map[string]string{"NOTIFICATION_EMAIL": "ops@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_DigestWithEmail(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORT_SCHEDULE", "weekly")
	t.Setenv("NOTIFICATION_EMAIL", "ops@example.com")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "bot@example.com")
	t.Setenv("SMTP_PASSWORD", "pw")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.DigestEnabled())
	assert.Equal(t, 2525, cfg.SMTPPort)
}
