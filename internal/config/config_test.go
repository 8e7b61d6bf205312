package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, 5*time.Minute, cfg.FutureGrace())
	assert.Equal(t, 24*time.Hour, cfg.PastGrace())
	assert.Contains(t, cfg.DBPath, "worktime.db")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WORKTIME_TIMEZONE", "UTC")
	t.Setenv("WORKTIME_USER_ID", "u42")
	t.Setenv("WORKTIME_FUTURE_GRACE_MINUTES", "45")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "u42", cfg.UserID)
	assert.Equal(t, 45*time.Minute, cfg.FutureGrace())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worktime.yaml")
	content := "timezone: Europe/Berlin\nuser_id: from-file\npast_grace_hours: 48\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.UserID)
	assert.Equal(t, 48*time.Hour, cfg.PastGrace())
}

func TestLoad_BadTimezone(t *testing.T) {
	t.Setenv("WORKTIME_TIMEZONE", "Mars/Olympus")

	_, err := Load("")
	assert.Error(t, err)
}
