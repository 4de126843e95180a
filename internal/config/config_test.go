package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvBackend, EnvURL, EnvTimeout, EnvPriorities, EnvNoColor} {
		if v, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
	// Keep a stray .env in the package directory out of the picture.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, DefaultSettings(), cfg.Settings)
	assert.Equal(t, BackendREST, cfg.Backend)
	assert.Equal(t, "http://localhost:8000", cfg.URL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.True(t, cfg.Priorities)
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}

func TestPaths(t *testing.T) {
	cfg := &Config{Dir: "/cfg"}
	assert.Equal(t, "/cfg/config.yaml", cfg.ConfigPath())
	assert.Equal(t, "/cfg/oauth_client.json", cfg.OAuthClientPath())
	assert.Equal(t, "/cfg/token.json", cfg.TokenPath())
}

func TestNew_ReadsConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "backend: googletasks\nurl: http://tasks.internal:9000\ntimeout: 2s\npriorities: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600))

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendGoogleTasks, cfg.Backend)
	assert.Equal(t, "http://tasks.internal:9000", cfg.URL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.False(t, cfg.Priorities)
	// Unset keys keep their defaults.
	assert.True(t, cfg.Color)
}

func TestNew_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("url: http://from-file\n"), 0600))

	t.Setenv(EnvURL, "http://from-env:8000")
	t.Setenv(EnvTimeout, "0s")
	t.Setenv(EnvPriorities, "off")
	t.Setenv(EnvNoColor, "1")

	cfg, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:8000", cfg.URL)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.False(t, cfg.Priorities)
	assert.False(t, cfg.Color)
}

func TestNew_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(EnvFile, []byte(EnvURL+"=http://dotenv:8000\n"), 0600))
	t.Cleanup(func() { os.Unsetenv(EnvURL) })

	cfg, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv:8000", cfg.URL)
}

func TestNew_InvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown backend", map[string]string{EnvBackend: "sqlite"}, "unknown backend: sqlite"},
		{"bad timeout", map[string]string{EnvTimeout: "soon"}, "invalid " + EnvTimeout},
		{"bad priorities", map[string]string{EnvPriorities: "maybe"}, "invalid " + EnvPriorities},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := New(t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteSettings_RoundTrip(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := &Config{Dir: dir}

	s := DefaultSettings()
	s.URL = "http://example.test"
	s.Timeout = 3 * time.Second
	require.NoError(t, cfg.WriteSettings(s))
	assert.True(t, cfg.HasConfigFile())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())

	loaded, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, s, loaded.Settings)
}

func TestTokenFiles(t *testing.T) {
	cfg := &Config{Dir: t.TempDir()}
	assert.False(t, cfg.HasOAuthClient())
	assert.False(t, cfg.HasToken())

	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600))
	assert.True(t, cfg.HasToken())
	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
}
