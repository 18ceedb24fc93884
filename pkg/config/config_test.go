package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettingsFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeSettingsFile(t, "settings.json", `{
		"engine_variant": "firefox",
		"headless": false,
		"base_url": "https://example.com",
		"default_timeout_ms": 5000,
		"viewport": {"width": 1920, "height": 1080}
	}`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EngineFirefox, s.EngineVariant)
	assert.False(t, s.Headless)
	assert.Equal(t, "https://example.com", s.BaseURL)
	assert.Equal(t, 5000, s.DefaultTimeoutMs)
	assert.Equal(t, Viewport{Width: 1920, Height: 1080}, s.Viewport)
}

func TestLoadYAML(t *testing.T) {
	path := writeSettingsFile(t, "settings.yaml", `
engine_variant: webkit
base_url: https://example.com/login
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EngineWebKit, s.EngineVariant)
	assert.Equal(t, "https://example.com/login", s.BaseURL)

	// Fields absent from the file keep their defaults.
	assert.True(t, s.Headless)
	assert.Equal(t, DefaultTimeoutMs, s.DefaultTimeoutMs)
	assert.Equal(t, DefaultViewportWidth, s.Viewport.Width)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeSettingsFile(t, "settings.json", `{
		"engine_variant": "chromium",
		"base_url": "https://example.com"
	}`)

	t.Setenv("PAGEKIT_ENGINE_VARIANT", "firefox")
	t.Setenv("PAGEKIT_BASE_URL", "https://staging.example.com")
	t.Setenv("PAGEKIT_DEFAULT_TIMEOUT_MS", "1500")
	t.Setenv("PAGEKIT_VIEWPORT_WIDTH", "800")
	t.Setenv("PAGEKIT_VIEWPORT_HEIGHT", "600")

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EngineFirefox, s.EngineVariant)
	assert.Equal(t, "https://staging.example.com", s.BaseURL)
	assert.Equal(t, 1500, s.DefaultTimeoutMs)
	assert.Equal(t, Viewport{Width: 800, Height: 600}, s.Viewport)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("PAGEKIT_BASE_URL", "https://example.com")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, EngineChromium, s.EngineVariant)
	assert.Equal(t, "https://example.com", s.BaseURL)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeSettingsFile(t, "settings.toml", `base_url = "https://example.com"`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "unsupported settings file extension")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeSettingsFile(t, "settings.json", `{`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := Settings{
		EngineVariant:    EngineChromium,
		BaseURL:          "https://example.com",
		DefaultTimeoutMs: 30000,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{
			name:    "unknown engine variant",
			mutate:  func(s *Settings) { s.EngineVariant = "opera" },
			wantErr: "unsupported engine variant",
		},
		{
			name:    "empty engine variant",
			mutate:  func(s *Settings) { s.EngineVariant = "" },
			wantErr: "unsupported engine variant",
		},
		{
			name:    "missing base url",
			mutate:  func(s *Settings) { s.BaseURL = "" },
			wantErr: "base_url is required",
		},
		{
			name:    "relative base url",
			mutate:  func(s *Settings) { s.BaseURL = "/dashboard" },
			wantErr: "absolute http(s) URL",
		},
		{
			name:    "zero timeout",
			mutate:  func(s *Settings) { s.DefaultTimeoutMs = 0 },
			wantErr: "default_timeout_ms must be positive",
		},
		{
			name:    "negative viewport",
			mutate:  func(s *Settings) { s.Viewport.Width = -1 },
			wantErr: "viewport",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestEngineVariantSupported(t *testing.T) {
	for _, v := range Variants() {
		assert.True(t, v.Supported(), "variant %q should be supported", v)
	}
	assert.False(t, EngineVariant("msie").Supported())
}
