// Package config loads and validates harness settings.
//
// Settings are resolved exactly once at process start (file, then environment
// overrides) and passed explicitly into the driver factory and harness. They
// are treated as immutable afterwards; nothing in this module reads
// configuration through a global.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mstoykov/envconfig"
	"gopkg.in/yaml.v3"
)

// EngineVariant selects which browser engine the driver factory launches.
type EngineVariant string

const (
	EngineChromium EngineVariant = "chromium"
	EngineFirefox  EngineVariant = "firefox"
	EngineWebKit   EngineVariant = "webkit"
)

// Supported reports whether the variant names a launchable engine.
func (v EngineVariant) Supported() bool {
	switch v {
	case EngineChromium, EngineFirefox, EngineWebKit:
		return true
	}
	return false
}

// Variants returns the recognized engine variants.
func Variants() []EngineVariant {
	return []EngineVariant{EngineChromium, EngineFirefox, EngineWebKit}
}

// Viewport is the initial page viewport in pixels.
type Viewport struct {
	// envconfig joins the outer field's key with these, yielding
	// PAGEKIT_VIEWPORT_WIDTH and PAGEKIT_VIEWPORT_HEIGHT.
	Width  int `json:"width" yaml:"width" envconfig:"WIDTH"`
	Height int `json:"height" yaml:"height" envconfig:"HEIGHT"`
}

// Settings is the immutable per-process harness configuration. Every session
// created during the process shares the same value.
type Settings struct {
	// EngineVariant names the browser engine to launch.
	EngineVariant EngineVariant `json:"engine_variant" yaml:"engine_variant" envconfig:"ENGINE_VARIANT"`

	// Headless controls whether the browser runs without a visible window.
	Headless bool `json:"headless" yaml:"headless" envconfig:"HEADLESS"`

	// BaseURL is the location every fresh session navigates to before the
	// test body runs.
	BaseURL string `json:"base_url" yaml:"base_url" envconfig:"BASE_URL"`

	// DefaultTimeoutMs applies to every operation on the session's page.
	DefaultTimeoutMs int `json:"default_timeout_ms" yaml:"default_timeout_ms" envconfig:"DEFAULT_TIMEOUT_MS"`

	// Viewport sets the initial page size for new browsing contexts.
	Viewport Viewport `json:"viewport" yaml:"viewport"`
}

// Defaults for fields left unset by the configuration file.
const (
	DefaultTimeoutMs      = 30000
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// envPrefix is the prefix for environment overrides (PAGEKIT_ENGINE_VARIANT,
// PAGEKIT_BASE_URL, ...).
const envPrefix = "pagekit"

// Default returns the settings used when no configuration file is present.
// BaseURL has no default and must be provided by file or environment.
func Default() Settings {
	return Settings{
		EngineVariant:    EngineChromium,
		Headless:         true,
		DefaultTimeoutMs: DefaultTimeoutMs,
		Viewport: Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
	}
}

// Load resolves settings from the file at path (JSON or YAML, by extension),
// applies PAGEKIT_* environment overrides, and validates the result. An empty
// path skips the file and resolves from defaults and environment alone.
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
		}

		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".json":
			if err := json.Unmarshal(raw, &s); err != nil {
				return Settings{}, fmt.Errorf("failed to decode settings file %s: %w", path, err)
			}
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(raw, &s); err != nil {
				return Settings{}, fmt.Errorf("failed to decode settings file %s: %w", path, err)
			}
		default:
			return Settings{}, fmt.Errorf("unsupported settings file extension %q (want .json, .yaml or .yml)", ext)
		}
	}

	if err := envconfig.Process(envPrefix, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the invariants that session creation relies on.
func (s Settings) Validate() error {
	if !s.EngineVariant.Supported() {
		return fmt.Errorf("unsupported engine variant %q (supported: %v)", s.EngineVariant, Variants())
	}

	if s.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", s.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url %q must be an absolute http(s) URL", s.BaseURL)
	}

	if s.DefaultTimeoutMs <= 0 {
		return fmt.Errorf("default_timeout_ms must be positive, got %d", s.DefaultTimeoutMs)
	}

	if s.Viewport.Width < 0 || s.Viewport.Height < 0 {
		return fmt.Errorf("viewport dimensions must not be negative")
	}

	return nil
}
