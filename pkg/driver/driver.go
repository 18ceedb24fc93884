// Package driver owns the browser-automation engine boundary.
//
// A Factory runs the Playwright toolchain once per process and launches one
// browser process per test. The rest of the harness never touches the engine
// directly: it works against the narrow Browser/BrowsingContext/Page
// interfaces declared here, which the factory satisfies with thin Playwright
// adapters and tests satisfy with fakes (see the drivertest package).
package driver

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/entrhq/pagekit/pkg/config"
)

// UnsupportedEngineError reports a settings engine variant the factory cannot
// launch. It is returned before any browser process is spawned.
type UnsupportedEngineError struct {
	Variant config.EngineVariant
}

func (e *UnsupportedEngineError) Error() string {
	return fmt.Sprintf("unsupported engine variant %q (supported: %v)", e.Variant, config.Variants())
}

// Browser is the engine surface a session needs from a launched browser.
type Browser interface {
	// NewContext opens an isolated browsing context (separate cookie and
	// storage namespace) within the browser process.
	NewContext(viewport config.Viewport) (BrowsingContext, error)
}

// BrowserHandle is a launched browser process: a Browser that can be stopped.
// Stop is idempotent and nil-safe so teardown may call it unconditionally.
type BrowserHandle interface {
	Browser
	Stop() error
}

// BrowsingContext is one isolated cookie/storage namespace.
type BrowsingContext interface {
	NewPage() (Page, error)
	Close() error
}

// Page is one browser tab. It is the only engine resource page objects are
// ever handed; they share it by reference and must never close it.
type Page interface {
	Goto(url string) error
	Click(selector string) error
	Fill(selector, value string) error
	Title() (string, error)
	URL() string
	Content() (string, error)
	SetDefaultTimeout(ms float64)
	Close() error
}

// Factory launches browser processes. One factory serves the whole process;
// each test gets its own BrowserHandle from Start.
type Factory struct {
	mu          sync.Mutex
	pw          *playwright.Playwright
	logger      *zap.Logger
	initialized bool
}

// NewFactory creates a factory. Initialize must be called before Start.
func NewFactory(logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{logger: logger.Named("driver")}
}

// runOptions silences the Playwright driver's own output so it cannot
// interleave with test output.
func runOptions() *playwright.RunOptions {
	return &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
}

// Install downloads the Playwright driver and browser binaries. It is safe to
// run repeatedly; already-installed binaries are kept.
func Install() error {
	if err := playwright.Install(runOptions()); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	return nil
}

// Initialize starts the Playwright toolchain. Idempotent.
func (f *Factory) Initialize() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized {
		return nil
	}

	if err := playwright.Install(runOptions()); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOptions())
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	f.pw = pw
	f.initialized = true
	return nil
}

// Start launches one browser process for the given settings. An unrecognized
// engine variant fails with *UnsupportedEngineError before anything is
// launched; a launch failure is fatal for the calling test and is never
// retried here.
func (f *Factory) Start(settings config.Settings) (BrowserHandle, error) {
	// Variant check comes first so a bad variant never spawns a process,
	// initialized or not.
	if !settings.EngineVariant.Supported() {
		return nil, &UnsupportedEngineError{Variant: settings.EngineVariant}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return nil, fmt.Errorf("driver factory not initialized")
	}

	var engine playwright.BrowserType
	switch settings.EngineVariant {
	case config.EngineChromium:
		engine = f.pw.Chromium
	case config.EngineFirefox:
		engine = f.pw.Firefox
	case config.EngineWebKit:
		engine = f.pw.WebKit
	}

	f.logger.Info("launching browser",
		zap.String("variant", string(settings.EngineVariant)),
		zap.Bool("headless", settings.Headless))

	browser, err := engine.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(settings.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", settings.EngineVariant, err)
	}

	return &Handle{browser: browser, logger: f.logger}, nil
}

// Shutdown stops the Playwright toolchain. Browsers launched by Start must be
// stopped by their owners first.
func (f *Factory) Shutdown() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized || f.pw == nil {
		return nil
	}
	if err := f.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	f.pw = nil
	f.initialized = false
	return nil
}

// Handle owns one launched browser process.
type Handle struct {
	browser  playwright.Browser
	logger   *zap.Logger
	stopOnce sync.Once
	stopErr  error
}

// NewContext opens an isolated browsing context in this browser.
func (h *Handle) NewContext(viewport config.Viewport) (BrowsingContext, error) {
	opts := playwright.BrowserNewContextOptions{}
	if viewport.Width > 0 && viewport.Height > 0 {
		opts.Viewport = &playwright.Size{
			Width:  viewport.Width,
			Height: viewport.Height,
		}
	}

	ctx, err := h.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browsing context: %w", err)
	}
	return &pwContext{ctx: ctx}, nil
}

// Stop closes the browser process. Safe on a nil handle and on repeated
// calls; later calls return the first result.
func (h *Handle) Stop() error {
	if h == nil {
		return nil
	}
	h.stopOnce.Do(func() {
		if err := h.browser.Close(); err != nil {
			h.stopErr = fmt.Errorf("failed to close browser: %w", err)
		}
	})
	return h.stopErr
}
