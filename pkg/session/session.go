// Package session implements the per-test session registry: one isolated
// browsing context, one page, and lazily constructed page objects bound to
// that page.
//
// A session is created after the driver factory launches a browser and is
// destroyed before the browser is stopped. All operations on one session are
// sequential; concurrent tests each hold their own session and share nothing.
package session

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/entrhq/pagekit/pkg/config"
	"github.com/entrhq/pagekit/pkg/driver"
	"github.com/entrhq/pagekit/pkg/pom"
)

// Session owns one browsing context and one page for the duration of a test,
// and memoizes the page objects resolved against that page. Instances become
// invalid at Destroy and must not be retained past it.
type Session struct {
	id       string
	registry *Registry
	browsing driver.BrowsingContext
	page     driver.Page
	baseURL  string
	logger   *zap.Logger

	mu        sync.Mutex
	instances map[reflect.Type]any
	navigated bool
	destroyed bool
}

// Open acquires the session's resources: one browsing context, one page with
// the default timeout applied. It does not navigate; see NavigateBase. On any
// failure everything acquired so far is released and no session is returned.
func Open(browser driver.Browser, registry *Registry, settings config.Settings, logger *zap.Logger) (*Session, error) {
	if registry == nil {
		return nil, fmt.Errorf("session registry is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.New().String()
	log := logger.Named("session").With(zap.String("session_id", id))

	browsing, err := browser.NewContext(settings.Viewport)
	if err != nil {
		return nil, fmt.Errorf("failed to open browsing context: %w", err)
	}

	page, err := browsing.NewPage()
	if err != nil {
		if closeErr := browsing.Close(); closeErr != nil {
			log.Error("failed to close browsing context after page failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	page.SetDefaultTimeout(float64(settings.DefaultTimeoutMs))

	return &Session{
		id:        id,
		registry:  registry,
		browsing:  browsing,
		page:      page,
		baseURL:   settings.BaseURL,
		logger:    log,
		instances: make(map[reflect.Type]any),
	}, nil
}

// NavigateBase navigates the page to the configured base location. Until it
// succeeds, Resolve refuses to hand out page objects. A navigation failure is
// a fatal setup error for the owning test.
//
// The context is checked before the engine call; the engine's Goto is not
// context-aware, so cancellation arriving during navigation surfaces through
// the page's default timeout instead.
func (s *Session) NavigateBase(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return fmt.Errorf("session %s is destroyed", s.id)
	}
	s.mu.Unlock()

	if err := s.page.Goto(s.baseURL); err != nil {
		return fmt.Errorf("failed to navigate to base location %s: %w", s.baseURL, err)
	}

	s.mu.Lock()
	s.navigated = true
	s.mu.Unlock()

	s.logger.Info("session ready", zap.String("url", s.baseURL))
	return nil
}

// Create is Open followed by NavigateBase. On navigation failure the
// half-open session is destroyed and no session is returned.
func Create(ctx context.Context, browser driver.Browser, registry *Registry, settings config.Settings, logger *zap.Logger) (*Session, error) {
	s, err := Open(browser, registry, settings, logger)
	if err != nil {
		return nil, err
	}
	if err := s.NavigateBase(ctx); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

// Resolve returns the session's instance of page-object type T, constructing
// it on first request with the session's shared page and a logger named for
// the type. Repeated calls return the identical instance. An unknown T fails
// with *UnregisteredTypeError and leaves the session untouched.
func Resolve[T any](s *Session) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()

	instance, err := s.resolve(t)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("page object registered for %s has unexpected type %T", t, instance)
	}
	return typed, nil
}

func (s *Session) resolve(t reflect.Type) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return nil, fmt.Errorf("session %s is destroyed", s.id)
	}
	if !s.navigated {
		return nil, fmt.Errorf("session %s is not ready: navigation to base location has not completed", s.id)
	}

	if instance, ok := s.instances[t]; ok {
		return instance, nil
	}

	ui := pom.NewInteractor(s.page, s.logger.Named(typeName(t)))
	instance, err := s.registry.construct(t, ui)
	if err != nil {
		return nil, err
	}

	s.instances[t] = instance
	s.logger.Debug("constructed page object", zap.String("type", t.String()))
	return instance, nil
}

// Destroy releases the session's resources in reverse acquisition order: page
// first, then browsing context. It never fails: close errors are reported as
// diagnostics only, each step runs regardless of earlier ones, and repeated
// calls are no-ops. Teardown must never fail the owning test.
func (s *Session) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.instances = nil
	s.mu.Unlock()

	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.logger.Error("failed to close page during teardown", zap.Error(err))
		}
	}
	if s.browsing != nil {
		if err := s.browsing.Close(); err != nil {
			s.logger.Error("failed to close browsing context during teardown", zap.Error(err))
		}
	}

	s.logger.Info("session destroyed")
}

// ID returns the session's correlation id.
func (s *Session) ID() string {
	return s.id
}

// Page exposes the session's single page. Callers must not close it; only
// Destroy may.
func (s *Session) Page() driver.Page {
	return s.page
}

// Destroyed reports whether Destroy has run.
func (s *Session) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}
