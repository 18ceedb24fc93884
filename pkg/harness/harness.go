// Package harness orchestrates the per-test browser lifecycle: launch a
// browser, open a session, navigate to the base location, hand control to the
// test body, then tear everything down in reverse order regardless of how the
// body ended.
//
// One Harness serves exactly one test. Teardown runs exactly once, never
// fails the test, and releases every resource the setup managed to acquire,
// including after a partial setup failure.
package harness

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/entrhq/pagekit/pkg/config"
	"github.com/entrhq/pagekit/pkg/driver"
	"github.com/entrhq/pagekit/pkg/session"
)

// State tracks setup progress. Failures leave the harness in the state that
// was being entered when the failure happened.
type State int

const (
	StateIdle State = iota
	StateDriverStarting
	StateSessionOpening
	StateNavigating
	StateReady
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDriverStarting:
		return "driver_starting"
	case StateSessionOpening:
		return "session_opening"
	case StateNavigating:
		return "navigating"
	case StateReady:
		return "ready"
	case StateTornDown:
		return "torn_down"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Starter launches browser processes. *driver.Factory satisfies it; tests
// substitute fakes.
type Starter interface {
	Start(settings config.Settings) (driver.BrowserHandle, error)
}

// Harness drives one test's browser lifecycle.
type Harness struct {
	starter  Starter
	registry *session.Registry
	settings config.Settings
	logger   *zap.Logger

	state    State
	handle   driver.BrowserHandle
	sess     *session.Session
	tornDown bool
}

// New creates a harness for one test.
func New(starter Starter, registry *session.Registry, settings config.Settings, logger *zap.Logger) *Harness {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harness{
		starter:  starter,
		registry: registry,
		settings: settings,
		logger:   logger.Named("harness"),
		state:    StateIdle,
	}
}

// Setup runs the acquisition sequence: start browser, open session, navigate
// to the base location. Any failure aborts setup and surfaces unchanged; the
// caller must still run Teardown to release whatever was acquired.
func (h *Harness) Setup(ctx context.Context) error {
	if h.state != StateIdle {
		return fmt.Errorf("harness is %s; a harness runs exactly one test", h.state)
	}

	h.state = StateDriverStarting
	handle, err := h.starter.Start(h.settings)
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	h.handle = handle

	h.state = StateSessionOpening
	sess, err := session.Open(handle, h.registry, h.settings, h.logger)
	if err != nil {
		return err
	}
	h.sess = sess

	h.state = StateNavigating
	if err := sess.NavigateBase(ctx); err != nil {
		return err
	}

	h.state = StateReady
	return nil
}

// Session returns the test's session. Valid only between a successful Setup
// and Teardown.
func (h *Harness) Session() *session.Session {
	return h.sess
}

// State returns the current lifecycle state.
func (h *Harness) State() State {
	return h.state
}

// Teardown releases everything in reverse acquisition order: session first,
// then the browser handle. Each step is isolated; a failing step is logged
// and the next one still runs. Teardown never reports an error to the test
// framework and runs its work at most once.
func (h *Harness) Teardown() {
	if h.tornDown {
		return
	}
	h.tornDown = true

	if h.sess != nil {
		h.sess.Destroy()
		h.sess = nil
	}

	if h.handle != nil {
		if err := h.handle.Stop(); err != nil {
			h.logger.Error("failed to stop browser during teardown", zap.Error(err))
		}
		h.handle = nil
	}

	h.state = StateTornDown
}
