package harness

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/entrhq/pagekit/pkg/config"
	"github.com/entrhq/pagekit/pkg/session"
)

// Start runs Setup for a test and registers Teardown with t.Cleanup, so the
// browser is released even when the test fails or panics. A setup failure
// fails the test before its body runs. Passing a nil logger wires the
// harness's logs into the test output.
func Start(t *testing.T, starter Starter, registry *session.Registry, settings config.Settings, logger *zap.Logger) *Harness {
	t.Helper()

	if logger == nil {
		logger = zaptest.NewLogger(t)
	}

	h := New(starter, registry, settings, logger)
	t.Cleanup(h.Teardown)

	if err := h.Setup(context.Background()); err != nil {
		t.Fatalf("browser test setup failed: %v", err)
	}
	return h
}
