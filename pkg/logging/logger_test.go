package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("defaults to info json", func(t *testing.T) {
		logger, err := New("", FormatJSON)
		require.NoError(t, err)
		defer logger.Sync()

		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("honors level", func(t *testing.T) {
		logger, err := New("debug", FormatConsole)
		require.NoError(t, err)
		defer logger.Sync()

		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("rejects bad level", func(t *testing.T) {
		_, err := New("loud", FormatJSON)
		assert.ErrorContains(t, err, "invalid log level")
	})

	t.Run("rejects bad format", func(t *testing.T) {
		_, err := New("info", Format("xml"))
		assert.ErrorContains(t, err, "unknown log format")
	})
}

func TestNop(t *testing.T) {
	assert.NotNil(t, Nop())
	Nop().Info("discarded")
}
