package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		level string
		mode  string
		want  zapcore.Level
	}{
		{"debug", "development", zapcore.DebugLevel},
		{"warn", "production", zapcore.WarnLevel},
		{"", "production", zapcore.InfoLevel},
		{"error", "", zapcore.ErrorLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level+"/"+tc.mode, func(t *testing.T) {
			logger, err := NewLogger(tc.level, tc.mode)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tc.want))
			assert.False(t, logger.Core().Enabled(tc.want-1))
		})
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger("chatty", "production")
	assert.Error(t, err)
}
