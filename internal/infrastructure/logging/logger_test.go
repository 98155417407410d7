package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/calc/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"production", DefaultConfig(), false},
		{"development", Config{Level: "debug", Development: true}, false},
		{"cli", CLIConfig("", false), false},
		{"bad level", Config{Level: "loud"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger.Logger)
		})
	}
}

func TestCLIConfig(t *testing.T) {
	cfg := CLIConfig("", false)
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)

	assert.Equal(t, "debug", CLIConfig("debug", true).Level)
}

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(config.LogConfig{Level: "error", Development: true})
	assert.Equal(t, "error", cfg.Level)
	assert.True(t, cfg.Development)

	assert.Equal(t, "info", FromAppConfig(config.LogConfig{}).Level)
}

func TestNewOrNopFallsBack(t *testing.T) {
	logger := NewOrNop(Config{Level: "loud"})
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestParseLevel(t *testing.T) {
	l, err := parseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, l)
}
