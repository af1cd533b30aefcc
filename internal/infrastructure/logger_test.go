package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", "debug", slog.LevelDebug, false},
		{"info", "info", slog.LevelInfo, false},
		{"warn", "warn", slog.LevelWarn, false},
		{"error", "error", slog.LevelError, false},
		{"empty defaults to info", "", slog.LevelInfo, false},
		{"mixed case", "DEBUG", slog.LevelDebug, false},
		{"unknown", "verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateLogger(t *testing.T) {
	logger, err := createLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "console"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = createLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "teletype"})
	require.Error(t, err)
}

func TestTraceIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = ContextWithTraceID(ctx)
	traceID := GetTraceID(ctx)
	assert.NotEmpty(t, traceID)

	// EnsureTraceID keeps an existing ID
	ensured := EnsureTraceID(ctx)
	assert.Equal(t, traceID, GetTraceID(ensured))
}

func TestInitializeTracing_Disabled(t *testing.T) {
	providers, err := InitializeTracing(config.TracingConfig{Enabled: false}, nil)
	require.NoError(t, err)
	require.NotNil(t, providers.Tracer)
	assert.Nil(t, providers.TracerProvider)
	require.NoError(t, providers.Shutdown(context.Background()))
}
