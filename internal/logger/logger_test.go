package logger_test

import (
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/opl-checker/internal/config"
	"github.com/deppfellow/opl-checker/internal/logger"
)

func TestGetPgxTraceLogLevel_MatchesTracelog(t *testing.T) {
	tests := []struct {
		level zerolog.Level
		want  tracelog.LogLevel
	}{
		{zerolog.TraceLevel, tracelog.LogLevelTrace},
		{zerolog.DebugLevel, tracelog.LogLevelDebug},
		{zerolog.InfoLevel, tracelog.LogLevelInfo},
		{zerolog.WarnLevel, tracelog.LogLevelWarn},
		{zerolog.ErrorLevel, tracelog.LogLevelError},
		{zerolog.Disabled, tracelog.LogLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tracelog.LogLevel(logger.GetPgxTraceLogLevel(tt.level)))
		})
	}
}

func TestLoggerService_WithoutLicenseKey(t *testing.T) {
	ls, err := logger.NewLoggerService(config.DefaultObservabilityConfig())
	require.NoError(t, err)

	assert.Nil(t, ls.GetApplication())
	assert.NotPanics(t, ls.Shutdown)

	var missing *logger.LoggerService
	assert.Nil(t, missing.GetApplication())
}

func TestNewLogger_Level(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	log := logger.NewLogger(cfg)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
	assert.Equal(t, logger.WithTraceContext(log, nil), log)
}
