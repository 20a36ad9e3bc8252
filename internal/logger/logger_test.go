package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/user-service/internal/config"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObservability(format, level, env string) *config.ObservabilityConfig {
	cfg := config.DefaultObservabilityConfig()
	cfg.ServiceName = config.ServiceName
	cfg.Environment = env
	cfg.Logging.Format = format
	cfg.Logging.Level = level
	return cfg
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(testObservability("json", "info", "staging"), nil, &buf)

	log.Info().Str("user_id", "7").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, config.ServiceName, line["service"])
	assert.Equal(t, "staging", line["environment"])
	assert.Equal(t, "7", line["user_id"])
	assert.Contains(t, line, "time")
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(testObservability("json", "warn", "production"), nil, &buf)

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLogger_StackOutsideProduction(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(testObservability("json", "info", "development"), nil, &buf)

	log.Error().Err(errors.New("boom")).Msg("failed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["error"])
	assert.Contains(t, line, "stack")
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(testObservability("console", "info", "local"), nil, &buf)

	log.Info().Msg("hello console")

	assert.Contains(t, buf.String(), "hello console")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestLoggerService_Disabled(t *testing.T) {
	ls := NewLoggerService(testObservability("json", "info", "local"))

	assert.Nil(t, ls.GetApplication())
	assert.NotPanics(t, ls.Shutdown)

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
	assert.NotPanics(t, nilService.Shutdown)
}

func TestLoggerService_ShutdownOnce(t *testing.T) {
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(config.ServiceName),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)

	ls := &LoggerService{nrApp: app}
	require.NotNil(t, ls.GetApplication())

	ls.Shutdown()
	assert.Nil(t, ls.GetApplication())
	assert.NotPanics(t, ls.Shutdown)
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	log := WithTraceContext(zerolog.New(&buf), nil)

	log.Info().Msg("no trace")
	assert.NotContains(t, buf.String(), "trace.id")
}
