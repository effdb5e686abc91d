package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"lodge/config"
	"lodge/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("cabin image upload failed"))

	assert.Contains(t, buf.String(), "cabin image upload failed")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		logLevel string
		want     zerolog.Level
	}{
		{logLevel: "debug", want: zerolog.DebugLevel},
		{logLevel: "info", want: zerolog.InfoLevel},
		{logLevel: "warn", want: zerolog.WarnLevel},
		{logLevel: "error", want: zerolog.ErrorLevel},
		{logLevel: "disabled", want: zerolog.Disabled},
		{logLevel: "invalid_level", want: zerolog.TraceLevel},
		{logLevel: "", want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("production writes json lines", func(t *testing.T) {
		var buf bytes.Buffer

		l := logger.New(&buf, "production")
		l.Info().Str("cabin", "001").Msg("booked")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "booked", line["message"])
		assert.Equal(t, "001", line["cabin"])
	})

	t.Run("development writes console output", func(t *testing.T) {
		var buf bytes.Buffer

		l := logger.New(&buf, "development")
		l.Info().Msg("booked")

		assert.Contains(t, buf.String(), "booked")
		assert.False(t, json.Valid(buf.Bytes()))
	})
}
