package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Run("json output by default", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))

		log.Info("hello", logger.Component("auth"))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "auth", record["component"])
	})

	t.Run("development preset uses text format and debug level", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("authkit"), logger.WithOutput(&buf))

		log.Debug("debugging")

		out := buf.String()
		assert.Contains(t, out, "debugging")
		assert.Contains(t, out, "service=authkit")
		assert.Contains(t, out, "env=development")
	})

	t.Run("info level filters debug records", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelInfo))

		log.Debug("hidden")
		assert.Empty(t, buf.String())
	})
}

func TestAttrs(t *testing.T) {
	t.Run("nil error produces empty attr", func(t *testing.T) {
		assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	})

	t.Run("provider attr", func(t *testing.T) {
		attr := logger.Provider("discord")
		assert.Equal(t, "provider", attr.Key)
		assert.Equal(t, "discord", attr.Value.String())
	})
}
