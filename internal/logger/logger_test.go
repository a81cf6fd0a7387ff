package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestGetLogger(t *testing.T) {
	t.Run("json at info level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := GetLogger(&buf, "info", LogFormatJsonValue)
		require.NoError(t, err)

		logger.Debug().Msg("hidden")
		logger.Info().Int("params", 2).Msg("compiled")

		line := buf.String()
		assert.NotContains(t, line, "hidden")
		assert.Equal(t, "compiled", gjson.Get(line, "message").String())
		assert.Equal(t, int64(2), gjson.Get(line, "params").Int())
		assert.Equal(t, "info", gjson.Get(line, "level").String())
	})

	t.Run("debug adds pid", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := GetLogger(&buf, "debug", LogFormatJsonValue)
		require.NoError(t, err)

		logger.Debug().Msg("visible")
		assert.True(t, gjson.Get(buf.String(), "pid").Exists())
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := GetLogger(&buf, "warn", LogFormatTextValue)
		require.NoError(t, err)

		logger.Warn().Msg("careful")
		assert.Contains(t, buf.String(), "careful")
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := GetLogger(&bytes.Buffer{}, "trace", LogFormatTextValue)
		require.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := GetLogger(&bytes.Buffer{}, "info", "xml")
		require.Error(t, err)
	})
}
