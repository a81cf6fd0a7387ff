package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitranim/sqlq"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, sqlq.PlaceholderQuestion, cfg.Compile.Placeholder)
	assert.Equal(t, OutputFormatText, cfg.Compile.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewConfig()
	cfg.Compile.Format = "xml"
	require.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.Log.Format = "xml"
	require.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.Log.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "verbose"`)

	cfg = NewConfig()
	cfg.Log.Level = "debug"
	require.NoError(t, cfg.Validate())
}

func TestConfig_viperUnmarshal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
compile:
  placeholder: dollar
  format: json
`), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg := NewConfig()
	require.NoError(t, v.Unmarshal(cfg, DecoderConfig))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, sqlq.PlaceholderDollar, cfg.Compile.Placeholder)
	assert.Equal(t, OutputFormatJson, cfg.Compile.Format)
	assert.Equal(t, sqlq.PlaceholderDollar, cfg.Compiler().Placeholder)
}

func TestConfig_viperUnmarshal_invalidPlaceholder(t *testing.T) {
	v := viper.New()
	v.Set("compile.placeholder", "colon")

	cfg := NewConfig()
	err := v.Unmarshal(cfg, DecoderConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placeholder")
}
