package config

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"

	"github.com/mitranim/sqlq"
)

const (
	OutputFormatText = "text"
	OutputFormatJson = "json"

	LogFormatText = "text"
	LogFormatJson = "json"
)

type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log" json:"log,omitempty"`
	Compile CompileConfig `mapstructure:"compile" yaml:"compile" json:"compile,omitempty"`
}

type LogConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	Level  string `mapstructure:"level" yaml:"level" json:"level,omitempty"`
}

type CompileConfig struct {
	Placeholder sqlq.Placeholder `mapstructure:"placeholder" yaml:"placeholder" json:"placeholder,omitempty"`
	Format      string           `mapstructure:"format" yaml:"format" json:"format,omitempty"`
}

func NewConfig() *Config {
	return &Config{
		Log: LogConfig{
			Format: LogFormatText,
			Level:  zerolog.LevelInfoValue,
		},
		Compile: CompileConfig{
			Placeholder: sqlq.PlaceholderQuestion,
			Format:      OutputFormatText,
		},
	}
}

func (c *Config) Validate() error {
	switch c.Log.Level {
	case zerolog.LevelDebugValue, zerolog.LevelInfoValue, zerolog.LevelWarnValue:
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case LogFormatText, LogFormatJson:
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	switch c.Compile.Format {
	case OutputFormatText, OutputFormatJson:
	default:
		return fmt.Errorf("unknown output format %q", c.Compile.Format)
	}
	return nil
}

// Compiler returns the statement compiler configured by the compile section.
func (c *Config) Compiler() sqlq.Compiler {
	return sqlq.Compiler{Placeholder: c.Compile.Placeholder}
}

// PlaceholderHookFunc decodes placeholder names such as "dollar" or "$" from
// config files, flags and env vars.
func PlaceholderHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != reflect.TypeOf(sqlq.Placeholder(0)) || f.Kind() != reflect.String {
			return data, nil
		}
		res, err := sqlq.ParsePlaceholder(reflect.ValueOf(data).String())
		if err != nil {
			return nil, fmt.Errorf("cannot decode placeholder: %w", err)
		}
		return res, nil
	}
}

// DecoderConfig is passed to viper.Unmarshal.
func DecoderConfig(cfg *mapstructure.DecoderConfig) {
	cfg.DecodeHook = PlaceholderHookFunc()
}
