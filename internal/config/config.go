// Package config resolves driver settings from defaults, the environment
// and command-line flags, in that order of precedence.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables read by FromEnv.
const (
	EnvColor          = "METAMORF_COLOR"
	EnvMaxDiagnostics = "METAMORF_MAX_DIAGNOSTICS"
	EnvLogLevel       = "METAMORF_LOG_LEVEL"
	EnvHistory        = "METAMORF_HISTORY"
)

// ColorMode selects when diagnostics are styled.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// Set implements flag.Value.
func (m *ColorMode) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		*m = ColorAuto
	case "always", "yes", "on", "true":
		*m = ColorAlways
	case "never", "no", "off", "false":
		*m = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
	return nil
}

type Config struct {
	Color          ColorMode
	MaxDiagnostics int // 0 means no limit
	LogLevel       zapcore.Level
	HistoryFile    string
}

// Default returns the built-in settings.
func Default() Config {
	history := ".metamorf_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, history)
	}
	return Config{
		Color:          ColorAuto,
		MaxDiagnostics: 20,
		LogLevel:       zapcore.WarnLevel,
		HistoryFile:    history,
	}
}

// FromEnv returns Default overridden by the METAMORF_* variables.
func FromEnv() (Config, error) {
	c := Default()
	if err := c.Color.Set(env.Str(EnvColor, c.Color.String())); err != nil {
		return c, fmt.Errorf("%s: %w", EnvColor, err)
	}
	c.MaxDiagnostics = env.Int(EnvMaxDiagnostics, c.MaxDiagnostics)
	if err := c.LogLevel.Set(env.Str(EnvLogLevel, c.LogLevel.String())); err != nil {
		return c, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	c.HistoryFile = env.Str(EnvHistory, c.HistoryFile)
	return c, nil
}

// RegisterFlags binds the settings to fs, using the current values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&c.Color, "color", "style diagnostics: auto, always or never")
	fs.IntVar(&c.MaxDiagnostics, "max-diagnostics", c.MaxDiagnostics, "maximum number of diagnostics to print (0 for all)")
	fs.Var(&c.LogLevel, "log-level", "log level: debug, info, warn or error")
	fs.BoolFunc("v", "verbose: same as -log-level debug", func(string) error {
		c.LogLevel = zapcore.DebugLevel
		return nil
	})
}

// UseColor decides whether output to a destination should be styled.
func (c Config) UseColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

// Logger returns a console logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), c.LogLevel))
}
