package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	base  zerolog.Logger
	ready bool
)

// Init configures the process-wide logger.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false), human readable console output
//   - SERVICE_NAME: value of the "service" field on every line (default: portfoli)
func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter is Init with an explicit sink; tests use it to capture lines.
func InitWithWriter(out io.Writer) {
	level := parseLevel(getenv("LOG_LEVEL", "info"))
	pretty := strings.EqualFold(getenv("LOG_PRETTY", "false"), "true")

	zerolog.TimeFieldFormat = time.RFC3339Nano
	w := out
	if pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", getenv("SERVICE_NAME", "portfoli")).
		Logger()
	ready = true
}

// L returns the global logger, initialising it from the environment on
// first use.
func L() *zerolog.Logger {
	if !ready {
		Init()
	}
	return &base
}

// Component returns a child of the global logger tagged with component.
func Component(name string) zerolog.Logger {
	return L().With().Str("component", name).Logger()
}

// Ctx returns the request-scoped logger stored by WithContext, or the
// global logger when ctx carries none.
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return L()
}

// WithContext attaches l to ctx for Ctx to find.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
