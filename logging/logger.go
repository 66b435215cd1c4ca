// Package logging provides the mono types.Logger used across modules,
// backed by zerolog.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/rs/zerolog"
)

// Format selects the log line encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type zeroLogger struct {
	zl zerolog.Logger
}

var _ types.Logger = (*zeroLogger)(nil)

// New creates a logger writing to w at the given level ("debug", "info",
// "warn", "error", "disabled"). Unknown levels fall back to warn.
func New(w io.Writer, level string, format Format) types.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	out := w
	if format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    true,
		}
	}

	zl := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return &zeroLogger{zl: zl}
}

// Nop returns a logger that discards everything.
func Nop() types.Logger {
	return &zeroLogger{zl: zerolog.Nop()}
}

func (l *zeroLogger) Debug(msg string, args ...any) {
	l.zl.Debug().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) Info(msg string, args ...any) {
	l.zl.Info().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) Warn(msg string, args ...any) {
	l.zl.Warn().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) Error(msg string, args ...any) {
	l.zl.Error().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) With(args ...any) types.Logger {
	return &zeroLogger{zl: l.zl.With().Fields(fields(args)).Logger()}
}

func (l *zeroLogger) WithError(err error) types.Logger {
	return &zeroLogger{zl: l.zl.With().Err(err).Logger()}
}

func (l *zeroLogger) WithModule(module string) types.Logger {
	return &zeroLogger{zl: l.zl.With().Str("module", module).Logger()}
}

// fields turns slog-style key/value pairs into a zerolog field map.
// A dangling key is recorded under "!BADKEY".
func fields(args []any) map[string]any {
	m := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			m["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		m[key] = args[i+1]
	}
	return m
}
