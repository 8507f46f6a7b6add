package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
)

// NewZerolog adapts a zerolog.Logger to Logger. Arguments follow the slog
// convention: alternating key/value pairs or slog.Attr values.
func NewZerolog(zl zerolog.Logger) Logger {
	return &zeroLogger{zl: zl}
}

type zeroLogger struct {
	zl zerolog.Logger
}

func (l *zeroLogger) Debug(_ context.Context, msg string, args ...any) {
	l.zl.Debug().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) Info(_ context.Context, msg string, args ...any) {
	l.zl.Info().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) Warn(_ context.Context, msg string, args ...any) {
	l.zl.Warn().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) Error(_ context.Context, msg string, args ...any) {
	l.zl.Error().Fields(fields(args)).Msg(msg)
}

func (l *zeroLogger) With(args ...any) Logger {
	return &zeroLogger{zl: l.zl.With().Fields(fields(args)).Logger()}
}

// fields parses args with slog's rules so both adapters agree on keys.
func fields(args []any) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "", 0)
	r.Add(args...)
	out := make(map[string]interface{}, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = attrValue(a.Value)
		return true
	})
	return out
}

func attrValue(v slog.Value) interface{} {
	v = v.Resolve()
	if v.Kind() != slog.KindGroup {
		return v.Any()
	}
	group := make(map[string]interface{}, len(v.Group()))
	for _, a := range v.Group() {
		group[a.Key] = attrValue(a.Value)
	}
	return group
}
