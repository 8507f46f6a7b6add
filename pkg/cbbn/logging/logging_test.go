package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx := context.Background()

	l.With("component", "rsa").Warn(ctx, "invalid RSA public key", Redacted("d"))
	out := buf.String()
	assert.Contains(t, out, "invalid RSA public key")
	assert.Contains(t, out, "component=rsa")
	assert.Contains(t, out, "d="+Placeholder())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	ctx := context.Background()
	l.Error(ctx, "dropped")
	l.With("k", 1).Debug(ctx, "dropped")
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.DebugLevel)
	l := NewZerolog(zl).With("component", "rsa")
	ctx := context.Background()

	l.Info(ctx, "generated key", "bits", 512, slog.Group("attempt", "n", 2), Redacted("p"))
	l.Debug(ctx, "odd args", "dangling")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "generated key", rec["message"])
	assert.Equal(t, "rsa", rec["component"])
	assert.Equal(t, float64(512), rec["bits"])
	assert.Equal(t, map[string]interface{}{"n": float64(2)}, rec["attempt"])
	assert.Equal(t, Placeholder(), rec["p"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "dangling", rec["!BADKEY"])
}

func TestZerologLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerolog(zerolog.New(&buf).Level(zerolog.WarnLevel))
	l.Info(context.Background(), "hidden")
	l.Warn(context.Background(), "shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
