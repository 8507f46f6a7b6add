package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-bn-go/pkg/cbbn"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"cbbn-go", "--log-format", "json"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, cbbn.BuildVersion()+"\n", out)
}

func TestKeygenEncryptDecrypt(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "cbbn.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("digit_bits: 30\nmul_add: wide\nentropy: benchmark\n"), 0o600))
	key := filepath.Join(dir, "key.yaml")

	_, logs, err := run(t, "--config", cfg, "keygen", "--bits", "256", "--out", key)
	require.NoError(t, err)
	assert.Contains(t, logs, `"message":"wrote key"`)

	ct, _, err := run(t, "--config", cfg, "encrypt", "--key", key, "attack at dawn")
	require.NoError(t, err)
	ct = strings.TrimSpace(ct)
	assert.Zero(t, len(ct)%2)

	pt, _, err := run(t, "--config", cfg, "decrypt", "--key", key, ct)
	require.NoError(t, err)
	assert.Equal(t, "attack at dawn\n", pt)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "key.yaml")
	_, _, err := run(t, "keygen", "--bits", "256", "--out", key)
	require.NoError(t, err)

	_, _, err = run(t, "decrypt", "--key", key, "zz")
	assert.Error(t, err)
}

func TestBench(t *testing.T) {
	out, logs, err := run(t, "--loglevel", "debug", "bench", "-n", "2", "-p", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "6 round trips")
	assert.Contains(t, logs, "benchmark finished")
	assert.Contains(t, logs, "worker done")

	_, _, err = run(t, "bench", "-n", "0")
	assert.Error(t, err)
}

func TestBadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "cbbn.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("digit_bits: 31\n"), 0o600))
	_, _, err := run(t, "--config", cfg, "version")
	assert.ErrorIs(t, err, cbbn.ErrInvalidConfig)
}
