package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"client"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr":"todo:6000","request_timeout":"2s"}`), 0o600))

	withArgs(t, "-config", path, "-t", "9", "-l", "debug")

	got := LoadConfig()
	want := &Config{ServerEndpointAddr: "todo:6000", RequestTimeout: 9 * time.Second, LogLevel: "debug"}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestParseJson_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"request_timeout":3000000000}`), 0o600))
	withArgs(t, "-c", path)

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.RequestTimeout)
}

func TestParseJson_Panics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))
	withArgs(t, "-c", path)

	var c Config
	assert.Panics(t, func() { parseJson(&c) })
}

func TestParseFlags(t *testing.T) {
	withArgs(t, "-a", "10.0.0.1:50051", "-x", "ignored")

	var c Config
	c.LoadDefaults()
	require.NotPanics(t, func() { parseFlags(&c) })
	assert.Equal(t, "10.0.0.1:50051", c.ServerEndpointAddr)

	withArgs(t, "-t", "never")
	assert.Panics(t, func() { parseFlags(&c) })
}
