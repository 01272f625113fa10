package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/hyp3-catalog/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("HYP3_API_URL", "")
	t.Setenv("HYP3_MAX_KEY_ROTATIONS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENV", "")

	c := config.New()
	require.Equal(t, "https://api.hyp3.asf.alaska.edu/", c.GetHyp3URL())
	require.Equal(t, 100, c.GetPageSize())
	require.Equal(t, 0, c.GetMaxKeyRotations())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, "DEV", c.GetEnv())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HYP3_API_URL", "http://localhost:9000/")
	t.Setenv("HYP3_MAX_KEY_ROTATIONS", "5")
	t.Setenv("VERTEX_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("LOG_LEVEL", "DEBUG")

	c := config.New()
	require.Equal(t, "http://localhost:9000/", c.GetHyp3URL())
	require.Equal(t, 5, c.GetMaxKeyRotations())
	require.InDelta(t, 2.5, c.GetVertexRequestsPerSecond(), 0.0001)
	require.Equal(t, "debug", c.GetLogLevel())
}

func TestInvalidIntegerFallsBackToDefault(t *testing.T) {
	t.Setenv("HYP3_MAX_KEY_ROTATIONS", "lots")
	require.Equal(t, 0, config.New().GetMaxKeyRotations())
}

func TestLoadLayersFileOverEnvironment(t *testing.T) {
	t.Setenv("HYP3_API_URL", "http://from-env/")
	t.Setenv("VERTEX_API_URL", "http://vertex-env/")

	path := filepath.Join(t.TempDir(), "hyp3cat.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "WARN"

[hyp3]
url = "http://from-file/"
max_key_rotations = 3

[proxy]
service_prefix = "/user/jdoe/"
`), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://from-file/", c.GetHyp3URL())
	require.Equal(t, 3, c.GetMaxKeyRotations())
	require.Equal(t, "warn", c.GetLogLevel())
	require.Equal(t, "http://vertex-env/", c.GetVertexURL())
	require.Equal(t, "/user/jdoe/", c.GetProxy().ServicePrefix)
	require.Equal(t, 100, c.GetPageSize())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestProxyURL(t *testing.T) {
	p := config.Proxy{BaseURL: "https://opensarlab.asf.alaska.edu/", ServicePrefix: "/user/jdoe/"}

	host, err := p.Host()
	require.NoError(t, err)
	require.Equal(t, "opensarlab.asf.alaska.edu", host)

	u, err := p.URL(8888)
	require.NoError(t, err)
	require.Equal(t, "https://opensarlab.asf.alaska.edu/user/jdoe/proxy/8888", u)

	_, err = p.URL(0)
	require.Error(t, err)
}

func TestProxyURLWithoutPrefix(t *testing.T) {
	p := config.Proxy{BaseURL: "https://hub.example.com/"}
	u, err := p.URL(5006)
	require.NoError(t, err)
	require.Equal(t, "https://hub.example.com/proxy/5006", u)
}
