package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fanpei91/hostshook/hosts"
	"github.com/stretchr/testify/require"
)

func TestFromLookup(t *testing.T) {
	env := map[string]string{
		"HOSTS_ENV":            "staging",
		"HOSTS_HOOK_LOG_LEVEL": "debug",
	}
	l := FromLookup(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.Equal(t, Library{Env: "staging", LogLevel: "debug"}, l)

	l = FromLookup(func(string) (string, bool) { return "", false })
	require.Equal(t, Library{LogLevel: DefaultLibraryLogLevel}, l)
}

func TestEmptyEnvTagIsUnset(t *testing.T) {
	l := FromLookup(func(k string) (string, bool) { return "", k == hosts.EnvVariable })
	require.Empty(t, l.Env)
	require.Equal(t, []string{"hosts", ".hosts"}, hosts.Candidates(l.Env))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostshook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: staging
dir: /proj
dns:
  listen: 127.0.0.1:1053
  upstream_rate: 20
  timeout: 2s
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "staging", c.Env)
	require.Equal(t, "INFO", c.LogLevel)
	require.Equal(t, "/proj", c.Dir)
	require.Equal(t, "127.0.0.1:1053", c.DNS.Listen)
	require.Equal(t, "1.1.1.1:53", c.DNS.Upstream)
	require.Equal(t, 20.0, c.DNS.UpstreamRate)
	require.Equal(t, 2*time.Second, c.DNS.Timeout)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dns: [\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
}
