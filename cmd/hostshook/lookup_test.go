package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLookupCommand(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	hostsFile := filepath.Join(root, "hosts")
	require.NoError(t, os.WriteFile(hostsFile, []byte("# dev\n10.0.0.5 svc.local\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "hosts.staging"), []byte("10.0.0.9 svc.local\n"), 0o644))

	out, err := execute(t, "lookup", "--dir", sub, "--env", "", "svc.local")
	require.NoError(t, err)
	require.Equal(t, "10.0.0.5\t"+hostsFile+":2\n", out)

	out, err = execute(t, "lookup", "--dir", sub, "--env", "staging", "svc.local")
	require.NoError(t, err)
	require.Contains(t, out, "10.0.0.9\t")

	_, err = execute(t, "lookup", "--dir", sub, "other.hostshook.test")
	require.EqualError(t, err, "no override for other.hostshook.test")
}

func TestLookupCommandNative(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "hosts"), []byte("fd00::5 svc.local\n"), 0o644))

	out, err := execute(t, "lookup", "--dir", root, "--native", "svc.local")
	require.NoError(t, err)
	require.Contains(t, out, "hostent\tname=svc.local")
	require.Contains(t, out, "length=16 addrs=[fd00::5]")
	require.Contains(t, out, "addr=[fd00::5]:0 canonname=svc.local")
}

func TestConfigFileUnderFlags(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "hosts.staging"), []byte("10.0.0.9 svc.local\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "hosts.qa"), []byte("10.0.0.8 svc.local\n"), 0o644))

	cfgFile := filepath.Join(t.TempDir(), "hostshook.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("env: staging\ndir: "+root+"\n"), 0o644))

	out, err := execute(t, "--config", cfgFile, "lookup", "svc.local")
	require.NoError(t, err)
	require.Contains(t, out, "10.0.0.9\t")

	out, err = execute(t, "--config", cfgFile, "--env", "qa", "lookup", "svc.local")
	require.NoError(t, err)
	require.Contains(t, out, "10.0.0.8\t")
}
