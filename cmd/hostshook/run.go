package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fanpei91/hostshook/hosts"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] -- command [args...]",
		Short: "Run a command with the hosts hook preloaded",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleRun(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.cfg.Library, "lib", "", "path to "+libraryName+" (default: next to this executable)")
	return cmd
}

func handleRun(cmd *cobra.Command, opts *options, args []string) error {
	lib, err := libraryPath(opts.cfg.Library)
	if err != nil {
		return err
	}

	env, err := preloadEnv(os.Environ(), lib)
	if err != nil {
		return err
	}
	if opts.cfg.Env != "" {
		env = setEnv(env, hosts.EnvVariable, opts.cfg.Env)
	}

	c := exec.Command(args[0], args[1:]...)
	c.Env = env
	c.Stdin = os.Stdin
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()

	logrus.Infof("run %s with %s", c.String(), lib)
	return c.Run()
}

func libraryPath(lib string) (string, error) {
	if lib == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("locate %s: %w", libraryName, err)
		}
		lib = filepath.Join(filepath.Dir(exe), libraryName)
	}

	abs, err := filepath.Abs(lib)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("preload library: %w", err)
	}
	return abs, nil
}

// prependEnv puts value in front of the current value of key.
func prependEnv(environ []string, key, value, sep string) []string {
	prefix := key + "="
	for i, kv := range environ {
		if !strings.HasPrefix(kv, prefix) {
			continue
		}
		if cur := strings.TrimPrefix(kv, prefix); cur != "" {
			value = value + sep + cur
		}
		out := append([]string(nil), environ...)
		out[i] = prefix + value
		return out
	}
	return append(append([]string(nil), environ...), prefix+value)
}

func setEnv(environ []string, key, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return append(out, prefix+value)
}
