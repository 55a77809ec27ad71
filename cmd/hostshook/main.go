package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/fanpei91/hostshook/config"
	"github.com/fanpei91/hostshook/utils"
	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	cfg        config.CLI
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:           "hostshook",
		Short:         "resolve hostnames from project-local hosts files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file")
	flags.StringVar(&opts.cfg.LogLevel, "log-level", opts.cfg.LogLevel, "log level: TRACE, DEBUG, INFO, WARN, ERROR, FATAL, PANIC")
	flags.StringVar(&opts.cfg.Env, "env", "", "environment tag selecting hosts.<env> files (default $HOSTS_ENV)")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newLookupCmd(opts),
		newServeCmd(opts),
	)
	return rootCmd
}

// load applies the config file under the flags given on the command line.
func (o *options) load(cmd *cobra.Command) error {
	if o.configFile != "" {
		fileCfg, err := config.Load(o.configFile)
		if err != nil {
			return err
		}
		overrideChanged(cmd, &fileCfg, o.cfg)
		o.cfg = fileCfg
	}

	if o.cfg.Env == "" {
		o.cfg.Env = config.FromEnv().Env
	}

	return utils.SetupLogger(o.cfg.LogLevel, "")
}

func overrideChanged(cmd *cobra.Command, dst *config.CLI, src config.CLI) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("log-level") {
		dst.LogLevel = src.LogLevel
	}
	if changed("env") {
		dst.Env = src.Env
	}
	if changed("lib") {
		dst.Library = src.Library
	}
	if changed("listen") {
		dst.DNS.Listen = src.DNS.Listen
	}
	if changed("upstream") {
		dst.DNS.Upstream = src.DNS.Upstream
	}
	if changed("upstream-rate") {
		dst.DNS.UpstreamRate = src.DNS.UpstreamRate
	}
	if changed("timeout") {
		dst.DNS.Timeout = src.DNS.Timeout
	}
	if changed("dir") {
		dst.Dir = src.Dir
	}
}

func main() {
	err := newRootCmd().Execute()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		os.Exit(exitErr.ExitCode())
	default:
		fmt.Fprintf(os.Stderr, "hostshook: %s\n", err)
		os.Exit(1)
	}
}
