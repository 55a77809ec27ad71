package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fanpei91/hostshook/dns"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer DNS queries from the hosts files, forwarding the rest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleServe(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.cfg.Dir, "dir", "", "directory to start from (default: working directory)")
	flags.StringVar(&opts.cfg.DNS.Listen, "listen", opts.cfg.DNS.Listen, "UDP address to listen on")
	flags.StringVar(&opts.cfg.DNS.Upstream, "upstream", opts.cfg.DNS.Upstream, "upstream DNS server, empty to disable forwarding")
	flags.Float64Var(&opts.cfg.DNS.UpstreamRate, "upstream-rate", 0, "max forwarded queries per second, 0 for no limit")
	flags.DurationVar(&opts.cfg.DNS.Timeout, "timeout", opts.cfg.DNS.Timeout, "upstream timeout")
	return cmd
}

func handlers(opts *options) ([]dns.Handler, error) {
	dir := opts.cfg.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}

	hs := []dns.Handler{dns.NewHandlerOverHosts(dir, opts.cfg.Env)}
	if opts.cfg.DNS.Upstream != "" {
		hs = append(hs, dns.NewHandlerOverUDP(opts.cfg.DNS.Upstream, opts.cfg.DNS.Timeout, opts.cfg.DNS.UpstreamRate))
	}
	return hs, nil
}

func handleServe(opts *options) error {
	hs, err := handlers(opts)
	if err != nil {
		return err
	}

	for _, h := range hs {
		logrus.Infof("handler: %s", h)
	}
	logrus.Infof("listening on %s", opts.cfg.DNS.Listen)

	server := dns.New(opts.cfg.DNS.Listen, hs...)
	errs := make(chan error, 1)
	go func() {
		errs <- server.Listen()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-sigs:
		logrus.Infof("received %s, shutting down", sig)
		return server.Shutdown()
	}
}
