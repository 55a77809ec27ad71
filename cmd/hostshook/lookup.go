package main

import (
	"fmt"
	"io"

	"github.com/fanpei91/hostshook/hosts"
	"github.com/fanpei91/hostshook/native"
	"github.com/spf13/cobra"
)

func newLookupCmd(opts *options) *cobra.Command {
	var showNative bool

	cmd := &cobra.Command{
		Use:   "lookup HOST",
		Short: "Print the override address for HOST and the file it comes from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleLookup(cmd.OutOrStdout(), opts, args[0], showNative)
		},
	}
	cmd.Flags().StringVar(&opts.cfg.Dir, "dir", "", "directory to start from (default: working directory)")
	cmd.Flags().BoolVar(&showNative, "native", false, "also print the hostent and addrinfo the hook would return")
	return cmd
}

func handleLookup(w io.Writer, opts *options, hostname string, showNative bool) error {
	var m hosts.Match
	var ok bool
	if opts.cfg.Dir != "" {
		m, ok = hosts.LookupFrom(opts.cfg.Dir, hostname, opts.cfg.Env)
	} else {
		m, ok = hosts.Lookup(hostname, opts.cfg.Env)
	}
	if !ok {
		return fmt.Errorf("no override for %s", hostname)
	}

	fmt.Fprintf(w, "%s\t%s:%d\n", m.Addr, m.File, m.Line)
	if !showNative {
		return nil
	}

	b := native.New()

	he := b.HostEnt(hostname, m.Addr)
	if he == nil {
		return fmt.Errorf("build hostent for %s", hostname)
	}
	defer native.FreeHostEnt(he)
	h, err := native.ReadHostEnt(he)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "hostent\tname=%s family=%d length=%d addrs=%v aliases=%d\n",
		h.Name, h.Family, h.Length, h.Addrs, len(h.Aliases))

	ai := b.AddrInfo(hostname, m.Addr)
	if ai == nil {
		return fmt.Errorf("build addrinfo for %s", hostname)
	}
	defer native.FreeAddrInfo(ai)
	infos, err := native.ReadAddrInfo(ai)
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Fprintf(w, "addrinfo\tfamily=%d socktype=%d protocol=%d addrlen=%d addr=%s canonname=%s\n",
			info.Family, info.SockType, info.Protocol, info.AddrLen, info.Addr, info.CanonName)
	}
	return nil
}
