// Package hook holds the consult-then-fallback logic shared by the
// interception adapters. A nil result always means "ask the genuine
// resolver".
package hook

import (
	"net/netip"
	"sync"
	"unsafe"

	"github.com/fanpei91/hostshook/config"
	"github.com/fanpei91/hostshook/hosts"
	"github.com/fanpei91/hostshook/native"
	"github.com/fanpei91/hostshook/utils"
	"github.com/sirupsen/logrus"
)

type Hook struct {
	Lookup  func(hostname string) (hosts.Match, bool)
	Builder *native.Builder
}

var loggerOnce sync.Once

var defaultHook = &Hook{
	Lookup:  lookupFromEnv,
	Builder: native.New(),
}

// Default is the hook used by the preload library. The first call sets up
// logging from the environment.
func Default() *Hook {
	loggerOnce.Do(func() {
		cfg := config.FromLookup(native.LookupEnv)
		if err := utils.SetupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
			logrus.Warnf("hostshook: %v", err)
		}
	})
	return defaultHook
}

// lookupFromEnv reads the environment tag from libc on every call, so a
// setenv by the hooked process takes effect on its next lookup.
func lookupFromEnv(hostname string) (hosts.Match, bool) {
	return hosts.Lookup(hostname, config.FromLookup(native.LookupEnv).Env)
}

func (h *Hook) GetHostByName(name string) unsafe.Pointer {
	return h.hostEnt("gethostbyname", name)
}

// GetHostByName2 ignores af: the family of the override address decides.
func (h *Hook) GetHostByName2(name string, af int) unsafe.Pointer {
	return h.hostEnt("gethostbyname2", name)
}

func (h *Hook) GetAddrInfo(node string) unsafe.Pointer {
	addr, ok := h.find("getaddrinfo", node)
	if !ok {
		return nil
	}

	ai := h.Builder.AddrInfo(node, addr)
	if ai == nil {
		logrus.Warnf("getaddrinfo: failed to build addrinfo for %s", node)
		return nil
	}

	logrus.Debugf("hooked getaddrinfo for: %s -> %s", node, addr)
	return ai
}

func (h *Hook) hostEnt(fn, name string) unsafe.Pointer {
	addr, ok := h.find(fn, name)
	if !ok {
		return nil
	}

	he := h.Builder.HostEnt(name, addr)
	if he == nil {
		logrus.Warnf("%s: failed to build hostent for %s", fn, name)
		return nil
	}

	logrus.Debugf("hooked %s for: %s -> %s", fn, name, addr)
	return he
}

func (h *Hook) find(fn, name string) (netip.Addr, bool) {
	m, ok := h.Lookup(name)
	if !ok {
		logrus.Debugf("no IP address found for %s: %s", fn, name)
		return netip.Addr{}, false
	}
	return m.Addr, true
}
