package native

import (
	"net/netip"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestHostEntIPv4(t *testing.T) {
	p := New().HostEnt("svc.local", netip.MustParseAddr("10.0.0.5"))
	require.NotNil(t, p)
	defer FreeHostEnt(p)

	he, err := ReadHostEnt(p)
	require.NoError(t, err)
	require.Equal(t, "svc.local", he.Name)
	require.Equal(t, unix.AF_INET, he.Family)
	require.Equal(t, 4, he.Length)
	require.Equal(t, []netip.Addr{netip.MustParseAddr("10.0.0.5")}, he.Addrs)
	require.Empty(t, he.Aliases)
}

func TestHostEntIPv6(t *testing.T) {
	addr := netip.MustParseAddr("fd00::1234:5678")
	p := New().HostEnt("v6.local", addr)
	require.NotNil(t, p)
	defer FreeHostEnt(p)

	he, err := ReadHostEnt(p)
	require.NoError(t, err)
	require.Equal(t, unix.AF_INET6, he.Family)
	require.Equal(t, 16, he.Length)
	require.Equal(t, []netip.Addr{addr}, he.Addrs)
}

func TestHostEntPayloadBytes(t *testing.T) {
	p := New().HostEnt("svc.local", netip.MustParseAddr("192.168.1.2"))
	require.NotNil(t, p)
	defer FreeHostEnt(p)

	// h_addr_list[0] must hold the octets in network order.
	he, err := ReadHostEnt(p)
	require.NoError(t, err)
	require.Equal(t, [4]byte{192, 168, 1, 2}, he.Addrs[0].As4())
}

func TestAddrInfoIPv4(t *testing.T) {
	p := New().AddrInfo("svc.local", netip.MustParseAddr("10.0.0.5"))
	require.NotNil(t, p)
	defer FreeAddrInfo(p)

	infos, err := ReadAddrInfo(p)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	ai := infos[0]
	require.Equal(t, unix.AF_INET, ai.Family)
	require.Equal(t, unix.SOCK_STREAM, ai.SockType)
	require.Equal(t, 0, ai.Protocol)
	require.Equal(t, unix.SizeofSockaddrInet4, ai.AddrLen)
	require.Equal(t, "svc.local", ai.CanonName)
	require.Equal(t, netip.MustParseAddrPort("10.0.0.5:0"), ai.Addr)
}

func TestAddrInfoIPv6(t *testing.T) {
	p := New().AddrInfo("v6.local", netip.MustParseAddr("2001:db8::1"))
	require.NotNil(t, p)
	defer FreeAddrInfo(p)

	infos, err := ReadAddrInfo(p)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	ai := infos[0]
	require.Equal(t, unix.AF_INET6, ai.Family)
	require.Equal(t, unix.SizeofSockaddrInet6, ai.AddrLen)
	require.Equal(t, netip.MustParseAddrPort("[2001:db8::1]:0"), ai.Addr)
}

func TestInvalidAddress(t *testing.T) {
	require.Nil(t, New().HostEnt("svc.local", netip.Addr{}))
	require.Nil(t, New().AddrInfo("svc.local", netip.Addr{}))
}

func TestReadNil(t *testing.T) {
	_, err := ReadHostEnt(nil)
	require.Error(t, err)
	_, err = ReadAddrInfo(nil)
	require.Error(t, err)
}

// countingBuilder fails the allocation with index failAt and counts frees.
type countingBuilder struct {
	allocs int
	frees  int
	failAt int
}

func (c *countingBuilder) builder() *Builder {
	return &Builder{
		Alloc: func(size uintptr) unsafe.Pointer {
			defer func() { c.allocs++ }()
			if c.allocs == c.failAt {
				return nil
			}
			return Malloc(size)
		},
		Free: func(p unsafe.Pointer) {
			c.frees++
			Free(p)
		},
	}
}

func TestAllocationFailureRollsBack(t *testing.T) {
	addrs := []netip.Addr{
		netip.MustParseAddr("10.0.0.5"),
		netip.MustParseAddr("fd00::5"),
	}

	builds := map[string]func(*Builder, netip.Addr) unsafe.Pointer{
		"hostent": func(b *Builder, addr netip.Addr) unsafe.Pointer {
			return b.HostEnt("svc.local", addr)
		},
		"addrinfo": func(b *Builder, addr netip.Addr) unsafe.Pointer {
			return b.AddrInfo("svc.local", addr)
		},
	}

	for name, build := range builds {
		for _, addr := range addrs {
			probe := &countingBuilder{failAt: -1}
			p := build(probe.builder(), addr)
			require.NotNil(t, p)
			total := probe.allocs
			if name == "hostent" {
				FreeHostEnt(p)
			} else {
				FreeAddrInfo(p)
			}

			for failAt := 0; failAt < total; failAt++ {
				c := &countingBuilder{failAt: failAt}
				require.Nil(t, build(c.builder(), addr), "%s %s fail at %d", name, addr, failAt)
				require.Equal(t, failAt, c.frees, "%s %s fail at %d", name, addr, failAt)
			}
		}
	}
}
