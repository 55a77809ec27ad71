package native

/*
#include <stdlib.h>
#include <netdb.h>
#include <sys/socket.h>
#include <netinet/in.h>
*/
import "C"

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
	"unsafe"
)

var errNilResult = errors.New("nil result")

// HostEnt is the Go view of a struct hostent.
type HostEnt struct {
	Name    string
	Family  int
	Length  int
	Addrs   []netip.Addr
	Aliases []string
}

// AddrInfo is the Go view of one struct addrinfo node.
type AddrInfo struct {
	Family    int
	SockType  int
	Protocol  int
	AddrLen   int
	Addr      netip.AddrPort
	CanonName string
}

// ReadHostEnt decodes a struct hostent *.
func ReadHostEnt(p unsafe.Pointer) (HostEnt, error) {
	if p == nil {
		return HostEnt{}, errNilResult
	}
	h := (*C.struct_hostent)(p)

	he := HostEnt{
		Family: int(h.h_addrtype),
		Length: int(h.h_length),
	}
	if h.h_name != nil {
		he.Name = C.GoString(h.h_name)
	}

	for _, alias := range nullTerminated(h.h_aliases) {
		he.Aliases = append(he.Aliases, C.GoString(alias))
	}

	for _, raw := range nullTerminated(h.h_addr_list) {
		b := C.GoBytes(unsafe.Pointer(raw), h.h_length)
		addr, ok := netip.AddrFromSlice(b)
		if !ok {
			return HostEnt{}, fmt.Errorf("bad address length %d", h.h_length)
		}
		he.Addrs = append(he.Addrs, addr)
	}

	return he, nil
}

// ReadAddrInfo decodes a struct addrinfo * list.
func ReadAddrInfo(p unsafe.Pointer) ([]AddrInfo, error) {
	if p == nil {
		return nil, errNilResult
	}

	var infos []AddrInfo
	for ai := (*C.struct_addrinfo)(p); ai != nil; ai = ai.ai_next {
		info := AddrInfo{
			Family:   int(ai.ai_family),
			SockType: int(ai.ai_socktype),
			Protocol: int(ai.ai_protocol),
			AddrLen:  int(ai.ai_addrlen),
		}
		if ai.ai_canonname != nil {
			info.CanonName = C.GoString(ai.ai_canonname)
		}

		addr, err := readSockaddr(unsafe.Pointer(ai.ai_addr), int(ai.ai_family))
		if err != nil {
			return nil, err
		}
		info.Addr = addr

		infos = append(infos, info)
	}
	return infos, nil
}

func readSockaddr(p unsafe.Pointer, family int) (netip.AddrPort, error) {
	if p == nil {
		return netip.AddrPort{}, errors.New("nil ai_addr")
	}

	switch family {
	case C.AF_INET:
		sa := (*C.struct_sockaddr_in)(p)
		if int(sa.sin_family) != C.AF_INET {
			return netip.AddrPort{}, fmt.Errorf("sin_family %d", sa.sin_family)
		}
		addr := netip.AddrFrom4(*(*[4]byte)(unsafe.Pointer(&sa.sin_addr)))
		port := binary.BigEndian.Uint16((*[2]byte)(unsafe.Pointer(&sa.sin_port))[:])
		return netip.AddrPortFrom(addr, port), nil
	case C.AF_INET6:
		sa := (*C.struct_sockaddr_in6)(p)
		if int(sa.sin6_family) != C.AF_INET6 {
			return netip.AddrPort{}, fmt.Errorf("sin6_family %d", sa.sin6_family)
		}
		addr := netip.AddrFrom16(*(*[16]byte)(unsafe.Pointer(&sa.sin6_addr)))
		port := binary.BigEndian.Uint16((*[2]byte)(unsafe.Pointer(&sa.sin6_port))[:])
		return netip.AddrPortFrom(addr, port), nil
	default:
		return netip.AddrPort{}, fmt.Errorf("unknown family %d", family)
	}
}

func nullTerminated(list **C.char) []*C.char {
	if list == nil {
		return nil
	}
	var out []*C.char
	for p := list; *p != nil; p = (**C.char)(unsafe.Add(unsafe.Pointer(p), ptrSize)) {
		out = append(out, *p)
	}
	return out
}

// FreeHostEnt releases every allocation of a hostent built by HostEnt.
func FreeHostEnt(p unsafe.Pointer) {
	if p == nil {
		return
	}
	h := (*C.struct_hostent)(p)
	for _, raw := range nullTerminated(h.h_addr_list) {
		C.free(unsafe.Pointer(raw))
	}
	C.free(unsafe.Pointer(h.h_addr_list))
	C.free(unsafe.Pointer(h.h_aliases))
	C.free(unsafe.Pointer(h.h_name))
	C.free(p)
}

// FreeAddrInfo hands the list to libc freeaddrinfo.
func FreeAddrInfo(p unsafe.Pointer) {
	if p == nil {
		return
	}
	C.freeaddrinfo((*C.struct_addrinfo)(p))
}
