// Package native builds the C resolver structures (struct hostent and
// struct addrinfo) for an override address. Everything is allocated with
// libc malloc so the caller can release the result the way it releases a
// genuine one.
package native

/*
#include <stdlib.h>
#include <string.h>
#include <netdb.h>
#include <sys/socket.h>
#include <netinet/in.h>

// C.malloc aborts the process when malloc fails; this one reports NULL.
static void *hh_malloc(size_t n) {
	return malloc(n);
}
*/
import "C"

import (
	"net/netip"
	"unsafe"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// Builder allocates through Alloc and releases partial results through
// Free. Alloc returns nil when memory is exhausted.
type Builder struct {
	Alloc func(size uintptr) unsafe.Pointer
	Free  func(p unsafe.Pointer)
}

func New() *Builder {
	return &Builder{
		Alloc: Malloc,
		Free:  Free,
	}
}

// Malloc is libc malloc. It returns nil on failure.
func Malloc(size uintptr) unsafe.Pointer {
	return C.hh_malloc(C.size_t(size))
}

// Free is libc free.
func Free(p unsafe.Pointer) {
	C.free(p)
}

// HostEnt returns a struct hostent * holding addr, or nil.
func (b *Builder) HostEnt(hostname string, addr netip.Addr) unsafe.Pointer {
	if !addr.IsValid() {
		return nil
	}

	raw := addrBytes(addr)
	a := &arena{b: b}

	h := (*C.struct_hostent)(a.alloc(uintptr(C.sizeof_struct_hostent)))
	name := a.cstring(hostname)
	payload := a.alloc(uintptr(len(raw)))
	addrList := (**C.char)(a.alloc(2 * ptrSize))
	aliases := (**C.char)(a.alloc(ptrSize))
	if a.failed {
		a.rollback()
		return nil
	}

	copy(unsafe.Slice((*byte)(payload), len(raw)), raw)
	list := unsafe.Slice(addrList, 2)
	list[0] = (*C.char)(payload)
	list[1] = nil
	*aliases = nil

	h.h_name = name
	h.h_aliases = aliases
	h.h_addrtype = C.int(family(addr))
	h.h_length = C.int(len(raw))
	h.h_addr_list = addrList

	return unsafe.Pointer(h)
}

// AddrInfo returns a single-node struct addrinfo * holding addr with port
// 0, or nil.
func (b *Builder) AddrInfo(hostname string, addr netip.Addr) unsafe.Pointer {
	if !addr.IsValid() {
		return nil
	}

	saLen := uintptr(C.sizeof_struct_sockaddr_in)
	if addr.Is6() {
		saLen = uintptr(C.sizeof_struct_sockaddr_in6)
	}

	a := &arena{b: b}

	var ai *C.struct_addrinfo
	var sa unsafe.Pointer
	if sockaddrInline {
		block := a.alloc(uintptr(C.sizeof_struct_addrinfo) + saLen)
		ai = (*C.struct_addrinfo)(block)
		if block != nil {
			sa = unsafe.Add(block, uintptr(C.sizeof_struct_addrinfo))
		}
	} else {
		ai = (*C.struct_addrinfo)(a.alloc(uintptr(C.sizeof_struct_addrinfo)))
		sa = a.alloc(saLen)
	}
	canon := a.cstring(hostname)
	if a.failed {
		a.rollback()
		return nil
	}

	fillSockaddr(sa, saLen, addr)

	ai.ai_flags = 0
	ai.ai_family = C.int(family(addr))
	ai.ai_socktype = C.int(C.SOCK_STREAM)
	ai.ai_protocol = 0
	ai.ai_addrlen = C.socklen_t(saLen)
	ai.ai_addr = (*C.struct_sockaddr)(sa)
	ai.ai_canonname = canon
	ai.ai_next = nil

	return unsafe.Pointer(ai)
}

func fillSockaddr(p unsafe.Pointer, size uintptr, addr netip.Addr) {
	if addr.Is4() {
		sa := (*C.struct_sockaddr_in)(p)
		sa.sin_family = C.sa_family_t(C.AF_INET)
		sa.sin_port = 0
		*(*[4]byte)(unsafe.Pointer(&sa.sin_addr)) = addr.As4()
	} else {
		sa := (*C.struct_sockaddr_in6)(p)
		sa.sin6_family = C.sa_family_t(C.AF_INET6)
		sa.sin6_port = 0
		sa.sin6_flowinfo = 0
		sa.sin6_scope_id = 0
		*(*[16]byte)(unsafe.Pointer(&sa.sin6_addr)) = addr.As16()
	}
	setSockaddrLen(p, size)
}

func family(addr netip.Addr) int {
	if addr.Is4() {
		return C.AF_INET
	}
	return C.AF_INET6
}

// addrBytes is the in_addr/in6_addr payload: network byte order.
func addrBytes(addr netip.Addr) []byte {
	if addr.Is4() {
		b := addr.As4()
		return b[:]
	}
	b := addr.As16()
	return b[:]
}

// arena records the allocations of one result so a failed build can be
// undone.
type arena struct {
	b      *Builder
	ptrs   []unsafe.Pointer
	failed bool
}

func (a *arena) alloc(size uintptr) unsafe.Pointer {
	if a.failed {
		return nil
	}
	p := a.b.Alloc(size)
	if p == nil {
		a.failed = true
		return nil
	}
	C.memset(p, 0, C.size_t(size))
	a.ptrs = append(a.ptrs, p)
	return p
}

func (a *arena) cstring(s string) *C.char {
	p := a.alloc(uintptr(len(s)) + 1)
	if p == nil {
		return nil
	}
	buf := unsafe.Slice((*byte)(p), len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return (*C.char)(p)
}

func (a *arena) rollback() {
	for i := len(a.ptrs) - 1; i >= 0; i-- {
		a.b.Free(a.ptrs[i])
	}
	a.ptrs = nil
}
