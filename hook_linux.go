package main

/*
#cgo LDFLAGS: -ldl

#include <netdb.h>

typedef const char *hh_const_char_ptr;
typedef struct addrinfo **hh_addrinfo_ptr_ptr;
*/
import "C"

// The libc symbols themselves are defined in hook_linux.c. They bind the
// next definitions with dlsym(RTLD_NEXT) on first use and only call these
// when the Go runtime belongs to the calling process. A nil or zero result
// sends the call on to libc.

//export hostshook_gethostbyname
func hostshook_gethostbyname(name C.hh_const_char_ptr) *C.struct_hostent {
	return overrideHostEnt(name)
}

//export hostshook_gethostbyname2
func hostshook_gethostbyname2(name C.hh_const_char_ptr, af C.int) *C.struct_hostent {
	return overrideHostEnt2(name, af)
}

//export hostshook_getaddrinfo
func hostshook_getaddrinfo(node C.hh_const_char_ptr, res C.hh_addrinfo_ptr_ptr) C.int {
	if overrideAddrInfo(node, res) {
		return 1
	}
	return 0
}
