package main

/*
#include <netdb.h>

typedef const char *hh_const_char_ptr;
typedef const struct addrinfo *hh_const_addrinfo_ptr;
typedef struct addrinfo **hh_addrinfo_ptr_ptr;
*/
import "C"

// dyld redirects the hooked symbols to these wrappers through the
// __DATA,__interpose table in hook_darwin.c. Calls made from this image
// are not redirected, so the wrappers reach libc by name.

//export hostshook_gethostbyname
func hostshook_gethostbyname(name C.hh_const_char_ptr) *C.struct_hostent {
	if h := overrideHostEnt(name); h != nil {
		return h
	}
	return C.gethostbyname(name)
}

//export hostshook_gethostbyname2
func hostshook_gethostbyname2(name C.hh_const_char_ptr, af C.int) *C.struct_hostent {
	if h := overrideHostEnt2(name, af); h != nil {
		return h
	}
	return C.gethostbyname2(name, af)
}

//export hostshook_getaddrinfo
func hostshook_getaddrinfo(node, service C.hh_const_char_ptr, hints C.hh_const_addrinfo_ptr, res C.hh_addrinfo_ptr_ptr) C.int {
	if overrideAddrInfo(node, res) {
		return 0
	}
	return C.getaddrinfo(node, service, hints, res)
}
