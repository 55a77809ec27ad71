package main

/*
#include <netdb.h>
*/
import "C"

import "github.com/fanpei91/hostshook/hook"

func overrideHostEnt(name *C.char) *C.struct_hostent {
	if name == nil {
		return nil
	}
	return (*C.struct_hostent)(hook.Default().GetHostByName(C.GoString(name)))
}

func overrideHostEnt2(name *C.char, af C.int) *C.struct_hostent {
	if name == nil {
		return nil
	}
	return (*C.struct_hostent)(hook.Default().GetHostByName2(C.GoString(name), int(af)))
}

// overrideAddrInfo stores a synthesized result in *res and reports whether
// it did. A NULL node never consults the override files.
func overrideAddrInfo(node *C.char, res **C.struct_addrinfo) bool {
	if node == nil || res == nil {
		return false
	}
	ai := hook.Default().GetAddrInfo(C.GoString(node))
	if ai == nil {
		return false
	}
	*res = (*C.struct_addrinfo)(ai)
	return true
}
