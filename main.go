// Command hostshook is a preload library that answers gethostbyname,
// gethostbyname2 and getaddrinfo from project-local hosts files before
// falling back to the system resolver.
//
//	go build -buildmode=c-shared -o libhostshook.so .
//	LD_PRELOAD=$PWD/libhostshook.so curl http://svc.local/
//
// On macOS build libhostshook.dylib and use DYLD_INSERT_LIBRARIES.
//
// On Linux a child that forks without exec never sees overrides: the Go
// runtime does not survive fork, so the child always asks libc. Pre-fork
// servers and daemonising processes resolve through the system resolver
// after the fork.
package main

import "C"

func main() {}
