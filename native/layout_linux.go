package native

import "unsafe"

// glibc allocates the sockaddr in the same block as the addrinfo node and
// its freeaddrinfo releases only the node and ai_canonname.
const sockaddrInline = true

func setSockaddrLen(unsafe.Pointer, uintptr) {}
