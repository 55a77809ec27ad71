package native

import "unsafe"

// libinfo's freeaddrinfo frees ai_addr on its own.
const sockaddrInline = false

// sa_len is the first byte of every BSD sockaddr.
func setSockaddrLen(p unsafe.Pointer, size uintptr) {
	*(*uint8)(p) = uint8(size)
}
