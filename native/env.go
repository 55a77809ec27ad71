package native

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// LookupEnv reads the process environment through libc getenv. Unlike
// os.LookupEnv it sees setenv calls made by C code after the Go runtime
// started.
func LookupEnv(key string) (string, bool) {
	k := C.CString(key)
	defer C.free(unsafe.Pointer(k))

	v := C.getenv(k)
	if v == nil {
		return "", false
	}
	return C.GoString(v), true
}
