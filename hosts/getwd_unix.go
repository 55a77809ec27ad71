//go:build unix

package hosts

import "golang.org/x/sys/unix"

// getwd asks the kernel, so symlinked directories come back resolved
// rather than as spelled in $PWD.
func getwd() (string, error) {
	return unix.Getwd()
}
