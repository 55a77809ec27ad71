//go:build !unix

package hosts

import "os"

func getwd() (string, error) {
	return os.Getwd()
}
