//go:build !linux && !darwin

package main

import "errors"

var errNotSupported = errors.New("not supported")

const libraryName = "libhostshook"

func preloadEnv(environ []string, lib string) ([]string, error) {
	return nil, errNotSupported
}
