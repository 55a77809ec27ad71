package main

const libraryName = "libhostshook.dylib"

func preloadEnv(environ []string, lib string) ([]string, error) {
	return prependEnv(environ, "DYLD_INSERT_LIBRARIES", lib, ":"), nil
}
