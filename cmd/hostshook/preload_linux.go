package main

const libraryName = "libhostshook.so"

func preloadEnv(environ []string, lib string) ([]string, error) {
	return prependEnv(environ, "LD_PRELOAD", lib, " "), nil
}
