package hosts

import (
	"net/netip"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// EnvVariable names the environment variable holding the environment tag.
const EnvVariable = "HOSTS_ENV"

type Match struct {
	Addr netip.Addr
	File string
	Line int
}

// Candidates returns the file names probed in every directory, most
// specific first. An empty env disables the tagged names.
func Candidates(env string) []string {
	names := make([]string, 0, 4)
	if env != "" {
		names = append(names, "hosts."+env, ".hosts."+env)
	}
	return append(names, "hosts", ".hosts")
}

// Lookup searches the working directory and its ancestors.
func Lookup(hostname, env string) (Match, bool) {
	dir, err := getwd()
	if err != nil {
		logrus.Debugf("hosts: failed to get working directory: %v", err)
		return Match{}, false
	}
	return LookupFrom(dir, hostname, env)
}

func LookupFrom(dir, hostname, env string) (Match, bool) {
	if hostname == "" {
		return Match{}, false
	}

	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	names := Candidates(env)
	for _, d := range ancestors(dir) {
		for _, name := range names {
			path := filepath.Join(d, name)
			if m, ok := lookupFile(path, hostname); ok {
				return m, true
			}
		}
	}
	return Match{}, false
}

func lookupFile(path, hostname string) (Match, bool) {
	f, err := os.Open(path)
	if err != nil {
		logrus.Tracef("hosts: not found: %s", path)
		return Match{}, false
	}
	defer f.Close()

	logrus.Debugf("hosts: found %s", path)

	addr, line, ok := Scan(f, hostname)
	if !ok {
		return Match{}, false
	}

	logrus.Debugf("hosts: %s -> %s (%s:%d)", hostname, addr, path, line)
	return Match{
		Addr: addr,
		File: path,
		Line: line,
	}, true
}

// ancestors returns dir followed by each lexical parent up to the root.
func ancestors(dir string) []string {
	dirs := []string{dir}
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return dirs
		}
		dirs = append(dirs, parent)
		dir = parent
	}
}
