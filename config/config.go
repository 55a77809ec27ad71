package config

import (
	"fmt"
	"os"
	"time"

	"github.com/fanpei91/hostshook/hosts"
	"gopkg.in/yaml.v3"
)

const (
	EnvLogLevel = "HOSTS_HOOK_LOG_LEVEL"
	EnvLogFile  = "HOSTS_HOOK_LOG_FILE"

	DefaultLibraryLogLevel = "WARN"
)

// Library is the preload library configuration. It can only come from the
// environment of the hooked process.
type Library struct {
	Env      string
	LogLevel string
	LogFile  string
}

func FromEnv() Library {
	return FromLookup(os.LookupEnv)
}

func FromLookup(lookup func(string) (string, bool)) Library {
	l := Library{LogLevel: DefaultLibraryLogLevel}
	if v, ok := lookup(hosts.EnvVariable); ok {
		l.Env = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		l.LogLevel = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		l.LogFile = v
	}
	return l
}

type CLI struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	Library  string `yaml:"library"`
	Dir      string `yaml:"dir"`
	DNS      DNS    `yaml:"dns"`
}

type DNS struct {
	Listen       string        `yaml:"listen"`
	Upstream     string        `yaml:"upstream"`
	UpstreamRate float64       `yaml:"upstream_rate"`
	Timeout      time.Duration `yaml:"timeout"`
}

func Default() CLI {
	return CLI{
		LogLevel: "INFO",
		DNS: DNS{
			Listen:   "127.0.0.1:5353",
			Upstream: "1.1.1.1:53",
			Timeout:  5 * time.Second,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (CLI, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}
