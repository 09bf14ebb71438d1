// Package config loads the server and domain tree description from YAML
// and applies it to a hostmux router. Handlers cannot be serialized;
// configuration carries structure (hosts, static directories, subdomains)
// and handlers are attached in code after Apply.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/hostmux/mux"
)

// ErrMissingCertificate is returned when HTTPS is enabled without a
// certificate file.
var ErrMissingCertificate = errors.New("config: https requires a certificate file")

// ErrMissingKey is returned when HTTPS is enabled without a private key file.
var ErrMissingKey = errors.New("config: https requires a private key file")

// ErrEmptyDomainHost is returned when a domain entry has no host.
var ErrEmptyDomainHost = errors.New("config: domain host must not be empty")

// DefaultListen is the listen address used when none is configured.
const DefaultListen = ":8080"

// Domain describes one domain entry and its nested subdomains.
type Domain struct {
	// Host is the domain name. Top-level entries must be fully
	// qualified; subdomain entries may be a single relative label,
	// which is qualified with the parent host.
	Host string `yaml:"host"`

	// StaticDir is an optional directory served as static fallback when
	// no route matches on this domain.
	StaticDir string `yaml:"static_dir,omitempty"`

	// Subdomains nests further domain entries under this host.
	Subdomains []Domain `yaml:"subdomains,omitempty"`
}

// Config is the root server configuration.
type Config struct {
	// Listen is the address the server binds to. Defaults to
	// DefaultListen when empty.
	Listen string `yaml:"listen,omitempty"`

	// HTTPS enables TLS. CertFile and KeyFile are then required and are
	// validated before the server starts.
	HTTPS    bool   `yaml:"https,omitempty"`
	CertFile string `yaml:"cert_file,omitempty"`
	KeyFile  string `yaml:"key_file,omitempty"`

	// CacheCapacity bounds the route cache. Zero keeps the router
	// default.
	CacheCapacity int `yaml:"cache_capacity,omitempty"`

	// Domains is the nested domain tree.
	Domains []Domain `yaml:"domains,omitempty"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for startup-fatal problems: HTTPS
// without certificate material, and domain entries without a host.
func (c *Config) Validate() error {
	if c.HTTPS {
		if c.CertFile == "" {
			return ErrMissingCertificate
		}
		if c.KeyFile == "" {
			return ErrMissingKey
		}
	}

	var walk func(domains []Domain) error
	walk = func(domains []Domain) error {
		for _, d := range domains {
			if d.Host == "" {
				return ErrEmptyDomainHost
			}
			if err := walk(d.Subdomains); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(c.Domains)
}

// Apply builds a router from the configuration: cache capacity, the
// domain tree, and static directories. The returned domain map is keyed
// by normalized host so callers can attach routes and middleware.
func (c *Config) Apply(r *mux.Router) map[string]*mux.Domain {
	if c.CacheCapacity > 0 {
		r.CacheCapacity(c.CacheCapacity)
	}

	domains := make(map[string]*mux.Domain)

	var walk func(parent *mux.Domain, entries []Domain)
	walk = func(parent *mux.Domain, entries []Domain) {
		for _, entry := range entries {
			var d *mux.Domain
			if parent == nil {
				d = r.Domain(entry.Host)
			} else {
				d = parent.Domain(entry.Host)
			}

			if entry.StaticDir != "" {
				d.Static(os.DirFS(entry.StaticDir))
			}

			domains[d.Host()] = d
			walk(d, entry.Subdomains)
		}
	}
	walk(nil, c.Domains)

	return domains
}
