// Package upstreams loads the relay's upstream definitions from YAML or JSON
// files. Each upstream names a route prefix and the root URL requests under
// that prefix are forwarded to.
package upstreams

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultTimeoutSeconds = 5

// configFile represents the structure of the upstreams configuration file.
type configFile struct {
	Upstreams []Upstream `json:"upstreams" yaml:"upstreams"`
}

// Upstream declares one proxied sub-application.
type Upstream struct {
	ID             string            `json:"id" yaml:"id"`
	Prefix         string            `json:"prefix" yaml:"prefix"`
	RootURL        string            `json:"root_url" yaml:"root_url"`
	Authorization  string            `json:"authorization" yaml:"authorization"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int64             `json:"timeout_seconds" yaml:"timeout_seconds"`
	Enabled        *bool             `json:"enabled" yaml:"enabled"`
}

// Timeout returns the per-request timeout for this upstream.
func (u Upstream) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// IsEnabled returns the enabled flag defaulting to true.
func (u Upstream) IsEnabled() bool {
	if u.Enabled == nil {
		return true
	}
	return *u.Enabled
}

// Registry materializes upstream definitions loaded from config files.
type Registry struct {
	mu        sync.RWMutex
	upstreams []Upstream
	idx       map[string]Upstream
}

// LoadRegistry loads the upstream registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("upstreams file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upstreams file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upstreams file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Upstreams) == 0 {
		return nil, errors.New("upstreams file contains no upstreams entries")
	}

	reg := &Registry{
		upstreams: make([]Upstream, len(fileReg.Upstreams)),
		idx:       make(map[string]Upstream, len(fileReg.Upstreams)),
	}

	for i := range fileReg.Upstreams {
		cfg := sanitizeUpstream(fileReg.Upstreams[i])
		if err := validateUpstream(cfg); err != nil {
			return nil, fmt.Errorf("upstreams[%d]: %w", i, err)
		}
		if _, exists := reg.idx[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate upstream id %q", cfg.ID)
		}
		reg.upstreams[i] = cfg
		reg.idx[cfg.ID] = cfg
	}

	return reg, nil
}

// parseRegistry attempts to decode the upstreams file content.
func parseRegistry(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg configFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return configFile{}, errors.New("upstreams file format not recognized (expected YAML or JSON)")
}

// sanitizeUpstream trims and normalizes the upstream fields.
func sanitizeUpstream(cfg Upstream) Upstream {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Prefix = strings.TrimSpace(cfg.Prefix)
	cfg.RootURL = strings.TrimSpace(cfg.RootURL)
	cfg.Authorization = strings.TrimSpace(cfg.Authorization)

	if cfg.Prefix != "" && !strings.HasPrefix(cfg.Prefix, "/") {
		cfg.Prefix = "/" + cfg.Prefix
	}
	cfg.Prefix = strings.TrimSuffix(cfg.Prefix, "/")
	cfg.Headers = sanitizeHeaders(cfg.Headers)
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.Enabled == nil {
		def := true
		cfg.Enabled = &def
	}

	return cfg
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateUpstream checks that required fields are present.
func validateUpstream(cfg Upstream) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}
	if cfg.Prefix == "" {
		return fmt.Errorf("prefix is required for upstream %q", cfg.ID)
	}
	if cfg.RootURL == "" {
		return fmt.Errorf("root_url is required for upstream %q", cfg.ID)
	}
	return nil
}

// ByID returns the upstream config by id.
func (r *Registry) ByID(id string) (Upstream, bool) {
	if r == nil {
		return Upstream{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Upstream{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.idx[id]
	return cfg, ok
}

// All returns all configured upstreams.
func (r *Registry) All() []Upstream {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Upstream, len(r.upstreams))
	copy(out, r.upstreams)
	return out
}

// Enabled returns upstreams that are enabled.
func (r *Registry) Enabled() []Upstream {
	if r == nil {
		return nil
	}

	all := r.All()
	if len(all) == 0 {
		return nil
	}

	out := make([]Upstream, 0, len(all))
	for _, cfg := range all {
		if cfg.IsEnabled() {
			out = append(out, cfg)
		}
	}
	return out
}
