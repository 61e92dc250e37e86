package upstreams

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeRegistryFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write registry file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeRegistryFile(t, "upstreams.yaml", `
upstreams:
  - id: search
    prefix: /search
    root_url: https://api.example/v1
    authorization: "Bearer tok"
    timeout_seconds: 10
  - id: legacy
    prefix: legacy
    root_url: http://legacy.internal
    enabled: false
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	all := reg.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 upstreams, got %d", len(all))
	}

	search, ok := reg.ByID("search")
	if !ok {
		t.Fatalf("search upstream missing")
	}
	if search.RootURL != "https://api.example/v1" {
		t.Fatalf("unexpected root url %q", search.RootURL)
	}
	if search.Timeout() != 10*time.Second {
		t.Fatalf("unexpected timeout %v", search.Timeout())
	}

	// Prefix gains a leading slash during sanitization.
	legacy, ok := reg.ByID("legacy")
	if !ok {
		t.Fatalf("legacy upstream missing")
	}
	if legacy.Prefix != "/legacy" {
		t.Fatalf("unexpected prefix %q", legacy.Prefix)
	}
	if legacy.Timeout() != defaultTimeoutSeconds*time.Second {
		t.Fatalf("expected default timeout, got %v", legacy.Timeout())
	}

	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "search" {
		t.Fatalf("unexpected enabled set %+v", enabled)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeRegistryFile(t, "upstreams.json", `{
  "upstreams": [
    {"id": "core", "prefix": "/core", "root_url": "http://core.internal"}
  ]
}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if _, ok := reg.ByID("core"); !ok {
		t.Fatalf("core upstream missing")
	}
}

func TestLoadRegistryDuplicateID(t *testing.T) {
	path := writeRegistryFile(t, "upstreams.yaml", `
upstreams:
  - id: dup
    prefix: /a
    root_url: http://a.internal
  - id: dup
    prefix: /b
    root_url: http://b.internal
`)

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestLoadRegistryMissingRootURL(t *testing.T) {
	path := writeRegistryFile(t, "upstreams.yaml", `
upstreams:
  - id: broken
    prefix: /broken
`)

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadRegistryEmptyFile(t *testing.T) {
	path := writeRegistryFile(t, "upstreams.yaml", "upstreams: []\n")

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
