package queries

import (
	"os"
	"path/filepath"
	"testing"
)

func writePresets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "queries.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write presets file: %v", err)
	}
	return path
}

func TestLoad_ValidPresets(t *testing.T) {
	path := writePresets(t, `
queries:
  - name: ltss
    product_names: SUSE Linux Enterprise Server LTSS
    product_versions: 12 SP5
    product_architectures: x86_64
  - product_names: SUSE Linux Enterprise Server
    product_versions: 15 SP6
`)

	sets, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(sets) != 2 {
		t.Fatalf("expected 2 query sets, got %d", len(sets))
	}

	if sets[0].Name != "ltss" || sets[0].ProductVersions != "12 SP5" {
		t.Errorf("unexpected first set: %+v", sets[0])
	}

	// Defaults: generated name, x86_64 architecture.
	if sets[1].Name != "query-2" {
		t.Errorf("expected generated name query-2, got %q", sets[1].Name)
	}
	if sets[1].ProductArchitectures != "x86_64" {
		t.Errorf("expected default architecture, got %q", sets[1].ProductArchitectures)
	}
}

func TestLoad_MissingProductNames(t *testing.T) {
	path := writePresets(t, `
queries:
  - product_versions: 12 SP5
`)

	if _, err := NewLoader(path).Load(); err == nil {
		t.Fatal("expected validation error for missing product_names")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writePresets(t, "")

	if _, err := NewLoader(path).Load(); err == nil {
		t.Fatal("expected error for a presets file without query sets")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := NewLoader("/nonexistent/queries.yml").Load(); err == nil {
		t.Fatal("expected error for a missing presets file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writePresets(t, "queries: [unclosed")

	if _, err := NewLoader(path).Load(); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
