package cfg

import (
	"strings"
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load([]string{})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.ProductNames != "SUSE Linux Enterprise Server LTSS" {
		t.Errorf("unexpected default product names: %q", cfg.ProductNames)
	}
	if cfg.ProductVersions != "12 SP5" {
		t.Errorf("unexpected default product versions: %q", cfg.ProductVersions)
	}
	if cfg.ProductArchitectures != "x86_64" {
		t.Errorf("unexpected default architectures: %q", cfg.ProductArchitectures)
	}
	if cfg.Output != "suse_patches.xlsx" {
		t.Errorf("unexpected default output: %q", cfg.Output)
	}
	if cfg.Since != nil {
		t.Errorf("expected no threshold by default, got %v", cfg.Since)
	}
	if cfg.BaseURL == "" {
		t.Error("expected a default base URL")
	}
	if !strings.HasPrefix(cfg.UserAgent, "patchsheet/") {
		t.Errorf("expected versioned default user agent, got %q", cfg.UserAgent)
	}
}

func TestLoad_SinceParsed(t *testing.T) {
	cfg, err := load([]string{"--since", "2025-09-10"})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	want := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	if cfg.Since == nil || !cfg.Since.Equal(want) {
		t.Errorf("expected threshold %v, got %v", want, cfg.Since)
	}
}

func TestLoad_MalformedSinceIsFatal(t *testing.T) {
	_, err := load([]string{"--since", "next tuesday"})
	if err == nil {
		t.Fatal("expected error for malformed --since")
	}
	if !strings.Contains(err.Error(), "--since") {
		t.Errorf("error should name the offending option, got: %v", err)
	}
	if !strings.Contains(err.Error(), "YYYY-MM-DD") {
		t.Errorf("error should name the accepted formats, got: %v", err)
	}
}

func TestLoad_OutputAndQueryOverrides(t *testing.T) {
	cfg, err := load([]string{
		"-o", "report.xlsx",
		"--product-names", "SUSE Linux Enterprise Server",
		"--product-versions", "15 SP6",
		"--product-architectures", "aarch64",
	})
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}

	if cfg.Output != "report.xlsx" {
		t.Errorf("unexpected output: %q", cfg.Output)
	}
	if cfg.ProductNames != "SUSE Linux Enterprise Server" ||
		cfg.ProductVersions != "15 SP6" ||
		cfg.ProductArchitectures != "aarch64" {
		t.Errorf("flag overrides lost: %+v", cfg)
	}
}
