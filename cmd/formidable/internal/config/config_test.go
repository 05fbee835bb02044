package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv(EnvDraftsPath, "")
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	cfg, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorAuto)
	}
	if filepath.Base(cfg.DraftsPath) != "drafts.db" {
		t.Errorf("DraftsPath = %q, want a drafts.db default", cfg.DraftsPath)
	}
	if cfg.Verbose {
		t.Error("Verbose = true by default")
	}
}

func TestResolveFromFile(t *testing.T) {
	t.Setenv(EnvDraftsPath, "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `
drafts:
  path: state/drafts.db
output:
  color: Never
  verbose: true
`)

	cfg, err := Resolve(dir, "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if want := filepath.Join(dir, "state", "drafts.db"); cfg.DraftsPath != want {
		t.Errorf("DraftsPath = %q, want %q", cfg.DraftsPath, want)
	}
	if cfg.Color != ColorNever {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorNever)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestResolveEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "drafts: {path: from-file.db}\n")
	t.Setenv(EnvDraftsPath, "/var/lib/formidable/drafts.db")

	cfg, err := Resolve(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DraftsPath != "/var/lib/formidable/drafts.db" {
		t.Errorf("DraftsPath = %q, want env override", cfg.DraftsPath)
	}
}

func TestResolveExplicitConfig(t *testing.T) {
	t.Setenv(EnvDraftsPath, "")
	dir := t.TempDir()
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "output: {color: always}\n")

	cfg, err := Resolve(dir, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Color != ColorAlways {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorAlways)
	}

	if _, err := Resolve(dir, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Resolve with a missing explicit config should fail")
	}
}

func TestResolveErrors(t *testing.T) {
	t.Setenv(EnvDraftsPath, "")
	tests := []struct {
		name    string
		content string
	}{
		{"bad color", "output: {color: rainbow}\n"},
		{"bad yaml", "output: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, FileName), tt.content)
			if _, err := Resolve(dir, ""); err == nil {
				t.Errorf("Resolve() succeeded, want error")
			}
		})
	}
}
