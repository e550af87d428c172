package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("HOSTDB_TEST")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want %+v", cfg, Default())
	}
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOSTDB_TEST_TIMEZONE", "Asia/Tokyo")
	t.Setenv("HOSTDB_TEST_NULL_MARKER", "-")
	t.Setenv("HOSTDB_TEST_OUTPUT", "csv")
	t.Setenv("HOSTDB_TEST_LOG_LEVEL", "debug")

	cfg, err := Load("HOSTDB_TEST")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timezone != "Asia/Tokyo" || cfg.NullMarker != "-" || cfg.Output != "csv" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Load() log = %+v", cfg.Log)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hostdb.yaml")
	data := "timezone: America/New_York\noutput: jsonl\nlog:\n  format: json\n  add_source: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	// Environment wins over the file.
	t.Setenv("HOSTDB_TEST_OUTPUT", "table")

	cfg, err := LoadFile("HOSTDB_TEST_", path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Timezone != "America/New_York" || cfg.Output != "table" || cfg.NullMarker != "NULL" {
		t.Errorf("LoadFile() = %+v", cfg)
	}
	if cfg.Log.Format != "json" || !cfg.Log.AddSource || cfg.Log.Level != "info" {
		t.Errorf("LoadFile() log = %+v", cfg.Log)
	}

	loc, err := cfg.Location()
	if err != nil || loc.String() != "America/New_York" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("HOSTDB_TEST", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile() expected error for a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"empty timezone", func(c *Config) { c.Timezone = "" }, false},
		{"unknown timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"unknown output", func(c *Config) { c.Output = "xml" }, true},
		{"table output", func(c *Config) { c.Output = "TABLE" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOSTDB_TEST_TIMEZONE", "Nowhere/Special")
	if _, err := Load("HOSTDB_TEST"); err == nil {
		t.Error("Load() expected error for an unknown timezone")
	}
}
