package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"winnow/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "winnow.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() returned error: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[columns]
id = "ID"
text = "Statement"
classifiers = ["urgency", "exclusive"]

[classify]
window = 2
hashtags = true
whole_word = true

[dictionary]
path = "dictionaries/marketing.yaml"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Columns.ID != "ID" || cfg.Columns.Text != "Statement" {
		t.Errorf("Columns = %+v, want ID/Statement", cfg.Columns)
	}
	if len(cfg.Columns.Classifiers) != 2 {
		t.Errorf("Classifiers = %v, want 2 entries", cfg.Columns.Classifiers)
	}
	if cfg.Classify.Window != 2 || !cfg.Classify.Hashtags || !cfg.Classify.WholeWord {
		t.Errorf("Classify = %+v, want window 2 with both flags set", cfg.Classify)
	}
	if cfg.Dictionary.Path != "dictionaries/marketing.yaml" {
		t.Errorf("Dictionary.Path = %q", cfg.Dictionary.Path)
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, `
[classify]
windwo = 2
`)

	_, err := config.Load(path)
	if err == nil {
		t.Fatal("Load() with unknown key expected error, got nil")
	}
	if !strings.Contains(err.Error(), "windwo") {
		t.Errorf("error %q does not name the unknown key", err)
	}
}

func TestLoad_NegativeWindowRejected(t *testing.T) {
	path := writeConfig(t, `
[classify]
window = -1
`)

	if _, err := config.Load(path); err == nil {
		t.Fatal("Load() with negative window expected error, got nil")
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "[columns\nid = ")
	if _, err := config.Load(path); err == nil {
		t.Fatal("Load() on malformed TOML expected error, got nil")
	}
}
