package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(tavilyAPIKeyEnv, "")
	t.Setenv(openAIAPIKeyEnv, "")

	cfg := Load()

	if cfg.Search.Query != "artificial intelligence and machine learning news" {
		t.Fatalf("unexpected default query: %q", cfg.Search.Query)
	}
	if cfg.Search.TimeRange != "week" || cfg.Search.SearchDepth != "advanced" || cfg.Search.MaxResults != 5 {
		t.Fatalf("unexpected default search params: %+v", cfg.Search)
	}
	if cfg.Report.FilePrefix != "ai_news_report" {
		t.Fatalf("unexpected report prefix: %q", cfg.Report.FilePrefix)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected default model: %q", cfg.OpenAI.Model)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(tavilyAPIKeyEnv, "tv-key")
	t.Setenv(openAIAPIKeyEnv, "oa-key")
	t.Setenv(openAIModelEnv, "gpt-4o")
	t.Setenv(databaseDSNEnv, "postgres://u:p@localhost/runs")

	cfg := Load()

	if cfg.Search.APIKey != "tv-key" {
		t.Fatalf("tavily key override lost: %q", cfg.Search.APIKey)
	}
	if cfg.OpenAI.APIKey != "oa-key" || cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("openai overrides lost: %+v", cfg.OpenAI)
	}
	if cfg.Database.DSN != "postgres://u:p@localhost/runs" {
		t.Fatalf("dsn override lost: %q", cfg.Database.DSN)
	}
}

func TestLoadMergesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("search:\n  query: quantum computing news\n  maxResults: 3\nreport:\n  outputDir: /tmp/reports\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(tavilyAPIKeyEnv, "")
	t.Setenv(openAIAPIKeyEnv, "")

	cfg := Load()

	if cfg.Search.Query != "quantum computing news" || cfg.Search.MaxResults != 3 {
		t.Fatalf("file values not merged: %+v", cfg.Search)
	}
	if cfg.Report.OutputDir != "/tmp/reports" {
		t.Fatalf("report dir not merged: %q", cfg.Report.OutputDir)
	}
	// Values absent from the file keep their defaults.
	if cfg.Search.SearchDepth != "advanced" {
		t.Fatalf("default lost after merge: %q", cfg.Search.SearchDepth)
	}
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := defaultConfig()

	if err := cfg.Validate(); !errors.Is(err, ErrMissingTavilyKey) {
		t.Fatalf("expected missing tavily key, got %v", err)
	}

	cfg.Search.APIKey = "tv-key"
	if err := cfg.Validate(); !errors.Is(err, ErrMissingOpenAIKey) {
		t.Fatalf("expected missing openai key, got %v", err)
	}

	cfg.OpenAI.APIKey = "oa-key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
