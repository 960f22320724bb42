package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"OPENROUTER_API_KEY", "LLM_MODEL", "LLM_PROVIDER", "AGENT_CONCURRENCY",
		"SEARCH_PROVIDER", "SERPAPI_KEY", "DATA_DIR", "DEBUG_LLM", "LOG_LEVEL",
		"NAMAZING_CONFIG_FILE",
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadAppliesDefaultsWhenUnset(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Model != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, cfg.Model)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, cfg.Concurrency)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if !cfg.UseStubs() {
		t.Error("expected UseStubs to be true with no API key configured")
	}
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-live")
	t.Setenv("LLM_MODEL", "anthropic/claude")
	t.Setenv("AGENT_CONCURRENCY", "8")
	t.Setenv("DEBUG_LLM", "true")

	cfg := Load()

	if cfg.OpenRouterAPIKey != "sk-live" {
		t.Errorf("expected API key from env, got %q", cfg.OpenRouterAPIKey)
	}
	if cfg.Model != "anthropic/claude" {
		t.Errorf("expected model override, got %q", cfg.Model)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("expected concurrency override, got %d", cfg.Concurrency)
	}
	if !cfg.DebugLLM {
		t.Error("expected DebugLLM true")
	}
	if cfg.UseStubs() {
		t.Error("expected UseStubs false once a key is configured")
	}
}

func TestLoadIgnoresInvalidConcurrencyValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("AGENT_CONCURRENCY", "not-a-number")

	cfg := Load()
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("expected fallback concurrency on invalid value, got %d", cfg.Concurrency)
	}
}

func TestLoadAppliesYAMLOverlayButNeverCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "namazing.yaml")
	yamlBody := "model: overlay-model\nconcurrency: 6\nsearch_provider: serpapi\n"
	if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
		t.Fatalf("failed writing overlay file: %v", err)
	}
	t.Setenv("NAMAZING_CONFIG_FILE", path)

	cfg := Load()

	if cfg.Model != "overlay-model" {
		t.Errorf("expected overlay model to apply, got %q", cfg.Model)
	}
	if cfg.Concurrency != 6 {
		t.Errorf("expected overlay concurrency to apply, got %d", cfg.Concurrency)
	}
	if cfg.SearchProvider != "serpapi" {
		t.Errorf("expected overlay search provider to apply, got %q", cfg.SearchProvider)
	}
	if cfg.OpenRouterAPIKey != "sk-from-env" {
		t.Errorf("expected credential to remain environment-only, got %q", cfg.OpenRouterAPIKey)
	}
}

func TestLoadIgnoresUnreadableOverlayPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("NAMAZING_CONFIG_FILE", filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	cfg := Load()
	if cfg.Model != DefaultModel {
		t.Errorf("expected default model when overlay file is missing, got %q", cfg.Model)
	}
}
