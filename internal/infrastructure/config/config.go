// Package config loads the orchestrator core's environment-variable
// configuration, spec.md §6: the OpenRouter credential and model
// selection, fan-out width, optional search backend, and debug
// logging toggle.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultModel mirrors llmclient.DefaultModel; duplicated as a literal
// here so config has no import-cycle risk on llmclient.
const DefaultModel = "openai/gpt-oss-20b"

// DefaultConcurrency is AGENT_CONCURRENCY's fallback when unset.
const DefaultConcurrency = 4

// Config is the orchestrator core's process-wide environment
// configuration, spec.md §6.
type Config struct {
	// OpenRouterAPIKey is OPENROUTER_API_KEY. Its absence flips the
	// whole core into stub mode.
	OpenRouterAPIKey string
	// Model is LLM_MODEL, defaulting to DefaultModel.
	Model string
	// Provider is LLM_PROVIDER; when non-empty, requests pin the
	// provider with allow_fallbacks:false.
	Provider string
	// Concurrency is AGENT_CONCURRENCY, the researcher stage's
	// fan-out width in parallel mode.
	Concurrency int
	// SearchProvider is SEARCH_PROVIDER, naming an optional search
	// backend for the (out-of-scope) web-search helper.
	SearchProvider string
	// SerpAPIKey is SERPAPI_KEY, a credential for SearchProvider.
	SerpAPIKey string
	// DataDir is DATA_DIR, overriding the popularity-CSV location
	// used by the (out-of-scope) popularity-lookup helper.
	DataDir string
	// DebugLLM is DEBUG_LLM; when true, request/response pairs are
	// appended to llm_debug.log.
	DebugLLM bool
	// LogLevel sets the zerolog global level.
	LogLevel string
}

// Load reads Config from the process environment, applying spec.md
// §6's defaults, then layers an optional YAML overlay on top (see
// applyOverlay) when NAMAZING_CONFIG_FILE names a readable file.
func Load() *Config {
	cfg := &Config{
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		Model:            getEnv("LLM_MODEL", DefaultModel),
		Provider:         os.Getenv("LLM_PROVIDER"),
		Concurrency:      getEnvInt("AGENT_CONCURRENCY", DefaultConcurrency),
		SearchProvider:   os.Getenv("SEARCH_PROVIDER"),
		SerpAPIKey:       os.Getenv("SERPAPI_KEY"),
		DataDir:          os.Getenv("DATA_DIR"),
		DebugLLM:         getEnvBool("DEBUG_LLM"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if path := os.Getenv("NAMAZING_CONFIG_FILE"); path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			var overlay configOverlay
			if yaml.Unmarshal(raw, &overlay) == nil {
				overlay.applyTo(cfg)
			}
		}
	}

	return cfg
}

// configOverlay is an optional deployment-specific settings file,
// letting an operator pin model/provider/concurrency choices without
// repeating every environment variable. Only fields present in the
// file override Load's environment-derived defaults; env vars still
// take precedence for OPENROUTER_API_KEY and SERPAPI_KEY, which stay
// credential-only and are never read from a file on disk.
type configOverlay struct {
	Model          *string `yaml:"model"`
	Provider       *string `yaml:"provider"`
	Concurrency    *int    `yaml:"concurrency"`
	SearchProvider *string `yaml:"search_provider"`
	DataDir        *string `yaml:"data_dir"`
	LogLevel       *string `yaml:"log_level"`
}

func (o configOverlay) applyTo(cfg *Config) {
	if o.Model != nil {
		cfg.Model = *o.Model
	}
	if o.Provider != nil {
		cfg.Provider = *o.Provider
	}
	if o.Concurrency != nil {
		cfg.Concurrency = *o.Concurrency
	}
	if o.SearchProvider != nil {
		cfg.SearchProvider = *o.SearchProvider
	}
	if o.DataDir != nil {
		cfg.DataDir = *o.DataDir
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
}

// UseStubs reports whether the configured credential is missing,
// spec.md §7's trigger for CredentialsMissing / stub fallback.
func (c *Config) UseStubs() bool {
	return c.OpenRouterAPIKey == ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}
