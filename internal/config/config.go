// Package config loads and persists ShellMaster's user-scoped settings:
// the LLM endpoint, model, and API key. A missing or corrupt file yields
// defaults rather than failing, matching the original client's tolerant
// loader (original_source/src/shellmaster/config.py).
package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the persisted LLM endpoint configuration.
type Config struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
	Model   string `yaml:"model" validate:"required"`
	APIKey  string `yaml:"api_key"`
}

var validate = validator.New()

// Validate checks that cfg's fields are well-formed before it is
// persisted, catching a malformed wizard entry (e.g. a base URL with no
// scheme) before it reaches llmclient at request time.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// Defaults returns the out-of-the-box configuration: a local OpenAI-
// compatible server with no authentication required.
func Defaults() Config {
	return Config{
		BaseURL: "http://localhost:8000/v1",
		Model:   "Qwen-7B",
		APIKey:  "EMPTY",
	}
}

// Path returns the location of the persisted config file,
// ~/.config/shellmaster/config.yaml, creating no directories as a
// side effect.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "shellmaster", "config.yaml"), nil
}

// Load reads the config file, falling back to Defaults() for any field
// left unset by a partial file, and to Defaults() entirely when the file
// is missing or cannot be parsed. Load never returns an error: a corrupt
// config must not prevent the CLI from running (spec §6).
func Load() Config {
	cfg := Defaults()

	path, err := Path()
	if err != nil {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	var onDisk Config
	if err := yaml.Unmarshal(data, &onDisk); err != nil {
		return cfg
	}

	if onDisk.BaseURL != "" {
		cfg.BaseURL = onDisk.BaseURL
	}
	if onDisk.Model != "" {
		cfg.Model = onDisk.Model
	}
	if onDisk.APIKey != "" {
		cfg.APIKey = onDisk.APIKey
	}
	return cfg
}

// Save persists cfg to Path(), creating parent directories as needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ScrubProxyEnv removes proxy-related environment variables and sets the
// Hugging Face mirror endpoint used by the knowledge adapter's embedding
// backend. It is called exactly once, at process start, per spec §5 — the
// only legitimate process-wide mutation in the core.
func ScrubProxyEnv() {
	for _, key := range []string{
		"http_proxy", "https_proxy", "all_proxy",
		"HTTP_PROXY", "HTTPS_PROXY", "ALL_PROXY",
	} {
		os.Unsetenv(key)
	}
	os.Setenv("HF_ENDPOINT", "https://hf-mirror.com")
}
