package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestValidateRejectsMissingModel(t *testing.T) {
	cfg := Defaults()
	cfg.Model = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMalformedURL(t *testing.T) {
	cfg := Defaults()
	cfg.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := Config{BaseURL: "http://example.com/v1", Model: "test-model", APIKey: "sk-test"}
	require.NoError(t, Save(cfg))

	got := Load()
	assert.Equal(t, cfg, got)
}

func TestLoadFallsBackToDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	got := Load()
	assert.Equal(t, Defaults(), got)
}

func TestLoadFallsBackToDefaultsOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	path, err := Path()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not: [valid: yaml"), 0o600))

	got := Load()
	assert.Equal(t, Defaults(), got)
}
