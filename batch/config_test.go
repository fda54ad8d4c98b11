package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/formulafmt/formula"
)

func TestLoadConfigMissing(t *testing.T) {
	t.Parallel()
	config, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigPartial(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `name: docs
extensions: [".fx", ".formula"]
theme:
  function: "#000000"
  parens: ["#111111", "#222222", "#333333"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "docs", config.Name)
	assert.Equal(t, formula.DefaultCacheSize, config.CacheSize)
	assert.Equal(t, []string{".fx", ".formula"}, config.Extensions)
	assert.Equal(t, "#000000", config.Theme.Function)
	assert.Equal(t, formula.DefaultTheme().FieldRef, config.Theme.FieldRef)
	assert.Len(t, config.Theme.Parens, 3)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("name: [unclosed"), 0o644))
	_, err := LoadConfig(badYAML)
	assert.Error(t, err)

	badTheme := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(badTheme, []byte("theme:\n  operator: red\n"), 0o644))
	_, err = LoadConfig(badTheme)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultConfigPath)

	config := DefaultConfig()
	config.Name = "saved"
	config.CacheSize = 16
	require.NoError(t, SaveConfig(path, config))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestConfigNewService(t *testing.T) {
	t.Parallel()
	config := Config{CacheSize: 2, Theme: formula.Theme{Comma: "#000000"}}

	svc, err := config.NewService()
	require.NoError(t, err)
	require.NotNil(t, svc.Cache())
	assert.Equal(t, "#000000", svc.Theme().Comma)

	svc.Condense("1")
	svc.Condense("2")
	svc.Condense("3")
	assert.Equal(t, 2, svc.Cache().Len())
}
