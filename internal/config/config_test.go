package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Project.Root)
	assert.Equal(t, "docs", cfg.Output.Dir)
	assert.Equal(t, "docdecl.db", cfg.Database.Path)
	assert.Equal(t, 0, cfg.Jobs)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
project:
  root: /src/project
  ignore: [generated]
output:
  dir: out
database:
  path: state.db
jobs: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/src/project", cfg.Project.Root)
	assert.Equal(t, []string{"generated"}, cfg.Project.Ignore)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "state.db", cfg.Database.Path)
	assert.Equal(t, 4, cfg.Jobs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DOCDECL_DB_PATH", "env.db")
	t.Setenv("DOCDECL_OUTPUT_DIR", "env-docs")
	t.Setenv("DOCDECL_JOBS", "8")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Database.Path)
	assert.Equal(t, "env-docs", cfg.Output.Dir)
	assert.Equal(t, 8, cfg.Jobs)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: ["), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
