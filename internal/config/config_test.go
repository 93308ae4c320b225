package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "-p", cfg.Aggregate.Separator)
	assert.Equal(t, -50.0, cfg.Aggregate.FilterMinimum)
	assert.Equal(t, "Core ID", cfg.Rename.CoreColumn)
	assert.Equal(t, -1, cfg.Rename.DepthColumn)
	assert.Equal(t, -1, cfg.Rename.SectionColumn)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CORELOG_LOGGING_LEVEL", "debug")
	t.Setenv("CORELOG_AGGREGATE_SEPARATOR", "_part")
	t.Setenv("CORELOG_AGGREGATE_FILTER_MINIMUM", "-100")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "_part", cfg.Aggregate.Separator)
	assert.Equal(t, -100.0, cfg.Aggregate.FilterMinimum)
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	t.Setenv("CORELOG_LOGGING_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "corelog.yml")
	content := "logging:\n  level: warn\nrename:\n  depth_column: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Rename.DepthColumn)
	assert.Equal(t, "-p", cfg.Aggregate.Separator, "untouched fields keep defaults")
}

func TestLoad_InvalidLevel(t *testing.T) {
	t.Setenv("CORELOG_LOGGING_LEVEL", "loud")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_InvalidColumnIndex(t *testing.T) {
	t.Setenv("CORELOG_RENAME_DEPTH_COLUMN", "-3")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
