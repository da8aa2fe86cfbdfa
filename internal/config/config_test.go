package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PassesValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_RejectsBadWeights(t *testing.T) {
	c := Default()
	c.Weights.Trend = 0.9
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestValidate_RejectsNonPositiveMinRows(t *testing.T) {
	c := Default()
	c.MinRequiredRows = 0
	assert.Error(t, c.Validate())
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_required_rows: 250\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, c.MinRequiredRows)
	assert.Equal(t, Default().RSIPeriod, c.RSIPeriod)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
