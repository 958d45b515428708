package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInitializesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	config, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.airtable.com", config.Airtable.APIHost)
	assert.Equal(t, 1500, config.Chat.ResponseDelayMilliseconds)

	// The default file is written for next time.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestParseEnvironmentOverridesCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("AIRTABLE_ACCESS_TOKEN", "pat-from-env")
	t.Setenv("AIRTABLE_BASE_ID", "appFromEnv")

	config, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "pat-from-env", config.Airtable.AccessToken)
	assert.Equal(t, "appFromEnv", config.Airtable.BaseID)
}

func TestParseRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Parse(path)
	assert.Error(t, err)
}
