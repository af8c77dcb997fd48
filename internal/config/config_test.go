package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_SOURCE", SourceFixture)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, SourceFixture, cfg.DataSource)
}

func TestLoadLiveRequiresToken(t *testing.T) {
	t.Setenv("DATA_SOURCE", SourceLive)
	t.Setenv("BACKEND_API_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BACKEND_API_TOKEN", "secret")
	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIToken)
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	t.Setenv("DATA_SOURCE", "imaginary")

	_, err := Load()
	assert.Error(t, err)
}
