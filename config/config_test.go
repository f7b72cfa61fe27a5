package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadWithoutFileUsesEnv(t *testing.T) {
	t.Setenv("FRETDEX_ADDR", ":9999")
	t.Setenv("FRETDEX_PROFILES_TABLE", "")
	cfg, err := Load("")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(":9999", cfg.ListenAddr)
	assert.Equal("fretdex-profiles", cfg.Dynamo.Table)
	assert.Equal(30*time.Millisecond, cfg.Settle)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fretdex.yaml")
	data := "profile: bass\nsettle: 50ms\ndynamo:\n  endpoint: http://localhost:8000\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("bass", cfg.Profile)
	assert.Equal(50*time.Millisecond, cfg.Settle)
	assert.Equal("http://localhost:8000", cfg.Dynamo.Endpoint)
	assert.Equal("localhost", cfg.Dynamo.Region)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
