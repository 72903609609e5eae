package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

var mockConfig = []byte(`
---
common:
  production: false
  tracing:
    addr: localhost:4318
registry:
  api_server:
    addr: :8080
  authority_name: Auth490
verifier:
  api_server:
    addr: :8081
  session_ttl: 60
portal:
  api_server:
    addr: :8082
`)

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.cfg")
	assert.NoError(t, os.WriteFile(path, mockConfig, 0666))
	t.Setenv("AUTH490_CONFIG_YAML", path)

	cfg, err := New()
	assert.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Registry.APIServer.Addr)
	assert.Equal(t, "Auth490", cfg.Registry.AuthorityName)
	assert.Equal(t, 60, cfg.Verifier.SessionTTL)

	// Defaults fill the unset values.
	assert.Equal(t, ".pk", cfg.Registry.KeyFile)
	assert.Equal(t, 256, cfg.Common.QR.Size)
	assert.Equal(t, 10, cfg.Common.Tracing.Timeout)
}

func TestNewMissingEnv(t *testing.T) {
	t.Setenv("AUTH490_CONFIG_YAML", "")
	os.Unsetenv("AUTH490_CONFIG_YAML")

	_, err := New()
	assert.Error(t, err)
}

func TestNewMissingFile(t *testing.T) {
	t.Setenv("AUTH490_CONFIG_YAML", filepath.Join(t.TempDir(), "absent.cfg"))

	_, err := New()
	assert.Error(t, err)
}

func TestNewDirAsConfig(t *testing.T) {
	t.Setenv("AUTH490_CONFIG_YAML", t.TempDir())

	_, err := New()
	assert.Error(t, err)
}
