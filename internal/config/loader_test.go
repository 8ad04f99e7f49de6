package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, content string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(tempDir, "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoadConfig_DefaultPath(t *testing.T) {
	tempDir := t.TempDir()

	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()
	osUserHomeDir = func() (string, error) { return tempDir, nil }

	confDir := filepath.Join(tempDir, userConfigDir)
	require.NoError(t, os.MkdirAll(confDir, 0755))
	createTempConfigFile(t, confDir, "namespace: from-home\n")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-home", cfg.Namespace)
}

func TestLoadConfig_Override(t *testing.T) {
	tempDir := t.TempDir()
	path := createTempConfigFile(t, tempDir, `
apiVersion: apps/v1
kind: Deployment
namespace: binder-test
labels:
  app: web
fields:
  metadata.name: frontend
resyncPeriod: 30s
requestTimeout: 5s
queueCapacity: 100
backoff:
  max: 1m
metricsAddress: ":9090"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "apps/v1", cfg.APIVersion)
	assert.Equal(t, "Deployment", cfg.Kind)
	assert.Equal(t, "binder-test", cfg.Namespace)
	assert.Equal(t, map[string]string{"app": "web"}, cfg.Labels)
	assert.Equal(t, map[string]string{"metadata.name": "frontend"}, cfg.Fields)
	assert.Equal(t, 30*time.Second, cfg.ResyncPeriod)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 100, cfg.QueueCapacity)
	assert.Equal(t, ":9090", cfg.MetricsAddress)

	// Unset fields keep their defaults.
	assert.Equal(t, time.Minute, cfg.Backoff.Max)
	assert.Equal(t, time.Second, cfg.Backoff.Initial)
	assert.Equal(t, float64(2), cfg.Backoff.Factor)
	assert.Equal(t, ClientRuntime, cfg.Client)

	gvk, err := cfg.GroupVersionKind()
	require.NoError(t, err)
	assert.Equal(t, "apps", gvk.Group)
	assert.Equal(t, "v1", gvk.Version)
	assert.Equal(t, "apps/v1/Deployment", cfg.ReflectorName())
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := createTempConfigFile(t, t.TempDir(), "resyncPeriod: [not, a, duration]\n")

	_, err := LoadConfig(path)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "parse", cfgErr.ErrorType)
	assert.Equal(t, path, cfgErr.FilePath)
	assert.Contains(t, cfgErr.DetailedError(), "Suggestions:")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := createTempConfigFile(t, t.TempDir(), "resyncPeriod: 0s\nclient: grpc\n")

	_, err := LoadConfig(path)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "validation", cfgErr.ErrorType)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}

func TestConfig_DurationsRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(GetDefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "resyncPeriod: 1m0s")
}
