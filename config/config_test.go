package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unified.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
exchanges:
  bitget:
    key: file-key
    secret: file-secret
    passphrase: file-phrase
    sandbox: true
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	e, err := cfg.Exchange("bitget")
	require.NoError(t, err)
	assert.Equal(t, "file-key", e.Key)
	assert.Equal(t, "file-secret", e.Secret)
	assert.True(t, e.Sandbox)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFileIsNotFatal(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	_, err = cfg.Exchange("unknown")
	assert.ErrorIs(t, err, ErrExchangeNotConfigured)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("UNIFIED_BITGET_KEY", "env-key")
	t.Setenv("UNIFIED_MEXC_KEY", "env-mexc-key")
	t.Setenv("UNIFIED_MEXC_SECRET", "env-mexc-secret")

	path := writeConfig(t, `
exchanges:
  bitget:
    key: file-key
    secret: file-secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	bitget, err := cfg.Exchange("bitget")
	require.NoError(t, err)
	assert.Equal(t, "env-key", bitget.Key)
	assert.Equal(t, "file-secret", bitget.Secret)

	mexc, err := cfg.Exchange("mexc")
	require.NoError(t, err)
	assert.Equal(t, "env-mexc-key", mexc.Key)
	assert.Equal(t, "env-mexc-secret", mexc.Secret)
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{Logging: Logging{Level: "warn", Format: "json"}}
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	cfg.Logging.Level = "not-a-level"
	_, err = cfg.NewLogger()
	assert.Error(t, err)
}
