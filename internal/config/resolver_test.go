package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/patchctl/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfig, EnvStore, EnvStoreDir, EnvTimestamps, EnvReportUnsatisfied} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveValue(t *testing.T) {
	tests := []struct {
		name         string
		flag, env    string
		cfg, def     string
		wantValue    string
		wantSource   ConfigSource
		wantShadowed map[ConfigSource]string
	}{
		{
			name: "flag wins", flag: "f", env: "e", cfg: "c", def: "d",
			wantValue: "f", wantSource: SourceFlag,
			wantShadowed: map[ConfigSource]string{SourceEnv: "e", SourceConfig: "c", SourceDefault: "d"},
		},
		{
			name: "env over config", env: "e", cfg: "c", def: "d",
			wantValue: "e", wantSource: SourceEnv,
			wantShadowed: map[ConfigSource]string{SourceConfig: "c", SourceDefault: "d"},
		},
		{
			name: "config over default", cfg: "c", def: "d",
			wantValue: "c", wantSource: SourceConfig,
			wantShadowed: map[ConfigSource]string{SourceDefault: "d"},
		},
		{
			name: "default", def: "d",
			wantValue: "d", wantSource: SourceDefault,
			wantShadowed: map[ConfigSource]string{},
		},
		{
			name:         "nothing set",
			wantShadowed: map[ConfigSource]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveValue("k", tt.flag, tt.env, tt.cfg, tt.def)
			assert.Equal(t, "k", got.Key)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantShadowed, got.Shadowed)
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	clearEnv(t)

	got, err := ResolveConfigPath("/flag/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/flag/config.yaml", got.Value)
	assert.Equal(t, SourceFlag, got.Source)

	t.Setenv(EnvConfig, "/env/config.yaml")
	got, err = ResolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, "/env/config.yaml", got.Value)
	assert.Equal(t, SourceEnv, got.Source)
	assert.Contains(t, got.Shadowed, SourceDefault)
}

func TestResolve_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := Resolve(ResolveOptions{ConfigFlag: filepath.Join(t.TempDir(), "missing.yaml")})
	require.NoError(t, err)

	paths, err := DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, BackendNuts, s.StoreBackend)
	assert.Equal(t, paths.StoreDir, s.StoreDir)
	assert.False(t, s.Timestamps)
	assert.False(t, s.ReportUnsatisfied)
	assert.Len(t, s.Values, 5)
}

func TestResolve_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "store:\n  backend: memory\n  dir: /from/config\ndependencies:\n  reportUnsatisfied: true\n")
	t.Setenv(EnvStoreDir, "/from/env")
	t.Setenv(EnvTimestamps, "true")

	s, err := Resolve(ResolveOptions{
		ConfigFlag:            path,
		StoreFlag:             "nuts",
		ReportUnsatisfiedFlag: BoolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, path, s.ConfigPath)
	assert.Equal(t, BackendNuts, s.StoreBackend)
	assert.Equal(t, "/from/env", s.StoreDir)
	assert.True(t, s.Timestamps)
	assert.False(t, s.ReportUnsatisfied)

	byKey := make(map[string]ResolvedValue)
	for _, v := range s.Values {
		byKey[v.Key] = v
	}
	assert.Equal(t, SourceFlag, byKey["store.backend"].Source)
	assert.Equal(t, "memory", byKey["store.backend"].Shadowed[SourceConfig])
	assert.Equal(t, SourceEnv, byKey["store.dir"].Source)
	assert.Equal(t, "/from/config", byKey["store.dir"].Shadowed[SourceConfig])
	assert.Equal(t, SourceFlag, byKey["dependencies.reportUnsatisfied"].Source)
}

func TestResolve_InvalidValues(t *testing.T) {
	clearEnv(t)

	t.Run("bad backend flag", func(t *testing.T) {
		_, err := Resolve(ResolveOptions{ConfigFlag: filepath.Join(t.TempDir(), "none.yaml"), StoreFlag: "sqlite"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
		assert.Contains(t, err.Error(), "sqlite")
	})

	t.Run("bad boolean env", func(t *testing.T) {
		t.Setenv(EnvTimestamps, "sometimes")
		_, err := Resolve(ResolveOptions{ConfigFlag: filepath.Join(t.TempDir(), "none.yaml")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
	})

	t.Run("schema violation in file", func(t *testing.T) {
		path := writeConfig(t, "store:\n  backend: sqlite\n")
		_, err := Resolve(ResolveOptions{ConfigFlag: path})
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
		assert.Contains(t, err.Error(), "store.backend")
	})
}

func TestLogResolvedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	LogResolvedValues(logger, []ResolvedValue{
		resolveValue("store.backend", "memory", "", "nuts", "nuts"),
	})

	out := buf.String()
	assert.Contains(t, out, "config value resolved")
	assert.Contains(t, out, "store.backend")
	assert.Contains(t, out, "shadowed by higher precedence")
}
