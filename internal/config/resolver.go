package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	oerrors "github.com/opmodel/patchctl/internal/errors"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration key after applying precedence.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions carries the raw flag values. Empty strings and nil pointers
// mean the flag was not set.
type ResolveOptions struct {
	ConfigFlag            string
	StoreFlag             string
	StoreDirFlag          string
	TimestampsFlag        *bool
	ReportUnsatisfiedFlag *bool
}

// Settings is the fully resolved configuration used by commands.
type Settings struct {
	ConfigPath        string
	Config            *Config
	StoreBackend      string
	StoreDir          string
	Timestamps        bool
	ReportUnsatisfied bool

	// Values records how every key was resolved.
	Values []ResolvedValue
}

// Resolve loads the config file and applies precedence
// flag > env > config > default to every key.
func Resolve(opts ResolveOptions) (*Settings, error) {
	pathResult, err := ResolveConfigPath(opts.ConfigFlag)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	cfg, err := NewLoader().Load(pathResult.Value)
	if err != nil {
		return nil, err
	}
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", pathResult.Value, oerrors.ErrValidation, err)
	}

	def := DefaultConfig()
	backend := resolveValue("store.backend", opts.StoreFlag, os.Getenv(EnvStore), cfg.Store.Backend, def.Store.Backend)
	dir := resolveValue("store.dir", opts.StoreDirFlag, os.Getenv(EnvStoreDir), cfg.Store.Dir, def.Store.Dir)
	timestamps := resolveValue("log.timestamps",
		formatBool(opts.TimestampsFlag), os.Getenv(EnvTimestamps), formatBool(cfg.Log.Timestamps), formatBool(def.Log.Timestamps))
	report := resolveValue("dependencies.reportUnsatisfied",
		formatBool(opts.ReportUnsatisfiedFlag), os.Getenv(EnvReportUnsatisfied),
		formatBool(cfg.Dependencies.ReportUnsatisfied), formatBool(def.Dependencies.ReportUnsatisfied))

	s := &Settings{
		ConfigPath:   pathResult.Value,
		Config:       cfg,
		StoreBackend: backend.Value,
		Values:       []ResolvedValue{pathResult, backend, dir, timestamps, report},
	}

	if backend.Value != BackendNuts && backend.Value != BackendMemory {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("unknown store backend %q", backend.Value), string(backend.Source), "store.backend",
			"Use \"nuts\" or \"memory\".")
	}
	if s.StoreDir, err = ExpandPath(dir.Value); err != nil {
		return nil, fmt.Errorf("expanding store dir: %w", err)
	}
	if s.Timestamps, err = parseBool(timestamps); err != nil {
		return nil, err
	}
	if s.ReportUnsatisfied, err = parseBool(report); err != nil {
		return nil, err
	}
	return s, nil
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) PATCHCTL_CONFIG env, (3) ~/.patchctl/config.yaml default
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{Key: "config"}, err
	}
	return resolveValue("config", flagValue, os.Getenv(EnvConfig), "", paths.ConfigFile), nil
}

// resolveValue picks the first non-empty of flag, env, config and default
// and records the lower-precedence values it shadows.
func resolveValue(key, flag, env, cfg, def string) ResolvedValue {
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flag},
		{SourceEnv, env},
		{SourceConfig, cfg},
		{SourceDefault, def},
	}

	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func parseBool(v ResolvedValue) (bool, error) {
	b, err := strconv.ParseBool(v.Value)
	if err != nil {
		return false, oerrors.NewValidationError(
			fmt.Sprintf("%q is not a boolean", v.Value), string(v.Source), v.Key, "Use true or false.")
	}
	return b, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(logger *log.Logger, values []ResolvedValue) {
	for _, v := range values {
		logger.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			logger.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
