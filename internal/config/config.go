// Package config provides configuration loading and management.
package config

// Store backend names accepted in configuration.
const (
	BackendNuts   = "nuts"
	BackendMemory = "memory"
)

// StoreConfig contains package store settings.
type StoreConfig struct {
	// Backend selects the store implementation: "nuts" or "memory".
	// Env: PATCHCTL_STORE, Default: "nuts"
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`

	// Dir is the nutsdb directory.
	// Env: PATCHCTL_STORE_DIR, Default: ~/.patchctl/store
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// DependenciesConfig contains dependency resolution settings.
type DependenciesConfig struct {
	// ReportUnsatisfied records patches whose dependencies were never met
	// as resolution errors instead of skipping them silently.
	// Default: false. Override with --report-unsatisfied flag.
	ReportUnsatisfied *bool `json:"reportUnsatisfied,omitempty" yaml:"reportUnsatisfied,omitempty"`
}

// Config represents the patchctl configuration file (~/.patchctl/config.yaml).
type Config struct {
	Store        StoreConfig        `json:"store" yaml:"store"`
	Log          LogConfig          `json:"log" yaml:"log"`
	Dependencies DependenciesConfig `json:"dependencies" yaml:"dependencies"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `patchctl config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendNuts,
			Dir:     "~/.patchctl/store",
		},
		Log: LogConfig{
			Timestamps: BoolPtr(false),
		},
		Dependencies: DependenciesConfig{
			ReportUnsatisfied: BoolPtr(false),
		},
	}
}

// WithDefaults returns a copy of c with unset fields taken from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	def := DefaultConfig()
	out := *c
	if out.Store.Backend == "" {
		out.Store.Backend = def.Store.Backend
	}
	if out.Store.Dir == "" {
		out.Store.Dir = def.Store.Dir
	}
	if out.Log.Timestamps == nil {
		out.Log.Timestamps = def.Log.Timestamps
	}
	if out.Dependencies.ReportUnsatisfied == nil {
		out.Dependencies.ReportUnsatisfied = def.Dependencies.ReportUnsatisfied
	}
	return &out
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
