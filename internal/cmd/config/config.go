// Package config provides CLI command implementations for the config command group.
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/patchctl/internal/cmdtypes"
	"github.com/opmodel/patchctl/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for patchctl.`,
		Annotations: map[string]string{
			cmdtypes.AnnotationSkipSettings: "true",
		},
	}

	c.AddCommand(NewConfigInitCmd(gc))
	c.AddCommand(NewConfigVetCmd(gc))

	return c
}

// configPath resolves and expands the config file path from --config,
// PATCHCTL_CONFIG or the default location.
func configPath(gc *cmdtypes.GlobalConfig) (string, error) {
	var flag string
	if gc != nil {
		flag = gc.ConfigFlag
	}
	resolved, err := config.ResolveConfigPath(flag)
	if err != nil {
		return "", fmt.Errorf("getting config file path: %w", err)
	}
	expanded, err := config.ExpandPath(resolved.Value)
	if err != nil {
		return "", fmt.Errorf("expanding config path: %w", err)
	}
	return expanded, nil
}
