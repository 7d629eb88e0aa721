package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/configloader"
	"github.com/yaklabco/gomdhl/internal/logging"
	"github.com/yaklabco/gomdhl/pkg/config"
)

// commandContext returns the command's context, or a background context
// when the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the effective configuration for cmd. Values set in
// cliCfg override every file and environment layer. The global --color and
// --debug flags are folded in here. Configuration problems are returned as
// usage errors.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := logging.Default()

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	if color, err := cmd.Flags().GetString("color"); err == nil {
		cliCfg.Color = color
	}
	if debug, err := cmd.Flags().GetBool("debug"); err == nil {
		cliCfg.Debug = debug
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, &UsageError{Err: fmt.Errorf("load configuration: %w", err)}
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}

	return result, nil
}
