package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/configloader"
)

func newConfigCommand() *cobra.Command {
	var env bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration gomdhl would use in the current directory, after
system, user, project and explicit config files, GOMDHL_* environment
variables and defaults are merged. The header lists the files that were
read.

Examples:
  gomdhl config                 Print the merged configuration as YAML
  gomdhl config --env           List the supported environment variables`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env {
				return runConfigEnv(cmd)
			}
			return runConfigShow(cmd)
		},
	}

	cmd.Flags().BoolVar(&env, "env", false, "list supported environment variables")

	return cmd
}

func runConfigShow(cmd *cobra.Command) error {
	loaded, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	var header strings.Builder
	header.WriteString("# Resolved gomdhl configuration\n")
	if len(loaded.LoadedFrom) == 0 {
		header.WriteString("# Sources: defaults only\n")
	}
	for _, path := range loaded.LoadedFrom {
		fmt.Fprintf(&header, "# Source: %s\n", path)
	}

	data, err := loaded.Config.ToYAMLWithHeader(header.String())
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigEnv(cmd *cobra.Command) error {
	vars := configloader.ListEnvVars()
	out := cmd.OutOrStdout()
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(out, "%-16s %s\n", name, vars[name])
	}
	return nil
}
