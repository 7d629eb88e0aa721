package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/logging"
	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gomdhl configuration file",
		Long: `Create a .gomdhl.yml configuration file in the current directory. The
minimal template documents every option with commented defaults; the full
template writes the complete default theme so each kind can be edited in
place.

Examples:
  gomdhl init                       Create minimal .gomdhl.yml
  gomdhl init --full                Write every theme entry
  gomdhl init --format json         Create .gomdhl.json instead
  gomdhl init --force               Overwrite, keeping a .bak backup`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file after backing it up")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write the full default theme")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .gomdhl.yml or .gomdhl.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	ctx := commandContext(cmd)

	if flags.format != "yaml" && flags.format != "json" {
		return usageErrorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gomdhl.yml"
		if flags.format == "json" {
			outputPath = ".gomdhl.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	exists := true
	if _, err := os.Stat(absPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", outputPath, err)
		}
		exists = false
	}
	if exists && !flags.force {
		return usageErrorf("file %q already exists; use --force to overwrite", outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if exists {
		backup, written, err := fsutil.ReplaceWithBackup(ctx, absPath, content, 0)
		if err != nil {
			return fmt.Errorf("replace %s: %w", outputPath, err)
		}
		if !written {
			logger.Info("configuration file is already up to date", logging.FieldPath, outputPath)
			return nil
		}
		logger.Warn("overwrote existing file", logging.FieldPath, outputPath, "backup", backup)
		return nil
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gomdhl theme' to see every span kind and its style")

	return nil
}
