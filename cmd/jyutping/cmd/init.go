package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize jyutping configuration",
	Long: `Write a default config.yaml into your config directory.

Settings:
  table      alternate syllable table YAML file
  groups     alternate consonant groups YAML file
  log        level (debug, info, warn, error) and format (text, json)
  display    color, mandarin and big_char defaults

Every setting can also be given as a JYUTPING_* environment variable,
e.g. JYUTPING_TABLE or JYUTPING_LOG_LEVEL.`,
	Args: cobra.NoArgs,

	// Skip the root setup so a broken config file can be replaced.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if force {
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
	} else if err := config.EnsureConfigDir(configDir); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
