// Package cmd contains all CLI commands for the jyutping tool.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/config"
	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/jyutping"
	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/tui"
)

var cfgDir string

// Set by setup before any subcommand runs.
var (
	cfg *config.Config
	inv *jyutping.Inventory
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jyutping",
	Short: "Cantonese pronunciation map - look up Jyutping syllables",
	Long: `jyutping is a CLI tool for exploring the sounds of Cantonese.

Every Jyutping syllable is an initial (consonant onset) plus a final
(vowel nucleus and coda). The pronunciation map lays them out as a table
with finals as rows and initials as columns; each cell holds a
representative character and a katakana approximation. Initials are
coloured by where in the mouth they are articulated.

Running 'jyutping' without arguments launches the interactive lookup.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/jyutping)")
	pf.Bool("verbose", false, "verbose output")
	pf.String("table", "", "syllable table YAML file (default is the built-in table)")
	pf.String("groups", "", "consonant groups YAML file (default is the built-in groups)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text or json")
	pf.Bool("no-color", false, "disable colour output")

	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("table", pf.Lookup("table"))
	viper.BindPFlag("groups", pf.Lookup("groups"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))
	viper.BindPFlag("no_color", pf.Lookup("no-color"))

	addDisplayFlags(rootCmd)
}

// addDisplayFlags registers the TUI display switches on a command that
// launches the interactive lookup.
func addDisplayFlags(c *cobra.Command) {
	c.Flags().Bool("mandarin", false, "show Mandarin readings")
	c.Flags().Bool("big", false, "draw the character as block art")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("JYUTPING")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// setup loads configuration, installs the logger and loads the inventory.
// Flags and JYUTPING_* variables override the config file.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.LoadDir(getConfigDir())
	if err != nil {
		return err
	}

	if viper.IsSet("table") {
		c.Table = viper.GetString("table")
	}
	if viper.IsSet("groups") {
		c.Groups = viper.GetString("groups")
	}
	if viper.IsSet("log.level") {
		c.Log.Level = viper.GetString("log.level")
	}
	if viper.IsSet("log.format") {
		c.Log.Format = viper.GetString("log.format")
	}
	if viper.GetBool("verbose") {
		c.Log.Level = "debug"
	}
	if viper.GetBool("no_color") {
		c.Display.Color = false
	}
	if viper.IsSet("display.mandarin") {
		c.Display.Mandarin = viper.GetBool("display.mandarin")
	}
	if viper.IsSet("display.big_char") {
		c.Display.BigChar = viper.GetBool("display.big_char")
	}
	if err := c.Validate(); err != nil {
		return err
	}

	logger := config.NewLogger(c.Log, cmd.ErrOrStderr())

	i, err := jyutping.LoadFiles(c.Table, c.Groups)
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}
	// The built-in table has a known repeated block; only user tables warn.
	level := slog.LevelWarn
	if c.Table == "" {
		level = slog.LevelDebug
	}
	for _, r := range i.Redeclarations() {
		logger.Log(cmd.Context(), level, "table redeclaration", slog.String("detail", r.String()))
	}
	logger.Debug("inventory loaded",
		slog.String("config_dir", getConfigDir()),
		slog.String("table", orBuiltin(c.Table)),
		slog.Int("cells", i.TotalCells()),
	)

	cfg, inv = c, i
	return nil
}

func orBuiltin(path string) string {
	if path == "" {
		return "(built-in)"
	}
	return path
}

// runInteractive launches the lookup TUI.
func runInteractive(cmd *cobra.Command, args []string) error {
	opts, err := tuiOptions(cmd, cfg)
	if err != nil {
		return err
	}
	if err := tui.Run(inv, opts); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// tuiOptions merges the display flags of cmd over the config. A flag only
// turns a feature on; the config decides otherwise.
func tuiOptions(cmd *cobra.Command, c *config.Config) (tui.Options, error) {
	mandarin, err := cmd.Flags().GetBool("mandarin")
	if err != nil {
		return tui.Options{}, fmt.Errorf("reading --mandarin: %w", err)
	}
	big, err := cmd.Flags().GetBool("big")
	if err != nil {
		return tui.Options{}, fmt.Errorf("reading --big: %w", err)
	}

	return tui.Options{
		Color:    c.Display.Color,
		Mandarin: mandarin || c.Display.Mandarin,
		BigChar:  big || c.Display.BigChar,
	}, nil
}
