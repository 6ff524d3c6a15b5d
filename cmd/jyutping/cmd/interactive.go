package cmd

import (
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive lookup",
	Long: `Launch an interactive terminal UI for looking up Jyutping syllables.

Controls:
  Enter    Look up the syllables typed
  ←/→      Move between syllables
  Ctrl+T   Toggle the full table with the current cell marked
  Ctrl+Y   Copy character, syllable and katakana
  Esc      Quit`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)

	addDisplayFlags(interactiveCmd)
}
