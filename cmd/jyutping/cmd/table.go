package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/jyutping"
	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/tui"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the pronunciation map",
	Long: `Print the syllable table with finals as rows and initials as columns.
Cells are coloured by consonant group unless --no-color is given.

Use "-" to select the column of syllables without an initial, or the
row of syllables without a final.

Example:
  jyutping table
  jyutping table --final aa,aai --initial b,p,-
  jyutping table --show kana`,
	Args: cobra.NoArgs,
	RunE: runTable,
}

var (
	tableFinals   []string
	tableInitials []string
	tableShow     string
)

func init() {
	rootCmd.AddCommand(tableCmd)

	tableCmd.Flags().StringSliceVar(&tableFinals, "final", nil, "only show these finals")
	tableCmd.Flags().StringSliceVar(&tableInitials, "initial", nil, "only show these initials")
	tableCmd.Flags().StringVar(&tableShow, "show", "glyph", "cell content: glyph, jyutping, kana")
}

func runTable(cmd *cobra.Command, args []string) error {
	show, err := tui.ParseCellField(tableShow)
	if err != nil {
		return err
	}

	out, err := tui.RenderTable(inv, tui.TableOptions{
		Finals:   reservedAlias(tableFinals, jyutping.NoFinal),
		Initials: reservedAlias(tableInitials, jyutping.NoInitial),
		Show:     show,
		Color:    cfg.Display.Color,
	})
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// reservedAlias replaces "-" with the reserved key.
func reservedAlias(keys []string, reserved string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == "-" {
			k = reserved
		}
		out[i] = k
	}
	return out
}
