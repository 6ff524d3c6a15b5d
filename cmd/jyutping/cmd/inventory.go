package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Summarise the syllable table",
	Long: `Print the number of cells in the table, the sizes of the initial and
final headers, and any cells or blocks that the table data declares more
than once.`,
	Args: cobra.NoArgs,
	RunE: runInventory,
}

var inventoryFormat string

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.Flags().StringVar(&inventoryFormat, "format", formatText, "output format: text, json, yaml")
}

type inventorySummary struct {
	TotalCells     int      `json:"total_cells" yaml:"total_cells"`
	Initials       int      `json:"initials" yaml:"initials"`
	Finals         int      `json:"finals" yaml:"finals"`
	Redeclarations []string `json:"redeclarations,omitempty" yaml:"redeclarations,omitempty"`
}

func runInventory(cmd *cobra.Command, args []string) error {
	headers := inv.Matrix().Headers()
	s := inventorySummary{
		TotalCells: inv.TotalCells(),
		Initials:   len(headers.Initials),
		Finals:     len(headers.Finals),
	}
	for _, r := range inv.Redeclarations() {
		s.Redeclarations = append(s.Redeclarations, r.String())
	}

	return writeFormatted(cmd.OutOrStdout(), inventoryFormat, s, func(w io.Writer) error {
		fmt.Fprintf(w, "Cells:    %d\n", s.TotalCells)
		fmt.Fprintf(w, "Initials: %d\n", s.Initials)
		fmt.Fprintf(w, "Finals:   %d\n", s.Finals)
		if len(s.Redeclarations) > 0 {
			fmt.Fprintln(w, "Redeclarations:")
			for _, r := range s.Redeclarations {
				fmt.Fprintf(w, "  - %s\n", r)
			}
		}
		return nil
	})
}
