package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/jyutping"
	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/mandarin"
	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/tui/bigchar"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <syllable>...",
	Short: "Look up Jyutping syllables in the pronunciation map",
	Long: `Look up one or more Jyutping syllables and display:
  - Representative character and katakana approximation
  - Initial and final, and the table position of the cell
  - Tone (when a trailing digit 1-6 is given)
  - Consonant group, feature, articulation and manner

Full-width input is accepted. Unknown syllables are reported, not rejected.

Example:
  jyutping lookup sap6
  jyutping lookup nei5 hou2 --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

var (
	lookupFormat   string
	lookupMandarin bool
	lookupBig      bool
)

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVar(&lookupFormat, "format", formatText, "output format: text, json, yaml")
	lookupCmd.Flags().BoolVar(&lookupMandarin, "mandarin", false, "show Mandarin readings of each character")
	lookupCmd.Flags().BoolVar(&lookupBig, "big", false, "draw each character as block art (text format)")
}

// lookupResult is one resolved syllable as printed by lookup.
type lookupResult struct {
	jyutping.Descriptor `yaml:",inline"`
	Found               bool               `json:"found" yaml:"found"`
	Mandarin            []mandarin.Reading `json:"mandarin,omitempty" yaml:"mandarin,omitempty"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	syllables := jyutping.Tokenize(strings.Join(args, " "))
	if len(syllables) == 0 {
		return fmt.Errorf("no jyutping syllables in %q", strings.Join(args, " "))
	}

	var parser *mandarin.Parser
	if lookupMandarin || cfg.Display.Mandarin {
		parser = mandarin.NewParser()
	}

	results := make([]lookupResult, 0, len(syllables))
	for _, s := range syllables {
		d := inv.Resolve(s)
		r := lookupResult{Descriptor: d, Found: d.Found()}
		if parser != nil && d.Found() {
			r.Mandarin = parser.Readings(d.Cell.Glyph())
		}
		if !d.Found() {
			slog.Info("syllable not in table", slog.String("syllable", s))
		}
		results = append(results, r)
	}

	var big *bigchar.Renderer
	if lookupBig || cfg.Display.BigChar {
		if big = bigchar.Default(); big == nil {
			slog.Warn("no CJK font found; big characters disabled")
		}
	}

	return writeFormatted(cmd.OutOrStdout(), lookupFormat, results, func(w io.Writer) error {
		for _, r := range results {
			writeLookupText(w, r, big)
		}
		return nil
	})
}

// writeLookupText prints one result in the human-readable format.
func writeLookupText(w io.Writer, r lookupResult, big *bigchar.Renderer) {
	fmt.Fprintf(w, "Syllable: %s\n", r.Input)

	if !r.Found {
		fmt.Fprintf(w, "  (not in table)\n")
	} else {
		if art := big.Render(r.Cell.Glyph(), 24, 12); art != "" {
			fmt.Fprintln(w, art)
		}
		char := r.Cell.Ideograph
		if r.Cell.Approximate() {
			char += " (approximate)"
		}
		fmt.Fprintf(w, "  Character:    %s\n", char)
		fmt.Fprintf(w, "  Katakana:     %s\n", r.Cell.Transliteration)
	}

	fmt.Fprintf(w, "  Initial:      %s\n", displayKey(r.Initial))
	fmt.Fprintf(w, "  Final:        %s\n", displayKey(r.Final))
	if r.Tone > 0 {
		fmt.Fprintf(w, "  Tone:         %d\n", r.Tone)
	}
	if r.Position != nil {
		fmt.Fprintf(w, "  Position:     row %d, col %d\n", r.Position.Row, r.Position.Col)
	}
	if r.ConsonantGroup != "" {
		group := r.ConsonantGroup
		if r.ConsonantFeature != "" {
			group += " (" + r.ConsonantFeature + ")"
		}
		fmt.Fprintf(w, "  Group:        %s\n", group)
	}
	if r.Articulation != "" {
		fmt.Fprintf(w, "  Articulation: %s\n", r.Articulation)
	}
	if r.Manner != "" {
		fmt.Fprintf(w, "  Manner:       %s\n", r.Manner)
	}
	fmt.Fprintf(w, "  Colour:       %s\n", r.Color)

	if len(r.Mandarin) > 0 {
		full := make([]string, len(r.Mandarin))
		for i, m := range r.Mandarin {
			full[i] = m.Full
		}
		fmt.Fprintf(w, "  Mandarin:     %s\n", strings.Join(full, ", "))
	}
	fmt.Fprintln(w)
}

func displayKey(key string) string {
	if key == "" {
		return "Ø (none)"
	}
	return key
}
