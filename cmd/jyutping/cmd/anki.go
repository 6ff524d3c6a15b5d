package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/anki"
)

var ankiCmd = &cobra.Command{
	Use:   "anki",
	Short: "Work with Anki decks",
	Long:  `Commands for reading and augmenting Anki .apkg files with pronunciation map data.`,
}

var ankiInspectCmd = &cobra.Command{
	Use:   "inspect <file.apkg>",
	Short: "Inspect an Anki deck",
	Long: `Inspect an Anki .apkg file to see its structure:
  - Decks
  - Note types (models) and their fields
  - Sample notes

Example:
  jyutping anki inspect cantonese.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiInspect,
}

var ankiAugmentCmd = &cobra.Command{
	Use:   "augment <file.apkg>",
	Short: "Add pronunciation map fields to Anki notes",
	Long: `Read the Jyutping in one field of every note and write a new deck
whose notes carry five extra fields:

  Jyutping_Character  representative character of each syllable
  Jyutping_Katakana   katakana approximation
  Jyutping_Initial    initial consonant
  Jyutping_Final      final
  Jyutping_Group      consonant group

Values are space-separated, one per syllable; "-" marks a syllable or part
the table does not have. Notes whose type lacks the field are copied
unchanged.

Examples:
  jyutping anki augment cantonese.apkg
  jyutping anki augment cantonese.apkg --field Romanization -o out.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiAugment,
}

var (
	ankiInspectLimit  int
	ankiAugmentField  string
	ankiAugmentOutput string
)

func init() {
	rootCmd.AddCommand(ankiCmd)
	ankiCmd.AddCommand(ankiInspectCmd)
	ankiCmd.AddCommand(ankiAugmentCmd)

	ankiInspectCmd.Flags().IntVarP(&ankiInspectLimit, "limit", "n", 5, "Number of sample notes to show")

	ankiAugmentCmd.Flags().StringVarP(&ankiAugmentField, "field", "f", "Jyutping", "Field holding the Jyutping romanization")
	ankiAugmentCmd.Flags().StringVarP(&ankiAugmentOutput, "output", "o", "", "Output .apkg file (default <input>.jyutping.apkg)")
}

func runAnkiInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	w := cmd.OutOrStdout()

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	fmt.Fprint(w, pkg.Summary())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Field Details:")
	for _, model := range sortedModels(pkg) {
		fmt.Fprintf(w, "  %s:\n", model.Name)
		for _, field := range model.Fields {
			fmt.Fprintf(w, "    [%d] %s\n", field.Ord, field.Name)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sample Notes (first %d):\n", ankiInspectLimit)
	for i, note := range pkg.Notes {
		if i >= ankiInspectLimit {
			break
		}

		modelName := "unknown"
		if model := pkg.GetModel(note); model != nil {
			modelName = model.Name
		}

		fmt.Fprintf(w, "\n  Note %d (Model: %s):\n", note.ID, modelName)
		names := pkg.GetFieldNames(note)
		for j, value := range note.Fields {
			name := fmt.Sprintf("Field %d", j)
			if j < len(names) {
				name = names[j]
			}
			fmt.Fprintf(w, "    %s: %s\n", name, truncate(anki.StripHTML(value), 100))
		}
	}

	return nil
}

func runAnkiAugment(cmd *cobra.Command, args []string) error {
	path := args[0]

	output := ankiAugmentOutput
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".jyutping.apkg"
	}
	if filepath.Clean(output) == filepath.Clean(path) {
		return fmt.Errorf("output %s would overwrite the input deck", output)
	}

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	slog.Info("opened deck", slog.String("path", path), slog.Int("notes", len(pkg.Notes)))

	res, err := pkg.Augment(ankiAugmentField, inv)
	if err != nil {
		return fmt.Errorf("augmenting notes: %w", err)
	}
	if res.Notes == 0 {
		return fmt.Errorf("no note has a field named %q", ankiAugmentField)
	}
	for _, s := range unique(res.Unresolved) {
		slog.Warn("syllable not in table", slog.String("syllable", s))
	}

	if err := pkg.SaveAs(output); err != nil {
		return fmt.Errorf("writing package: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Augmented %d notes (%d syllables, %d not in table) -> %s\n",
		res.Notes, res.Syllables, len(res.Unresolved), output)
	return nil
}

func sortedModels(pkg *anki.Package) []*anki.Model {
	models := make([]*anki.Model, 0, len(pkg.Models))
	for _, m := range pkg.Models {
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models
}

func unique(s []string) []string {
	seen := make(map[string]bool, len(s))
	var out []string
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
