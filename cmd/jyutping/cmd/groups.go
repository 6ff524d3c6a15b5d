package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/jyutping"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List consonant groups",
	Long: `List the consonant groups the initials are coloured by, with the
feature, articulation and manner of each member.`,
	Args: cobra.NoArgs,
	RunE: runGroups,
}

var groupsFormat string

func init() {
	rootCmd.AddCommand(groupsCmd)
	groupsCmd.Flags().StringVar(&groupsFormat, "format", formatText, "output format: text, json, yaml")
}

type groupListing struct {
	Key      string                    `json:"key" yaml:"key"`
	Name     string                    `json:"name" yaml:"name"`
	Initials []string                  `json:"initials" yaml:"initials"`
	Colors   []string                  `json:"colors" yaml:"colors"`
	Members  []jyutping.Classification `json:"members" yaml:"members"`
}

func runGroups(cmd *cobra.Command, args []string) error {
	var listing []groupListing
	for _, g := range inv.Classifier().Groups() {
		gl := groupListing{Key: g.Key, Name: g.DisplayName()}
		for _, m := range g.Members {
			cls, ok := inv.Classify(m)
			if !ok || cls.Group != g.Key {
				// Listed under an earlier group too; that group wins.
				continue
			}
			gl.Initials = append(gl.Initials, m)
			gl.Members = append(gl.Members, cls)
			gl.Colors = append(gl.Colors, inv.ColorOf(m))
		}
		listing = append(listing, gl)
	}

	return writeFormatted(cmd.OutOrStdout(), groupsFormat, listing, func(w io.Writer) error {
		for _, gl := range listing {
			fmt.Fprintf(w, "%s [%s]\n", gl.Name, gl.Key)
			for i, cls := range gl.Members {
				details := []string{cls.Feature, cls.Articulation, cls.Manner}
				fmt.Fprintf(w, "  %-3s %s  %s\n", gl.Initials[i], gl.Colors[i], strings.Join(nonEmpty(details), ", "))
			}
			fmt.Fprintln(w)
		}
		return nil
	})
}

func nonEmpty(ss []string) []string {
	var out []string
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
