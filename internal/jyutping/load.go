package jyutping

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/table.yaml
var embeddedTable []byte

//go:embed data/groups.yaml
var embeddedGroups []byte

// tableFile is the on-disk schema of a syllable table.
type tableFile struct {
	Palette  map[string]string `yaml:"palette"`
	Initials []string          `yaml:"initials"`
	Finals   []string          `yaml:"finals"`
	Cells    []cellBlock       `yaml:"cells"`
}

type cellBlock struct {
	Final   string      `yaml:"final"`
	Entries []cellEntry `yaml:"entries"`
}

type cellEntry struct {
	Initial         string `yaml:"initial"`
	Jyutping        string `yaml:"jyutping"`
	Ideograph       string `yaml:"ideograph"`
	Transliteration string `yaml:"transliteration"`
	Color           string `yaml:"color,omitempty"` // Palette key; defaults to Initial
}

// groupsFile is the on-disk schema of the consonant classification.
type groupsFile struct {
	Groups  []Group  `yaml:"groups"`
	Manners []Manner `yaml:"manners"`
}

// Redeclaration records a table definition that replaced an earlier one.
// These are almost always authoring mistakes and should be reported to
// whoever maintains the data.
type Redeclaration struct {
	Final   string // Final whose block or entry was replaced
	Initial string // Replaced entry; empty when the whole block was replaced
}

func (r Redeclaration) String() string {
	if r.Initial == "" {
		return fmt.Sprintf("final %q declared more than once; last block wins", r.Final)
	}
	return fmt.Sprintf("cell (%s, %s) declared more than once; last entry wins", r.Final, r.Initial)
}

// definition is a decoded table ready to be turned into a Matrix.
type definition struct {
	headers    Headers
	palette    map[string]string
	cells      map[string]map[string]Cell
	redeclared []Redeclaration
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// parseTable decodes a table document. Blocks are applied in order so a
// repeated final replaces the earlier block wholesale.
func parseTable(data []byte) (*definition, error) {
	var tf tableFile
	if err := decodeStrict(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing table: %w", err)
	}

	def := &definition{
		headers: Headers{Initials: tf.Initials, Finals: tf.Finals},
		palette: tf.Palette,
		cells:   make(map[string]map[string]Cell, len(tf.Cells)),
	}

	for _, block := range tf.Cells {
		if block.Final == "" {
			return nil, fmt.Errorf("parsing table: cell block: %w", ErrEmptyKey)
		}
		if _, seen := def.cells[block.Final]; seen {
			def.redeclared = append(def.redeclared, Redeclaration{Final: block.Final})
		}

		row := make(map[string]Cell, len(block.Entries))
		for _, e := range block.Entries {
			if e.Initial == "" {
				return nil, fmt.Errorf("parsing table: final %q: %w", block.Final, ErrEmptyKey)
			}
			colorKey := e.Color
			if colorKey == "" {
				colorKey = e.Initial
			}
			color, ok := tf.Palette[colorKey]
			if !ok && e.Color != "" {
				return nil, fmt.Errorf("parsing table: cell (%s, %s) colour %q: %w",
					block.Final, e.Initial, e.Color, ErrUnknownColor)
			}
			if _, dup := row[e.Initial]; dup {
				def.redeclared = append(def.redeclared, Redeclaration{Final: block.Final, Initial: e.Initial})
			}
			row[e.Initial] = Cell{
				Jyutping:        e.Jyutping,
				Ideograph:       e.Ideograph,
				Transliteration: e.Transliteration,
				Color:           color,
			}
		}
		def.cells[block.Final] = row
	}

	return def, nil
}

func parseGroups(data []byte) (*groupsFile, error) {
	var gf groupsFile
	if err := decodeStrict(data, &gf); err != nil {
		return nil, fmt.Errorf("parsing groups: %w", err)
	}
	return &gf, nil
}

// LoadFiles builds an inventory from a table file and a groups file.
// An empty path selects the embedded document.
func LoadFiles(tablePath, groupsPath string) (*Inventory, error) {
	table, groups := embeddedTable, embeddedGroups

	if tablePath != "" {
		data, err := os.ReadFile(tablePath)
		if err != nil {
			return nil, fmt.Errorf("reading table file: %w", err)
		}
		table = data
	}
	if groupsPath != "" {
		data, err := os.ReadFile(groupsPath)
		if err != nil {
			return nil, fmt.Errorf("reading groups file: %w", err)
		}
		groups = data
	}

	return Load(table, groups)
}
