package jyutping

import (
	"fmt"
	"sync"
)

// Inventory bundles the table, the classifier and the lookup service
// built from one data definition. It is read-only and safe for
// concurrent use.
type Inventory struct {
	matrix     *Matrix
	classifier *Classifier
	service    *Service
	counter    *CellCounter
	palette    map[string]string
	redeclared []Redeclaration
}

// Load builds an inventory from table and groups YAML documents.
func Load(table, groups []byte) (*Inventory, error) {
	def, err := parseTable(table)
	if err != nil {
		return nil, err
	}
	gf, err := parseGroups(groups)
	if err != nil {
		return nil, err
	}

	m, err := NewMatrix(def.headers, def.cells)
	if err != nil {
		return nil, fmt.Errorf("building matrix: %w", err)
	}
	c, err := NewClassifier(gf.Groups, gf.Manners)
	if err != nil {
		return nil, fmt.Errorf("building classifier: %w", err)
	}

	return &Inventory{
		matrix:     m,
		classifier: c,
		service:    NewService(m, c, def.palette),
		counter:    NewCellCounter(m),
		palette:    copyLabels(def.palette),
		redeclared: def.redeclared,
	}, nil
}

var defaultInventory = sync.OnceValue(func() *Inventory {
	inv, err := Load(embeddedTable, embeddedGroups)
	if err != nil {
		panic("jyutping: embedded data: " + err.Error())
	}
	return inv
})

// Default returns the inventory built from the embedded data. It is built
// on first use and shared by every caller.
func Default() *Inventory {
	return defaultInventory()
}

// Matrix returns the syllable table.
func (inv *Inventory) Matrix() *Matrix { return inv.matrix }

// Classifier returns the consonant classifier.
func (inv *Inventory) Classifier() *Classifier { return inv.classifier }

// Resolve resolves a syllable with an optional trailing tone digit.
func (inv *Inventory) Resolve(raw string) Descriptor {
	return inv.service.Resolve(raw)
}

// Classify classifies an initial.
func (inv *Inventory) Classify(initial string) (Classification, bool) {
	return inv.classifier.Classify(initial)
}

// TotalCells returns the number of cells in the table.
func (inv *Inventory) TotalCells() int {
	return inv.counter.TotalCells()
}

// Redeclarations lists definitions in the source data that replaced
// earlier ones.
func (inv *Inventory) Redeclarations() []Redeclaration {
	return append([]Redeclaration(nil), inv.redeclared...)
}

// ColorOf returns the palette colour for an initial, or FallbackColor.
func (inv *Inventory) ColorOf(initial string) string {
	if c, ok := inv.palette[initial]; ok {
		return c
	}
	return FallbackColor
}

// Row is one line of the display grid.
type Row struct {
	Final string
	// One slot per initials header value, then one for NoInitial.
	// Nil slots are combinations not attested in the table.
	Cells []*Cell
}

// Grid returns the display grid: one row per finals header value followed
// by the NoFinal row, each with a slot per initial plus the NoInitial slot.
func (inv *Inventory) Grid() []Row {
	finals := inv.matrix.walkFinals()
	initials := inv.matrix.walkInitials()

	rows := make([]Row, 0, len(finals))
	for _, final := range finals {
		row := Row{Final: final, Cells: make([]*Cell, len(initials))}
		for i, initial := range initials {
			if cell, ok := inv.matrix.Lookup(final, initial); ok {
				row.Cells[i] = &cell
			}
		}
		rows = append(rows, row)
	}
	return rows
}
