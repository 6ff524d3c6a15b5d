package jyutping

import "fmt"

// Matrix is the immutable syllable table indexed by (final, initial).
type Matrix struct {
	headers Headers
	cells   map[string]map[string]Cell
	entries []Entry

	// 1-based header positions
	finalPos   map[string]int
	initialPos map[string]int
}

// NewMatrix builds a matrix from declared headers and cells keyed by final
// then initial. Cell keys must be header values or reserved keys.
func NewMatrix(headers Headers, cells map[string]map[string]Cell) (*Matrix, error) {
	m := &Matrix{
		headers: Headers{
			Initials: append([]string(nil), headers.Initials...),
			Finals:   append([]string(nil), headers.Finals...),
		},
		cells:      make(map[string]map[string]Cell, len(cells)),
		finalPos:   make(map[string]int, len(headers.Finals)),
		initialPos: make(map[string]int, len(headers.Initials)),
	}

	if err := indexHeader("initial", m.headers.Initials, m.initialPos); err != nil {
		return nil, err
	}
	if err := indexHeader("final", m.headers.Finals, m.finalPos); err != nil {
		return nil, err
	}

	for final, row := range cells {
		if final != NoFinal && m.finalPos[final] == 0 {
			return nil, fmt.Errorf("final %q: %w", final, ErrUndeclaredKey)
		}
		copied := make(map[string]Cell, len(row))
		for initial, cell := range row {
			if initial != NoInitial && m.initialPos[initial] == 0 {
				return nil, fmt.Errorf("initial %q under final %q: %w", initial, final, ErrUndeclaredKey)
			}
			copied[initial] = cell
		}
		m.cells[final] = copied
	}

	// Map iteration order is random, so the walk order is fixed here once
	// from the declared headers.
	for _, final := range m.walkFinals() {
		row := m.cells[final]
		if row == nil {
			continue
		}
		for _, initial := range m.walkInitials() {
			if cell, ok := row[initial]; ok {
				m.entries = append(m.entries, Entry{Final: final, Initial: initial, Cell: cell})
			}
		}
	}

	return m, nil
}

func indexHeader(kind string, keys []string, pos map[string]int) error {
	for i, k := range keys {
		switch {
		case k == "":
			return fmt.Errorf("%s header #%d: %w", kind, i+1, ErrEmptyKey)
		case IsReserved(k):
			return fmt.Errorf("%s header %q: %w", kind, k, ErrReservedKey)
		case pos[k] != 0:
			return fmt.Errorf("%s header %q: %w", kind, k, ErrDuplicateKey)
		}
		pos[k] = i + 1
	}
	return nil
}

func (m *Matrix) walkFinals() []string {
	return append(append([]string(nil), m.headers.Finals...), NoFinal)
}

func (m *Matrix) walkInitials() []string {
	return append(append([]string(nil), m.headers.Initials...), NoInitial)
}

// Lookup returns the cell at (final, initial). Reserved keys are accepted.
func (m *Matrix) Lookup(final, initial string) (Cell, bool) {
	cell, ok := m.cells[final][initial]
	return cell, ok
}

// Entries returns every present cell in walk order: finals header order
// with NoFinal last, and within a final, initials header order with
// NoInitial last. The returned slice must not be modified.
func (m *Matrix) Entries() []Entry {
	return m.entries
}

// PositionOf returns the 1-based (row, col) of a final and initial in the
// headers. Reserved or unknown keys have no position.
func (m *Matrix) PositionOf(final, initial string) (Position, bool) {
	row, col := m.finalPos[final], m.initialPos[initial]
	if row == 0 || col == 0 {
		return Position{}, false
	}
	return Position{Row: row, Col: col}, true
}

// Headers returns a copy of the declared headers.
func (m *Matrix) Headers() Headers {
	return Headers{
		Initials: append([]string(nil), m.headers.Initials...),
		Finals:   append([]string(nil), m.headers.Finals...),
	}
}
