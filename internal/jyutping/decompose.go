package jyutping

import (
	"sort"
	"strings"
)

// Decomposition is a syllable split into initial and final.
type Decomposition struct {
	Initial string // "" when the syllable has no onset
	Final   string // "" when the syllable has no vowel nucleus
	Cell    *Cell  // nil when the shape is recognised but the syllable is not in the table
}

// Decomposer splits toneless syllables using the matrix as ground truth.
type Decomposer struct {
	matrix *Matrix

	// Initials longest first; equal lengths keep header order.
	byLength []string
}

// NewDecomposer creates a decomposer over m.
func NewDecomposer(m *Matrix) *Decomposer {
	byLength := m.Headers().Initials
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(byLength[i]) > len(byLength[j])
	})
	return &Decomposer{matrix: m, byLength: byLength}
}

// Decompose maps a toneless syllable to its initial, final and cell.
//
// An exact match on a cell's romanization wins, the first one in walk
// order. Otherwise the longest initial that prefixes base is split off and
// the remainder is taken as the final. It never fails: unknown input keeps
// its structural split with a nil Cell.
func (d *Decomposer) Decompose(base string) Decomposition {
	for _, e := range d.matrix.Entries() {
		if StripTone(e.Cell.Jyutping) == base {
			cell := e.Cell
			return Decomposition{
				Initial: visibleKey(e.Initial),
				Final:   visibleKey(e.Final),
				Cell:    &cell,
			}
		}
	}

	initial, final := d.split(base)
	result := Decomposition{Initial: initial, Final: final}

	probes := [][2]string{{final, initial}}
	if initial == "" {
		probes = append(probes, [2]string{final, NoInitial})
	}
	if final == "" {
		probes = append(probes, [2]string{NoFinal, initial})
	}
	for _, p := range probes {
		if cell, ok := d.matrix.Lookup(p[0], p[1]); ok {
			result.Cell = &cell
			break
		}
	}

	return result
}

// split takes the longest declared initial prefixing base.
func (d *Decomposer) split(base string) (initial, final string) {
	for _, cand := range d.byLength {
		if strings.HasPrefix(base, cand) {
			return cand, base[len(cand):]
		}
	}
	return "", base
}

// visibleKey maps reserved keys to the empty string.
func visibleKey(key string) string {
	if IsReserved(key) {
		return ""
	}
	return key
}
