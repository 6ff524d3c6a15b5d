package jyutping

import "sync"

// CellCounter counts the present cells of a matrix. The count is taken
// once and cached for the lifetime of the counter.
type CellCounter struct {
	total func() int
}

// NewCellCounter creates a counter over m.
func NewCellCounter(m *Matrix) *CellCounter {
	return &CellCounter{
		total: sync.OnceValue(func() int {
			n := 0
			for _, row := range m.cells {
				n += len(row)
			}
			return n
		}),
	}
}

// TotalCells returns the number of (final, initial) pairs holding a cell,
// reserved-key rows and columns included. Safe for concurrent use.
func (c *CellCounter) TotalCells() int {
	return c.total()
}
