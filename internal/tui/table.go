package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/jyutping"
)

// CellField selects what a table cell shows.
type CellField int

const (
	ShowGlyph    CellField = iota // Representative character
	ShowJyutping                  // Romanization
	ShowKana                      // Katakana approximation
)

// ParseCellField parses "glyph", "jyutping" or "kana".
func ParseCellField(s string) (CellField, error) {
	switch strings.ToLower(s) {
	case "", "glyph":
		return ShowGlyph, nil
	case "jyutping":
		return ShowJyutping, nil
	case "kana":
		return ShowKana, nil
	}
	return 0, fmt.Errorf("unknown cell field %q (want glyph, jyutping or kana)", s)
}

// emptyLabel marks the NoInitial column and the NoFinal row.
const emptyLabel = "Ø"

// TableOptions controls RenderTable.
type TableOptions struct {
	Finals   []string // Rows to show; all when empty. May include jyutping.NoFinal.
	Initials []string // Columns to show; all when empty. May include jyutping.NoInitial.
	Show     CellField
	Color    bool // Colour cells by consonant group

	// Cell to highlight, by matrix keys.
	MarkFinal   string
	MarkInitial string
}

// RenderTable lays out the syllable table with finals as rows and
// initials as columns.
func RenderTable(inv *jyutping.Inventory, opts TableOptions) (string, error) {
	headers := inv.Matrix().Headers()
	initialKeys := append(headers.Initials, jyutping.NoInitial)

	cols, err := selectIndexes("initial", initialKeys, opts.Initials)
	if err != nil {
		return "", err
	}

	grid := inv.Grid()
	finalKeys := make([]string, len(grid))
	for i, row := range grid {
		finalKeys[i] = row.Final
	}
	rows, err := selectIndexes("final", finalKeys, opts.Finals)
	if err != nil {
		return "", err
	}

	// Plain text first, so column widths can be measured before styling.
	text := make([][]string, len(rows))
	for i, r := range rows {
		text[i] = make([]string, len(cols))
		for j, c := range cols {
			text[i][j] = cellText(grid[r].Cells[c], opts.Show)
		}
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(label(finalKeys[r])))
	}
	widths := make([]int, len(cols))
	for j, c := range cols {
		widths[j] = runewidth.StringWidth(label(initialKeys[c]))
		for i := range rows {
			widths[j] = max(widths[j], runewidth.StringWidth(text[i][j]))
		}
	}

	var b strings.Builder

	b.WriteString(pad("", labelWidth))
	for j, c := range cols {
		b.WriteString(" ")
		b.WriteString(styled(opts.Color, HeaderCellStyle.Render, pad(label(initialKeys[c]), widths[j])))
	}
	b.WriteString("\n")

	for i, r := range rows {
		b.WriteString(styled(opts.Color, FinalStyle.Render, pad(label(finalKeys[r]), labelWidth)))
		for j, c := range cols {
			b.WriteString(" ")
			cell := grid[r].Cells[c]
			s := pad(text[i][j], widths[j])

			switch {
			case finalKeys[r] == opts.MarkFinal && initialKeys[c] == opts.MarkInitial:
				s = MarkedCellStyle.Render(s)
			case cell == nil:
				s = styled(opts.Color, EmptyCellStyle.Render, s)
			case opts.Color:
				s = cellStyle(cell.Color).Render(s)
			}
			b.WriteString(s)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// selectIndexes maps wanted keys to their positions in keys, keeping the
// order of keys. Every position is returned when wanted is empty.
func selectIndexes(kind string, keys, wanted []string) ([]int, error) {
	if len(wanted) == 0 {
		all := make([]int, len(keys))
		for i := range keys {
			all[i] = i
		}
		return all, nil
	}

	want := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		want[w] = true
	}

	var idx []int
	for i, k := range keys {
		if want[k] {
			idx = append(idx, i)
			delete(want, k)
		}
	}
	for _, w := range wanted {
		if want[w] {
			return nil, fmt.Errorf("%s %q: %w", kind, w, jyutping.ErrUndeclaredKey)
		}
	}
	return idx, nil
}

func cellText(cell *jyutping.Cell, show CellField) string {
	if cell == nil {
		return "-"
	}
	switch show {
	case ShowJyutping:
		return cell.Jyutping
	case ShowKana:
		return cell.Transliteration
	default:
		return cell.Ideograph
	}
}

func label(key string) string {
	if jyutping.IsReserved(key) {
		return emptyLabel
	}
	return key
}

// pad right-pads s with spaces to the given display width.
func pad(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func styled(on bool, render func(...string) string, s string) string {
	if !on {
		return s
	}
	return render(s)
}
