package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/clipboard"
	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/jyutping"
	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/mandarin"
	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/tui/bigchar"
)

// Big character size in terminal cells.
const (
	bigCols = 24
	bigRows = 12
)

// Options selects optional panels of the lookup screen.
type Options struct {
	Color    bool
	Mandarin bool
	BigChar  bool
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// Model is the Bubble Tea model for the lookup screen.
type Model struct {
	input    textinput.Model
	table    viewport.Model
	inv      *jyutping.Inventory
	mandarin *mandarin.Parser  // nil when disabled
	big      *bigchar.Renderer // nil when disabled or no font
	opts     Options

	results   []jyutping.Descriptor
	selected  int
	showTable bool

	copied bool
	err    error

	width  int
	height int
}

// New creates a lookup model over inv.
func New(inv *jyutping.Inventory, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter jyutping, e.g. sap6 aa3..."
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	m := Model{
		input: ti,
		table: viewport.New(80, 20),
		inv:   inv,
		opts:  opts,
	}
	if opts.Mandarin {
		m.mandarin = mandarin.NewParser()
	}
	if opts.BigChar {
		m.big = bigchar.Default()
	}
	return m
}

// Run starts the lookup screen and blocks until the user quits.
func Run(inv *jyutping.Inventory, opts Options) error {
	_, err := tea.NewProgram(New(inv, opts), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.resolveInput()
			return m, nil
		case "ctrl+t":
			m.showTable = !m.showTable
			if m.showTable {
				m.input.Blur()
				m.refreshTable()
			} else {
				m.input.Focus()
			}
			return m, nil
		case "ctrl+y":
			if text := m.copyText(); text != "" {
				if err := clipboard.Write(text); err != nil {
					m.err = err
					return m, nil
				}
				m.copied = true
				return m, clearCopiedAfter(2 * time.Second)
			}
			return m, nil
		case "left", "shift+tab":
			if len(m.results) > 0 {
				m.selected = (m.selected - 1 + len(m.results)) % len(m.results)
				m.refreshTable()
			}
			return m, nil
		case "right", "tab":
			if len(m.results) > 0 {
				m.selected = (m.selected + 1) % len(m.results)
				m.refreshTable()
			}
			return m, nil
		}

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.Width = msg.Width
		m.table.Height = max(msg.Height-6, 5)
		m.refreshTable()
	}

	var cmd tea.Cmd
	if m.showTable {
		m.table, cmd = m.table.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// resolveInput resolves every syllable in the input.
func (m *Model) resolveInput() {
	m.results = nil
	m.selected = 0
	m.err = nil

	syllables := jyutping.Tokenize(m.input.Value())
	if len(syllables) == 0 {
		if strings.TrimSpace(m.input.Value()) != "" {
			m.err = fmt.Errorf("no jyutping syllables in: %s", m.input.Value())
		}
		return
	}

	for _, s := range syllables {
		m.results = append(m.results, m.inv.Resolve(s))
	}
	m.refreshTable()
}

// refreshTable re-renders the table with the selected syllable marked.
func (m *Model) refreshTable() {
	opts := TableOptions{Color: m.opts.Color}
	if d, ok := m.current(); ok && d.Found() {
		opts.MarkFinal, opts.MarkInitial = m.keysOf(d)
	}
	out, err := RenderTable(m.inv, opts)
	if err != nil {
		m.err = err
		return
	}
	m.table.SetContent(out)
}

// keysOf maps a resolved descriptor back to its matrix keys.
func (m *Model) keysOf(d jyutping.Descriptor) (final, initial string) {
	final, initial = d.Final, d.Initial
	if final == "" {
		final = jyutping.NoFinal
	}
	if initial == "" {
		initial = jyutping.NoInitial
	}
	return final, initial
}

func (m Model) current() (jyutping.Descriptor, bool) {
	if m.selected < len(m.results) {
		return m.results[m.selected], true
	}
	return jyutping.Descriptor{}, false
}

// copyText is the clipboard line for the selected syllable.
func (m Model) copyText() string {
	d, ok := m.current()
	if !ok || !d.Found() {
		return ""
	}
	return strings.Join([]string{d.Cell.Ideograph, d.Input, d.Cell.Transliteration}, " ")
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("  粵拼 Jyutping  "))
	b.WriteString("  ")
	b.WriteString(SubtitleStyle.Render("Cantonese Pronunciation Map"))
	b.WriteString("\n\n")

	if m.showTable {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("  ↑/↓: scroll • ctrl+t: back • esc: quit"))
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("  " + m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.results) > 0 {
		if len(m.results) > 1 {
			b.WriteString(m.renderWordBar())
			b.WriteString("\n")
		}
		d, _ := m.current()
		b.WriteString(m.renderDetail(d))
	} else {
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("  Type jyutping syllables and press Enter"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	var help []string
	if len(m.results) > 1 {
		help = append(help, "←/→: navigate")
	}
	if d, ok := m.current(); ok && d.Found() {
		help = append(help, "ctrl+y: copy")
	}
	help = append(help, "ctrl+t: table", "enter: look up", "esc: quit")
	b.WriteString(HelpStyle.Render("  " + strings.Join(help, " • ")))

	return b.String()
}

// renderWordBar renders the syllable navigation bar.
func (m Model) renderWordBar() string {
	tabs := make([]string, 0, len(m.results))
	for i, d := range m.results {
		glyph := "?"
		if d.Found() {
			glyph = d.Cell.Ideograph
		}
		content := fmt.Sprintf("%s\n%s", glyph, CharTabJyutpingStyle.Render(d.Input))

		if i == m.selected {
			tabs = append(tabs, CharTabActiveStyle.Render(content))
		} else {
			tabs = append(tabs, CharTabStyle.Render(content))
		}
	}

	nav := WordNavStyle.Render(fmt.Sprintf("◀ %d/%d ▶", m.selected+1, len(m.results)))
	bar := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	return WordDisplayStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, bar, "  ", nav))
}

// renderDetail renders the breakdown of one syllable.
func (m Model) renderDetail(d jyutping.Descriptor) string {
	var b strings.Builder

	if d.Found() {
		if art := m.big.Render(d.Cell.Glyph(), bigCols, bigRows); art != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(ColorAccent).Render(art))
			b.WriteString("\n")
		} else {
			b.WriteString(CharacterLargeStyle.Render(d.Cell.Ideograph))
			b.WriteString("\n")
		}
		b.WriteString(renderRow("Katakana", d.Cell.Transliteration))
		if d.Cell.Approximate() {
			b.WriteString(HelpStyle.Render("  (approximate character)"))
			b.WriteString("\n")
		}
	} else {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("  %q is not in the table", d.Base)))
		b.WriteString("\n")
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s  %s", LabelStyle.Render("Initial:"), InitialStyle.Render(orEmpty(d.Initial))))
	lines = append(lines, fmt.Sprintf("%s  %s", LabelStyle.Render("Final:"), FinalStyle.Render(orEmpty(d.Final))))
	if d.Tone > 0 {
		lines = append(lines, fmt.Sprintf("%s  %s", LabelStyle.Render("Tone:"), ToneStyle.Render(fmt.Sprint(d.Tone))))
	}
	if d.Position != nil {
		lines = append(lines, fmt.Sprintf("%s  row %d, col %d", LabelStyle.Render("Position:"), d.Position.Row, d.Position.Col))
	}
	if d.ConsonantGroup != "" {
		group := d.ConsonantGroup
		if m.opts.Color {
			group = cellStyle(d.Color).Render(" " + group + " ")
		}
		lines = append(lines, fmt.Sprintf("%s  %s", LabelStyle.Render("Group:"), group))
	}
	for _, kv := range [][2]string{
		{"Feature:", d.ConsonantFeature},
		{"Articulation:", d.Articulation},
		{"Manner:", d.Manner},
	} {
		if kv[1] != "" {
			lines = append(lines, fmt.Sprintf("%s  %s", LabelStyle.Render(kv[0]), ValueStyle.Render(kv[1])))
		}
	}

	b.WriteString(BoxStyle.Render(SubtitleStyle.Render("Breakdown") + "\n\n" + strings.Join(lines, "\n")))
	b.WriteString("\n")

	if m.mandarin != nil && d.Found() {
		var readings []string
		for _, r := range m.mandarin.Readings(d.Cell.Glyph()) {
			readings = append(readings, r.Full)
		}
		if len(readings) > 0 {
			b.WriteString(renderRow("Mandarin", strings.Join(readings, ", ")))
		}
	}

	if m.copied {
		b.WriteString(CopiedStyle.Render("  Copied!"))
		b.WriteString("\n")
	}

	return b.String()
}

func renderRow(label, value string) string {
	return "  " + LabelStyle.Render(label+":") + " " + ValueStyle.Render(value) + "\n"
}

func orEmpty(s string) string {
	if s == "" {
		return emptyLabel
	}
	return s
}
