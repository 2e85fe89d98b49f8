// Package tui implements an interactive, read-only browser over a live
// types.Table.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"vega/internal/types"
)

type row struct {
	id   types.TypeID
	kind types.Kind
	name string
}

// Model is the Bubble Tea model for `vega inspect`.
type Model struct {
	tbl      *types.Table
	rows     []row
	rowOf    map[types.TypeID]int
	stat     types.Stats
	cursor   int
	history  []int
	width    int
	height   int
	quitting bool
}

// New builds a Model listing every live type in tbl at the moment of
// construction. The table is not re-scanned as the user browses:
// inspecting a table concurrently with mutating it is out of scope.
func New(tbl *types.Table) *Model {
	stat := tbl.Stat()
	m := &Model{tbl: tbl, stat: stat, rowOf: make(map[types.TypeID]int)}
	for id := types.TypeID(1); int(id) <= stat.Capacity; id++ {
		if tbl.KindOf(id) == types.KindInvalid {
			continue
		}
		name, _ := tbl.DisplayName(id)
		m.rowOf[id] = len(m.rows)
		m.rows = append(m.rows, row{id: id, kind: tbl.KindOf(id), name: name})
	}
	return m
}

// children returns the first-level structural children of a tuple or
// function row, in declaration order, or nil for a leaf kind.
func (m *Model) children(r row) []types.TypeID {
	switch r.kind {
	case types.KindTuple:
		return m.tbl.TupleElems(r.id)
	case types.KindFunction:
		elems := make([]types.TypeID, 0, m.tbl.FunctionArityOf(r.id)+1)
		for i := 0; i < m.tbl.FunctionArityOf(r.id); i++ {
			elems = append(elems, m.tbl.FunctionDomain(r.id, i))
		}
		return append(elems, m.tbl.FunctionRangeOf(r.id))
	default:
		return nil
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			children := m.children(m.rows[m.cursor])
			if len(children) == 0 {
				break
			}
			if next, ok := m.rowOf[children[0]]; ok {
				m.history = append(m.history, m.cursor)
				m.cursor = next
			}
		case "backspace", "left", "h":
			if len(m.history) > 0 {
				m.cursor = m.history[len(m.history)-1]
				m.history = m.history[:len(m.history)-1]
			}
		}
	}
	return m, nil
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.rows) == 0 {
		return dimStyle.Render("table has no live types\n")
	}

	nameWidth := m.width - 24
	if nameWidth < 20 {
		nameWidth = 20
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d live types", len(m.rows))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"hash-cons buckets: %d entries   join cache: %d   meet cache: %d",
		m.stat.HashConsEntries, m.stat.JoinCacheSize, m.stat.MeetCacheSize)))
	b.WriteString("\n\n")

	for i, r := range m.rows {
		label := m.tbl.String(r.id)
		line := fmt.Sprintf("%6d  %-12s  %s", r.id, r.kind, truncate(label, nameWidth))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.detail()))
	b.WriteString("\n")
	help := "↑/↓ or j/k to move, q to quit"
	if len(m.children(m.rows[m.cursor])) > 0 {
		help = "enter/l to drill into children, " + help
	}
	if len(m.history) > 0 {
		help += ", backspace/h to go back"
	}
	b.WriteString(dimStyle.Render(help))
	return b.String()
}

func (m *Model) detail() string {
	r := m.rows[m.cursor]
	card := m.tbl.CardOf(r.id)
	cardStr := fmt.Sprintf("%d", card)
	if card == types.CardInfinite {
		cardStr = "infinite"
	}
	return fmt.Sprintf("id=%d kind=%s card=%s flags=%s", r.id, r.kind, cardStr, m.tbl.FlagsOf(r.id))
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
