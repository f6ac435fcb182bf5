package main

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"go.jacobcolvin.com/jsonio/jnode"
)

var (
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	typeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// line is one flattened, pre-rendered row of the tree view.
type line struct {
	text  string
	depth int
}

// model is the bubbletea model for browsing a decoded document.
type model struct {
	lines  []line
	cursor int
	offset int
	height int
	width  int
}

func newModel(root any) *model {
	m := &model{height: 24, width: 80}
	m.lines = flatten(root, 0, nil)

	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.height)
		case "pgdown":
			m.move(m.height)
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.lines) - 1
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m *model) move(delta int) {
	m.cursor += delta

	if m.cursor < 0 {
		m.cursor = 0
	}

	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}

	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m *model) View() tea.View {
	var b strings.Builder

	end := m.offset + m.height
	if end > len(m.lines) {
		end = len(m.lines)
	}

	for i := m.offset; i < end; i++ {
		row := strings.Repeat("  ", m.lines[i].depth) + m.lines[i].text
		if i == m.cursor {
			row = cursorStyle.Render("> " + row)
		} else {
			row = "  " + row
		}

		b.WriteString(row)
		b.WriteByte('\n')
	}

	v := tea.NewView(b.String())
	v.AltScreen = true

	return v
}

// flatten renders root and every descendant into indented lines,
// key-prefixed when reached through an object field.
func flatten(v any, depth int, key *string) []line {
	prefix := ""
	if key != nil {
		prefix = keyStyle.Render(*key) + ": "
	}

	switch val := v.(type) {
	case *jnode.Node:
		return flattenNode(val, depth, prefix)

	case nil:
		return []line{{text: prefix + "null", depth: depth}}

	default:
		return []line{{text: prefix + fmt.Sprintf("%v", val), depth: depth}}
	}
}

func flattenNode(n *jnode.Node, depth int, prefix string) []line {
	header := prefix
	if n.Type != "" {
		header += typeStyle.Render(n.Type) + " "
	}

	switch n.Kind {
	case jnode.KindArrayLike:
		out := []line{{text: header + fmt.Sprintf("[%d items]", len(n.Items)), depth: depth}}

		for i, it := range n.Items {
			k := fmt.Sprintf("%d", i)
			out = append(out, flatten(it, depth+1, &k)...)
		}

		return out

	case jnode.KindMapLike:
		out := []line{{text: header + fmt.Sprintf("{%d entries}", len(n.Items)), depth: depth}}

		for i := range n.Items {
			k := fmt.Sprintf("[%v]", n.ItemKeys[i])
			out = append(out, flatten(n.Items[i], depth+1, &k)...)
		}

		return out

	default:
		out := []line{{text: header + "{object}", depth: depth}}

		for _, key := range n.Keys() {
			val, _ := n.Get(key)
			k := key
			out = append(out, flatten(val, depth+1, &k)...)
		}

		return out
	}
}
