package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ffi-reflect/descriptor"
	"github.com/wippyai/ffi-reflect/resolve"
	"github.com/wippyai/ffi-reflect/witbridge"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	WIT    key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
	WIT:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wit")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() string {
	var parts []string
	for _, b := range []key.Binding{k.Up, k.Down, k.Toggle, k.WIT, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// node is one row of the descriptor tree. Children are loaded on first
// expansion so pointer cycles are only followed on demand.
type node struct {
	err      error
	desc     descriptor.Descriptor
	label    string
	children []*node
	depth    int
	loaded   bool
	expanded bool
}

func (n *node) expandable() bool {
	switch n.desc.(type) {
	case *descriptor.RecordDescriptor, *descriptor.ArrayDescriptor,
		*descriptor.EnumDescriptor, *descriptor.PointerDescriptor:
		return true
	}
	return false
}

func (n *node) load() {
	if n.loaded {
		return
	}
	n.loaded = true

	switch d := n.desc.(type) {
	case *descriptor.PointerDescriptor:
		target, err := d.Deref()
		if err != nil {
			n.err = err
			return
		}
		n.children = []*node{{label: "*", desc: target, depth: n.depth + 1}}
	case *descriptor.EnumDescriptor:
		for _, v := range d.Values {
			n.children = append(n.children, &node{
				label: v.Name + " = " + v.Value,
				depth: n.depth + 1,
			})
		}
	default:
		for _, c := range descriptor.Children(n.desc) {
			n.children = append(n.children, &node{label: c.Label, desc: c.Type, depth: n.depth + 1})
		}
	}
}

// visible flattens the expanded part of the tree into display order.
func visible(roots []*node) []*node {
	var out []*node
	var walk func(ns []*node)
	walk = func(ns []*node) {
		for _, n := range ns {
			out = append(out, n)
			if n.expanded {
				walk(n.children)
			}
		}
	}
	walk(roots)
	return out
}

type modelState int

const (
	stateBrowse modelState = iota
	stateShowWIT
)

type interactiveModel struct {
	err      error
	resolver *resolve.Resolver
	bridge   *witbridge.Bridge
	report   string
	roots    []*node
	selected int
	state    modelState
}

func newInteractiveModel(r *resolve.Resolver, b *witbridge.Bridge) *interactiveModel {
	return &interactiveModel{resolver: r, bridge: b, state: stateBrowse}
}

type loadedMsg struct {
	err   error
	roots []*node
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadTypes
}

func (m *interactiveModel) loadTypes() tea.Msg {
	var roots []*node
	for _, name := range m.resolver.Names() {
		d, err := m.resolver.Derive(name)
		if err != nil {
			return loadedMsg{err: fmt.Errorf("derive %s: %w", name, err)}
		}
		roots = append(roots, &node{label: name, desc: d})
	}
	return loadedMsg{roots: roots}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		rows := visible(m.roots)
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case key.Matches(msg, keys.Down):
			if m.state == stateBrowse && m.selected < len(rows)-1 {
				m.selected++
			}

		case key.Matches(msg, keys.Toggle):
			switch m.state {
			case stateBrowse:
				if m.selected < len(rows) {
					n := rows[m.selected]
					if n.desc != nil && n.expandable() {
						n.load()
						n.expanded = !n.expanded
					}
				}
			case stateShowWIT:
				m.state = stateBrowse
			}

		case key.Matches(msg, keys.WIT):
			if m.state == stateBrowse && m.selected < len(rows) && rows[m.selected].desc != nil {
				m.report = witReport(m.bridge, rows[m.selected].desc)
				m.state = stateShowWIT
			}

		case key.Matches(msg, keys.Back):
			m.state = stateBrowse
			m.report = ""
		}

	case loadedMsg:
		m.err = msg.err
		m.roots = msg.roots
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.roots == nil {
		return "Deriving descriptors..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("FFI Type Inspector"))
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse:
		for i, n := range visible(m.roots) {
			line := formatNode(n)
			if i == m.selected {
				b.WriteString(selectedStyle.Render(strings.Repeat("  ", n.depth) + "> " + line))
			} else {
				b.WriteString(strings.Repeat("  ", n.depth) + "  " + line)
			}
			b.WriteString("\n")
			if n.expanded && n.err != nil {
				b.WriteString(strings.Repeat("  ", n.depth+2))
				b.WriteString(errorStyle.Render(n.err.Error()))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(keys.help()))

	case stateShowWIT:
		b.WriteString(resultStyle.Render(m.report))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}

	return b.String()
}

func formatNode(n *node) string {
	marker := "  "
	if n.desc != nil && n.expandable() {
		marker = "+ "
		if n.expanded {
			marker = "- "
		}
	}
	if n.desc == nil {
		return marker + labelStyle.Render(n.label)
	}
	return marker + labelStyle.Render(n.label) + ": " + typeStyle.Render(descriptor.Summary(n.desc))
}

func witTypeStr(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		return typeDefStr(v)
	default:
		return fmt.Sprintf("%T", t)
	}
}

func typeDefStr(td *wit.TypeDef) string {
	switch kind := td.Kind.(type) {
	case *wit.Record:
		fields := make([]string, len(kind.Fields))
		for i, f := range kind.Fields {
			fields[i] = f.Name + ": " + refStr(f.Type)
		}
		return "record " + typeDefName(td) + " { " + strings.Join(fields, ", ") + " }"
	case *wit.Enum:
		cases := make([]string, len(kind.Cases))
		for i, c := range kind.Cases {
			cases[i] = c.Name
		}
		return "enum " + typeDefName(td) + " { " + strings.Join(cases, ", ") + " }"
	case *wit.Tuple:
		if len(kind.Types) == 0 {
			return "tuple<>"
		}
		return fmt.Sprintf("tuple<%s; %d>", refStr(kind.Types[0]), len(kind.Types))
	default:
		return typeDefName(td)
	}
}

// refStr renders a nested type by name when it has one.
func refStr(t wit.Type) string {
	if td, ok := t.(*wit.TypeDef); ok && td.Name != nil {
		return *td.Name
	}
	return witTypeStr(t)
}

func typeDefName(td *wit.TypeDef) string {
	if td.Name != nil {
		return *td.Name
	}
	return "typedef"
}

func runInteractive(r *resolve.Resolver, b *witbridge.Bridge) error {
	p := tea.NewProgram(newInteractiveModel(r, b), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
