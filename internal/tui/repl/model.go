// ============================================================================
// lumen - Scripting Language Front-End
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model of the interactive front-end REPL. Each
//              submitted buffer is tokenized and parsed; the history shows
//              either the token stream or the syntax tree.
// Author:      msto63
// Created:     2025-02-22
// License:     MIT
// ============================================================================

package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	lerror "github.com/msto63/lumen/foundation/core/error"
	"github.com/msto63/lumen/foundation/lang"
	"github.com/msto63/lumen/foundation/lang/ast"
)

// View selects what the history shows for each entry
type View int

const (
	ViewAST View = iota
	ViewTokens
)

// String returns the tab label of the view
func (v View) String() string {
	if v == ViewTokens {
		return "Tokens"
	}
	return "AST"
}

// Options configures the REPL
type Options struct {
	Engine  *lang.Engine
	NoColor bool
	// Format of the AST view: "tree" (default) or "sexpr"
	Format string
}

// entry is one submitted buffer with both renderings prepared
type entry struct {
	source string
	tokens string
	tree   string
	stats  string
	err    string
}

// Model is the Bubbletea model of the REPL
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	view    View
	entries []entry

	// Components
	textarea textarea.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	styles   Styles

	engine *lang.Engine
	format string
}

// New creates a REPL model
func New(opts Options) Model {
	engine := opts.Engine
	if engine == nil {
		engine = lang.New(lang.Options{})
	}
	styles := DefaultStyles()
	if opts.NoColor {
		styles = PlainStyles()
	}
	keys := defaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "print 1 + 2; (enter to parse, ctrl+j for a new line)"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline = keys.Newline
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = styles.Input

	return Model{
		textarea: ta,
		viewport: viewport.New(80, 10),
		help:     help.New(),
		keys:     keys,
		styles:   styles,
		engine:   engine,
		format:   opts.Format,
	}
}

// Run starts the REPL on the terminal and blocks until it quits
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			m.submit(m.textarea.Value())
			return m, nil

		case key.Matches(msg, m.keys.ToggleView):
			if m.view == ViewAST {
				m.view = ViewTokens
			} else {
				m.view = ViewAST
			}
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.entries = nil
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.ScrollUp):
			m.viewport.ViewUp()
			return m, nil

		case key.Matches(msg, m.keys.ScrollDown):
			m.viewport.ViewDown()
			return m, nil
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 2 // title + tabs
	inputHeight := m.textarea.Height() + 2
	footerHeight := 2 // status bar + help
	viewportHeight := height - headerHeight - inputHeight - footerHeight - 2
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport.Width = width - 4
	m.viewport.Height = viewportHeight
	m.textarea.SetWidth(width - 4)
	m.help.Width = width
	m.ready = true
	m.refresh()
}

// submit runs the front end on source and appends the outcome
func (m *Model) submit(source string) {
	if strings.TrimSpace(source) == "" {
		return
	}
	m.entries = append(m.entries, m.evaluate(source))
	m.textarea.Reset()
	m.refresh()
	m.viewport.GotoBottom()
}

func (m Model) evaluate(source string) entry {
	e := entry{source: source}

	result, err := m.engine.Check(source)
	if err != nil {
		if d, ok := lang.Diagnose(err); ok {
			e.err = d.String()
		} else {
			e.err = err.Error()
		}
		// A syntax error leaves a valid token stream worth listing
		if lerror.HasCode(err, lerror.CodeSyntaxError) {
			if tokens, err := m.engine.Tokenize(source); err == nil {
				e.tokens = lang.FormatTokens(tokens)
			}
		}
		return e
	}

	e.tokens = lang.FormatTokens(result.Tokens)

	if m.format == "sexpr" {
		e.tree = ast.Format(result.Program) + "\n"
	} else {
		e.tree = ast.FormatTree(result.Program)
	}
	e.stats = fmt.Sprintf("%d tokens, %d nodes, depth %d", len(result.Tokens), result.Stats.Nodes, result.Stats.MaxDepth)
	return e
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderHistory())
}

// renderHistory renders every entry in the current view
func (m Model) renderHistory() string {
	if len(m.entries) == 0 {
		return m.styles.Subtitle.Render("Enter a statement to see its syntax tree.")
	}

	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		for j, line := range strings.Split(e.source, "\n") {
			prompt := "> "
			if j > 0 {
				prompt = ". "
			}
			b.WriteString(m.styles.Prompt.Render(prompt) + line + "\n")
		}

		body := e.tree
		if m.view == ViewTokens {
			body = e.tokens
		}
		if body != "" {
			b.WriteString(m.styles.Output.Render(strings.TrimSuffix(body, "\n")) + "\n")
		}
		if e.err != "" {
			b.WriteString(m.styles.Error.Render("error: "+e.err) + "\n")
		} else if m.view == ViewAST {
			b.WriteString(m.styles.Position.Render(e.stats) + "\n")
		}
	}
	return b.String()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Starting lumen REPL..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("lumen") + " " + m.styles.Subtitle.Render("front-end REPL"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.styles.Box.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTabs() string {
	var tabs []string
	for _, v := range []View{ViewAST, ViewTokens} {
		if v == m.view {
			tabs = append(tabs, m.styles.ActiveTab.Render(v.String()))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar() string {
	failed := 0
	for _, e := range m.entries {
		if e.err != "" {
			failed++
		}
	}
	status := fmt.Sprintf("%d parsed, %d failed", len(m.entries)-failed, failed)
	return m.styles.StatusBar.Render(status)
}
