package main

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mythonlang/mython/internal/evaluator"
	"github.com/mythonlang/mython/internal/lexer"
	"github.com/mythonlang/mython/internal/parser"
	"github.com/mythonlang/mython/internal/runtime"
)

var (
	accentColor = lipgloss.Color("#3B82F6")
	okColor     = lipgloss.Color("#10B981")
	errColor    = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#6B7280")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(okColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// replSession keeps the interpreter state alive between inputs: the
// top-level environment, the evaluator and the parser's class table.
type replSession struct {
	eval    *evaluator.Evaluator
	env     *runtime.Environment
	classes map[string]*runtime.Class
}

func newReplSession() *replSession {
	return &replSession{
		eval:    evaluator.New(),
		env:     runtime.NewEnvironment(),
		classes: make(map[string]*runtime.Class),
	}
}

// run lexes, parses and evaluates one input against the live session.
func (s *replSession) run(input string) (string, bool) {
	l := lexer.New(input)
	tokens := l.Tokenize()
	if errs := l.Errors(); len(errs) > 0 {
		return errs[0].Error(), true
	}

	p := parser.New(tokens)
	p.SetClassTable(s.classes)
	root := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return errs[0].Error(), true
	}

	var out bytes.Buffer
	s.eval.Out = &out
	if err := s.eval.Execute(root, s.env); err != nil {
		return err.Error(), true
	}

	return strings.TrimRight(out.String(), "\n"), false
}

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	session     *replSession
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	block       []string // pending lines of an open block construct
	width       int
	height      int
	showVars    bool
	quitting    bool
	initialized bool
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "mython> "

	return replModel{
		textInput:  ti,
		session:    newReplSession(),
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			m.quitting = true
			return m, tea.Quit

		case "ctrl+l":
			m.history = nil
			return m, nil

		case "ctrl+v":
			m.showVars = !m.showVars
			return m, nil

		case "up":
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case "down":
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case "enter":
			return m.handleEnter()
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleEnter() (tea.Model, tea.Cmd) {
	raw := m.textInput.Value()
	input := strings.TrimRight(raw, " ")
	m.textInput.SetValue("")
	m.historyIdx = -1

	if strings.HasPrefix(strings.TrimSpace(input), ":") {
		return m.handleCommand(strings.TrimSpace(input))
	}

	// Inside a block: collect lines until an empty one closes it.
	if len(m.block) > 0 {
		if strings.TrimSpace(input) == "" {
			program := strings.Join(m.block, "\n") + "\n"
			m.block = nil
			m.execute(program, program)
			return m, nil
		}
		m.block = append(m.block, input)
		m.cmdHistory = append(m.cmdHistory, input)
		return m, nil
	}

	if strings.TrimSpace(input) == "" {
		return m, nil
	}

	m.cmdHistory = append(m.cmdHistory, input)

	// A block construct opens with a trailing colon and runs once an
	// empty line closes it.
	if strings.HasSuffix(strings.TrimSpace(input), ":") {
		m.block = append(m.block, input)
		return m, nil
	}

	m.execute(input+"\n", input)
	return m, nil
}

func (m *replModel) execute(program, echo string) {
	output, isErr := m.session.run(program)
	m.history = append(m.history, historyEntry{
		input:  echo,
		output: output,
		isErr:  isErr,
	})
}

func (m replModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.Fields(input)[0] {
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":clear", ":c":
		m.history = nil
	case ":reset", ":r":
		m.session = newReplSession()
		m.history = append(m.history, historyEntry{input: input, output: "Session reset"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", input),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Mython Playground") + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	reservedLines := 8
	if m.showVars {
		reservedLines += m.session.env.Len() + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.output != "" {
			if entry.isErr {
				b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
			} else {
				b.WriteString("  " + resultStyle.Render(entry.output) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(m.renderVarsPanel())
		b.WriteString("\n")
	}

	if len(m.block) > 0 {
		b.WriteString(mutedStyle.Render("  ... finish the block with an empty line") + "\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	b.WriteString(mutedStyle.Render("ctrl+v vars  ctrl+l clear  :reset reset  ctrl+c quit"))
	return b.String()
}

func (m replModel) renderVarsPanel() string {
	if m.session.env.Len() == 0 {
		return borderStyle.Render(mutedStyle.Render("No variables defined"))
	}

	names := m.session.env.Names()
	sort.Strings(names)

	lines := []string{headerStyle.Render("Variables")}
	for _, name := range names {
		h, _ := m.session.env.Get(name)
		rendered, err := m.session.eval.Render(h)
		if err != nil {
			rendered = errorStyle.Render(err.Error())
		}
		lines = append(lines, fmt.Sprintf("  %s = %s", name, rendered))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
