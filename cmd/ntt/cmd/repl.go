package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"ntt-parser/parser"
	"ntt-parser/treenode"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	parser      *parser.Parser
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showTokens  bool
	showHelp    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous input")),
	Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next input")),
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "parse")),
	CtrlC: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	CtrlD: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "quit")),
	CtrlL: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
}

func newREPLModel(p *parser.Parser) replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 1000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "ntt> "

	return replModel{
		textInput:  ti,
		parser:     p,
		historyIdx: -1,
	}
}

func newReplCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse statements interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.load(cmd)
			if err != nil {
				return err
			}
			prog := tea.NewProgram(newREPLModel(e.parser),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = prog.Run()
			return err
		},
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
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = nil
			return m, nil

		case key.Matches(msg, keys.Up):
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

		case key.Matches(msg, keys.Down):
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

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{input: input, output: output, isErr: isErr})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":tokens", ":t":
		m.showTokens = !m.showTokens
		state := "off"
		if m.showTokens {
			state = "on"
		}
		m.history = append(m.history, historyEntry{input: input, output: "token listing " + state})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

// evaluate parses input and renders its tree; isErr reports diagnostics.
func (m replModel) evaluate(input string) (string, bool) {
	result := m.parser.Parse(input)

	var b strings.Builder
	if m.showTokens {
		for _, tok := range result.Tokens {
			fmt.Fprintf(&b, "%s %s\n", tok.Pos, tok)
		}
	}
	b.WriteString(strings.TrimRight(treenode.Sprint(result.Program), "\n"))

	if err := result.Err(); err != nil {
		b.WriteString("\n" + err.Error())
		return b.String(), true
	}
	return b.String(), false
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("ntt REPL") + " " + mutedStyle.Render(version) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	for _, entry := range m.visibleHistory() {
		if entry.input != "" {
			b.WriteString(promptStyle.Render("ntt> ") + entry.input + "\n")
		}
		b.WriteString(renderOutput(entry) + "\n\n")
	}

	b.WriteString(m.textInput.View() + "\n")

	if m.showHelp {
		b.WriteString("\n")
		for _, h := range [][2]string{
			{":help", "toggle help"},
			{":tokens", "toggle the token listing"},
			{":clear", "clear output"},
			{":quit", "exit"},
			{"↑/↓", "input history"},
		} {
			b.WriteString("  " + helpKeyStyle.Render(fmt.Sprintf("%-8s", h[0])) + " " + mutedStyle.Render(h[1]) + "\n")
		}
	} else {
		b.WriteString(mutedStyle.Render("  :help for commands") + "\n")
	}

	return b.String()
}

// visibleHistory keeps the most recent entries that fit the window.
func (m replModel) visibleHistory() []historyEntry {
	reserved := 6
	if m.showHelp {
		reserved += 6
	}
	available := m.height - reserved

	used := 0
	start := len(m.history)
	for start > 0 {
		lines := strings.Count(m.history[start-1].output, "\n") + 3
		if used+lines > available && start < len(m.history) {
			break
		}
		used += lines
		start--
	}
	return m.history[start:]
}

// renderOutput colors each line of a tree: invalid nodes in red, the rest
// green, and a trailing error summary in red.
func renderOutput(entry historyEntry) string {
	lines := strings.Split(entry.output, "\n")
	for i, line := range lines {
		switch {
		case strings.Contains(line, "  ! "):
			lines[i] = errorStyle.Render(line)
		case entry.isErr && i == len(lines)-1:
			lines[i] = errorStyle.Render(line)
		default:
			lines[i] = resultStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
