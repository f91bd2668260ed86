package cmd

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ntt-parser/parser"
)

func enter(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func TestReplQuitCommand(t *testing.T) {
	m, cmd := enter(t, newREPLModel(parser.New()), ":quit")
	if !m.quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestReplParsesInput(t *testing.T) {
	m, cmd := enter(t, newREPLModel(parser.New()), "x = 42;")
	if cmd != nil {
		t.Fatal("parsing should not return a command")
	}
	if len(m.history) != 1 || m.history[0].isErr {
		t.Fatalf("unexpected history %+v", m.history)
	}
	if !strings.Contains(m.history[0].output, "Operation =") {
		t.Fatalf("expected the tree in the output:\n%s", m.history[0].output)
	}
	if m.textInput.Value() != "" || len(m.cmdHistory) != 1 {
		t.Fatal("input should be cleared and remembered")
	}
}

func TestReplReportsErrors(t *testing.T) {
	m, _ := enter(t, newREPLModel(parser.New()), "x = 42")
	if !m.history[0].isErr || !strings.Contains(m.history[0].output, "Missing semicolon at the end") {
		t.Fatalf("unexpected entry %+v", m.history[0])
	}
}

func TestReplTokensToggle(t *testing.T) {
	m, _ := enter(t, newREPLModel(parser.New()), ":tokens")
	if !m.showTokens {
		t.Fatal("token listing should be on")
	}
	m, _ = enter(t, m, "a;")
	if !strings.Contains(m.history[1].output, "IDENTIFIER(a)") {
		t.Fatalf("expected tokens in output:\n%s", m.history[1].output)
	}
}

func TestReplUnknownCommand(t *testing.T) {
	m, _ := enter(t, newREPLModel(parser.New()), ":compile")
	if !m.history[0].isErr || !strings.Contains(m.history[0].output, "Unknown command") {
		t.Fatalf("unexpected entry %+v", m.history[0])
	}
}

func TestReplHistoryNavigation(t *testing.T) {
	m := newREPLModel(parser.New())
	m, _ = enter(t, m, "a;")
	m, _ = enter(t, m, "b;")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "b;" {
		t.Fatalf("expected the last input, got %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if m.textInput.Value() != "a;" {
		t.Fatalf("expected the first input, got %q", m.textInput.Value())
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := model.(replModel).textInput.Value(); got != "" {
		t.Fatalf("expected an empty input after the newest entry, got %q", got)
	}
}

func TestReplView(t *testing.T) {
	m := newREPLModel(parser.New())
	if m.View() != "Loading..." {
		t.Fatal("view before the first window size should be a placeholder")
	}
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)
	m, _ = enter(t, m, "x = ;")
	view := m.View()
	if !strings.Contains(view, "ntt REPL") || !strings.Contains(view, "Right side of operator '='") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}
