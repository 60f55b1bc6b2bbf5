package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/fibonacci"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	calc := fibonacci.GlobalFactory().MustGet("memo")
	return NewModel(context.Background(), calc, fibonacci.Options{}, "test")
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return updated.(Model)
}

// submitAndRun presses enter and feeds the resulting message back.
func submitAndRun(t *testing.T, m Model) Model {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a compute command")
	}
	if !m.computing {
		t.Error("model should be computing after enter")
	}
	msg := cmd()
	updated, _ = m.Update(msg)
	return updated.(Model)
}

func TestModelComputesValue(t *testing.T) {
	m := typeText(t, newTestModel(t), "10")
	m = submitAndRun(t, m)

	if m.computing {
		t.Error("model should be idle after the result arrived")
	}
	if len(m.history) != 1 {
		t.Fatalf("history has %d entries, want 1", len(m.history))
	}
	e := m.history[0]
	if e.err != nil || e.n != 10 || e.value.Int64() != 55 {
		t.Errorf("unexpected entry %+v", e)
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared after submission")
	}
	if view := m.View(); !strings.Contains(view, "F(10)") || !strings.Contains(view, "55") {
		t.Errorf("view should show the result, got:\n%s", view)
	}
}

func TestModelNegativeInputReportsInvalidArgument(t *testing.T) {
	m := typeText(t, newTestModel(t), "-1")
	m = submitAndRun(t, m)

	if len(m.history) != 1 {
		t.Fatalf("history has %d entries, want 1", len(m.history))
	}
	if !errors.Is(m.history[0].err, apperrors.ErrInvalidArgument) {
		t.Errorf("expected InvalidArgument, got %v", m.history[0].err)
	}
	if !strings.Contains(m.View(), "non-negative") {
		t.Error("view should explain the invalid argument")
	}
}

func TestModelRejectsNonInteger(t *testing.T) {
	m := typeText(t, newTestModel(t), "abc")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if cmd != nil {
		t.Error("non-integer input must not start a computation")
	}
	if m.parseErr == "" || !strings.Contains(m.View(), "not an integer") {
		t.Errorf("expected a parse error, got %q", m.parseErr)
	}
}

func TestModelIgnoresStaleResults(t *testing.T) {
	m := newTestModel(t)
	m.seq = 2
	m.computing = true

	updated, _ := m.Update(resultMsg{seq: 1})
	m = updated.(Model)
	if !m.computing || len(m.history) != 0 {
		t.Error("a stale result must be dropped")
	}
}

func TestModelHistoryIsBounded(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < maxHistory+3; i++ {
		m = typeText(t, m, "7")
		m = submitAndRun(t, m)
	}
	if len(m.history) != maxHistory {
		t.Errorf("history has %d entries, want %d", len(m.history), maxHistory)
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !updated.(Model).help.ShowAll {
		t.Error("? should expand the help")
	}

	m = submitAndRun(t, typeText(t, m, "3"))
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(updated.(Model).history) != 0 {
		t.Error("ctrl+l should clear the history")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestModelRefusesIndexOverBudget(t *testing.T) {
	m := newTestModel(t).WithBudget(Budget{Algo: "memo", Limit: 1 << 20})

	m = typeText(t, m, "1000000")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd != nil || m.computing {
		t.Fatal("an index over budget must not start a computation")
	}
	if !strings.Contains(m.View(), "above the 1.0 MiB limit") {
		t.Errorf("view should explain the refusal, got:\n%s", m.View())
	}

	m.input.Reset()
	m = submitAndRun(t, typeText(t, m, "100"))
	if len(m.history) != 1 || m.history[0].err != nil {
		t.Errorf("a small index should still compute, history %+v", m.history)
	}
}
