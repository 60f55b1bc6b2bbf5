package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/fibonacci"
	"github.com/agbru/fibmemo/internal/fibonacci/memory"
	"github.com/agbru/fibmemo/internal/format"
)

const (
	maxHistory     = 8
	displayEdges   = 20
	inputCharLimit = 20
)

// entry is one line of the result history.
type entry struct {
	n        int64
	value    *big.Int
	duration time.Duration
	err      error
}

// resultMsg carries a finished computation back to the model. seq ties it
// to the request that produced it.
type resultMsg struct {
	entry
	seq uint64
}

// Budget refuses indices whose estimated footprint for Algo exceeds Limit
// bytes. A zero Limit disables the check.
type Budget struct {
	Algo  string
	Limit uint64
}

// Model is the bubbletea model of the interactive prompt.
type Model struct {
	ctx     context.Context
	calc    fibonacci.Calculator
	opts    fibonacci.Options
	version string
	budget  Budget

	input  textinput.Model
	help   help.Model
	keymap KeyMap

	history   []entry
	computing bool
	seq       uint64
	parseErr  string
}

// NewModel creates a prompt that computes with calc. Every enter is an
// independent top-level call.
func NewModel(ctx context.Context, calc fibonacci.Calculator, opts fibonacci.Options, version string) Model {
	ti := textinput.New()
	ti.Prompt = "n = "
	ti.Placeholder = "e.g. 100"
	ti.CharLimit = inputCharLimit
	ti.PromptStyle = promptStyle
	ti.Focus()

	return Model{
		ctx:     ctx,
		calc:    calc,
		opts:    opts,
		version: version,
		input:   ti,
		help:    help.New(),
		keymap:  DefaultKeyMap(),
	}
}

// WithBudget returns a copy of m that checks every index against b before
// computing it.
func (m Model) WithBudget(b Budget) Model {
	m.budget = b
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and finished computations.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keymap.Clear):
			m.history = nil
			m.parseErr = ""
			return m, nil
		case key.Matches(msg, m.keymap.Compute):
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case resultMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.computing = false
		m.history = append([]entry{msg.entry}, m.history...)
		if len(m.history) > maxHistory {
			m.history = m.history[:maxHistory]
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit parses the input and starts a computation. Negative values are
// passed through so that the calculator reports them as invalid arguments.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.computing {
		return m, nil
	}
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return m, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.parseErr = fmt.Sprintf("%q is not an integer", raw)
		return m, nil
	}
	if m.budget.Limit > 0 {
		if est := memory.EstimateMemoryUsage(n, m.budget.Algo); est.TotalBytes > m.budget.Limit {
			m.parseErr = fmt.Sprintf("F(%d) needs about %s, above the %s limit",
				n, memory.FormatMemoryEstimate(est), format.FormatBytes(m.budget.Limit))
			return m, nil
		}
	}

	m.parseErr = ""
	m.computing = true
	m.seq++
	m.input.Reset()
	return m, computeCmd(m.ctx, m.calc, n, m.opts, m.seq)
}

func computeCmd(ctx context.Context, calc fibonacci.Calculator, n int64, opts fibonacci.Options, seq uint64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		value, err := calc.Calculate(ctx, nil, 0, n, opts)
		return resultMsg{
			entry: entry{n: n, value: value, duration: time.Since(start), err: err},
			seq:   seq,
		}
	}
}

// View renders the prompt.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("fibmemo"))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %s  %s", m.version, m.calc.Name())))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.computing:
		b.WriteString(dimStyle.Render("computing..."))
	case m.parseErr != "":
		b.WriteString(errorStyle.Render(m.parseErr))
	}
	b.WriteString("\n")

	if len(m.history) > 0 {
		lines := make([]string, len(m.history))
		for i, e := range m.history {
			lines[i] = renderEntry(e)
		}
		b.WriteString(historyStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keymap))
	b.WriteString("\n")
	return b.String()
}

func renderEntry(e entry) string {
	label := indexStyle.Render(fmt.Sprintf("F(%d)", e.n))
	if e.err != nil {
		return label + " " + errorStyle.Render(e.err.Error())
	}
	digits := e.value.String()
	return fmt.Sprintf("%s = %s %s",
		label,
		valueStyle.Render(format.TruncateDigits(digits, displayEdges)),
		dimStyle.Render(fmt.Sprintf("(%d bits, %d digits, %s)",
			e.value.BitLen(), len(digits), format.FormatExecutionDuration(e.duration))))
}

// Run starts the prompt on in/out and blocks until the user quits or ctx is
// done. It returns the process exit code.
func Run(ctx context.Context, calc fibonacci.Calculator, opts fibonacci.Options, budget Budget, version string, in io.Reader, out io.Writer) int {
	initStyles()

	p := tea.NewProgram(NewModel(ctx, calc, opts, version).WithBudget(budget),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return apperrors.ExitErrorCanceled
		}
		fmt.Fprintf(out, "interactive mode failed: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
