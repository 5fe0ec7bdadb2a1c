// Package tui is the interactive research dashboard.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"marketspy/internal/core"
	"marketspy/internal/export"
	"marketspy/internal/render"
	"marketspy/internal/research"
)

type state int

const (
	stateIdle state = iota
	stateLoading
	stateDone
	stateFailed
)

// resultMsg carries the outcome of the research started under seq.
type resultMsg struct {
	seq     uint64
	outcome *core.ResearchOutcome
	err     error
}

type model struct {
	ctx       context.Context
	session   *research.Session
	clipboard export.Clipboard

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	state   state
	pending uint64
	topic   string
	outcome *core.ResearchOutcome
	errMsg  string
	status  string

	width    int
	height   int
	quitting bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22D3EE"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
)

func newModel(ctx context.Context, session *research.Session, cb export.Clipboard) model {
	ti := textinput.New()
	ti.Placeholder = "Nicho (vazio = varredura geral do mercado)"
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		ctx:       ctx,
		session:   session,
		clipboard: cb,
		input:     ti,
		spinner:   sp,
		viewport:  viewport.New(80, 20),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-7, 5)
		if m.outcome != nil {
			m.viewport.SetContent(m.dashboard())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "ctrl+y":
			m.copyReport()
			return m, nil
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case resultMsg:
		return m.handleResult(msg), nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit starts a new research run. An earlier run still in flight becomes stale.
// Only one spinner tick chain runs at a time.
func (m model) submit() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{}
	if m.state != stateLoading {
		cmds = append(cmds, m.spinner.Tick)
	}

	m.topic = m.input.Value()
	m.pending = m.session.Begin()
	m.state = stateLoading
	m.errMsg = ""
	m.status = ""
	cmds = append(cmds, runResearch(m.ctx, m.session, m.pending, m.topic))
	return m, tea.Batch(cmds...)
}

func runResearch(ctx context.Context, session *research.Session, seq uint64, topic string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := session.Run(ctx, seq, topic)
		return resultMsg{seq: seq, outcome: outcome, err: err}
	}
}

func (m model) handleResult(msg resultMsg) model {
	if msg.seq != m.pending || !m.session.IsLatest(msg.seq) || errors.Is(msg.err, research.ErrStale) {
		return m
	}
	if msg.err != nil {
		m.state = stateFailed
		m.errMsg = research.UserMessage
		return m
	}
	m.state = stateDone
	m.outcome = msg.outcome
	m.viewport.SetContent(m.dashboard())
	m.viewport.GotoTop()
	return m
}

func (m *model) copyReport() {
	if m.outcome == nil || m.clipboard == nil {
		return
	}
	text := export.ReportText(m.outcome.Topic, m.outcome.Data)
	if err := m.clipboard.WriteAll(text); err != nil {
		m.status = "Não foi possível copiar: " + err.Error()
		return
	}
	m.status = "Relatório copiado!"
}

func (m model) dashboard() string {
	width := 0
	if m.width > 8 {
		width = m.width - 4
	}
	return render.Dashboard(m.outcome, render.Options{Width: width})
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	view := headerStyle.Render("MARKET SPY") + "\n" + m.input.View() + "\n\n"

	switch m.state {
	case stateLoading:
		view += fmt.Sprintf("%s Analisando %s...\n", m.spinner.View(), render.Heading(m.topic))
	case stateFailed:
		view += errorStyle.Render(m.errMsg) + "\n"
	case stateDone:
		view += m.viewport.View() + "\n"
	}

	if m.status != "" {
		view += statusStyle.Render(m.status) + "\n"
	}
	view += helpStyle.Render("[enter] pesquisar | [↑/↓] rolar | [ctrl+y] copiar relatório | [esc] sair")
	return view
}

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, session *research.Session, cb export.Clipboard) error {
	p := tea.NewProgram(newModel(ctx, session, cb), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}
