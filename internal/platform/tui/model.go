package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"passwordCrackerSim/internal/core/domain"
	"passwordCrackerSim/internal/platform/console"
	"passwordCrackerSim/internal/utils/format"
)

type snapshotMsg domain.Snapshot

type snapshotsClosedMsg struct{}

type doneMsg domain.FinalReport

// Model is the live dashboard for one running simulation.
type Model struct {
	analysis  *domain.Analysis
	snapshots <-chan domain.Snapshot
	done      <-chan domain.FinalReport
	stop      func()

	spinner  spinner.Model
	styles   styles
	latest   domain.Snapshot
	final    *domain.FinalReport
	stopping bool
}

// NewModel follows job; stop is called once when the user asks to quit.
func NewModel(job *domain.SimulationJob, stop func()) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)
	return Model{
		analysis:  job.Analysis,
		snapshots: job.Snapshots,
		done:      job.Done,
		stop:      stop,
		spinner:   s,
		styles:    newStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForSnapshot(m.snapshots))
}

func waitForSnapshot(ch <-chan domain.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return snapshotsClosedMsg{}
		}
		return snapshotMsg(s)
	}
}

func waitForDone(ch <-chan domain.FinalReport) tea.Cmd {
	return func() tea.Msg {
		return doneMsg(<-ch)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.stopping && m.final == nil {
				m.stopping = true
				if m.stop != nil {
					m.stop()
				}
			}
			if m.final != nil {
				return m, tea.Quit
			}
		}
		return m, nil

	case snapshotMsg:
		m.latest = domain.Snapshot(msg)
		return m, waitForSnapshot(m.snapshots)

	case snapshotsClosedMsg:
		return m, waitForDone(m.done)

	case doneMsg:
		report := domain.FinalReport(msg)
		m.final = &report
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Final is the report once the simulation has ended.
func (m Model) Final() (domain.FinalReport, bool) {
	if m.final == nil {
		return domain.FinalReport{}, false
	}
	return *m.final, true
}

func (m Model) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.label.Render(label), value)
}

func (m Model) View() string {
	a := m.analysis
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Brute-Force Attack Simulation"))
	b.WriteString("\n")

	rows := []string{
		m.row("Hardware", a.Hardware.Label),
		m.row("Keyspace", a.Keyspace.Summary()),
		m.row("Combinations", format.BigInt(a.Keyspace.TotalCombinations)),
		m.row("Target", a.Settings.Target.Label()+" = "+format.BigFloat(a.TargetAttempts)),
		m.row("Attempts", format.Int(m.latest.Attempts)),
		m.row("Speed", format.Rate(m.latest.Rate)+" attempts/s"),
	}

	switch {
	case m.final != nil:
		rows = append(rows,
			m.row("Predicted total", format.FormatDuration(m.final.PredictedSeconds)),
		)
	case m.latest.Rate > 0:
		rows = append(rows,
			m.row("Time left (est.)", format.FormatDuration(m.latest.PredictedSeconds)),
		)
	default:
		rows = append(rows, m.row("Time left (est.)", "Calculating..."))
	}
	b.WriteString(m.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	b.WriteString("\n")

	switch {
	case m.final != nil:
		headline := console.Headline(*m.final, a.TargetAttempts)
		if m.final.State == domain.StateCancelled {
			b.WriteString(m.styles.warning.Render(headline))
		} else {
			b.WriteString(m.styles.success.Render(headline))
		}
	case m.stopping:
		b.WriteString(m.spinner.View() + " stopping...")
	default:
		b.WriteString(m.spinner.View() + " sampling guesses")
		b.WriteString(m.styles.footer.Render("\npress q to stop"))
	}
	b.WriteString("\n")
	return b.String()
}
