package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/vibra/internal/config"
	"github.com/olivier-w/vibra/internal/sim"
	"github.com/olivier-w/vibra/internal/ui"
)

type startupResolvedMsg struct {
	session *sim.Session
	err     error
}

// startupModel shows a spinner while the session is prepared, then hands
// the terminal to ui.Model. A preparation error ends the program.
type startupModel struct {
	params  config.Params
	start   ui.AudioStarter
	build   func(config.Params) (*sim.Session, error)
	spinner spinner.Model
	width   int
	height  int
	err     error
}

func newStartupModel(params config.Params, start ui.AudioStarter) startupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = startupWorkStyle

	return startupModel{
		params:  params,
		start:   start,
		build:   sim.New,
		spinner: s,
	}
}

func (m startupModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, buildSessionCmd(m.build, m.params))
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startupResolvedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}

		model := ui.New(msg.session, m.start, m.params.View)
		cmds := []tea.Cmd{model.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return model, tea.Batch(cmds...)

	case tea.KeyMsg:
		if startupIsQuit(msg) {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}

	return m, nil
}

func buildSessionCmd(build func(config.Params) (*sim.Session, error), params config.Params) tea.Cmd {
	return func() tea.Msg {
		s, err := build(params)
		return startupResolvedMsg{session: s, err: err}
	}
}

func (m startupModel) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(startupBrandStyle.Render("vibra"))
	b.WriteString("\n\n  ")
	if m.err != nil {
		b.WriteString(startupFaultStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(startupWorkStyle.Render("Synthesizing audio..."))
	b.WriteString("\n\n  ")
	b.WriteString(startupKeyStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

func startupIsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

var (
	startupBrandStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#5EEAD4"})
	startupWorkStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#C3C8D0"})
	startupKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#7A7F87", Dark: "#8A909A"})
	startupFaultStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B42318", Dark: "#F97066"})
)
