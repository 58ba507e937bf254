package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/vibra/internal/clock"
	"github.com/olivier-w/vibra/internal/sim"
	"github.com/olivier-w/vibra/internal/visualizer"
)

// chromeLines is how many rows the view uses around the plot.
const chromeLines = 11

// capLogInterval rate-limits the "step cap hit" log line.
const capLogInterval = time.Second

// Model is the Bubbletea model for the vibra TUI.
type Model struct {
	session  *sim.Session
	start    AudioStarter
	audio    Audio
	audioOK  bool // audio played to the end
	audioErr error

	clock     clock.Clock
	lastSteps int
	capped    bool
	lastCap   time.Time

	views []visualizer.Visualizer
	view  int
	meter *visualizer.Meter

	progress progress.Model
	help     help.Model
	keys     keyMap

	width    int
	height   int
	quitting bool
}

// New creates a Model for s, starts its audio with start and anchors the
// simulation clock at the same moment. A nil start runs without sound.
// Audio failures are kept for display and never stop the animation.
func New(s *sim.Session, start AudioStarter, view string) Model {
	views := visualizer.Modes(s.Initial(), probeIndex(s))
	idx := visualizer.Index(views, view)
	if idx < 0 {
		idx = 0
	}

	m := Model{
		session: s,
		start:   start,
		views:   views,
		view:    idx,
		meter:   visualizer.NewMeter(s.Params.FPS),
		progress: progress.New(
			progress.WithScaledGradient("#5FD7FF", "#AF87FF"),
			progress.WithoutPercentage(),
		),
		help: help.New(),
		keys: defaultKeys(),
	}
	m.startAudio()
	m.clock = clock.New(time.Now(), s.Dt(), clock.DefaultMaxSteps)
	return m
}

// probeIndex is the grid point nearest the audio pickup.
func probeIndex(s *sim.Session) int {
	x := s.Grid()
	if len(x) < 2 {
		return 0
	}
	i := int(s.Excitation()/(x[1]-x[0]) + 0.5)
	return min(max(i, 0), len(x)-1)
}

func (m *Model) startAudio() {
	m.audio, m.audioErr, m.audioOK = nil, nil, false
	if m.start == nil {
		return
	}
	a, err := m.start(m.session.Audio(), m.session.Params.SampleRate)
	if err != nil {
		log.Printf("audio unavailable: %v", err)
		m.audioErr = err
		return
	}
	m.audio = a
}

func (m *Model) stopAudio() {
	if m.audio != nil {
		m.audio.Stop()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.session.Params.FPS), checkDone(m.audio), tea.SetWindowTitle("vibra"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.stopAudio()
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		case key.Matches(msg, m.keys.View):
			m.view = (m.view + 1) % len(m.views)
			m.render()
			return m, nil
		case key.Matches(msg, m.keys.Restart):
			cmd := m.restart(time.Now())
			return m, cmd
		}
		return m, nil

	case tickMsg:
		m.advance(time.Time(msg))
		m.record()
		m.render()
		return m, tickCmd(m.session.Params.FPS)

	case playbackEndedMsg:
		if msg.audio != m.audio {
			return m, nil
		}
		m.audioOK = true
		if err := m.audio.Err(); err != nil {
			m.audioErr = err
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - 20
		if barWidth < 10 {
			barWidth = 10
		}
		m.progress.Width = barWidth
		m.help.Width = msg.Width
		m.render()
		return m, nil
	}

	return m, nil
}

// advance runs every simulation step due at now.
func (m *Model) advance(now time.Time) {
	m.lastSteps, m.capped = m.clock.Tick(now, m.session.Step)
	if m.capped && now.Sub(m.lastCap) >= capLogInterval {
		m.lastCap = now
		log.Printf("step cap of %d hit, %s behind", clock.DefaultMaxSteps, m.clock.Behind(now).Round(time.Millisecond))
	}
	if m.audio != nil {
		if err := m.audio.Err(); err != nil {
			m.audioErr = err
		}
	}
}

// record feeds the current displacement to every view that keeps history,
// including those not on screen.
func (m *Model) record() {
	y := m.session.Displacement()
	for _, v := range m.views {
		if r, ok := v.(visualizer.Recorder); ok {
			r.Record(y)
		}
	}
}

// render refreshes the plot and meter from the current displacement.
func (m *Model) render() {
	w, h := m.plotSize()
	m.views[m.view].Update(m.session.Displacement(), m.session.Limit(), w, h)
	m.meter.Update(m.session.Peak(), m.session.Params.Amplitude, w)
}

// restart puts the string back at rest in its initial shape and replays the
// audio from the beginning.
func (m *Model) restart(now time.Time) tea.Cmd {
	m.stopAudio()
	if err := m.session.Reset(); err != nil {
		log.Printf("restart: %v", err)
		return nil
	}
	m.meter.Reset()
	for _, v := range m.views {
		if r, ok := v.(interface{ Reset() }); ok {
			r.Reset()
		}
	}
	m.startAudio()
	m.clock.Reset(now)
	m.lastSteps, m.capped = 0, false
	m.render()
	return checkDone(m.audio)
}

func (m Model) plotSize() (int, int) {
	w := m.width
	if w < 30 {
		w = 80
	}
	h := m.height - chromeLines
	if m.height == 0 {
		h = 16
	}
	if h < 4 {
		h = 4
	}
	return w - 2, h
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	p := m.session.Params
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(brandStyle.Render("vibra"))
	b.WriteString("  ")
	b.WriteString(profileStyle.Render(p.Kind))
	b.WriteString("\n  ")
	b.WriteString(paramsStyle.Render(fmt.Sprintf("L=%g  c=%g  alpha=%g  d0=%g  N=%d  dt=%.2e", p.Length, p.Speed, p.Damping, p.Amplitude, p.Points, m.session.Dt())))
	b.WriteString("\n\n")
	b.WriteString(indentBlock(m.views[m.view].View(), "  "))
	b.WriteString("\n\n  ")
	b.WriteString(m.meter.View())
	b.WriteString("\n  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n  ")
	b.WriteString(m.audioLine())
	b.WriteString("\n\n  ")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) statusLine() string {
	s := simStyle.Render(fmt.Sprintf("t %s  %d steps/frame  view %s",
		formatSimTime(m.session.SimTime()), m.lastSteps, m.views[m.view].Name()))
	if m.capped {
		s += "  " + lagStyle.Render("lagging")
	}
	return s
}

func (m Model) audioLine() string {
	switch {
	case m.audioErr != nil && m.audio == nil:
		return faultStyle.Render("audio unavailable: " + m.audioErr.Error())
	case m.audio == nil:
		return clockStyle.Render("audio off")
	}

	elapsed, total := m.audio.Position(), m.audio.Duration()
	if m.audioOK {
		elapsed = total
	}
	line := renderProgress(m.progress, elapsed, total)
	if m.audioErr != nil {
		line += "  " + faultStyle.Render(m.audioErr.Error())
	}
	return line
}

// Close stops playback and releases the audio device. It is safe to call
// after the user already quit.
func (m Model) Close() {
	m.stopAudio()
}
