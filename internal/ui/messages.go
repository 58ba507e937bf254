package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

// playbackEndedMsg reports that audio finished. It names the playback so a
// message from before a restart can be ignored.
type playbackEndedMsg struct {
	audio Audio
}

func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func checkDone(a Audio) tea.Cmd {
	if a == nil {
		return nil
	}
	return func() tea.Msg {
		<-a.Done()
		return playbackEndedMsg{audio: a}
	}
}
