package ui

import (
	"time"

	"github.com/olivier-w/vibra/internal/player"
)

// Audio is a running playback of the synthesized buffer.
type Audio interface {
	IsActive() bool
	Stop()
	Done() <-chan struct{}
	Position() time.Duration
	Duration() time.Duration
	Err() error
}

// AudioStarter begins playing buf at sampleRate.
type AudioStarter func(buf []float32, sampleRate int) (Audio, error)

// StartPlayer starts buf on the audio device.
func StartPlayer(buf []float32, sampleRate int) (Audio, error) {
	p, err := player.Start(buf, sampleRate)
	if err != nil {
		return nil, err
	}
	return p, nil
}
