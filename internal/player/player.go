package player

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"
)

const monitorInterval = 100 * time.Millisecond

// output is an opened audio device playing a bufferStream.
type output interface {
	Play()
	Pause()
	Err() error
}

// openOutput is replaced in tests so no device is needed.
var openOutput = openDeviceOutput

// Player streams a precomputed mono buffer to the audio device.
type Player struct {
	stream     *bufferStream
	out        output
	sampleRate int
	duration   time.Duration

	done     chan struct{}
	doneOnce sync.Once
	stopMon  chan struct{}

	mu      sync.Mutex
	stopped bool
	err     error
}

// Start opens the audio device at sampleRate and begins playing buf. buf
// must not be modified while the Player is alive. A device failure is
// returned as *DeviceError.
func Start(buf []float32, sampleRate int) (*Player, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	stream := newBufferStream(buf)
	out, err := openOutput(sampleRate, stream)
	if err != nil {
		return nil, err
	}

	p := &Player{
		stream:     stream,
		out:        out,
		sampleRate: sampleRate,
		duration:   time.Duration(float64(len(buf)) / float64(sampleRate) * float64(time.Second)),
		done:       make(chan struct{}),
		stopMon:    make(chan struct{}),
	}
	p.out.Play()

	go p.monitor()
	return p, nil
}

// monitor reports device errors and notices the end of the stream.
func (p *Player) monitor() {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stopMon:
			return
		case <-ticker.C:
		}

		if err := p.out.Err(); err != nil {
			var de *DeviceError
			if !errors.As(err, &de) {
				err = &DeviceError{Op: "play", Err: err}
			}
			p.recordErr(err)
		}
		if !p.stream.Active() {
			p.finish()
			return
		}
	}
}

func (p *Player) recordErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil && p.err.Error() == err.Error() {
		return
	}
	p.err = err
	log.Printf("audio: %v", err)
}

func (p *Player) finish() {
	p.doneOnce.Do(func() { close(p.done) })
}

// Done returns a channel that is closed when playback ends or is stopped.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// IsActive reports whether audio is still being streamed.
func (p *Player) IsActive() bool {
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	return !stopped && p.stream.Active()
}

// Stop halts playback and releases the device. It is safe to call more than
// once.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true
	if p.stopMon != nil {
		close(p.stopMon)
	}
	if p.out != nil {
		p.out.Pause()
		if c, ok := p.out.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.Printf("audio: closing device: %v", err)
			}
		}
	}
	if p.stream != nil {
		p.stream.Close()
	}
	if p.done != nil {
		p.finish()
	}
}

// Err returns the last device error seen during playback, if any.
func (p *Player) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Position returns how much of the buffer has been handed to the device.
func (p *Player) Position() time.Duration {
	secs := float64(p.stream.Pos()) / float64(p.sampleRate)
	return time.Duration(secs * float64(time.Second))
}

// Duration returns the length of the buffer.
func (p *Player) Duration() time.Duration {
	return p.duration
}
