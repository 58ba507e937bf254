//go:build !portaudio

package player

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

var (
	globalOtoCtx  *oto.Context
	otoSampleRate int
	otoOnce       sync.Once
	otoInitErr    error
)

// initOto creates the process-wide oto context. oto allows only one, so a
// second Player asking for a different rate is refused.
func initOto(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatFloat32LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
			otoSampleRate = sampleRate
		}
	})
	if otoInitErr != nil {
		return nil, otoInitErr
	}
	if sampleRate != otoSampleRate {
		return nil, fmt.Errorf("audio context already running at %d Hz, cannot open at %d Hz", otoSampleRate, sampleRate)
	}
	return globalOtoCtx, nil
}

// otoOutput adapts *oto.Player; Play, Pause and Err are promoted.
type otoOutput struct {
	*oto.Player
}

func openDeviceOutput(sampleRate int, stream *bufferStream) (output, error) {
	ctx, err := initOto(sampleRate)
	if err != nil {
		return nil, &DeviceError{Op: "open", Err: err}
	}
	return otoOutput{ctx.NewPlayer(stream)}, nil
}
