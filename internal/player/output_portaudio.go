//go:build portaudio

package player

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 512

type portaudioOutput struct {
	stream *portaudio.Stream
	src    *bufferStream
	flags  atomic.Uint32

	mu       sync.Mutex
	startErr error
}

func openDeviceOutput(sampleRate int, src *bufferStream) (output, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, &DeviceError{Op: "open", Err: err}
	}
	o := &portaudioOutput{src: src}
	stream, err := portaudio.OpenDefaultStream(0, channelCount, float64(sampleRate), framesPerBuffer, o.process)
	if err != nil {
		portaudio.Terminate()
		return nil, &DeviceError{Op: "open", Err: err}
	}
	o.stream = stream
	return o, nil
}

func (o *portaudioOutput) process(out []float32, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
	if flags != 0 {
		o.flags.Store(uint32(flags))
	}
	o.src.fill(out)
}

func (o *portaudioOutput) Play() {
	if err := o.stream.Start(); err != nil {
		o.mu.Lock()
		o.startErr = &DeviceError{Op: "start", Err: err}
		o.mu.Unlock()
	}
}

func (o *portaudioOutput) Pause() {
	o.stream.Stop()
}

// Err reports a failed start, or the last status flags the callback saw.
func (o *portaudioOutput) Err() error {
	o.mu.Lock()
	err := o.startErr
	o.mu.Unlock()
	if err != nil {
		return err
	}
	f := portaudio.StreamCallbackFlags(o.flags.Swap(0))
	switch {
	case f&portaudio.OutputUnderflow != 0:
		return fmt.Errorf("output underflow")
	case f&portaudio.OutputOverflow != 0:
		return fmt.Errorf("output overflow")
	case f&portaudio.PrimingOutput != 0:
		return nil
	case f != 0:
		return fmt.Errorf("stream status %#x", uint32(f))
	}
	return nil
}

func (o *portaudioOutput) Close() error {
	err := o.stream.Close()
	portaudio.Terminate()
	return err
}
