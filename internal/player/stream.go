package player

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"
)

const (
	channelCount   = 1
	bytesPerSample = 4 // float32 LE
)

// cursor walks a precomputed buffer forward. It is owned by the device
// callback: only the goroutine pulling audio touches it.
type cursor struct {
	buf []float32
	pos int
}

// pull copies the next len(out) samples into out and zero-fills whatever lies
// past the end of the buffer. last reports that the buffer ran short, so this
// chunk ends the stream.
func (c *cursor) pull(out []float32) (n int, last bool) {
	n = copy(out, c.buf[c.pos:])
	clear(out[n:])
	c.pos += n
	return n, n < len(out)
}

// bufferStream feeds a read-only sample buffer to an audio device. The device
// pulls through fill (callback backends) or Read (reader backends); the rest
// of the program only observes Active and Pos.
type bufferStream struct {
	cur     cursor
	scratch []float32

	drained atomic.Bool // the zero-padded final chunk has been handed out
	active  atomic.Bool
	pos     atomic.Int64
}

func newBufferStream(buf []float32) *bufferStream {
	s := &bufferStream{cur: cursor{buf: buf}}
	s.active.Store(true)
	return s
}

// fill writes the next len(out) samples. Once the final padded chunk has
// been delivered, the following call marks the stream inactive, writes
// silence and returns false.
func (s *bufferStream) fill(out []float32) bool {
	if s.drained.Load() || !s.active.Load() {
		s.active.Store(false)
		clear(out)
		return false
	}
	_, last := s.cur.pull(out)
	s.pos.Store(int64(s.cur.pos))
	if last {
		s.drained.Store(true)
	}
	return true
}

// Read implements io.Reader over mono float32 little-endian frames.
func (s *bufferStream) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerSample
	if frames == 0 {
		if !s.Active() {
			return 0, io.EOF
		}
		return 0, nil
	}
	if cap(s.scratch) < frames {
		s.scratch = make([]float32, frames)
	}
	chunk := s.scratch[:frames]
	if !s.fill(chunk) {
		return 0, io.EOF
	}
	for i, v := range chunk {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	return frames * bytesPerSample, nil
}

// Active reports whether the device may still pull from the stream.
func (s *bufferStream) Active() bool { return s.active.Load() }

// Pos returns how many buffer samples have been handed to the device.
func (s *bufferStream) Pos() int64 { return s.pos.Load() }

// Len returns the buffer length in samples.
func (s *bufferStream) Len() int { return len(s.cur.buf) }

// Close ends the stream early; the next pull reports end of stream.
func (s *bufferStream) Close() error {
	s.active.Store(false)
	return nil
}
