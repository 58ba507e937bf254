package visualizer

import "sync"

// History is a thread-safe circular buffer of samples.
type History struct {
	buf  []float64
	size int
	w    int // write position
	len  int // current fill level
	mu   sync.Mutex
}

// NewHistory creates a history holding the last size samples.
func NewHistory(size int) *History {
	return &History{
		buf:  make([]float64, size),
		size: size,
	}
}

// Push appends v, overwriting the oldest sample if full.
func (h *History) Push(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf[h.w] = v
	h.w = (h.w + 1) % h.size
	if h.len < h.size {
		h.len++
	}
}

// Last returns up to n most recent samples, oldest first.
func (h *History) Last(n int) []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n > h.len {
		n = h.len
	}
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	start := (h.w - n + h.size) % h.size
	for i := range n {
		out[i] = h.buf[(start+i)%h.size]
	}
	return out
}

// Len returns how many samples are held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.len
}

// Clear empties the history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.w = 0
	h.len = 0
}
