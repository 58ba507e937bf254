package util

import (
	"fmt"
	"time"
)

// FormatDuration renders d as minutes and zero-padded seconds, dropping any
// fraction. Negative durations show as 0:00.
func FormatDuration(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int64(d/time.Minute), int64(d%time.Minute/time.Second))
}

// FormatSeconds formats simulated time in seconds with millisecond
// precision, switching to scientific notation below 1 ms.
func FormatSeconds(t float64) string {
	if t != 0 && t < 1e-3 && t > -1e-3 {
		return fmt.Sprintf("%.2es", t)
	}
	return fmt.Sprintf("%.3fs", t)
}
