package player

import "fmt"

// DeviceError reports an audio output failure. It never affects the
// simulation: the caller logs it and carries on without sound.
type DeviceError struct {
	Op  string // "open", "start" or "play"
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("audio device %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }
