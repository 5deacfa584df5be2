package button

import (
	"time"

	"buttonkit-go/x/timex"
)

// debounceHz is the sampling frequency used to confirm an edge.
const debounceHz = 50

// Config centralises timings and limits.
//
// The four gesture thresholds are total elapsed-time boundaries measured
// from confirmed press to confirmed release, except HoldPress and
// DoublePressWindow which are standalone one-shot durations.
type Config struct {
	DebouncePeriod    time.Duration // settle time before an edge is confirmed
	DoublePressWindow time.Duration // wait for a second press after a release
	LongPress         time.Duration
	VeryLongPress     time.Duration
	HoldPress         time.Duration

	// AlwaysOnPin is reserved by the platform and never disabled on Destroy.
	AlwaysOnPin int

	ISRQueueSize   int // edge events buffered between ISR and engine
	DeferQueueSize int // edges deferred while another pin is mid-debounce
	EventQueueSize int // observer stream buffer
}

// DefaultConfig returns the stock timings: 50 Hz debounce sampling,
// 400 ms double-press window, 450 ms long, 1200 ms very-long, 10 s hold.
func DefaultConfig() Config {
	return Config{
		DebouncePeriod:    timex.PeriodFromHz(debounceHz),
		DoublePressWindow: 400 * time.Millisecond,
		LongPress:         450 * time.Millisecond,
		VeryLongPress:     1200 * time.Millisecond,
		HoldPress:         10000 * time.Millisecond,
		AlwaysOnPin:       0,
		ISRQueueSize:      64,
		DeferQueueSize:    8,
		EventQueueSize:    16,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DebouncePeriod <= 0 {
		c.DebouncePeriod = d.DebouncePeriod
	}
	if c.DoublePressWindow <= 0 {
		c.DoublePressWindow = d.DoublePressWindow
	}
	if c.LongPress <= 0 {
		c.LongPress = d.LongPress
	}
	if c.VeryLongPress <= 0 {
		c.VeryLongPress = d.VeryLongPress
	}
	if c.HoldPress <= 0 {
		c.HoldPress = d.HoldPress
	}
	if c.ISRQueueSize <= 0 {
		c.ISRQueueSize = d.ISRQueueSize
	}
	if c.DeferQueueSize <= 0 {
		c.DeferQueueSize = d.DeferQueueSize
	}
	if c.EventQueueSize <= 0 {
		c.EventQueueSize = d.EventQueueSize
	}
	return c
}
