package button

import (
	"sync"
	"time"
)

// oneshot is a re-armable single-fire timer. Every arm/disarm bumps a
// generation counter; the fire callback receives the generation it was
// armed with so that a fire already in flight when the timer is disarmed
// or re-armed can be recognised as stale and discarded.
type oneshot struct {
	mu  sync.Mutex
	gen uint32
	t   *time.Timer
	fn  func(gen uint32)
}

func newOneshot(fn func(gen uint32)) *oneshot { return &oneshot{fn: fn} }

// arm schedules a single fire after d, cancelling any earlier schedule.
func (o *oneshot) arm(d time.Duration) {
	o.mu.Lock()
	o.gen++
	g := o.gen
	if o.t != nil {
		o.t.Stop()
	}
	if d < 0 {
		d = 0
	}
	o.t = time.AfterFunc(d, func() { o.fire(g) })
	o.mu.Unlock()
}

// disarm cancels any scheduled fire. A fire that has already left
// time.AfterFunc is invalidated by the generation bump.
func (o *oneshot) disarm() {
	o.mu.Lock()
	o.gen++
	if o.t != nil {
		o.t.Stop()
		o.t = nil
	}
	o.mu.Unlock()
}

func (o *oneshot) fire(g uint32) {
	o.mu.Lock()
	live := o.gen == g
	if live {
		o.t = nil
	}
	o.mu.Unlock()
	if live {
		o.fn(g)
	}
}

// matches reports whether g is still the current generation.
func (o *oneshot) matches(g uint32) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gen == g
}
