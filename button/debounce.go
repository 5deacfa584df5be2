package button

import (
	"sync/atomic"
	"time"
)

// debounce is the shared edge-confirmation state: two one-shot channels
// (down confirms a press, up confirms a release) and the single pin they
// are currently settling. All fields are engine-confined.
type debounce struct {
	activePin int
	active    bool
	downArmed bool
	upArmed   bool
	down      *oneshot
	up        *oneshot
	pending   []event // edges waiting for the active pin to resolve
}

// handleEdge is the dispatcher for raw edge events. If another pin is
// mid-debounce the edge is deferred; otherwise the pin becomes active and
// the channel matching the sampled level is armed. It reports whether a
// channel was armed, so the deferral drain can tell a consumed edge from
// a discarded one.
func (m *Manager) handleEdge(ev event) bool {
	if m.lookup(ev.pin) == nil {
		return false
	}
	d := &m.deb
	if d.active && d.activePin != ev.pin {
		if len(d.pending) >= m.cfg.DeferQueueSize {
			atomic.AddUint32(&m.deferDrops, 1)
			return false
		}
		d.pending = append(d.pending, ev)
		return false
	}
	d.active = true
	d.activePin = ev.pin
	if ev.level {
		d.upArmed = true
		d.up.arm(m.cfg.DebouncePeriod)
	} else {
		d.downArmed = true
		d.down.arm(m.cfg.DebouncePeriod)
	}
	return true
}

// confirmDown fires when the down channel expires. The level is re-read:
// still pressed means a real press, so the hold timer is armed and the
// press timestamp recorded; anything else was noise.
func (m *Manager) confirmDown(gen uint32) {
	d := &m.deb
	if !d.down.matches(gen) {
		return
	}
	d.downArmed = false
	if b := m.lookup(d.activePin); b != nil && !b.pin.Get() {
		b.pressed = true
		b.holdTimer.arm(m.cfg.HoldPress)
		b.lastEvent = time.Now()
	}
	m.finishDebounce()
}

// confirmUp fires when the up channel expires. A stable released level
// completes the press/release cycle: the hold timer is disarmed and the
// elapsed time classified.
func (m *Manager) confirmUp(gen uint32) {
	d := &m.deb
	if !d.up.matches(gen) {
		return
	}
	d.upArmed = false
	if b := m.lookup(d.activePin); b != nil && b.pin.Get() && b.pressed {
		b.pressed = false
		b.holdTimer.disarm()
		m.classifyRelease(b, time.Since(b.lastEvent))
	}
	m.finishDebounce()
}

// finishDebounce releases the single debounce slot once neither channel
// is armed, then drains deferred edges oldest-first until one of them
// arms a channel. Edges whose pin has been destroyed in the meantime are
// discarded here rather than left to stall the edges queued behind them.
// A replayed edge is re-validated against the registry and its confirm
// path re-reads the level, so a stale deferral cannot misfire.
func (m *Manager) finishDebounce() {
	d := &m.deb
	if d.downArmed || d.upArmed {
		return
	}
	d.active = false
	for len(d.pending) > 0 {
		next := d.pending[0]
		copy(d.pending, d.pending[1:])
		d.pending = d.pending[:len(d.pending)-1]
		if m.handleEdge(next) {
			return
		}
	}
}
