package button

import (
	"sync"
	"time"

	"buttonkit-go/errcode"
	"buttonkit-go/types"
)

// noFunction is the default diagnostic handler. It is bound to the
// single-press slot of every new Button and substituted for any other
// slot that resolves to nothing.
func noFunction(pin int) {
	println("!!! button: no function defined for pin", pin)
}

// Button is one monitored input line. At most one Button exists per pin
// number; the Manager owns it for its whole lifetime.
type Button struct {
	pin  types.IRQPin
	pinN int

	mu       sync.Mutex
	single   types.Callback // never nil; defaults to noFunction
	double   types.Callback
	long     types.Callback
	veryLong types.Callback
	hold     types.Callback

	// Engine-owned; only touched on the dispatch goroutine.
	pressed    bool // a press has been confirmed and no release yet
	pressCount int
	lastEvent  time.Time

	holdTimer  *oneshot
	pressTimer *oneshot
}

// Pin returns the pin number this Button monitors.
func (b *Button) Pin() int { return b.pinN }

// Bound reports whether gesture kind g has a handler. The single-press
// slot is always bound, to the default handler if nothing else.
func (b *Button) Bound(g types.Gesture) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch g {
	case types.SinglePress:
		return b.single != nil
	case types.DoublePress:
		return b.double != nil
	case types.LongPress:
		return b.long != nil
	case types.VeryLongPress:
		return b.veryLong != nil
	case types.HoldPress:
		return b.hold != nil
	}
	return false
}

func (b *Button) setCallback(kind types.Gesture, fn types.Callback) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch kind {
	case types.SinglePress:
		// Every Button must always have a usable single-press handler.
		if fn != nil {
			b.single = fn
		} else {
			b.single = noFunction
		}
	case types.DoublePress:
		b.double = fn
	case types.LongPress:
		b.long = fn
	case types.VeryLongPress:
		b.veryLong = fn
	case types.HoldPress:
		b.hold = fn
	default:
		return errcode.InvalidKind
	}
	return nil
}

// resolve maps a classified gesture to the handler that will run, applying
// the fallback chain very-long, then long, then single. It returns the
// gesture the handler is actually bound to; a nil handler means the default
// diagnostic handler should run.
func (b *Button) resolve(g types.Gesture) (types.Callback, types.Gesture) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch g {
	case types.VeryLongPress:
		if b.veryLong != nil {
			return b.veryLong, g
		}
		if b.long != nil {
			return b.long, types.LongPress
		}
		return b.single, types.SinglePress
	case types.LongPress:
		if b.long != nil {
			return b.long, g
		}
		return b.single, types.SinglePress
	case types.DoublePress:
		return b.double, g
	case types.HoldPress:
		return b.hold, g
	default:
		return b.single, types.SinglePress
	}
}
