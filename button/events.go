package button

import (
	"sync/atomic"

	"buttonkit-go/types"
)

// GestureEvent is delivered on the observer stream for every dispatch.
// Gesture is the slot that actually ran after fallback resolution.
type GestureEvent struct {
	Pin     int
	Gesture types.Gesture
	TsMs    int64
}

// Events returns the observer stream. Consuming it is optional: sends are
// non-blocking and events are dropped (and counted) when nobody reads.
func (m *Manager) Events() <-chan GestureEvent { return m.events }

func (m *Manager) emit(ev GestureEvent) {
	select {
	case m.events <- ev:
	default:
		atomic.AddUint32(&m.eventDrops, 1)
	}
}

// ISRDrops reports edge events discarded because the ISR queue was full.
func (m *Manager) ISRDrops() uint32 { return atomic.LoadUint32(&m.isrDrops) }

// DeferredDrops reports edges discarded because the deferral queue was full.
func (m *Manager) DeferredDrops() uint32 { return atomic.LoadUint32(&m.deferDrops) }

// EventDrops reports observer events discarded for lack of a consumer.
func (m *Manager) EventDrops() uint32 { return atomic.LoadUint32(&m.eventDrops) }
