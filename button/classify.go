package button

import "time"

// action is the outcome of classifying a confirmed release.
type action uint8

const (
	actSingle action = iota
	actDouble
	actLong
	actVeryLong
	actArmPressTimer // candidate single; wait for a possible second press
)

// classify decides what a confirmed release means from the elapsed time
// since the confirmed press and the accumulated press count. It returns
// the action and the new press count.
//
// A double press is only considered when a double-press handler is bound;
// otherwise a short release dispatches a single press immediately.
func classify(elapsed, longAt, veryLongAt time.Duration, hasDouble bool, pressCount int) (action, int) {
	switch {
	case elapsed >= veryLongAt:
		return actVeryLong, 0
	case elapsed >= longAt:
		return actLong, 0
	case hasDouble:
		pressCount++
		if pressCount > 1 {
			return actDouble, 0
		}
		return actArmPressTimer, pressCount
	default:
		// Reset the count too: a leftover candidate from an earlier armed
		// window (possible if the double handler was unbound in between)
		// must not leak into a later cycle.
		return actSingle, 0
	}
}
