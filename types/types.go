package types

// Gesture is the closed set of classified button outcomes.
type Gesture uint8

const (
	SinglePress Gesture = iota + 1
	DoublePress
	LongPress
	VeryLongPress
	HoldPress
)

// Valid reports whether g is one of the five defined gestures.
func (g Gesture) Valid() bool { return g >= SinglePress && g <= HoldPress }

func (g Gesture) String() string {
	switch g {
	case SinglePress:
		return "single"
	case DoublePress:
		return "double"
	case LongPress:
		return "long"
	case VeryLongPress:
		return "verylong"
	case HoldPress:
		return "hold"
	}
	return "unknown"
}

// Callback handles one classified gesture for one pin.
// Callbacks run on the manager's dispatch goroutine and must not block.
type Callback func(pin int)

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// GPIOPin is a digital input line. Buttons are wired active-low:
// Get() == false means pressed when the line is configured pull-up.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	Disable() error
	Get() bool
	Number() int
}

// IRQPin extends GPIOPin with edge interrupts.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies pins by the platform's numbering scheme.
type PinFactory interface {
	ByNumber(n int) (IRQPin, bool)
}
