//go:build rp2040

package provider

import (
	"machine"

	"buttonkit-go/types"
)

// Ensure the provider satisfies the contracts at compile time.
var _ types.IRQPin = (*rp2Pin)(nil)
var _ types.PinFactory = rp2Pins{}

type rp2Pin struct {
	p machine.Pin
	n int
}

// RP2Pin wraps a GPIO number as an IRQ-capable input line.
func RP2Pin(n int) types.IRQPin { return &rp2Pin{p: machine.Pin(n), n: n} }

func (r *rp2Pin) Number() int { return r.n }

func (r *rp2Pin) ConfigureInput(pull types.Pull) error {
	var mode machine.PinMode
	switch pull {
	case types.PullUp:
		mode = machine.PinInputPullup
	case types.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

// Disable drops the pull; the RP2040 has no true input power-down from
// the machine API.
func (r *rp2Pin) Disable() error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinInput})
	return nil
}

func (r *rp2Pin) Get() bool { return r.p.Get() }

func (r *rp2Pin) SetIRQ(edge types.Edge, handler func()) error {
	var ch machine.PinChange
	switch edge {
	case types.EdgeRising:
		ch = machine.PinRising
	case types.EdgeFalling:
		ch = machine.PinFalling
	case types.EdgeBoth:
		ch = machine.PinToggle
	default:
		return r.p.SetInterrupt(0, nil)
	}
	return r.p.SetInterrupt(ch, func(machine.Pin) { handler() })
}

func (r *rp2Pin) ClearIRQ() error { return r.p.SetInterrupt(0, nil) }

type rp2Pins struct{}

// RP2Pins returns the pin factory for the RP2040's GPIO bank.
func RP2Pins() types.PinFactory { return rp2Pins{} }

func (rp2Pins) ByNumber(n int) (types.IRQPin, bool) {
	if n < 0 || n > 29 {
		return nil, false
	}
	return RP2Pin(n), true
}
