//go:build linux && !tinygo

package provider

import (
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"buttonkit-go/types"
)

// Ensure the provider satisfies the contracts at compile time.
var _ types.IRQPin = (*cdevPin)(nil)
var _ types.PinFactory = cdevPins{}

// cdevPin drives one line of a gpiochip character device. The kernel API
// fixes edge reporting at request time, so SetIRQ and ClearIRQ re-request
// the line with the current options.
type cdevPin struct {
	chip   string
	offset int

	mu      sync.Mutex
	line    *gpiocdev.Line
	pull    types.Pull
	edge    types.Edge
	handler func()
}

// CdevPin opens offset on the named chip, e.g. CdevPin("gpiochip0", 17).
func CdevPin(chip string, offset int) types.IRQPin {
	return &cdevPin{chip: chip, offset: offset}
}

func (c *cdevPin) Number() int { return c.offset }

func (c *cdevPin) ConfigureInput(pull types.Pull) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pull = pull
	return c.request()
}

func (c *cdevPin) SetIRQ(edge types.Edge, handler func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edge = edge
	c.handler = handler
	return c.request()
}

func (c *cdevPin) ClearIRQ() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edge = types.EdgeNone
	c.handler = nil
	return c.request()
}

func (c *cdevPin) Get() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.line == nil {
		return false
	}
	v, err := c.line.Value()
	return err == nil && v != 0
}

func (c *cdevPin) Disable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.line == nil {
		return nil
	}
	err := c.line.Close()
	c.line = nil
	return err
}

// request (re)opens the line with the accumulated input/pull/edge options.
// Caller holds c.mu.
func (c *cdevPin) request() error {
	if c.line != nil {
		_ = c.line.Close()
		c.line = nil
	}
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	switch c.pull {
	case types.PullUp:
		opts = append(opts, gpiocdev.WithPullUp)
	case types.PullDown:
		opts = append(opts, gpiocdev.WithPullDown)
	}
	if c.handler != nil && c.edge != types.EdgeNone {
		h := c.handler
		switch c.edge {
		case types.EdgeRising:
			opts = append(opts, gpiocdev.WithRisingEdge)
		case types.EdgeFalling:
			opts = append(opts, gpiocdev.WithFallingEdge)
		default:
			opts = append(opts, gpiocdev.WithBothEdges)
		}
		opts = append(opts, gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { h() }))
	}
	l, err := gpiocdev.RequestLine(c.chip, c.offset, opts...)
	if err != nil {
		return err
	}
	c.line = l
	return nil
}

type cdevPins struct{ chip string }

// CdevPins returns a factory over one gpiochip.
func CdevPins(chip string) types.PinFactory { return cdevPins{chip: chip} }

func (f cdevPins) ByNumber(n int) (types.IRQPin, bool) {
	if n < 0 {
		return nil, false
	}
	return CdevPin(f.chip, n), true
}
