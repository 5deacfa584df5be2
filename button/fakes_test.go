package button

import (
	"context"
	"sync"
	"testing"
	"time"

	"buttonkit-go/types"
)

// fakeIRQPin implements types.IRQPin with minimal behaviour for tests.
// Level true = released (pull-up idle), false = pressed.
type fakeIRQPin struct {
	mu       sync.Mutex
	level    bool
	handler  func()
	number   int
	disabled bool
	irqClear bool
}

func newFakePin(n int) *fakeIRQPin { return &fakeIRQPin{number: n, level: true} }

func (p *fakeIRQPin) ConfigureInput(_ types.Pull) error { return nil }
func (p *fakeIRQPin) Disable() error {
	p.mu.Lock()
	p.disabled = true
	p.mu.Unlock()
	return nil
}
func (p *fakeIRQPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}
func (p *fakeIRQPin) Number() int { return p.number }
func (p *fakeIRQPin) SetIRQ(_ types.Edge, h func()) error {
	p.mu.Lock()
	p.handler = h
	p.irqClear = false
	p.mu.Unlock()
	return nil
}
func (p *fakeIRQPin) ClearIRQ() error {
	p.mu.Lock()
	p.handler = nil
	p.irqClear = true
	p.mu.Unlock()
	return nil
}

// fire simulates a hardware edge: set the level, then run the ISR handler.
func (p *fakeIRQPin) fire(level bool) {
	p.mu.Lock()
	p.level = level
	h := p.handler
	p.mu.Unlock()
	if h != nil {
		h()
	}
}

func (p *fakeIRQPin) press()   { p.fire(false) }
func (p *fakeIRQPin) release() { p.fire(true) }

var _ types.IRQPin = (*fakeIRQPin)(nil)

// testConfig shortens every threshold so timelines run in milliseconds.
func testConfig() Config {
	return Config{
		DebouncePeriod:    5 * time.Millisecond,
		DoublePressWindow: 80 * time.Millisecond,
		LongPress:         100 * time.Millisecond,
		VeryLongPress:     250 * time.Millisecond,
		HoldPress:         400 * time.Millisecond,
		AlwaysOnPin:       -1,
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	m := New(testConfig())
	m.Start(ctx)
	return m
}

// recorder returns a callback that records each dispatched pin.
func recorder() (types.Callback, chan int) {
	ch := make(chan int, 8)
	return func(pin int) { ch <- pin }, ch
}

func recvDispatch(t *testing.T, ch <-chan int, d time.Duration) (int, bool) {
	t.Helper()
	select {
	case p := <-ch:
		return p, true
	case <-time.After(d):
		return 0, false
	}
}

func expectNone(t *testing.T, ch <-chan int, d time.Duration, what string) {
	t.Helper()
	if p, ok := recvDispatch(t, ch, d); ok {
		t.Fatalf("unexpected %s dispatch for pin %d", what, p)
	}
}

// settle waits long enough for a debounce confirmation to land.
func settle() { time.Sleep(20 * time.Millisecond) }
