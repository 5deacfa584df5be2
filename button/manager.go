package button

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"buttonkit-go/errcode"
	"buttonkit-go/types"
	"buttonkit-go/x/timex"
)

type evKind uint8

const (
	evEdge evKind = iota
	evDownFired
	evUpFired
	evHoldFired
	evPressFired
)

type event struct {
	kind  evKind
	pin   int
	level bool   // sampled in the ISR; true = released
	gen   uint32 // one-shot generation for timer-origin events
}

// Manager turns raw edge transitions on registered pins into gesture
// dispatches. ISRs do a fast level read and a non-blocking queue send;
// a single engine goroutine owns every piece of mutable gesture state,
// so no handler or timer callback ever races another.
//
// Edge confirmation runs through two debounce channels shared by all
// buttons, with a single pin active at a time. An edge arriving for a
// second pin while the first is still settling is deferred and replayed
// once the in-flight edge resolves; it is never re-attributed to the
// wrong pin. The deferral queue is bounded, so a burst of simultaneously
// bouncing pins can shed edges; see DeferredDrops.
//
// Create and Destroy must be called from ordinary goroutine context,
// never from inside a dispatched callback.
type Manager struct {
	cfg Config

	mu      sync.RWMutex
	buttons map[int]*Button

	q       chan event
	quit    chan struct{}
	stopped chan struct{}
	events  chan GestureEvent

	deb debounce

	isrDrops   uint32
	deferDrops uint32
	eventDrops uint32
}

// New builds a Manager, including the two shared debounce channels,
// which stay idle until the first edge arrives.
func New(cfg Config) *Manager {
	cfg = cfg.withDefaults()
	m := &Manager{
		cfg:     cfg,
		buttons: map[int]*Button{},
		q:       make(chan event, cfg.ISRQueueSize),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		events:  make(chan GestureEvent, cfg.EventQueueSize),
	}
	m.deb.down = newOneshot(func(g uint32) { m.post(event{kind: evDownFired, gen: g}) })
	m.deb.up = newOneshot(func(g uint32) { m.post(event{kind: evUpFired, gen: g}) })
	return m
}

// Start runs the engine until ctx is cancelled. It must be called exactly
// once, before the first edge is expected.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		defer close(m.stopped)
		for {
			select {
			case <-ctx.Done():
				close(m.quit)
				return
			case ev := <-m.q:
				m.handle(ev)
			}
		}
	}()
}

// post delivers a timer-origin event to the engine. It may briefly block
// if the queue is full; it gives up once the engine has stopped.
func (m *Manager) post(ev event) {
	select {
	case m.q <- ev:
	case <-m.quit:
	}
}

// isrEvent is the edge ISR path: never blocks, drops on overflow.
func (m *Manager) isrEvent(pinN int, level bool) {
	select {
	case m.q <- event{kind: evEdge, pin: pinN, level: level}:
	default:
		atomic.AddUint32(&m.isrDrops, 1)
	}
}

// Create registers pin as a monitored button: input pull-up, edge-any
// interrupt, single-press slot seeded with the default diagnostic
// handler. Returns errcode.AlreadyExists if the pin is already
// registered.
func (m *Manager) Create(pin types.IRQPin) error {
	n := pin.Number()

	b := &Button{pin: pin, pinN: n, single: noFunction}
	b.holdTimer = newOneshot(func(g uint32) { m.post(event{kind: evHoldFired, pin: n, gen: g}) })
	b.pressTimer = newOneshot(func(g uint32) { m.post(event{kind: evPressFired, pin: n, gen: g}) })

	m.mu.Lock()
	if _, exists := m.buttons[n]; exists {
		m.mu.Unlock()
		return errcode.AlreadyExists
	}
	m.buttons[n] = b
	m.mu.Unlock()

	if err := pin.ConfigureInput(types.PullUp); err != nil {
		m.remove(n)
		return &errcode.E{C: errcode.Error, Op: "create", Msg: "configure input", Err: err}
	}
	if err := pin.SetIRQ(types.EdgeBoth, func() { m.isrEvent(n, pin.Get()) }); err != nil {
		m.remove(n)
		return &errcode.E{C: errcode.Error, Op: "create", Msg: "set edge interrupt", Err: err}
	}
	return nil
}

// Find returns the Button registered for pinN, or errcode.NotFound.
func (m *Manager) Find(pinN int) (*Button, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.buttons[pinN]
	if !ok {
		return nil, errcode.NotFound
	}
	return b, nil
}

// RegisterCallback binds fn to one of the five gesture slots of pinN.
// Binding nil to the single-press slot restores the default diagnostic
// handler; binding nil elsewhere unbinds the slot. fn runs on the engine
// goroutine and must not block.
func (m *Manager) RegisterCallback(pinN int, kind types.Gesture, fn types.Callback) error {
	b, err := m.Find(pinN)
	if err != nil {
		return err
	}
	return b.setCallback(kind, fn)
}

// Destroy unregisters pinN: both one-shot timers are disarmed (any fire
// already in flight is invalidated), the edge interrupt is detached, the
// line is disabled unless it is the configured always-on pin, and the
// Button is released. No-op for an unknown pin. Edges deferred for the
// pin are discarded when they replay and find no registration.
func (m *Manager) Destroy(pinN int) {
	b := m.remove(pinN)
	if b == nil {
		return
	}
	b.holdTimer.disarm()
	b.pressTimer.disarm()
	_ = b.pin.ClearIRQ()
	if pinN != m.cfg.AlwaysOnPin {
		_ = b.pin.Disable()
	}
}

func (m *Manager) remove(pinN int) *Button {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.buttons[pinN]
	delete(m.buttons, pinN)
	return b
}

func (m *Manager) lookup(pinN int) *Button {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buttons[pinN]
}

// ---- engine ----

func (m *Manager) handle(ev event) {
	switch ev.kind {
	case evEdge:
		m.handleEdge(ev)
	case evDownFired:
		m.confirmDown(ev.gen)
	case evUpFired:
		m.confirmUp(ev.gen)
	case evHoldFired:
		m.holdFired(ev.pin, ev.gen)
	case evPressFired:
		m.pressWindowFired(ev.pin, ev.gen)
	}
}

// holdFired runs when a press outlasted the hold duration without a
// confirmed release. It does not consume the eventual release: if that
// still arrives it is classified independently by the up-debounce path,
// with the press count already reset.
func (m *Manager) holdFired(pinN int, gen uint32) {
	b := m.lookup(pinN)
	if b == nil || !b.holdTimer.matches(gen) {
		return
	}
	if !b.pin.Get() { // still held down
		b.pressCount = 0
		m.dispatch(b, types.HoldPress)
	}
}

// pressWindowFired runs when no second press arrived inside the
// double-press window: the candidate becomes a plain single press.
func (m *Manager) pressWindowFired(pinN int, gen uint32) {
	b := m.lookup(pinN)
	if b == nil || !b.pressTimer.matches(gen) {
		return
	}
	b.pressCount = 0
	m.dispatch(b, types.SinglePress)
}

func (m *Manager) classifyRelease(b *Button, elapsed time.Duration) {
	act, count := classify(elapsed, m.cfg.LongPress, m.cfg.VeryLongPress,
		b.Bound(types.DoublePress), b.pressCount)
	b.pressCount = count
	switch act {
	case actVeryLong:
		m.dispatch(b, types.VeryLongPress)
	case actLong:
		m.dispatch(b, types.LongPress)
	case actDouble:
		b.pressTimer.disarm()
		m.dispatch(b, types.DoublePress)
	case actArmPressTimer:
		b.pressTimer.arm(m.cfg.DoublePressWindow)
	case actSingle:
		m.dispatch(b, types.SinglePress)
	}
}

// dispatch invokes exactly one handler for the classified gesture and
// mirrors the resolved outcome onto the observer stream.
func (m *Manager) dispatch(b *Button, g types.Gesture) {
	fn, resolved := b.resolve(g)
	if fn == nil {
		noFunction(b.pinN)
	} else {
		fn(b.pinN)
	}
	m.emit(GestureEvent{Pin: b.pinN, Gesture: resolved, TsMs: timex.NowMs()})
}
