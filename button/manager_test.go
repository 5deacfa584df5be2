package button

import (
	"context"
	"errors"
	"testing"
	"time"

	"buttonkit-go/errcode"
	"buttonkit-go/types"
)

func TestCreateDuplicateReturnsAlreadyExists(t *testing.T) {
	m := newTestManager(t)
	p := newFakePin(5)
	if err := m.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	cb, ch := recorder()
	if err := m.RegisterCallback(5, types.SinglePress, cb); err != nil {
		t.Fatalf("RegisterCallback: %v", err)
	}

	if err := m.Create(newFakePin(5)); err != errcode.AlreadyExists {
		t.Fatalf("second Create = %v, want AlreadyExists", err)
	}

	// Original Button still intact and wired to the first pin.
	p.press()
	settle()
	p.release()
	if pin, ok := recvDispatch(t, ch, 100*time.Millisecond); !ok || pin != 5 {
		t.Fatalf("single press after duplicate create: got (%d,%v)", pin, ok)
	}
}

func TestFindAfterCreate(t *testing.T) {
	m := newTestManager(t)
	if err := m.Create(newFakePin(7)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	b, err := m.Find(7)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if b.Pin() != 7 {
		t.Fatalf("Pin() = %d, want 7", b.Pin())
	}
	if !b.Bound(types.SinglePress) {
		t.Fatal("new Button must have a single-press handler")
	}
	if b.Bound(types.DoublePress) || b.Bound(types.HoldPress) {
		t.Fatal("only the single-press slot should start bound")
	}

	if _, err := m.Find(8); err != errcode.NotFound {
		t.Fatalf("Find(8) = %v, want NotFound", err)
	}
}

func TestRegisterCallbackInvalidKind(t *testing.T) {
	m := newTestManager(t)
	if err := m.Create(newFakePin(5)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cb, _ := recorder()
	if err := m.RegisterCallback(5, types.Gesture(9), cb); err != errcode.InvalidKind {
		t.Fatalf("invalid kind = %v, want InvalidKind", err)
	}

	// No slot altered.
	b, _ := m.Find(5)
	for _, g := range []types.Gesture{types.DoublePress, types.LongPress, types.VeryLongPress, types.HoldPress} {
		if b.Bound(g) {
			t.Fatalf("slot %v altered by invalid registration", g)
		}
	}

	if err := m.RegisterCallback(6, types.SinglePress, cb); err != errcode.NotFound {
		t.Fatalf("unknown pin = %v, want NotFound", err)
	}
}

func TestNilSinglePressRestoresDefault(t *testing.T) {
	m := newTestManager(t)
	p := newFakePin(5)
	if err := m.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	cb, ch := recorder()
	_ = m.RegisterCallback(5, types.SinglePress, cb)
	_ = m.RegisterCallback(5, types.SinglePress, nil)

	b, _ := m.Find(5)
	if !b.Bound(types.SinglePress) {
		t.Fatal("single-press slot must fall back to the default handler, not nil")
	}

	// Dispatch goes to the default diagnostic handler, not the recorder.
	p.press()
	settle()
	p.release()
	expectNone(t, ch, 100*time.Millisecond, "recorder")
}

func TestDestroy(t *testing.T) {
	m := newTestManager(t)
	p := newFakePin(5)
	if err := m.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	cb, ch := recorder()
	_ = m.RegisterCallback(5, types.SinglePress, cb)

	m.Destroy(5)

	if _, err := m.Find(5); err != errcode.NotFound {
		t.Fatalf("Find after Destroy = %v, want NotFound", err)
	}
	if !p.irqClear {
		t.Fatal("Destroy must detach the edge interrupt")
	}
	if !p.disabled {
		t.Fatal("Destroy must disable a non-always-on pin")
	}

	// Simulated edges produce no dispatch.
	p.press()
	settle()
	p.release()
	expectNone(t, ch, 100*time.Millisecond, "post-destroy")

	// Destroying again is a no-op.
	m.Destroy(5)
}

func TestDestroyKeepsAlwaysOnPinEnabled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := testConfig()
	cfg.AlwaysOnPin = 7
	m := New(cfg)
	m.Start(ctx)

	p := newFakePin(7)
	if err := m.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	m.Destroy(7)
	if !p.irqClear {
		t.Fatal("interrupt must still be detached")
	}
	if p.disabled {
		t.Fatal("always-on pin must never be disabled")
	}
}

// failingIRQPin rejects interrupt configuration.
type failingIRQPin struct {
	fakeIRQPin
	irqErr error
}

func (p *failingIRQPin) SetIRQ(_ types.Edge, _ func()) error { return p.irqErr }

func TestCreateRollsBackOnPinFailure(t *testing.T) {
	m := newTestManager(t)
	cause := errors.New("no irq lines left")
	p := &failingIRQPin{irqErr: cause}
	p.number = 5
	p.level = true

	err := m.Create(p)
	if err == nil {
		t.Fatal("Create must fail when the pin rejects the interrupt")
	}
	if errcode.Of(err) != errcode.Error {
		t.Fatalf("errcode.Of = %v, want Error", errcode.Of(err))
	}
	if !errors.Is(err, cause) {
		t.Fatal("pin failure must be wrapped as the cause")
	}

	// The half-made Button must not stay registered.
	if _, err := m.Find(5); err != errcode.NotFound {
		t.Fatalf("Find after failed Create = %v, want NotFound", err)
	}
}

func TestDestroyCancelsArmedHoldTimer(t *testing.T) {
	m := newTestManager(t)
	p := newFakePin(5)
	if err := m.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	cb, ch := recorder()
	_ = m.RegisterCallback(5, types.HoldPress, cb)

	p.press()
	settle() // hold timer armed at down-confirm
	m.Destroy(5)

	expectNone(t, ch, 500*time.Millisecond, "hold after destroy")
}
