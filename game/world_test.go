package game

import (
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/incognitojam/minepad/pad/controller"
)

type stubConn struct {
	mu   sync.Mutex
	sent []string
}

func (c *stubConn) Send(event string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, event)
	return nil
}

func (c *stubConn) Close() error { return nil }

func newTestWorld(t *testing.T) (*World, *controller.Registry) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	registry := controller.NewRegistry(logger)
	world := NewWorld(registry, logger)
	registry.RegisterListener(world)
	return world, registry
}

// joinWithPad joins a player and binds a stub pad to their session.
func joinWithPad(t *testing.T, w *World, r *controller.Registry) (*Player, *controller.Session, *stubConn) {
	t.Helper()
	p, session, _, err := w.Join(uuid.New())
	if err != nil {
		t.Fatalf("failed to join: %v", err)
	}
	conn := &stubConn{}
	r.HandleValidateCode(conn, session.Code())
	if !session.Connected() {
		t.Fatal("pad failed to bind")
	}
	return p, session, conn
}

func TestJoinCreatesSession(t *testing.T) {
	w, r := newTestWorld(t)
	id := uuid.New()

	p, session, existed, err := w.Join(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if existed {
		t.Error("fresh join reported an existing session")
	}
	if p.ID() != id || session.Player() != id {
		t.Error("player and session identity mismatch")
	}
	if _, ok := r.SessionByPlayer(id); !ok {
		t.Error("session not registered")
	}

	again, sameSession, existed, err := w.Join(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !existed {
		t.Error("rejoin did not report existing session")
	}
	if again != p || sameSession != session {
		t.Error("rejoin returned different player or session")
	}
}

func TestQuitRemovesPlayerAndSession(t *testing.T) {
	w, r := newTestWorld(t)
	_, session, conn := joinWithPad(t, w, r)
	id := session.Player()
	conn.mu.Lock()
	conn.sent = nil
	conn.mu.Unlock()

	if err := w.Quit(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := w.Player(id); ok {
		t.Error("player still present after quit")
	}
	if _, ok := r.SessionByPlayer(id); ok {
		t.Error("session still registered after quit")
	}

	conn.mu.Lock()
	defer conn.mu.Unlock()
	if len(conn.sent) != 1 || conn.sent[0] != controller.EventForceDisconnect {
		t.Errorf("expected a single force_disconnect, got %v", conn.sent)
	}
}

func TestQuitUnknownPlayer(t *testing.T) {
	w, _ := newTestWorld(t)
	if err := w.Quit(uuid.New()); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestButtonJump(t *testing.T) {
	w, r := newTestWorld(t)
	p, _, conn := joinWithPad(t, w, r)

	r.HandleStateUpdate(conn, []byte(`{"control":"FACE_1","value":1}`))
	if p.OnGround() {
		t.Fatal("player still grounded after jump")
	}
	if p.Velocity().Y != jumpVelocity {
		t.Errorf("expected upward velocity %v, got %v", jumpVelocity, p.Velocity().Y)
	}

	// Pressing again mid-air has no effect.
	before := p.Velocity().Y
	r.HandleStateUpdate(conn, []byte(`{"control":"FACE_1","value":0}`))
	r.HandleStateUpdate(conn, []byte(`{"control":"FACE_1","value":1}`))
	if p.Velocity().Y != before {
		t.Error("air jump changed velocity")
	}

	// Other buttons never jump.
	p2, _, conn2 := joinWithPad(t, w, r)
	r.HandleStateUpdate(conn2, []byte(`{"control":"FACE_2","value":1}`))
	if !p2.OnGround() {
		t.Error("non-jump button left the ground")
	}
}

func TestStepAppliesStickMovement(t *testing.T) {
	w, r := newTestWorld(t)
	p, _, conn := joinWithPad(t, w, r)

	// Stick pushed fully up reads as forward after inversion.
	r.HandleStateUpdate(conn, []byte(`{"control":"LEFT_STICK_Y","value":-1}`))
	w.step()

	vel := p.Velocity()
	if vel.Z != moveForce {
		t.Errorf("expected forward velocity %v, got %v", moveForce, vel.Z)
	}
	if vel.X != 0 {
		t.Errorf("expected no strafe, got %v", vel.X)
	}
	if pos := p.Position(); pos.Z != vel.Z {
		t.Errorf("position did not integrate velocity: %+v", pos)
	}

	// The pad receives a speed readout each tick.
	conn.mu.Lock()
	notices := 0
	for _, ev := range conn.sent {
		if ev == EventNotice {
			notices++
		}
	}
	conn.mu.Unlock()
	if notices == 0 {
		t.Error("no speed notice pushed to the pad")
	}
}

func TestStepWithoutPadCoastsToRest(t *testing.T) {
	w, r := newTestWorld(t)
	p, session, conn := joinWithPad(t, w, r)

	r.HandleStateUpdate(conn, []byte(`{"control":"LEFT_STICK_Y","value":-1}`))
	w.step()
	r.HandleDisconnect(conn)
	if session.Connected() {
		t.Fatal("session still connected after transport drop")
	}

	// With the pad gone input reads as zero and drag bleeds speed off.
	prev := p.Velocity().Length()
	for i := 0; i < 5; i++ {
		w.step()
		cur := p.Velocity().Length()
		if cur >= prev {
			t.Fatalf("speed did not decay: %v -> %v", prev, cur)
		}
		prev = cur
	}
}

func TestStepGravityAndLanding(t *testing.T) {
	w, r := newTestWorld(t)
	p, _, conn := joinWithPad(t, w, r)

	r.HandleStateUpdate(conn, []byte(`{"control":"FACE_1","value":1}`))
	if p.OnGround() {
		t.Fatal("jump did not leave the ground")
	}

	for i := 0; i < 100 && !p.OnGround(); i++ {
		w.step()
	}
	if !p.OnGround() {
		t.Fatal("player never landed")
	}
	pos := p.Position()
	if pos.Y != 0 {
		t.Errorf("expected resting height 0, got %v", pos.Y)
	}
	if p.Velocity().Y != 0 {
		t.Errorf("expected zero vertical velocity at rest, got %v", p.Velocity().Y)
	}
}

func TestPresenceNotice(t *testing.T) {
	w, r := newTestWorld(t)
	_, _, conn := joinWithPad(t, w, r)

	r.HandleGamepadPresence(conn, true)

	conn.mu.Lock()
	defer conn.mu.Unlock()
	found := false
	for _, ev := range conn.sent {
		if ev == EventNotice {
			found = true
		}
	}
	if !found {
		t.Error("no notice pushed on gamepad attach")
	}
}
