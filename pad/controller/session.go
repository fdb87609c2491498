package controller

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/incognitojam/minepad/pad/gamepad"
)

// Conn is the transport-side handle bound to a session. The registry only
// ever pushes small JSON events through it; everything else about the
// connection belongs to the transport layer.
type Conn interface {
	// Send pushes a named event with a JSON-encodable payload to the peer.
	Send(event string, data any) error
	// Close tears the connection down.
	Close() error
}

// Session is the live binding between a player, a pairing code, an optional
// transport connection, and the current gamepad state. Player and code are
// fixed for the session's lifetime; the connection comes and goes as the
// browser pad attaches and detaches.
type Session struct {
	player uuid.UUID
	code   string

	mu    sync.RWMutex
	conn  Conn
	state gamepad.State
}

func newSession(player uuid.UUID, code string) *Session {
	return &Session{player: player, code: code}
}

// Player returns the owning player's identifier.
func (s *Session) Player() uuid.UUID { return s.player }

// Code returns the pairing code assigned at creation.
func (s *Session) Code() string { return s.code }

// Connected reports whether a transport connection is currently bound. This
// is the single liveness predicate; callers must not cache the result across
// operations.
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn != nil
}

// Conn returns the bound transport connection, if any.
func (s *Session) Conn() (Conn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn, s.conn != nil
}

// Gamepad returns a snapshot of the current pad state. The copy is safe to
// read from game-tick goroutines while updates continue to arrive.
func (s *Session) Gamepad() gamepad.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) bind(c Conn) {
	s.mu.Lock()
	s.conn = c
	s.mu.Unlock()
}

func (s *Session) unbind() {
	s.mu.Lock()
	s.conn = nil
	s.mu.Unlock()
}

func (s *Session) apply(name string, value float64) (gamepad.Kind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Apply(name, value)
}

func (s *Session) String() string {
	return fmt.Sprintf("Session(player=%s, code=%s, connected=%t)", s.player, s.code, s.Connected())
}
