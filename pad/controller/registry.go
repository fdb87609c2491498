package controller

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/incognitojam/minepad/pad/gamepad"
)

// Wire event names exchanged with the web pad. The transport layer routes
// inbound events by these names; the registry pushes the outbound ones.
const (
	EventValidateCode       = "validate_code"
	EventValidateCodeResult = "validate_code_result"
	EventUpdateState        = "update_state"
	EventGamepadState       = "gamepad_state"
	EventForceDisconnect    = "force_disconnect"
)

// DefaultRemoveReason is the disconnect notice shown in the web pad when a
// session is removed without a more specific reason.
const DefaultRemoveReason = "Disconnected"

// Registry owns all active controller sessions. It creates and removes
// sessions, resolves them by pairing code, player, or transport connection,
// applies inbound state updates, and fans interaction events out to
// registered listeners.
type Registry struct {
	logger *slog.Logger

	mu        sync.Mutex
	byPlayer  map[uuid.UUID]*Session
	byCode    map[string]*Session
	byConn    map[Conn]*Session
	listeners []Listener
}

// NewRegistry creates an empty registry logging through the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:   logger,
		byPlayer: make(map[uuid.UUID]*Session),
		byCode:   make(map[string]*Session),
		byConn:   make(map[Conn]*Session),
	}
}

// CreateSession returns the session for the player, creating one with a
// fresh unique pairing code if none exists. existed reports whether the
// session was already present.
func (r *Registry) CreateSession(player uuid.UUID) (session *Session, existed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byPlayer[player]; ok {
		return s, true, nil
	}

	code, err := r.generateCodeLocked()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate pairing code: %w", err)
	}

	s := newSession(player, code)
	r.byPlayer[player] = s
	r.byCode[code] = s
	r.logger.Info("controller created", "player", player, "code", code)
	return s, false, nil
}

// SessionByPlayer returns the session owned by the player, if any.
func (r *Registry) SessionByPlayer(player uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byPlayer[player]
	return s, ok
}

// SessionByCode returns the session holding the pairing code, if any. Codes
// are matched case-insensitively.
func (r *Registry) SessionByCode(code string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byCode[strings.ToUpper(code)]
	return s, ok
}

// SessionByConn returns the session bound to the transport connection, if
// any.
func (r *Registry) SessionByConn(conn Conn) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byConn[conn]
	return s, ok
}

// Sessions returns all active sessions in no particular order.
func (r *Registry) Sessions() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, 0, len(r.byPlayer))
	for _, s := range r.byPlayer {
		out = append(out, s)
	}
	return out
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byPlayer)
}

// RemoveSession unregisters the session, pushes a force_disconnect notice
// carrying reason to its bound connection (if any), and fires OnDisconnect
// on all listeners. Removing a session that is already gone is a no-op.
// An empty reason falls back to DefaultRemoveReason.
func (r *Registry) RemoveSession(s *Session, reason string) {
	if s == nil {
		return
	}
	if reason == "" {
		reason = DefaultRemoveReason
	}

	r.mu.Lock()
	if r.byPlayer[s.player] != s {
		r.mu.Unlock()
		return
	}
	delete(r.byPlayer, s.player)
	delete(r.byCode, s.code)
	conn, bound := s.Conn()
	if bound {
		delete(r.byConn, conn)
		s.unbind()
	}
	listeners := r.snapshotListenersLocked()
	r.mu.Unlock()

	if bound {
		if err := conn.Send(EventForceDisconnect, reason); err != nil {
			r.logger.Debug("failed to send force_disconnect", "player", s.player, "error", err)
		}
	}

	r.logger.Info("controller removed", "player", s.player, "code", s.code, "reason", reason)
	for _, l := range listeners {
		l.OnDisconnect(s)
	}
}

// RegisterListener adds a listener to receive events about attached
// controllers. Listeners are invoked in registration order.
func (r *Registry) RegisterListener(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// UnregisterListener removes a previously registered listener, matched by
// identity. A dispatch pass already in flight still sees it; subsequent
// events do not.
func (r *Registry) UnregisterListener(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.listeners {
		if existing == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// HandleValidateCode binds the requesting connection to the session holding
// the code and replies with the boolean outcome on the same connection. It
// never creates sessions.
func (r *Registry) HandleValidateCode(conn Conn, code string) {
	r.mu.Lock()
	s, ok := r.byCode[strings.ToUpper(code)]
	if ok {
		// A session accepts at most one connection; rebinding drops the
		// previous one from the index. Likewise a connection that was bound
		// elsewhere moves over cleanly. Binding happens inside the critical
		// section so RemoveSession always sees index and session agree.
		if old, had := s.Conn(); had && old != conn {
			delete(r.byConn, old)
		}
		if prev := r.byConn[conn]; prev != nil && prev != s {
			prev.unbind()
		}
		r.byConn[conn] = s
		s.bind(conn)
	}
	r.mu.Unlock()

	if err := conn.Send(EventValidateCodeResult, ok); err != nil {
		r.logger.Debug("failed to send validate_code_result", "error", err)
	}
	r.logger.Debug("validate_code", "code", code, "result", ok)
}

// HandleStateUpdate decodes one update_state payload, mutates the owning
// session's gamepad state, and dispatches exactly one typed event to all
// listeners. Decode failures, unbound connections, and unknown controls are
// logged and dropped with no mutation and no dispatch.
func (r *Registry) HandleStateUpdate(conn Conn, payload []byte) {
	ev, err := DecodeControlEvent(payload)
	if err != nil {
		r.logger.Debug("dropping state update", "error", err)
		return
	}

	r.mu.Lock()
	s := r.byConn[conn]
	listeners := r.snapshotListenersLocked()
	r.mu.Unlock()

	if s == nil {
		r.logger.Warn("state update from unbound connection", "control", ev.Control)
		return
	}

	kind, ok := s.apply(ev.Control, ev.Value)
	if !ok {
		r.logger.Warn("unknown control", "control", ev.Control)
		return
	}
	r.logger.Debug("state update", "player", s.player, "control", ev.Control, "value", ev.Value)

	switch kind {
	case gamepad.KindButton:
		pressed := ev.Value == 1.0
		for _, l := range listeners {
			l.OnButtonInteract(s, ev.Control, pressed)
		}
	case gamepad.KindTrigger:
		for _, l := range listeners {
			l.OnTriggerInteract(s, ev.Control, ev.Value)
		}
	case gamepad.KindAxis:
		for _, l := range listeners {
			l.OnAxesInteract(s, ev.Control, ev.Value)
		}
	}
}

// HandleGamepadPresence dispatches OnConnect or OnDisconnect depending on
// whether the browser reports a physical gamepad as active. Messages from
// connections with no bound session are dropped.
func (r *Registry) HandleGamepadPresence(conn Conn, connected bool) {
	r.mu.Lock()
	s := r.byConn[conn]
	listeners := r.snapshotListenersLocked()
	r.mu.Unlock()

	if s == nil {
		r.logger.Warn("gamepad presence from unbound connection", "connected", connected)
		return
	}
	r.logger.Debug("gamepad presence", "player", s.player, "connected", connected)

	for _, l := range listeners {
		if connected {
			l.OnConnect(s)
		} else {
			l.OnDisconnect(s)
		}
	}
}

// HandleDisconnect unbinds a dropped transport connection and dispatches
// OnDisconnect. The session itself stays registered; the player may still be
// in the game with the browser tab gone, and removal is an explicit,
// separate operation.
func (r *Registry) HandleDisconnect(conn Conn) {
	r.mu.Lock()
	s := r.byConn[conn]
	if s != nil {
		delete(r.byConn, conn)
		s.unbind()
	}
	listeners := r.snapshotListenersLocked()
	r.mu.Unlock()

	if s == nil {
		return
	}
	r.logger.Debug("transport disconnected", "player", s.player)

	for _, l := range listeners {
		l.OnDisconnect(s)
	}
}

// generateCodeLocked draws pairing codes until one is free among active
// sessions. The code space dwarfs any realistic session count, so the loop
// terminates almost immediately.
func (r *Registry) generateCodeLocked() (string, error) {
	for {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		if _, taken := r.byCode[code]; !taken {
			return code, nil
		}
	}
}

// snapshotListenersLocked copies the listener slice so dispatch iterates a
// stable set even if listeners mutate the registration list mid-pass.
func (r *Registry) snapshotListenersLocked() []Listener {
	if len(r.listeners) == 0 {
		return nil
	}
	out := make([]Listener, len(r.listeners))
	copy(out, r.listeners)
	return out
}
