package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/incognitojam/minepad/pad/controller"
)

var ErrPlayerNotFound = errors.New("player not found")

// EventNotice is pushed to the web pad for lightweight in-game feedback
// (connection status, speed readout).
const EventNotice = "notice"

// ReasonPlayerQuit is the disconnect notice used when a player leaves the
// game.
const ReasonPlayerQuit = "Player left the game"

// Movement tuning, per tick.
const (
	moveForce    = 0.25
	jumpVelocity = 0.5
	gravity      = 0.08
	drag         = 0.91
)

// Vec3 is a position or velocity in world space. Y is up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Length returns the vector magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Player is one in-game entity driven by a controller session.
type Player struct {
	id uuid.UUID

	mu       sync.Mutex
	pos      Vec3
	vel      Vec3
	onGround bool
}

// ID returns the player's identifier.
func (p *Player) ID() uuid.UUID { return p.id }

// Position returns the player's current position.
func (p *Player) Position() Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// Velocity returns the player's current velocity.
func (p *Player) Velocity() Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vel
}

// OnGround reports whether the player is standing on the ground plane.
func (p *Player) OnGround() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.onGround
}

// Jump gives the player upward velocity if standing on the ground.
func (p *Player) Jump() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.onGround {
		p.vel.Y = jumpVelocity
		p.onGround = false
	}
}

// World holds the in-game players and drives their movement from controller
// state. It implements controller.Listener.
type World struct {
	registry *controller.Registry
	logger   *slog.Logger

	mu      sync.RWMutex
	players map[uuid.UUID]*Player
}

// NewWorld creates an empty world backed by the registry.
func NewWorld(registry *controller.Registry, logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	return &World{
		registry: registry,
		logger:   logger,
		players:  make(map[uuid.UUID]*Player),
	}
}

// Join adds a player to the world and ensures they have a controller
// session, returning the session and whether it already existed. Joining
// twice is safe and returns the same player and session.
func (w *World) Join(id uuid.UUID) (*Player, *controller.Session, bool, error) {
	w.mu.Lock()
	p, ok := w.players[id]
	if !ok {
		p = &Player{id: id, onGround: true}
		w.players[id] = p
	}
	w.mu.Unlock()

	session, existed, err := w.registry.CreateSession(id)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to create controller session: %w", err)
	}
	if !ok {
		w.logger.Info("player joined", "player", id, "code", session.Code())
	}
	return p, session, existed, nil
}

// Quit removes a player from the world and tears down their controller
// session with a player-left notice.
func (w *World) Quit(id uuid.UUID) error {
	w.mu.Lock()
	_, ok := w.players[id]
	delete(w.players, id)
	w.mu.Unlock()

	if !ok {
		return ErrPlayerNotFound
	}
	if session, found := w.registry.SessionByPlayer(id); found {
		w.registry.RemoveSession(session, ReasonPlayerQuit)
	}
	w.logger.Info("player quit", "player", id)
	return nil
}

// Player returns the player with the given id, if present.
func (w *World) Player(id uuid.UUID) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[id]
	return p, ok
}

// Players returns all players in no particular order.
func (w *World) Players() []*Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	return out
}

// Run drives the world at tickRate ticks per second until the context is
// cancelled.
func (w *World) Run(ctx context.Context, tickRate int) {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	w.logger.Info("world tick loop started", "tick_rate", tickRate)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("world tick loop stopped")
			return
		case <-ticker.C:
			w.step()
		}
	}
}

// step advances every player by one tick: stick input becomes acceleration,
// then gravity, drag, and ground collision apply. Players with a live pad
// get a speed readout pushed back.
func (w *World) step() {
	for _, p := range w.Players() {
		session, ok := w.registry.SessionByPlayer(p.id)
		if !ok {
			continue
		}

		var forward, strafe float64
		if session.Connected() {
			pad := session.Gamepad()
			forward = pad.LeftY() * moveForce
			strafe = pad.LeftX() * moveForce
		}

		p.mu.Lock()
		p.vel.X = p.vel.X*drag + strafe
		p.vel.Z = p.vel.Z*drag + forward
		if !p.onGround {
			p.vel.Y -= gravity
		}
		p.pos.X += p.vel.X
		p.pos.Y += p.vel.Y
		p.pos.Z += p.vel.Z
		if p.pos.Y <= 0 {
			p.pos.Y = 0
			p.vel.Y = 0
			p.onGround = true
		}
		speed := p.vel.Length()
		p.mu.Unlock()

		if conn, bound := session.Conn(); bound {
			// Best effort; a full buffer just skips this tick's readout.
			_ = conn.Send(EventNotice, fmt.Sprintf("Speed: %.2f m/s", speed))
		}
	}
}
