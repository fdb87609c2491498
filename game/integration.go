package game

import (
	"github.com/incognitojam/minepad/pad/controller"
	"github.com/incognitojam/minepad/pad/gamepad"
)

// World subscribes to the controller registry as a listener: connection
// changes become pad notices, and the A button becomes a jump.

// OnConnect greets the freshly attached pad.
func (w *World) OnConnect(session *controller.Session) {
	w.logger.Info("controller connected", "player", session.Player())
	if conn, ok := session.Conn(); ok {
		_ = conn.Send(EventNotice, "Controller connected")
	}
}

// OnDisconnect is fired for gamepad loss, transport drops, and session
// removal alike; the player stays in the world either way.
func (w *World) OnDisconnect(session *controller.Session) {
	w.logger.Info("controller disconnected", "player", session.Player())
}

// OnButtonInteract makes the player jump on a fresh A press.
func (w *World) OnButtonInteract(session *controller.Session, button string, value bool) {
	w.logger.Debug("button", "player", session.Player(), "button", button, "value", value)
	if button != gamepad.NameFace1 || !value {
		return
	}
	if p, ok := w.Player(session.Player()); ok {
		p.Jump()
	}
}

// OnTriggerInteract is observed for diagnostics only; triggers have no
// gameplay effect yet.
func (w *World) OnTriggerInteract(session *controller.Session, trigger string, value float64) {
	w.logger.Debug("trigger", "player", session.Player(), "trigger", trigger, "value", value)
}

// OnAxesInteract is observed for diagnostics; movement reads axis state
// from the session snapshot on the game tick instead.
func (w *World) OnAxesInteract(session *controller.Session, axes string, value float64) {
	w.logger.Debug("axes", "player", session.Player(), "axes", axes, "value", value)
}
