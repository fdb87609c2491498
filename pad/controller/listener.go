package controller

// Listener receives interaction events for attached controllers. All
// callbacks run synchronously on the goroutine that handled the inbound
// transport message, in listener registration order; a slow listener stalls
// processing of that message.
type Listener interface {
	// OnConnect fires when the pad reports a physical gamepad became active.
	OnConnect(session *Session)
	// OnDisconnect fires when the pad reports the gamepad went away, when
	// the transport connection drops, and when the session is removed. A
	// single session can therefore see more than one OnDisconnect.
	OnDisconnect(session *Session)
	// OnButtonInteract fires for every button update. value is true only
	// for a wire value of exactly 1.
	OnButtonInteract(session *Session, button string, value bool)
	// OnTriggerInteract fires for every trigger update with the raw wire
	// value.
	OnTriggerInteract(session *Session, trigger string, value float64)
	// OnAxesInteract fires for every stick axis update with the raw wire
	// value (no sign inversion; that happens at read time).
	OnAxesInteract(session *Session, axes string, value float64)
}
