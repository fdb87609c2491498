// Package websocket provides the real-time transport between web pads and
// the controller registry.
//
// The websocket package implements:
//   - Connection lifecycle management in a hub-and-spoke model
//   - The JSON envelope protocol the web pad speaks
//   - Routing of inbound pad events to an EventHandler
//   - Outbound pushes (pairing replies, disconnect notices, game notices)
//
// Message Protocol:
//
// Every frame is a JSON envelope {"event": string, "data": any}.
// Client to server: validate_code (string), update_state (control event,
// either an object or a JSON-encoded string), gamepad_state (bool).
// Server to client: validate_code_result (bool), force_disconnect (string
// reason), notice (string).
//
// Each connection gets a read pump and a write pump goroutine. The read
// pump decodes envelopes and hands them to the EventHandler synchronously,
// which preserves per-connection ordering. Socket errors and closes are
// reported to the handler as a transport disconnect; the handler decides
// what that means for the session.
package websocket
