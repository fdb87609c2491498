// Package controller implements the controller session registry at the heart
// of the minepad server.
//
// The controller package implements:
//   - Controller sessions binding a player identity, a pairing code, an
//     optional live transport connection, and the current gamepad state
//   - Cryptographically random pairing code generation
//   - Decoding of control events sent by the web pad
//   - Routing of inbound transport events to the owning session
//   - Synchronous fan-out of typed interaction events to listeners
//
// Core Types:
//
// Registry owns the set of active sessions and is the only component that
// mutates them. Session is the live binding for one player; Listener is the
// observer contract the game layer implements; Conn is the thin handle the
// transport layer provides for pushing replies and disconnect notices.
//
// Pairing:
//
// A session is created per player with a unique 6-character code drawn from
// an alphabet that avoids visually confusable characters. The code
// is the sole credential a browser presents to claim the session, so codes
// come from crypto/rand. Codes are unique among active sessions and become
// reusable once their session is removed.
//
// Concurrency:
//
// The registry serializes index mutation under a single mutex; connection
// bind and unbind happen under that same mutex so the indices and session
// handles never disagree. Each session additionally guards its own
// connection handle and gamepad state. Listener dispatch is
// synchronous in the caller's goroutine and iterates a snapshot of the
// listener slice, so listeners may register or unregister others (or
// themselves) during a dispatch pass. Events triggered by one connection are
// totally ordered; events from different connections may interleave.
package controller
