// Package api exposes the REST surface of the minepad server and serves the
// static web pad page.
//
// The game side drives the player-identity interface through it:
//   - POST   /api/players/{id}   player join: ensure a controller session,
//     returning the pairing code and URL
//   - DELETE /api/players/{id}   player quit: remove the session
//   - GET    /api/sessions       list active sessions for operators
//   - DELETE /api/sessions/{code} remove one session by pairing code
//   - GET    /api/health
//
// Everything under / that is not /api serves the static pad UI.
package api
