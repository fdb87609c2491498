// Package game is the integration layer between controller sessions and
// in-game players. It owns the world of players, subscribes to controller
// events, and runs the fixed-rate tick loop that turns stick input into
// movement.
package game
