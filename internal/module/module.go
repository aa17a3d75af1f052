// Package module defines the contract between the engine and a pluggable
// card-game rule module: the messages the engine sends, the messages a
// module returns, and the join/start modes that gate admission.
package module

// Module is a stateful card-game rule set, instantiated once per game by a
// Factory. The engine calls Process exactly once with InitEngMsg before any
// other message, and never calls it concurrently with itself — a module
// needs no internal locking.
type Module interface {
	// Process handles one engine message and returns the module's response.
	// The response to InitEngMsg must be a ChangeState; any other response
	// causes the engine to tear the game down before admitting a player.
	Process(msg EngMsg) ModMsg
}

// Factory constructs a fresh Module instance for a new game.
type Factory func() Module
