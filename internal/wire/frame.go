// Package wire implements the stateless JSON frame codec exchanged between
// the engine and a client connection. Frames are UTF-8 JSON objects whose
// "type" field dispatches to a variant-specific schema; anything else
// (unknown type, missing field, wrong field type, non-JSON/binary payload)
// is a protocol violation.
package wire

import "github.com/Seednode/cardhub/internal/gract"

// ClientFrame is a frame sent from a client to the engine.
type ClientFrame interface {
	isClientFrame()
}

// Intro is the first frame on every connection, naming the player.
type Intro struct {
	PlayerName string
}

func (Intro) isClientFrame() {}

// StartRound requests that a round begin.
type StartRound struct{}

func (StartRound) isClientFrame() {}

// Action carries a player's attempt to exercise a possibility.
type Action struct {
	Action gract.Action
}

func (Action) isClientFrame() {}

// ServerFrame is a frame sent from the engine to a client.
type ServerFrame interface {
	isServerFrame()
}

// ServerIntro acknowledges admission with the assigned game and player ids.
type ServerIntro struct {
	GameID   int
	PlayerID int
}

func (ServerIntro) isServerFrame() {}

// GractList delivers one module-call's worth of graphical actions,
// atomically, to a single player.
type GractList struct {
	Gracts []gract.Gract
}

func (GractList) isServerFrame() {}

// EndRound announces that the current round has finished.
type EndRound struct {
	Reason    string
	Standings []Standing
}

func (EndRound) isServerFrame() {}

// EndGame announces that the game is over; the connection closes after.
type EndGame struct {
	Reason    string
	Standings []Standing
}

func (EndGame) isServerFrame() {}

// Error reports a problem to a single offending player; the game continues.
type Error struct {
	Reason string
}

func (Error) isServerFrame() {}

// Standing is one scoreboard line, wire-shaped.
type Standing struct {
	PlayerID int
	Note     string
}
