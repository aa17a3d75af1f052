package module

import "github.com/Seednode/cardhub/internal/gract"

// Standing is one line of a round or game scoreboard: a player id and a
// human-readable note about their standing ("15 points", "-1 points").
// Restored from the original implementation's round/game scoreboards,
// dropped by spec.md's distillation to a bare reason string; a module with
// nothing to report simply leaves this empty.
type Standing struct {
	PlayerID int
	Note     string
}

// ModMsg is a message from the module back to the engine. The set of
// concrete types is closed.
type ModMsg interface {
	isModMsg()
}

// Empty means the module has nothing to do.
type Empty struct{}

func (Empty) isModMsg() {}

// ChangeState installs new join/start modes.
type ChangeState struct {
	JoinMode  Mode
	StartMode Mode
}

func (ChangeState) isModMsg() {}

// GractBundle is a set of per-player gract lists, keyed by player id.
type GractBundle map[int][]gract.Gract

// Gract emits a bundle of per-player graphical actions.
type Gract struct {
	Bundle GractBundle
}

func (Gract) isModMsg() {}

// EndRound finishes the current round; round_active becomes false and
// reason (plus any standings) is broadcast to all players.
type EndRound struct {
	Reason    string
	Standings []Standing
}

func (EndRound) isModMsg() {}

// EndGame ends the game entirely; reason (plus any standings) is broadcast
// and every connection is closed.
type EndGame struct {
	Reason    string
	Standings []Standing
}

func (EndGame) isModMsg() {}
