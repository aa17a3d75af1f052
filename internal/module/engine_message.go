package module

import "github.com/Seednode/cardhub/internal/gract"

// EngMsg is a message from the engine to the module. The set of concrete
// types is closed; a Module's Process method is expected to exhaustively
// switch over it.
type EngMsg interface {
	isEngMsg()
}

// InitEngMsg is sent exactly once, before any other message, to retrieve the
// module's initial join/start modes.
type InitEngMsg struct{}

func (InitEngMsg) isEngMsg() {}

// PlayerJoinEngMsg is sent after the engine has decided to admit a player.
type PlayerJoinEngMsg struct {
	PlayerID   int
	PlayerName string
}

func (PlayerJoinEngMsg) isEngMsg() {}

// PlayerLeaveEngMsg is sent after a player disconnects.
type PlayerLeaveEngMsg struct {
	PlayerID int
}

func (PlayerLeaveEngMsg) isEngMsg() {}

// StartRoundEngMsg requests a round start. PlayerID records who requested
// it; this is engine-internal context, not part of the module contract
// proper — the engine fills it in but never reads it back, and a module is
// free to ignore it.
type StartRoundEngMsg struct {
	PlayerID int
}

func (StartRoundEngMsg) isEngMsg() {}

// EndRoundEngMsg is an engine-originated signal that the current round is
// being terminated for external reasons. The engine drops this before it
// reaches the module whenever no round is active.
type EndRoundEngMsg struct{}

func (EndRoundEngMsg) isEngMsg() {}

// PlayerActionEngMsg carries an action the engine has already validated
// against the player's advertised possibilities.
type PlayerActionEngMsg struct {
	PlayerID int
	Action   gract.Action
}

func (PlayerActionEngMsg) isEngMsg() {}
