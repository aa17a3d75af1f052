package engine

import "github.com/Seednode/cardhub/internal/wire"

// joinArrival is pushed once a not-yet-admitted connection sends a valid
// intro frame. Anything else from a joining connection (protocol
// violation, binary frame, disconnect before introducing itself) is
// dropped silently — the engine never learns of it, matching §7's "close
// the offending connection silently" for a connection that was never
// admitted.
type joinArrival struct {
	conn Conn
	name string
}

// playerFrame is pushed for every StartRound or Action frame received from
// an admitted player.
type playerFrame struct {
	playerID int
	frame    wire.ClientFrame
}

// playerClosed is pushed exactly once per admitted player, either because
// their connection disconnected, or because they sent something other
// than start-round/action (itself treated as a disconnect, mirroring the
// reference implementation). No further events follow it for that player.
type playerClosed struct {
	playerID int
}
