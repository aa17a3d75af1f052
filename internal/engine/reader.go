package engine

import (
	"github.com/Seednode/cardhub/internal/wire"
)

// JoinReader reads exactly one frame from a not-yet-admitted connection.
// If it is a valid intro, a joinArrival is pushed. Otherwise the
// connection is closed and nothing is pushed — it never existed from the
// engine's point of view.
func JoinReader(conn Connection) Reader {
	return func(events chan<- any) {
		raw, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			return
		}

		frame, err := wire.Decode(raw)
		if err != nil {
			conn.Close()
			return
		}

		intro, ok := frame.(wire.Intro)
		if !ok {
			conn.Close()
			return
		}

		events <- joinArrival{conn: conn, name: intro.PlayerName}
	}
}

// PlayerReader continuously reads frames from an admitted player's
// connection, pushing a playerFrame for each start-round/action frame.
// The first frame that isn't one of those (wrong type, protocol
// violation, or the connection closing) produces a single playerClosed
// and the reader returns.
func PlayerReader(playerID int, conn Connection) Reader {
	return func(events chan<- any) {
		for {
			raw, err := conn.ReadMessage()
			if err != nil {
				conn.Close()
				events <- playerClosed{playerID: playerID}
				return
			}

			frame, err := wire.Decode(raw)
			if err != nil {
				conn.Close()
				events <- playerClosed{playerID: playerID}
				return
			}

			switch frame.(type) {
			case wire.StartRound, wire.Action:
				events <- playerFrame{playerID: playerID, frame: frame}

			default:
				conn.Close()
				events <- playerClosed{playerID: playerID}
				return
			}
		}
	}
}
