package engine

import "github.com/Seednode/cardhub/internal/wire"

// Conn is the engine's view of one transport connection: a handle it can
// send frames to (fire-and-forget — failures are swallowed, per the wire
// codec's guarantee) and close (idempotent).
type Conn interface {
	Send(frame wire.ServerFrame)
	Close()
}

// Socket is the minimal read side of a transport connection: one text
// frame at a time, in order. Returning an error (for any reason — close,
// binary frame, I/O failure) is terminal; the reader helpers never call
// ReadMessage again afterwards.
type Socket interface {
	ReadMessage() ([]byte, error)
}

// Connection is what the manager hands the engine, over the join
// notification channel: a single transport handle that is both
// addressable (Conn) and readable (Socket). The engine never owns the
// underlying transport directly — see the design notes on connection
// ownership.
type Connection interface {
	Conn
	Socket
}

// Reader is run by the engine in its own goroutine, one per connection:
// Engine.Join starts a JoinReader for a new connection, and admission
// starts a PlayerReader. It pushes the events for the frames it reads onto
// the channel it is given (see JoinReader and PlayerReader for which) and
// stops reading once the connection has failed or been closed. This is the
// "per-connection reader task feeding a multiplexed channel" approach
// endorsed by the design notes in place of rebuilding an ad-hoc select set
// every iteration.
type Reader func(events chan<- any)
