// Package engine implements the per-game event loop (§4.3): the single
// goroutine that owns all state for one running game, serialized by
// draining a fan-in channel fed by per-connection reader goroutines rather
// than rebuilding a select set on every iteration.
package engine

import (
	"github.com/Seednode/cardhub/internal/applog"
	"github.com/Seednode/cardhub/internal/module"
	"github.com/Seednode/cardhub/internal/possibility"
	"github.com/Seednode/cardhub/internal/wire"
)

type playerRec struct {
	name          string
	conn          Conn
	possibilities possibility.Set
}

// Engine runs one game to completion. Construct with New and call Run in
// its own goroutine; everything else (Join, and the reader goroutines it
// starts) communicates with Run only through the events channel, so no
// field below needs a mutex.
type Engine struct {
	id     int
	mod    module.Module
	log    *applog.Logger
	onDone func()

	events chan any

	players      map[int]*playerRec
	nextPlayerID int

	joinMode    module.Mode
	startMode   module.Mode
	roundActive bool
}

// New constructs an engine for one game. onDone is called exactly once,
// from within Run's goroutine, after the game has ended and every
// connection has been closed — the manager uses it to drop the game from
// its registry.
func New(id int, mod module.Module, log *applog.Logger, onDone func()) *Engine {
	return &Engine{
		id:      id,
		mod:     mod,
		log:     log,
		onDone:  onDone,
		events:  make(chan any, 64),
		players: make(map[int]*playerRec),
	}
}

// Join admits a newly-accepted connection into this game's introduction
// protocol: a reader goroutine is started that will, if the connection
// sends a valid intro frame, report a joinArrival on the engine's events
// channel. A connection that never introduces itself simply vanishes.
func (e *Engine) Join(conn Connection) {
	go JoinReader(conn)(e.events)
}

// Run processes InitEngMsg and then loops: block for the next event, drain
// whatever else is already waiting into the same batch, and process the
// batch in arrival order before blocking again. Changes made by an earlier
// item in a batch are visible to later items in the same batch, matching
// §4.3's batch semantics.
func (e *Engine) Run() {
	resp := e.mod.Process(module.InitEngMsg{})
	cs, ok := resp.(module.ChangeState)
	if !ok {
		e.log.Printf("game %d: module did not answer init with change-state, tearing down", e.id)
		e.onDone()
		return
	}
	e.joinMode = cs.JoinMode
	e.startMode = cs.StartMode

	for {
		first, ok := <-e.events
		if !ok {
			e.onDone()
			return
		}

		batch := []any{first}
	drain:
		for {
			select {
			case ev := <-e.events:
				batch = append(batch, ev)
			default:
				break drain
			}
		}

		for _, ev := range batch {
			e.handle(ev)
			if e.gameOver() {
				break
			}
		}

		if e.gameOver() {
			e.onDone()
			return
		}
	}
}

// gameOver reports whether the game has nothing left to do: no connected
// players, which can only happen after every player has left or been
// rejected (zero-players-remaining teardown).
func (e *Engine) gameOver() bool {
	return len(e.players) == 0
}

func (e *Engine) handle(ev any) {
	switch v := ev.(type) {
	case joinArrival:
		e.handleJoin(v)

	case playerFrame:
		e.handlePlayerFrame(v)

	case playerClosed:
		e.handlePlayerClosed(v)
	}
}

func (e *Engine) handleJoin(v joinArrival) {
	if closed, ok := e.joinMode.(module.ClosedMode); ok {
		v.conn.Send(wire.Error{Reason: closed.Reason})
		v.conn.Close()
		return
	}

	playerID := e.nextPlayerID
	e.nextPlayerID++

	e.players[playerID] = &playerRec{name: v.name, conn: v.conn}

	v.conn.Send(wire.ServerIntro{GameID: e.id, PlayerID: playerID})

	if conn, ok := v.conn.(Connection); ok {
		go PlayerReader(playerID, conn)(e.events)
	}

	e.apply(e.mod.Process(module.PlayerJoinEngMsg{PlayerID: playerID, PlayerName: v.name}))
}

func (e *Engine) handlePlayerClosed(v playerClosed) {
	if _, ok := e.players[v.playerID]; !ok {
		return
	}
	delete(e.players, v.playerID)

	e.apply(e.mod.Process(module.PlayerLeaveEngMsg{PlayerID: v.playerID}))
}

func (e *Engine) handlePlayerFrame(v playerFrame) {
	p, ok := e.players[v.playerID]
	if !ok {
		return
	}

	switch f := v.frame.(type) {
	case wire.StartRound:
		if e.roundActive {
			p.conn.Send(wire.Error{Reason: "round already active"})
			return
		}
		if closed, ok := e.startMode.(module.ClosedMode); ok {
			p.conn.Send(wire.Error{Reason: closed.Reason})
			return
		}
		e.roundActive = true
		e.apply(e.mod.Process(module.StartRoundEngMsg{PlayerID: v.playerID}))

	case wire.Action:
		if !e.roundActive || !p.possibilities.Accepts(f.Action) {
			p.conn.Send(wire.Error{Reason: "invalid action"})
			p.conn.Close()
			return
		}
		// An accepted action uses up the whole advertised set; the module
		// installs the next one in its response.
		p.possibilities = nil
		e.apply(e.mod.Process(module.PlayerActionEngMsg{PlayerID: v.playerID, Action: f.Action}))
	}
}

// apply interprets one module response, mutating engine state and sending
// frames as needed. It never recurses — EndGame only empties the player
// set; the batch loop in Run notices gameOver right after the item that
// caused it, skips the rest of that batch, and tears down.
func (e *Engine) apply(resp module.ModMsg) {
	switch r := resp.(type) {
	case module.Empty:
		return

	case module.ChangeState:
		e.joinMode = r.JoinMode
		e.startMode = r.StartMode

	case module.Gract:
		for playerID, gracts := range r.Bundle {
			p, ok := e.players[playerID]
			if !ok {
				// Targets a player who has already left or was never
				// admitted; dropped rather than resurrected.
				continue
			}
			if set, found := possibility.FromGracts(gracts); found {
				p.possibilities = set
			}
			p.conn.Send(wire.GractList{Gracts: gracts})
		}

	case module.EndRound:
		e.roundActive = false
		for _, p := range e.players {
			p.conn.Send(wire.EndRound{Reason: r.Reason, Standings: toWireStandings(r.Standings)})
		}

	case module.EndGame:
		for _, p := range e.players {
			p.conn.Send(wire.EndGame{Reason: r.Reason, Standings: toWireStandings(r.Standings)})
			p.conn.Close()
		}
		e.players = make(map[int]*playerRec)
	}
}

func toWireStandings(in []module.Standing) []wire.Standing {
	if len(in) == 0 {
		return nil
	}
	out := make([]wire.Standing, len(in))
	for i, s := range in {
		out[i] = wire.Standing{PlayerID: s.PlayerID, Note: s.Note}
	}
	return out
}
