package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/cardhub/internal/applog"
	"github.com/Seednode/cardhub/internal/gract"
	"github.com/Seednode/cardhub/internal/module"
	"github.com/Seednode/cardhub/internal/wire"
)

// mockConn records every frame sent to it. It does not implement Socket,
// so handleJoin never mistakes it for a full Connection and never starts a
// reader goroutine against it — exactly what a pure state-transition test
// wants.
type mockConn struct {
	mu     sync.Mutex
	frames []wire.ServerFrame
	closed bool
}

func (c *mockConn) Send(f wire.ServerFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
}

func (c *mockConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *mockConn) last() wire.ServerFrame {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// mockModule reproduces the reference test harness's scripted module: it
// closes joining after two players, deals a fixed round with a wild-card
// possibility offered only to the first player to join, ends the round the
// instant that wild card is played, and ends the game the instant anyone
// leaves.
type mockModule struct {
	order []int
}

func (m *mockModule) Process(msg module.EngMsg) module.ModMsg {
	switch v := msg.(type) {
	case module.InitEngMsg:
		return module.ChangeState{JoinMode: module.Open, StartMode: module.Closed("2 players required")}

	case module.PlayerJoinEngMsg:
		m.order = append(m.order, v.PlayerID)
		if len(m.order) >= 2 {
			return module.ChangeState{JoinMode: module.Closed("2 players max"), StartMode: module.Open}
		}
		return module.Empty{}

	case module.StartRoundEngMsg:
		bundle := make(module.GractBundle, len(m.order))
		gracts := []gract.Gract{
			gract.ShowType{TypeID: 1, Name: "one"},
			gract.ShowType{TypeID: 2, Name: "two"},
			gract.ShowType{TypeID: 3, Name: "three"},
			gract.ShowCollection{CollectionID: 1, Display: gract.Stack},
			gract.ShowCollection{CollectionID: 2, Display: gract.Stack},
			gract.ShowCollection{CollectionID: 3, Display: gract.Stack},
			gract.ShowCard{CardID: 1, TypeID: 1, CollectionID: 1},
			gract.ShowCard{CardID: 2, TypeID: 2, CollectionID: 2},
			gract.ShowCard{CardID: 3, TypeID: 3, CollectionID: 3},
		}
		for _, id := range m.order {
			bundle[id] = append(bundle[id], gracts...)
		}
		bundle[m.order[0]] = append(bundle[m.order[0]], gract.PossibleActions{
			Possibilities: []gract.Possibility{gract.WildCard{CardID: 1, TypeIDs: []int{1, 2, 3}}},
		})
		return module.Gract{Bundle: bundle}

	case module.PlayerActionEngMsg:
		if _, ok := v.Action.(gract.WildCardAction); ok {
			return module.EndRound{Reason: "wild played"}
		}
		return module.Empty{}

	case module.PlayerLeaveEngMsg:
		return module.EndGame{Reason: "player left"}

	default:
		return module.Empty{}
	}
}

func newTestEngine() (*Engine, *mockModule) {
	mod := &mockModule{}
	e := New(7, mod, applog.New(false), func() {})
	return e, mod
}

func TestEngine_InitFailureTearsDownImmediately(t *testing.T) {
	done := false
	e := New(1, initFailsModule{}, applog.New(false), func() { done = true })
	e.Run()
	assert.True(t, done)
}

type initFailsModule struct{}

func (initFailsModule) Process(module.EngMsg) module.ModMsg { return module.Empty{} }

func TestEngine_JoinRejectedWhenClosed(t *testing.T) {
	e, _ := newTestEngine()
	e.joinMode = module.Closed("not accepting players")
	e.startMode = module.Closed("n/a")

	conn := &mockConn{}
	e.handleJoin(joinArrival{conn: conn, name: "Ada"})

	assert.Empty(t, e.players)
	assert.True(t, conn.closed)
	assert.Equal(t, wire.Error{Reason: "not accepting players"}, conn.last())
}

func TestEngine_FullScenario(t *testing.T) {
	e, _ := newTestEngine()
	e.joinMode = module.Open
	e.startMode = module.Closed("2 players required")

	conn0 := &mockConn{}
	e.handleJoin(joinArrival{conn: conn0, name: "Ada"})
	require.Len(t, e.players, 1)
	assert.Equal(t, wire.ServerIntro{GameID: 7, PlayerID: 0}, conn0.last())

	conn1 := &mockConn{}
	e.handleJoin(joinArrival{conn: conn1, name: "Bo"})
	require.Len(t, e.players, 2)
	assert.Equal(t, wire.ServerIntro{GameID: 7, PlayerID: 1}, conn1.last())
	assert.IsType(t, module.ClosedMode{}, e.joinMode)

	// A third joiner is turned away once the module closes joining.
	conn2 := &mockConn{}
	e.handleJoin(joinArrival{conn: conn2, name: "Cy"})
	assert.Len(t, e.players, 2)
	assert.True(t, conn2.closed)
	assert.Equal(t, wire.Error{Reason: "2 players max"}, conn2.last())

	// Starting the round deals gracts to both players and a wild-card
	// possibility to player 0 only.
	e.handlePlayerFrame(playerFrame{playerID: 0, frame: wire.StartRound{}})
	require.True(t, e.roundActive)
	gl0, ok := conn0.last().(wire.GractList)
	require.True(t, ok)
	assert.Len(t, gl0.Gracts, 10)
	assert.NotEmpty(t, e.players[0].possibilities)
	assert.Empty(t, e.players[1].possibilities)

	// Player 1 has no possibilities yet; their wild-card attempt is refused
	// without ever reaching the module, and their connection is closed.
	e.handlePlayerFrame(playerFrame{playerID: 1, frame: wire.Action{Action: gract.WildCardAction{CardID: 1, TypeID: 1}}})
	assert.Equal(t, wire.Error{Reason: "invalid action"}, conn1.last())
	assert.True(t, conn1.closed)

	// Player 0 plays the wild card the module is waiting for; the round ends.
	e.handlePlayerFrame(playerFrame{playerID: 0, frame: wire.Action{Action: gract.WildCardAction{CardID: 1, TypeID: 2}}})
	assert.False(t, e.roundActive)
	assert.Equal(t, wire.EndRound{Reason: "wild played"}, conn0.last())
	assert.Equal(t, wire.EndRound{Reason: "wild played"}, conn1.last())

	// Player 1 leaves; the module ends the game, and every remaining
	// connection (just player 0's) is notified and closed.
	e.handlePlayerClosed(playerClosed{playerID: 1})
	assert.Equal(t, wire.EndGame{Reason: "player left"}, conn0.last())
	assert.True(t, conn0.closed)
	assert.Empty(t, e.players)
}

func TestEngine_StartRoundRejectedWhileRoundActive(t *testing.T) {
	calls := 0
	e := New(7, countingProcess(&mockModule{}, &calls), applog.New(false), func() {})
	e.joinMode = module.Open
	e.startMode = module.Open

	conn0 := &mockConn{}
	e.handleJoin(joinArrival{conn: conn0, name: "Ada"})
	conn1 := &mockConn{}
	e.handleJoin(joinArrival{conn: conn1, name: "Bo"})

	e.handlePlayerFrame(playerFrame{playerID: 0, frame: wire.StartRound{}})
	require.True(t, e.roundActive)
	seen := calls

	// A second start-round mid-round is refused without reaching the
	// module at all, even though startMode is open (not closed).
	e.handlePlayerFrame(playerFrame{playerID: 1, frame: wire.StartRound{}})
	assert.Equal(t, wire.Error{Reason: "round already active"}, conn1.last())
	assert.True(t, e.roundActive)
	assert.Equal(t, seen, calls)
}

func TestEngine_GractTargetingUnknownPlayerIsDropped(t *testing.T) {
	e, _ := newTestEngine()
	conn0 := &mockConn{}
	e.players[0] = &playerRec{name: "Ada", conn: conn0}

	// A bundle addressed partly to a player who has already left.
	e.apply(module.Gract{Bundle: module.GractBundle{
		0: {gract.ShowCard{CardID: 1, TypeID: 1, CollectionID: 1}},
		5: {gract.ShowCard{CardID: 2, TypeID: 2, CollectionID: 1}},
	}})

	assert.NotNil(t, conn0.last())
	assert.Len(t, e.players, 1)
}

func TestEngine_PlayerClosedTwiceIsIgnored(t *testing.T) {
	mod := &mockModule{}
	calls := 0
	e := New(0, countingProcess(mod, &calls), applog.New(false), func() {})
	conn := &mockConn{}
	e.players[0] = &playerRec{name: "Ada", conn: conn}

	e.handlePlayerClosed(playerClosed{playerID: 0})
	e.handlePlayerClosed(playerClosed{playerID: 0})

	assert.Equal(t, 1, calls)
}

// countingProcess wraps a module.Module so tests can assert how many times
// Process was actually invoked.
type countingWrapper struct {
	module.Module
	calls *int
}

func (c countingWrapper) Process(msg module.EngMsg) module.ModMsg {
	*c.calls++
	return c.Module.Process(msg)
}

func countingProcess(m module.Module, calls *int) module.Module {
	return countingWrapper{Module: m, calls: calls}
}

func TestEngine_Run_EndsWhenModuleEndsGame(t *testing.T) {
	mod := &mockModule{}
	doneCh := make(chan struct{})
	e := New(3, mod, applog.New(false), func() { close(doneCh) })

	go e.Run()

	conn0 := &mockConn{}
	conn1 := &mockConn{}
	e.events <- joinArrival{conn: conn0, name: "Ada"}
	e.events <- joinArrival{conn: conn1, name: "Bo"}
	e.events <- playerClosed{playerID: 1}

	select {
	case <-doneCh:
	case <-time.After(time.Second):
		t.Fatal("engine never tore down after the module ended the game")
	}

	// Player 0 is still connected when the module ends the game over
	// player 1 leaving, so they get the notification before being closed.
	assert.Equal(t, wire.EndGame{Reason: "player left"}, conn0.last())
	assert.True(t, conn0.closed)
}
