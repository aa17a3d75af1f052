package rummy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/cardhub/internal/gract"
	"github.com/Seednode/cardhub/internal/module"
)

func TestModule_Init(t *testing.T) {
	m := New()

	resp := m.Process(module.InitEngMsg{})
	cs, ok := resp.(module.ChangeState)
	require.True(t, ok)
	assert.Equal(t, module.Open, cs.JoinMode)
	assert.Equal(t, module.Closed("at least 2 players required"), cs.StartMode)
}

func TestModule_JoinThresholds(t *testing.T) {
	m := New()
	m.Process(module.InitEngMsg{})

	resp := m.Process(module.PlayerJoinEngMsg{PlayerID: 0, PlayerName: "Ada"})
	assert.Equal(t, module.Empty{}, resp)

	resp = m.Process(module.PlayerJoinEngMsg{PlayerID: 1, PlayerName: "Bo"})
	cs, ok := resp.(module.ChangeState)
	require.True(t, ok)
	assert.Equal(t, module.Open, cs.JoinMode)
	assert.Equal(t, module.Open, cs.StartMode)

	m.Process(module.PlayerJoinEngMsg{PlayerID: 2, PlayerName: "Cy"})
	resp = m.Process(module.PlayerJoinEngMsg{PlayerID: 3, PlayerName: "Di"})
	cs, ok = resp.(module.ChangeState)
	require.True(t, ok)
	assert.Equal(t, module.Closed("no more than 4 players"), cs.JoinMode)
}

func TestModule_LeaveEndsGame(t *testing.T) {
	m := New()
	m.Process(module.InitEngMsg{})
	m.Process(module.PlayerJoinEngMsg{PlayerID: 0, PlayerName: "Ada"})

	resp := m.Process(module.PlayerLeaveEngMsg{PlayerID: 0})
	eg, ok := resp.(module.EndGame)
	require.True(t, ok)
	assert.Equal(t, "player Ada left!", eg.Reason)
}

func TestModule_StartRoundDealsHandsAndOffersFirstTurn(t *testing.T) {
	iface := New()
	m := iface.(*Module)

	m.Process(module.InitEngMsg{})
	m.Process(module.PlayerJoinEngMsg{PlayerID: 0, PlayerName: "Ada"})
	m.Process(module.PlayerJoinEngMsg{PlayerID: 1, PlayerName: "Bo"})

	resp := m.Process(module.StartRoundEngMsg{})
	gr, ok := resp.(module.Gract)
	require.True(t, ok)

	require.Len(t, m.players[0].cards, 7)
	require.Len(t, m.players[1].cards, 7)
	assert.Len(t, m.central, 52-7*2-1)
	assert.Len(t, m.discard, 1)

	assert.NotEmpty(t, gr.Bundle[0])
	assert.NotEmpty(t, gr.Bundle[1])

	last0 := gr.Bundle[0][len(gr.Bundle[0])-1]
	pa, ok := last0.(gract.PossibleActions)
	require.True(t, ok)
	require.Len(t, pa.Possibilities, 1)
	sc, ok := pa.Possibilities[0].(gract.SelectCollection)
	require.True(t, ok)
	assert.ElementsMatch(t, []int{centralStackCollection, discardStackCollection}, sc.CollectionIDs)

	// Player 1 was not offered a turn yet.
	for _, g := range gr.Bundle[1] {
		_, isPossible := g.(gract.PossibleActions)
		assert.False(t, isPossible)
	}
}

func TestModule_DrawThenDiscardAdvancesTurn(t *testing.T) {
	iface := New()
	m := iface.(*Module)

	m.Process(module.InitEngMsg{})
	m.Process(module.PlayerJoinEngMsg{PlayerID: 0, PlayerName: "Ada"})
	m.Process(module.PlayerJoinEngMsg{PlayerID: 1, PlayerName: "Bo"})
	m.Process(module.StartRoundEngMsg{})

	resp := m.Process(module.PlayerActionEngMsg{
		PlayerID: 0,
		Action:   gract.SelectCollectionAction{CollectionID: discardStackCollection},
	})
	gr, ok := resp.(module.Gract)
	require.True(t, ok)
	assert.Len(t, m.players[0].cards, 8)
	assert.Equal(t, 1, m.stage)

	last0 := gr.Bundle[0][len(gr.Bundle[0])-1]
	pa, ok := last0.(gract.PossibleActions)
	require.True(t, ok)
	sc, ok := pa.Possibilities[0].(gract.SelectCard)
	require.True(t, ok)
	assert.Len(t, sc.CardIDs, 8)

	drawn := sc.CardIDs[len(sc.CardIDs)-1]
	resp = m.Process(module.PlayerActionEngMsg{
		PlayerID: 0,
		Action:   gract.SelectCardAction{CardID: drawn},
	})
	gr, ok = resp.(module.Gract)
	require.True(t, ok)
	assert.Len(t, m.players[0].cards, 7)
	assert.Equal(t, 0, m.stage)
	assert.Equal(t, 1, m.currentIdx)

	last1 := gr.Bundle[1][len(gr.Bundle[1])-1]
	_, ok = last1.(gract.PossibleActions)
	assert.True(t, ok, "turn should have passed to player 1")
}

func TestModule_ActionFromWrongPlayerIgnored(t *testing.T) {
	iface := New()
	m := iface.(*Module)

	m.Process(module.InitEngMsg{})
	m.Process(module.PlayerJoinEngMsg{PlayerID: 0, PlayerName: "Ada"})
	m.Process(module.PlayerJoinEngMsg{PlayerID: 1, PlayerName: "Bo"})
	m.Process(module.StartRoundEngMsg{})

	resp := m.Process(module.PlayerActionEngMsg{
		PlayerID: 1,
		Action:   gract.SelectCollectionAction{CollectionID: discardStackCollection},
	})
	assert.Equal(t, module.Empty{}, resp)
}
