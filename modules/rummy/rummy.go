// Package rummy implements a two-to-four-player draw-and-discard rummy variant as
// a pluggable game module, ported from the reference implementation's
// rummy.py.
package rummy

import (
	"fmt"
	"math/rand"

	"github.com/Seednode/cardhub/internal/gract"
	"github.com/Seednode/cardhub/internal/loader"
	"github.com/Seednode/cardhub/internal/module"
)

const name = "rummy"

func init() {
	loader.Register(name, New)
}

const (
	centralStackCollection = -1
	discardStackCollection = -2
)

type player struct {
	id    int
	name  string
	cards []int
}

// Module is one running game of rummy.
type Module struct {
	players   map[int]*player
	joinOrder []int // join order, since map iteration order is not stable

	playerOrder []int
	currentIdx  int
	stage       int

	central []int
	discard []int
}

// New constructs a fresh rummy module instance.
func New() module.Module {
	return &Module{players: make(map[int]*player)}
}

// Process implements module.Module.
func (m *Module) Process(msg module.EngMsg) module.ModMsg {
	switch v := msg.(type) {
	case module.InitEngMsg:
		return module.ChangeState{JoinMode: module.Open, StartMode: module.Closed("at least 2 players required")}

	case module.PlayerJoinEngMsg:
		return m.onJoin(v)

	case module.PlayerLeaveEngMsg:
		return m.onLeave(v)

	case module.StartRoundEngMsg:
		return m.onStartRound()

	case module.PlayerActionEngMsg:
		return m.onAction(v)

	default:
		return module.Empty{}
	}
}

func (m *Module) onJoin(v module.PlayerJoinEngMsg) module.ModMsg {
	m.players[v.PlayerID] = &player{id: v.PlayerID, name: v.PlayerName}
	m.joinOrder = append(m.joinOrder, v.PlayerID)

	switch {
	case len(m.players) >= 4:
		return module.ChangeState{JoinMode: module.Closed("no more than 4 players"), StartMode: module.Open}
	case len(m.players) >= 2:
		return module.ChangeState{JoinMode: module.Open, StartMode: module.Open}
	default:
		return module.Empty{}
	}
}

func (m *Module) onLeave(v module.PlayerLeaveEngMsg) module.ModMsg {
	p, ok := m.players[v.PlayerID]
	name := "a player"
	if ok {
		name = p.name
	}
	delete(m.players, v.PlayerID)
	return module.EndGame{Reason: fmt.Sprintf("player %s left!", name)}
}

// playerIDs returns the currently-seated players in join order.
func (m *Module) playerIDs() []int {
	ids := make([]int, 0, len(m.joinOrder))
	for _, id := range m.joinOrder {
		if _, ok := m.players[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (m *Module) onStartRound() module.ModMsg {
	ids := m.playerIDs()
	b := newBundle(ids)

	for _, ct := range cardTypes {
		b.broadcast(ct)
	}
	b.broadcast(gract.ShowCollection{CollectionID: centralStackCollection, Display: gract.Stack})
	b.broadcast(gract.ShowCollection{CollectionID: discardStackCollection, Display: gract.Stack})

	deck := append([]int(nil), cardIDs...)
	rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	m.playerOrder = nil
	for _, id := range ids {
		p := m.players[id]
		anchor := id
		b.broadcast(gract.ShowCollection{CollectionID: id, AnchorPlayerID: &anchor, Display: gract.Hand})

		p.cards = append([]int(nil), deck[:7]...)
		deck = deck[7:]

		m.playerOrder = append(m.playerOrder, id)
	}

	m.discard = []int{deck[len(deck)-1]}
	m.central = deck[:len(deck)-1]

	b.broadcast(gract.ShowCard{CardID: m.central[len(m.central)-1], TypeID: 0, CollectionID: centralStackCollection})
	top := m.discard[len(m.discard)-1]
	b.broadcast(gract.ShowCard{CardID: top, TypeID: top, CollectionID: discardStackCollection})

	for _, id := range m.playerOrder {
		p := m.players[id]
		for _, card := range p.cards {
			b.send(id, gract.ShowCard{CardID: card, TypeID: card, CollectionID: id})
			b.broadcastExcept(id, gract.ShowCard{CardID: card, TypeID: 0, CollectionID: id})
		}
	}

	m.currentIdx = 0
	m.stage = 0

	current := m.playerOrder[m.currentIdx]
	b.send(current, gract.PossibleActions{Possibilities: []gract.Possibility{
		gract.SelectCollection{CollectionIDs: []int{centralStackCollection, discardStackCollection}},
	}})

	return module.Gract{Bundle: b.lists}
}

func (m *Module) onAction(v module.PlayerActionEngMsg) module.ModMsg {
	if len(m.playerOrder) == 0 {
		return module.Empty{}
	}
	current := m.playerOrder[m.currentIdx]
	if current != v.PlayerID {
		return module.Empty{}
	}

	b := newBundle(m.playerIDs())

	switch m.stage {
	case 0:
		action, ok := v.Action.(gract.SelectCollectionAction)
		if !ok {
			return module.Empty{}
		}
		return m.drawCard(b, current, action.CollectionID)

	case 1:
		action, ok := v.Action.(gract.SelectCardAction)
		if !ok {
			return module.Empty{}
		}
		return m.discardCard(b, current, action.CardID)

	default:
		return module.Empty{}
	}
}

func (m *Module) drawCard(b *bundle, current, collectionID int) module.ModMsg {
	var cardID int

	switch collectionID {
	case centralStackCollection:
		if len(m.central) == 0 {
			return module.Empty{}
		}
		cardID = m.central[len(m.central)-1]
		m.central = m.central[:len(m.central)-1]
		if len(m.central) > 0 {
			b.broadcast(gract.ShowCard{CardID: m.central[len(m.central)-1], TypeID: 0, CollectionID: centralStackCollection})
		}

	case discardStackCollection:
		if len(m.discard) == 0 {
			return module.Empty{}
		}
		cardID = m.discard[len(m.discard)-1]
		m.discard = m.discard[:len(m.discard)-1]

	default:
		return module.Empty{}
	}

	p := m.players[current]
	p.cards = append(p.cards, cardID)

	b.broadcast(gract.MoveCard{CardID: cardID, CollectionID: current})
	b.send(current, gract.RevealCard{OldCardID: cardID, NewCardID: cardID, NewTypeID: cardID})
	b.send(current, gract.PossibleActions{Possibilities: []gract.Possibility{
		gract.SelectCard{CardIDs: append([]int(nil), p.cards...)},
	}})

	m.stage = 1

	return module.Gract{Bundle: b.lists}
}

func (m *Module) discardCard(b *bundle, current, cardID int) module.ModMsg {
	p := m.players[current]

	remaining := p.cards[:0:0]
	for _, c := range p.cards {
		if c != cardID {
			remaining = append(remaining, c)
		}
	}
	p.cards = remaining

	if checkHand(p.cards) {
		m.central = nil
		m.discard = nil
		for _, pl := range m.players {
			pl.cards = nil
		}
		return module.EndRound{Reason: fmt.Sprintf("player %s won!", p.name)}
	}

	m.discard = append(m.discard, cardID)
	b.broadcast(gract.MoveCard{CardID: cardID, CollectionID: discardStackCollection})
	b.broadcast(gract.RevealCard{OldCardID: cardID, NewCardID: cardID, NewTypeID: cardID})

	m.currentIdx = (m.currentIdx + 1) % len(m.playerOrder)
	m.stage = 0
	next := m.playerOrder[m.currentIdx]

	b.send(next, gract.PossibleActions{Possibilities: []gract.Possibility{
		gract.SelectCollection{CollectionIDs: []int{centralStackCollection, discardStackCollection}},
	}})

	return module.Gract{Bundle: b.lists}
}
