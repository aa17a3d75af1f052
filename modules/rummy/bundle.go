package rummy

import (
	"github.com/Seednode/cardhub/internal/gract"
	"github.com/Seednode/cardhub/internal/module"
)

// bundle accumulates one Process call's worth of per-player gract lists,
// mirroring the reference implementation's SimpleGractLists helper.
type bundle struct {
	players []int
	lists   module.GractBundle
}

func newBundle(playerIDs []int) *bundle {
	b := &bundle{
		players: append([]int(nil), playerIDs...),
		lists:   make(module.GractBundle, len(playerIDs)),
	}
	for _, id := range playerIDs {
		b.lists[id] = nil
	}
	return b
}

func (b *bundle) broadcast(g gract.Gract) {
	for _, id := range b.players {
		b.lists[id] = append(b.lists[id], g)
	}
}

func (b *bundle) broadcastExcept(except int, g gract.Gract) {
	for _, id := range b.players {
		if id == except {
			continue
		}
		b.lists[id] = append(b.lists[id], g)
	}
}

func (b *bundle) send(playerID int, g gract.Gract) {
	b.lists[playerID] = append(b.lists[playerID], g)
}
