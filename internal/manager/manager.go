// Package manager implements game creation and lookup (§4.5): a registry
// of running engines, each driven by its own goroutine, keyed by a game id
// handed out in creation order.
package manager

import (
	"fmt"
	"sync"

	"github.com/Seednode/cardhub/internal/applog"
	"github.com/Seednode/cardhub/internal/engine"
	"github.com/Seednode/cardhub/internal/loader"
)

// Manager owns every running game. It is safe for concurrent use; each
// exported method only ever touches the registry under its own lock, never
// an engine's internals — those belong exclusively to the engine's own
// goroutine.
type Manager struct {
	log *applog.Logger

	mu         sync.Mutex
	games      map[int]*engine.Engine
	nextGameID int
}

// New constructs an empty manager.
func New(log *applog.Logger) *Manager {
	return &Manager{
		log:   log,
		games: make(map[int]*engine.Engine),
	}
}

// Create instantiates the module registered at moduleIndex as a new game,
// starts its engine loop, and returns the assigned game id.
func (m *Manager) Create(moduleIndex int) (int, error) {
	entry, ok := loader.At(moduleIndex)
	if !ok {
		return 0, fmt.Errorf("manager: no module at index %d", moduleIndex)
	}

	m.mu.Lock()
	id := m.nextGameID
	m.nextGameID++

	eng := engine.New(id, entry.New(), m.log, func() { m.remove(id) })
	m.games[id] = eng
	m.mu.Unlock()

	go eng.Run()

	m.log.Printf("game %d: created (%s)", id, entry.Name)

	return id, nil
}

// Join hands a freshly-accepted connection to the game's introduction
// protocol. It returns an error, without touching conn, if gameID names no
// running game — the caller (the transport layer) is responsible for
// telling the client and closing the socket itself.
func (m *Manager) Join(gameID int, conn engine.Connection) error {
	m.mu.Lock()
	eng, ok := m.games[gameID]
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("manager: no game %d", gameID)
	}

	eng.Join(conn)
	return nil
}

func (m *Manager) remove(id int) {
	m.mu.Lock()
	delete(m.games, id)
	m.mu.Unlock()

	m.log.Printf("game %d: ended", id)
}
