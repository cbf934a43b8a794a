package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/schuaBob/crew-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// Manager owns a registry of independent games. Each game is single-threaded
// internally; the manager serializes access so callers from transports can
// share it safely.
type Manager struct {
	logger   *zap.Logger
	mu       sync.RWMutex
	games    map[string]*Game
	recorder *ReplayRecorder
}

// NewManager creates an empty manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger: logger,
		games:  make(map[string]*Game),
	}
}

// SetRecorder enables replay recording for games created afterwards.
func (m *Manager) SetRecorder(recorder *ReplayRecorder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorder = recorder
}

// CreateGame deals a new game under a fresh ID. With a recorder set, the
// game's event bus feeds it: every accepted play is recorded off CARD_PLAYED,
// and GAME_WON or GAME_LOST finalizes the replay with the terminal checksum
// and flushes it to disk.
func (m *Manager) CreateGame(cfg Config, seed int64) (*Game, error) {
	id := uuid.NewString()

	m.mu.Lock()
	recorder := m.recorder
	m.mu.Unlock()

	bus := rules.NewEventBus()
	if recorder != nil {
		recorder.StartRecording(id, seed, cfg)
		bus.SubscribeTyped(rules.EventCardPlayed, func(e rules.Event) {
			card, err := ParseCard(e.Card)
			if err != nil {
				return
			}
			recorder.RecordPlay(e.GameID, Play{Seat: e.Seat, Card: card})
		})
	}

	g, err := NewGameWithBus(id, cfg, seed, bus, m.logger)
	if err != nil {
		if recorder != nil {
			recorder.ClearReplay(id)
		}
		return nil, err
	}

	if recorder != nil {
		finish := func(rules.Event) {
			recorder.Finalize(id, g.Checksum())
			if saveErr := recorder.SaveReplay(id); saveErr != nil && m.logger != nil {
				m.logger.Warn("replay not saved",
					zap.String("game_id", id),
					zap.Error(saveErr),
				)
			}
		}
		bus.SubscribeTyped(rules.EventGameWon, finish)
		bus.SubscribeTyped(rules.EventGameLost, finish)
		if g.IsTerminal() {
			// Zero-task games end during the deal, before the terminal
			// subscriptions existed.
			finish(rules.Event{})
		}
	}

	m.mu.Lock()
	m.games[id] = g
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Info("game created",
			zap.String("game_id", id),
			zap.Int64("seed", seed),
		)
	}
	return g, nil
}

// Game looks up a game by ID.
func (m *Manager) Game(id string) (*Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	return g, ok
}

// Play applies one card for a seat. Replay recording rides the game's event
// bus, so plays applied directly to the game are captured the same way.
func (m *Manager) Play(id string, seat int, card Card) (TurnOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[id]
	if !ok {
		return TurnOutcome{}, fmt.Errorf("game %s not found", id)
	}
	return g.Apply(seat, card)
}

// RemoveGame drops a game from the registry.
func (m *Manager) RemoveGame(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	if m.recorder != nil {
		m.recorder.ClearReplay(id)
	}
}

// GameIDs lists the registered games.
func (m *Manager) GameIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of registered games.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
