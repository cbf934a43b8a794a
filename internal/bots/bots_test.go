package bots

import (
	"testing"

	"github.com/schuaBob/crew-server-go/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playOut(t *testing.T, policy Policy, seed int64) *game.Game {
	t.Helper()
	g, err := game.NewGame("bot-game", game.DefaultConfig(), seed, nil)
	require.NoError(t, err)

	for !g.IsTerminal() {
		seat := g.CurrentPlayer()
		legal := g.LegalMoves(seat)
		card := policy.ChooseCard(g, seat, legal)
		require.Contains(t, legal, card, "%s chose an illegal card", policy.Name())
		_, err := g.Apply(seat, card)
		require.NoError(t, err)
	}
	return g
}

func TestRandomPolicyPlaysFullGame(t *testing.T) {
	g := playOut(t, NewRandom(1), 65535)
	assert.True(t, g.IsTerminal())
}

func TestRandomPolicyIsSeedDeterministic(t *testing.T) {
	a := playOut(t, NewRandom(7), 99)
	b := playOut(t, NewRandom(7), 99)
	assert.Equal(t, a.Checksum(), b.Checksum())
	assert.Equal(t, a.State(), b.State())
}

func TestTaskChaserPlaysFullGame(t *testing.T) {
	g := playOut(t, NewTaskChaser(1), 65535)
	assert.True(t, g.IsTerminal())
}

func TestTaskChaserChasesOwnTask(t *testing.T) {
	// When the open trick holds one of its own task cards, the policy plays
	// its strongest legal card.
	g, err := game.NewGame("chase", game.DefaultConfig(), 42, nil)
	require.NoError(t, err)

	policy := NewTaskChaser(1)
	for !g.IsTerminal() {
		seat := g.CurrentPlayer()
		legal := g.LegalMoves(seat)

		ownTaskInTrick := false
		for _, task := range g.OpenTasks() {
			if task.Owner != seat {
				continue
			}
			for _, play := range g.Trick() {
				if play.Card == task.Card {
					ownTaskInTrick = true
				}
			}
		}

		card := policy.ChooseCard(g, seat, legal)
		if ownTaskInTrick {
			assert.Equal(t, strongest(legal), card)
		}
		_, err := g.Apply(seat, card)
		require.NoError(t, err)
	}
}

func TestPoliciesTolerateEmptyLegalSet(t *testing.T) {
	assert.Equal(t, game.Card{}, NewRandom(1).ChooseCard(nil, 0, nil))
	assert.Equal(t, game.Card{}, NewTaskChaser(1).ChooseCard(nil, 0, nil))
}

func TestStrongestPrefersRockets(t *testing.T) {
	legal := []game.Card{
		{Suit: game.SuitBlue, Rank: 9},
		{Suit: game.SuitRocket, Rank: 1},
		{Suit: game.SuitRocket, Rank: 3},
	}
	assert.Equal(t, game.Card{Suit: game.SuitRocket, Rank: 3}, strongest(legal))
}

func TestWeakestAvoidsRockets(t *testing.T) {
	legal := []game.Card{
		{Suit: game.SuitRocket, Rank: 1},
		{Suit: game.SuitGreen, Rank: 2},
		{Suit: game.SuitGreen, Rank: 7},
	}
	assert.Equal(t, game.Card{Suit: game.SuitGreen, Rank: 2}, weakest(legal))
}
