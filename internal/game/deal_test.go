package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributePartitionsDeck(t *testing.T) {
	deck, _ := Catalog(DefaultConfig())
	hands := Distribute(deck, 3, rand.New(rand.NewSource(7)))

	require.Len(t, hands, 3)
	seen := make(map[Card]bool, len(deck))
	total := 0
	for _, hand := range hands {
		total += len(hand)
		for _, card := range hand {
			assert.False(t, seen[card], "card %s dealt twice", card)
			seen[card] = true
		}
	}
	assert.Equal(t, len(deck), total)
	for _, card := range deck {
		assert.True(t, seen[card], "card %s never dealt", card)
	}
}

func TestDistributeHandSizes(t *testing.T) {
	// 4 colors x 9 ranks + 4 rockets = 40 cards over 3 players: 14/13/13,
	// with the earlier seats taking the extras.
	deck, _ := Catalog(DefaultConfig())
	hands := Distribute(deck, 3, rand.New(rand.NewSource(1)))
	assert.Equal(t, 14, len(hands[0]))
	assert.Equal(t, 13, len(hands[1]))
	assert.Equal(t, 13, len(hands[2]))
}

func TestDistributeDeterministic(t *testing.T) {
	deck, _ := Catalog(DefaultConfig())
	a := Distribute(deck, 4, rand.New(rand.NewSource(42)))
	b := Distribute(deck, 4, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)

	c := Distribute(deck, 4, rand.New(rand.NewSource(43)))
	assert.NotEqual(t, a, c, "different seeds should differ")
}

func TestOpeningLeaderHoldsTopRocket(t *testing.T) {
	cfg := DefaultConfig()
	deck, _ := Catalog(cfg)
	rng := rand.New(rand.NewSource(99))
	hands := Distribute(deck, cfg.Players, rng)

	leader := OpeningLeader(hands, cfg.Rockets, rng)
	top := Card{Suit: SuitRocket, Rank: Rank(cfg.Rockets)}
	assert.Contains(t, hands[leader], top)
}

func TestOpeningLeaderWithoutRockets(t *testing.T) {
	cfg := Config{Colors: 2, Ranks: 6, Rockets: 0, Players: 3, Tasks: 1}
	deck, _ := Catalog(cfg)

	rngA := rand.New(rand.NewSource(5))
	handsA := Distribute(deck, cfg.Players, rngA)
	leaderA := OpeningLeader(handsA, 0, rngA)

	rngB := rand.New(rand.NewSource(5))
	handsB := Distribute(deck, cfg.Players, rngB)
	leaderB := OpeningLeader(handsB, 0, rngB)

	assert.Equal(t, leaderA, leaderB, "leader choice must be seed-deterministic")
	assert.GreaterOrEqual(t, leaderA, 0)
	assert.Less(t, leaderA, cfg.Players)
}

func TestAssignTasksRoundRobinFromLeader(t *testing.T) {
	_, eligible := Catalog(DefaultConfig())
	tasks, err := AssignTasks(eligible, 3, 5, 2, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	// Owners rotate 2, 0, 1, 2, 0 regardless of which cards were drawn.
	assert.Equal(t, []int{2, 0, 1, 2, 0}, []int{
		tasks[0].Owner, tasks[1].Owner, tasks[2].Owner, tasks[3].Owner, tasks[4].Owner,
	})

	seen := make(map[Card]bool)
	for _, task := range tasks {
		assert.False(t, task.Card.IsTrump())
		assert.False(t, seen[task.Card], "card %s assigned twice", task.Card)
		seen[task.Card] = true
	}
}

func TestAssignTasksTooMany(t *testing.T) {
	_, eligible := Catalog(Config{Colors: 1, Ranks: 3, Rockets: 0, Players: 3, Tasks: 1})
	_, err := AssignTasks(eligible, 3, 4, 0, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
