package bots

import (
	"math/rand"

	"github.com/schuaBob/crew-server-go/internal/game"
)

// Policy chooses one card from the legal set. Policies see the full game
// (perfect information), matching the baseline solvers this engine is
// evaluated with.
type Policy interface {
	Name() string
	ChooseCard(g *game.Game, seat int, legal []game.Card) game.Card
}

// RandomPolicy plays a uniformly random legal card.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandom creates a random policy with its own seeded source, so bot
// choices are reproducible independently of the engine's randomness.
func NewRandom(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPolicy) Name() string { return "random" }

func (p *RandomPolicy) ChooseCard(_ *game.Game, _ int, legal []game.Card) game.Card {
	if len(legal) == 0 {
		return game.Card{}
	}
	return legal[p.rng.Intn(len(legal))]
}

// TaskChaserPolicy plays to win tricks that contain one of its own task
// cards and otherwise stays low to avoid stealing tricks that carry someone
// else's task. Everything else falls back to a random legal card.
type TaskChaserPolicy struct {
	rng *rand.Rand
}

// NewTaskChaser creates the heuristic policy.
func NewTaskChaser(seed int64) *TaskChaserPolicy {
	return &TaskChaserPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *TaskChaserPolicy) Name() string { return "task-chaser" }

func (p *TaskChaserPolicy) ChooseCard(g *game.Game, seat int, legal []game.Card) game.Card {
	if len(legal) == 0 {
		return game.Card{}
	}
	trick := g.Trick()

	if len(trick) > 0 {
		mine, theirs := trickTaskOwners(g, trick, seat)
		if mine {
			return strongest(legal)
		}
		if theirs {
			return weakest(legal)
		}
	} else {
		// Leading: put one of our own task cards on the table if we hold it,
		// so the trick is ours to win or lose directly.
		for _, task := range g.OpenTasks() {
			if task.Owner != seat {
				continue
			}
			for _, card := range legal {
				if card == task.Card {
					return card
				}
			}
		}
	}
	return legal[p.rng.Intn(len(legal))]
}

// trickTaskOwners reports whether the open trick contains a task card owned
// by seat, or by someone else.
func trickTaskOwners(g *game.Game, trick []game.Play, seat int) (mine, theirs bool) {
	for _, task := range g.OpenTasks() {
		for _, play := range trick {
			if play.Card == task.Card {
				if task.Owner == seat {
					mine = true
				} else {
					theirs = true
				}
			}
		}
	}
	return mine, theirs
}

// strongest prefers rockets (highest rank first), then the highest-ranked
// color card.
func strongest(legal []game.Card) game.Card {
	best := legal[0]
	for _, card := range legal[1:] {
		switch {
		case card.IsTrump() && !best.IsTrump():
			best = card
		case card.IsTrump() == best.IsTrump() && card.Rank > best.Rank:
			best = card
		}
	}
	return best
}

// weakest prefers non-rockets (lowest rank first); a rocket is only chosen
// when nothing else is legal.
func weakest(legal []game.Card) game.Card {
	best := legal[0]
	for _, card := range legal[1:] {
		switch {
		case !card.IsTrump() && best.IsTrump():
			best = card
		case card.IsTrump() == best.IsTrump() && card.Rank < best.Rank:
			best = card
		}
	}
	return best
}
