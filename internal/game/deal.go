package game

import (
	"fmt"
	"math/rand"
)

// Distribute shuffles the deck with the supplied seeded source and deals it
// round-robin, one card at a time starting at seat 0. When the deck does not
// divide evenly, the earlier seats receive the extra cards, so hand sizes
// never differ by more than one. The input slice is not modified.
func Distribute(cards []Card, players int, rng *rand.Rand) [][]Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	hands := make([][]Card, players)
	per := (len(shuffled) + players - 1) / players
	for i := range hands {
		hands[i] = make([]Card, 0, per)
	}
	for i, card := range shuffled {
		hands[i%players] = append(hands[i%players], card)
	}
	return hands
}

// OpeningLeader determines the commander for the first trick. With rockets in
// play the holder of the highest rocket leads; that card is unique and always
// dealt, so exactly one seat qualifies. Without rockets a uniformly random
// seat is drawn from the seeded source.
func OpeningLeader(hands [][]Card, rockets int, rng *rand.Rand) int {
	if rockets == 0 {
		return rng.Intn(len(hands))
	}
	top := Card{Suit: SuitRocket, Rank: Rank(rockets)}
	for seat, hand := range hands {
		for _, card := range hand {
			if card == top {
				return seat
			}
		}
	}
	// Unreachable for a properly dealt deck.
	panic(fmt.Sprintf("opening leader: %s not dealt", top))
}

// AssignTasks shuffles the task-eligible cards and assigns the first count of
// them round-robin starting at the opening leader. A seat may end up with
// zero, one, or several tasks.
func AssignTasks(taskCards []Card, players, count, leader int, rng *rand.Rand) ([]Task, error) {
	if count > len(taskCards) {
		return nil, fmt.Errorf("%w: %d tasks exceed %d eligible task cards", ErrInvalidConfig, count, len(taskCards))
	}
	shuffled := make([]Card, len(taskCards))
	copy(shuffled, taskCards)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	tasks := make([]Task, 0, count)
	for i := 0; i < count; i++ {
		tasks = append(tasks, Task{
			Card:  shuffled[i],
			Owner: (leader + i) % players,
		})
	}
	return tasks, nil
}
