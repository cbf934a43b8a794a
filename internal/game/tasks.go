package game

import (
	"fmt"
	"sort"
)

// Task is a standing obligation: the card must be won in a trick whose winner
// is the owning seat. Ownership is logical and independent of which hand
// physically holds the card.
type Task struct {
	Card  Card
	Owner int
}

func (t Task) String() string {
	return fmt.Sprintf("%s->player_%d", t.Card, t.Owner)
}

// TaskFailure carries the terminal diagnostics of a lost game: the task card
// that was won by the wrong seat.
type TaskFailure struct {
	Card   Card
	Owner  int
	Winner int
}

func (f TaskFailure) String() string {
	return fmt.Sprintf("player_%d is unable to fulfill the task %s: trick won by player_%d", f.Owner, f.Card, f.Winner)
}

// TaskRegistry tracks the open task set and evaluates it against resolved
// tricks. Each card maps to at most one owner.
type TaskRegistry struct {
	owners    map[Card]int
	completed []Task
}

// NewTaskRegistry builds a registry from the dealt assignments.
func NewTaskRegistry(tasks []Task) *TaskRegistry {
	owners := make(map[Card]int, len(tasks))
	for _, t := range tasks {
		owners[t.Card] = t.Owner
	}
	return &TaskRegistry{
		owners:    owners,
		completed: make([]Task, 0, len(tasks)),
	}
}

// Evaluate processes a resolved trick. Task cards found in the trick are
// checked in play order: a card owned by the trick winner completes its task,
// while the first card owned by anyone else fails the game and stops further
// evaluation. Returns the tasks completed by this trick and the failure, if
// any.
func (r *TaskRegistry) Evaluate(plays []Play, winner int) ([]Task, *TaskFailure) {
	var done []Task
	for _, play := range plays {
		owner, ok := r.owners[play.Card]
		if !ok {
			continue
		}
		if owner != winner {
			return done, &TaskFailure{Card: play.Card, Owner: owner, Winner: winner}
		}
		task := Task{Card: play.Card, Owner: owner}
		delete(r.owners, play.Card)
		r.completed = append(r.completed, task)
		done = append(done, task)
	}
	return done, nil
}

// Owner reports the owning seat of an open task card.
func (r *TaskRegistry) Owner(card Card) (int, bool) {
	owner, ok := r.owners[card]
	return owner, ok
}

// AllComplete reports whether no open tasks remain.
func (r *TaskRegistry) AllComplete() bool {
	return len(r.owners) == 0
}

// OpenCount returns the number of unresolved tasks.
func (r *TaskRegistry) OpenCount() int {
	return len(r.owners)
}

// Open returns the unresolved tasks, sorted by card for deterministic output.
func (r *TaskRegistry) Open() []Task {
	open := make([]Task, 0, len(r.owners))
	for card, owner := range r.owners {
		open = append(open, Task{Card: card, Owner: owner})
	}
	sort.Slice(open, func(i, j int) bool { return open[i].Card.Less(open[j].Card) })
	return open
}

// Completed returns the fulfilled tasks in completion order.
func (r *TaskRegistry) Completed() []Task {
	return append([]Task(nil), r.completed...)
}
