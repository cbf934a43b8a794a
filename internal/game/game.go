package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/schuaBob/crew-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// State is the phase of a game's lifecycle.
type State int8

const (
	StateTrickInProgress State = iota
	StateWon
	StateLost
)

func (s State) String() string {
	switch s {
	case StateTrickInProgress:
		return "IN_PROGRESS"
	case StateWon:
		return "WON"
	case StateLost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// Recoverable play errors. The call is rejected, state is unchanged, and the
// caller may retry with a legal card.
var (
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalPlay = errors.New("illegal play")
	ErrGameOver    = errors.New("game is over")
)

// OutcomeKind classifies the result of applying one play.
type OutcomeKind int8

const (
	OutcomeContinued OutcomeKind = iota
	OutcomeTrickResolved
	OutcomeTaskCompleted
	OutcomeWon
	OutcomeLost
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeContinued:
		return "CONTINUED"
	case OutcomeTrickResolved:
		return "TRICK_RESOLVED"
	case OutcomeTaskCompleted:
		return "TASK_COMPLETED"
	case OutcomeWon:
		return "WON"
	case OutcomeLost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// TurnOutcome reports what one applied play caused. TrickWinner is -1 while
// the trick is still open. Failure is set only for OutcomeLost.
type TurnOutcome struct {
	Kind           OutcomeKind
	TrickWinner    int
	CompletedTasks []Task
	Failure        *TaskFailure
}

// Game is one full game of The Crew: a strict, deterministic state machine
// owned by a single caller. All randomness is drawn from one source seeded at
// creation, so the same seed and the same sequence of plays reproduce the
// game bit for bit. Not safe for concurrent use; independent games share
// nothing.
type Game struct {
	id   string
	cfg  Config
	seed int64

	deckSize int
	hands    [][]Card
	counters []*SuitCounter
	tasks    *TaskRegistry
	trick    []Play
	discards []Card

	seq       *rules.Sequencer
	bus       *rules.EventBus
	state     State
	commander int
	trickNum  int
	playLog   []Play
	failure   *TaskFailure
	reason    string
	startedAt time.Time

	logger *zap.Logger
}

// NewGame deals a fresh game with its own event bus. The random draw order is
// fixed: deck shuffle, leader choice (only when rockets are zero), then task
// shuffle.
func NewGame(id string, cfg Config, seed int64, logger *zap.Logger) (*Game, error) {
	return NewGameWithBus(id, cfg, seed, rules.NewEventBus(), logger)
}

// NewGameWithBus deals a fresh game publishing onto the supplied bus, so
// callers that subscribe first observe the opening events too.
func NewGameWithBus(id string, cfg Config, seed int64, bus *rules.EventBus, logger *zap.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if bus == nil {
		bus = rules.NewEventBus()
	}

	rng := rand.New(rand.NewSource(seed))
	deck, taskCards := Catalog(cfg)
	hands := Distribute(deck, cfg.Players, rng)
	leader := OpeningLeader(hands, cfg.Rockets, rng)
	tasks, err := AssignTasks(taskCards, cfg.Players, cfg.Tasks, leader, rng)
	if err != nil {
		return nil, err
	}

	counters := make([]*SuitCounter, cfg.Players)
	for seat, hand := range hands {
		SortCards(hand)
		counters[seat] = NewSuitCounter(hand)
	}

	seq := rules.NewSequencer(cfg.Players)
	seq.Reanchor(leader)

	g := &Game{
		id:        id,
		cfg:       cfg,
		seed:      seed,
		deckSize:  len(deck),
		hands:     hands,
		counters:  counters,
		tasks:     NewTaskRegistry(tasks),
		trick:     make([]Play, 0, cfg.Players),
		discards:  make([]Card, 0, len(deck)),
		seq:       seq,
		bus:       bus,
		state:     StateTrickInProgress,
		commander: leader,
		trickNum:  1,
		playLog:   make([]Play, 0, len(deck)),
		startedAt: time.Now(),
		logger:    logger,
	}

	if g.tasks.AllComplete() {
		// Zero-task games are won before any card is played.
		g.state = StateWon
		g.reason = "all tasks have been completed"
	}

	if g.logger != nil {
		g.logger.Info("game dealt",
			zap.String("game_id", id),
			zap.Int64("seed", seed),
			zap.Int("players", cfg.Players),
			zap.Int("tasks", cfg.Tasks),
			zap.Int("commander", leader),
		)
	}
	g.publish(rules.EventGameStarted, leader, "", -1)
	if g.state == StateWon {
		g.publish(rules.EventAllTasksComplete, leader, "", leader)
		g.publish(rules.EventGameWon, leader, "", leader)
	}
	return g, nil
}

// Apply plays one card for the acting seat. Plays out of turn, of unheld
// cards, or against the follow-suit rule are rejected with state unchanged.
// Once the game is terminal every call re-reports the outcome under
// ErrGameOver without mutating anything.
func (g *Game) Apply(seat int, card Card) (TurnOutcome, error) {
	if g.state != StateTrickInProgress {
		return g.terminalOutcome(), fmt.Errorf("%w: game already %s", ErrGameOver, g.state)
	}
	if seat != g.seq.Current() {
		return TurnOutcome{Kind: OutcomeContinued, TrickWinner: -1},
			fmt.Errorf("%w: seat %d acted, seat %d expected", ErrNotYourTurn, seat, g.seq.Current())
	}
	legal := LegalMoves(g.hands[seat], g.counters[seat], g.trick)
	if !containsCard(legal, card) {
		return TurnOutcome{Kind: OutcomeContinued, TrickWinner: -1},
			fmt.Errorf("%w: seat %d cannot play %s", ErrIllegalPlay, seat, card)
	}

	g.removeFromHand(seat, card)
	g.trick = append(g.trick, Play{Seat: seat, Card: card})
	g.playLog = append(g.playLog, Play{Seat: seat, Card: card})
	g.publish(rules.EventCardPlayed, seat, card.String(), -1)
	if g.logger != nil {
		g.logger.Debug("card played",
			zap.String("game_id", g.id),
			zap.Int("seat", seat),
			zap.String("card", card.String()),
			zap.Int("trick", g.trickNum),
		)
	}

	if len(g.trick) < g.cfg.Players {
		g.seq.Advance()
		return TurnOutcome{Kind: OutcomeContinued, TrickWinner: -1}, nil
	}
	return g.resolveTrick(), nil
}

// resolveTrick runs when the trick holds one play per seat: determine the
// winner, evaluate tasks, then either terminate or re-anchor to the winner.
func (g *Game) resolveTrick() TurnOutcome {
	winner, best := ResolveTrick(g.trick)
	g.publish(rules.EventTrickResolved, winner, best.String(), winner)

	done, failure := g.tasks.Evaluate(g.trick, winner)
	for _, task := range done {
		event := rules.NewEvent(rules.EventTaskCompleted, g.id, task.Owner)
		event.Card = task.Card.String()
		event.Winner = winner
		event.Trick = g.trickNum
		g.bus.Publish(event)
	}

	for _, play := range g.trick {
		g.discards = append(g.discards, play.Card)
	}
	g.trick = g.trick[:0]

	outcome := TurnOutcome{TrickWinner: winner, CompletedTasks: done}
	switch {
	case failure != nil:
		g.state = StateLost
		g.failure = failure
		g.reason = failure.String()
		outcome.Kind = OutcomeLost
		outcome.Failure = failure
		event := rules.NewEvent(rules.EventTaskFailed, g.id, failure.Owner)
		event.Card = failure.Card.String()
		event.Winner = winner
		event.Trick = g.trickNum
		event.Description = failure.String()
		g.bus.Publish(event)
		g.publish(rules.EventGameLost, failure.Owner, failure.Card.String(), winner)
		if g.logger != nil {
			g.logger.Info("game lost",
				zap.String("game_id", g.id),
				zap.String("reason", g.reason),
				zap.Int("trick", g.trickNum),
			)
		}
	case g.tasks.AllComplete():
		g.state = StateWon
		g.reason = "all tasks have been completed"
		outcome.Kind = OutcomeWon
		g.publish(rules.EventAllTasksComplete, winner, "", winner)
		g.publish(rules.EventGameWon, winner, "", winner)
		if g.logger != nil {
			g.logger.Info("game won",
				zap.String("game_id", g.id),
				zap.Int("tricks", g.trickNum),
			)
		}
	case g.trickCannotFill():
		// Uneven deal endgame: some seat is out of cards, so the longer
		// hands are stranded and no further trick can complete. The open
		// tasks are unwinnable.
		open := g.tasks.Open()[0]
		g.state = StateLost
		g.failure = &TaskFailure{Card: open.Card, Owner: open.Owner, Winner: -1}
		g.reason = fmt.Sprintf("player_%d can no longer fulfill the task %s: no complete trick remains", open.Owner, open.Card)
		outcome.Kind = OutcomeLost
		outcome.Failure = g.failure
		event := rules.NewEvent(rules.EventTaskFailed, g.id, open.Owner)
		event.Card = open.Card.String()
		event.Trick = g.trickNum
		event.Description = g.reason
		g.bus.Publish(event)
		g.publish(rules.EventGameLost, open.Owner, open.Card.String(), -1)
		if g.logger != nil {
			g.logger.Info("game lost",
				zap.String("game_id", g.id),
				zap.String("reason", g.reason),
				zap.Int("trick", g.trickNum),
			)
		}
	default:
		g.trickNum++
		g.seq.Reanchor(winner)
		if len(done) > 0 {
			outcome.Kind = OutcomeTaskCompleted
		} else {
			outcome.Kind = OutcomeTrickResolved
		}
	}
	return outcome
}

// trickCannotFill reports whether another complete trick is impossible. Decks
// that do not divide evenly leave the earlier seats holding extra cards that
// can never ride a full trick once any seat runs out.
func (g *Game) trickCannotFill() bool {
	for _, hand := range g.hands {
		if len(hand) == 0 {
			return true
		}
	}
	return false
}

// LegalMoves enumerates the cards the seat may play right now. Only the
// current seat of a live game has legal moves.
func (g *Game) LegalMoves(seat int) []Card {
	if g.state != StateTrickInProgress || seat != g.seq.Current() {
		return nil
	}
	return LegalMoves(g.hands[seat], g.counters[seat], g.trick)
}

// CurrentPlayer returns the seat expected to act, or -1 once terminal.
func (g *Game) CurrentPlayer() int {
	if g.state != StateTrickInProgress {
		return -1
	}
	return g.seq.Current()
}

// IsTerminal reports whether the game has ended.
func (g *Game) IsTerminal() bool {
	return g.state != StateTrickInProgress
}

func (g *Game) terminalOutcome() TurnOutcome {
	outcome := TurnOutcome{TrickWinner: -1}
	switch g.state {
	case StateWon:
		outcome.Kind = OutcomeWon
	case StateLost:
		outcome.Kind = OutcomeLost
		outcome.Failure = g.failure
	}
	return outcome
}

func (g *Game) removeFromHand(seat int, card Card) {
	hand := g.hands[seat]
	for i, held := range hand {
		if held == card {
			g.hands[seat] = append(hand[:i], hand[i+1:]...)
			g.counters[seat].Remove(card.Suit)
			return
		}
	}
}

func (g *Game) publish(eventType rules.EventType, seat int, card string, winner int) {
	event := rules.NewEvent(eventType, g.id, seat)
	event.Card = card
	event.Winner = winner
	event.Trick = g.trickNum
	g.bus.Publish(event)
}

func containsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

// ID returns the game identifier assigned at creation.
func (g *Game) ID() string { return g.id }

// Config returns the configuration the game was dealt with.
func (g *Game) Config() Config { return g.cfg }

// Seed returns the seed of the game's random source.
func (g *Game) Seed() int64 { return g.seed }

// State returns the lifecycle phase.
func (g *Game) State() State { return g.state }

// Commander returns the seat that led the first trick.
func (g *Game) Commander() int { return g.commander }

// TrickNumber returns the 1-based number of the trick in progress, or of the
// final trick once terminal.
func (g *Game) TrickNumber() int { return g.trickNum }

// Hand returns a copy of the seat's current hand.
func (g *Game) Hand(seat int) []Card {
	return append([]Card(nil), g.hands[seat]...)
}

// SuitCount returns how many cards of the suit the seat still holds.
func (g *Game) SuitCount(seat int, suit Suit) int {
	return g.counters[seat].Count(suit)
}

// Trick returns a copy of the open trick in play order.
func (g *Game) Trick() []Play {
	return append([]Play(nil), g.trick...)
}

// Discards returns a copy of all cards from resolved tricks.
func (g *Game) Discards() []Card {
	return append([]Card(nil), g.discards...)
}

// OpenTasks returns the unresolved tasks.
func (g *Game) OpenTasks() []Task { return g.tasks.Open() }

// CompletedTasks returns fulfilled tasks in completion order.
func (g *Game) CompletedTasks() []Task { return g.tasks.Completed() }

// Failure returns the losing diagnostics, or nil.
func (g *Game) Failure() *TaskFailure { return g.failure }

// TerminationReason returns a human-readable reason once terminal.
func (g *Game) TerminationReason() string { return g.reason }

// Events exposes the game's event bus for subscription.
func (g *Game) Events() *rules.EventBus { return g.bus }

// PlayLog returns every play applied so far, in order.
func (g *Game) PlayLog() []Play {
	return append([]Play(nil), g.playLog...)
}

// StartedAt returns the wall-clock creation time.
func (g *Game) StartedAt() time.Time { return g.startedAt }
