package game

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Suit identifies one of the four color suits or the rocket trump suit.
type Suit int8

const (
	SuitBlue Suit = iota
	SuitPink
	SuitGreen
	SuitYellow
	SuitRocket
)

// colorSuits is the fixed, configuration-independent suit order. A
// configuration with N colors uses the first N entries.
var colorSuits = [...]Suit{SuitBlue, SuitPink, SuitGreen, SuitYellow}

// MaxColors is the number of distinct color suits available.
const MaxColors = len(colorSuits)

func (s Suit) String() string {
	switch s {
	case SuitBlue:
		return "B"
	case SuitPink:
		return "P"
	case SuitGreen:
		return "G"
	case SuitYellow:
		return "Y"
	case SuitRocket:
		return "R"
	default:
		return "?"
	}
}

// Rank is a card value within its suit, starting at 1.
type Rank int8

// Card is an immutable (suit, rank) value. Two cards are equal iff both
// fields match; Go struct equality is the identity rule.
type Card struct {
	Suit Suit
	Rank Rank
}

// IsTrump reports whether the card belongs to the rocket suit.
func (c Card) IsTrump() bool {
	return c.Suit == SuitRocket
}

func (c Card) String() string {
	return c.Suit.String() + strconv.Itoa(int(c.Rank))
}

// Less orders cards suit-major, rank-minor. This ordering is used for hand
// display and canonical serialization only; trick resolution has its own rule.
func (c Card) Less(o Card) bool {
	if c.Suit != o.Suit {
		return c.Suit < o.Suit
	}
	return c.Rank < o.Rank
}

// ParseCard parses the display form produced by Card.String, e.g. "B5" or "R2".
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("parse card %q: too short", s)
	}
	var suit Suit
	switch s[0] {
	case 'B':
		suit = SuitBlue
	case 'P':
		suit = SuitPink
	case 'G':
		suit = SuitGreen
	case 'Y':
		suit = SuitYellow
	case 'R':
		suit = SuitRocket
	default:
		return Card{}, fmt.Errorf("parse card %q: unknown suit %q", s, s[0])
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil || rank < 1 {
		return Card{}, fmt.Errorf("parse card %q: invalid rank", s)
	}
	return Card{Suit: suit, Rank: Rank(rank)}, nil
}

// SortCards sorts a hand in place, suit-major, rank-minor.
func SortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Less(cards[j]) })
}

// ErrInvalidConfig is the base error for configurations rejected at game
// creation. The wrapped message carries the specific violation.
var ErrInvalidConfig = errors.New("invalid game configuration")

// Config holds the parameters that define one game of The Crew.
type Config struct {
	Colors  int `mapstructure:"colors" json:"colors"`
	Ranks   int `mapstructure:"ranks" json:"ranks"`
	Rockets int `mapstructure:"rockets" json:"rockets"`
	Players int `mapstructure:"players" json:"players"`
	Tasks   int `mapstructure:"tasks" json:"tasks"`
}

// DefaultConfig returns the standard setup: 4 color suits of 9 ranks, 4
// rockets, 3 players, 3 tasks.
func DefaultConfig() Config {
	return Config{Colors: 4, Ranks: 9, Rockets: 4, Players: 3, Tasks: 3}
}

// DeckSize returns the number of cards the configuration produces.
func (c Config) DeckSize() int {
	return c.Colors*c.Ranks + c.Rockets
}

// Validate rejects configurations that cannot produce a playable game.
func (c Config) Validate() error {
	if c.Players <= 1 {
		return fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidConfig, c.Players)
	}
	if c.Colors < 1 || c.Colors > MaxColors {
		return fmt.Errorf("%w: colors must be between 1 and %d, got %d", ErrInvalidConfig, MaxColors, c.Colors)
	}
	if c.Ranks < 1 {
		return fmt.Errorf("%w: ranks must be at least 1, got %d", ErrInvalidConfig, c.Ranks)
	}
	if c.Rockets < 0 {
		return fmt.Errorf("%w: rockets must not be negative, got %d", ErrInvalidConfig, c.Rockets)
	}
	if c.Tasks < 0 {
		return fmt.Errorf("%w: tasks must not be negative, got %d", ErrInvalidConfig, c.Tasks)
	}
	if c.Tasks > c.Colors*c.Ranks {
		return fmt.Errorf("%w: %d tasks exceed %d eligible task cards", ErrInvalidConfig, c.Tasks, c.Colors*c.Ranks)
	}
	if c.DeckSize() < c.Players {
		return fmt.Errorf("%w: deck of %d cards cannot serve %d players", ErrInvalidConfig, c.DeckSize(), c.Players)
	}
	return nil
}

// Catalog enumerates the full card universe for a configuration: one card per
// (color suit, rank) pair plus one rocket per rank 1..Rockets. The second
// return value lists the task-eligible cards, which are exactly the color
// cards; rockets are never task targets. Pure function of the configuration.
func Catalog(cfg Config) (playing, taskEligible []Card) {
	playing = make([]Card, 0, cfg.DeckSize())
	taskEligible = make([]Card, 0, cfg.Colors*cfg.Ranks)
	for _, suit := range colorSuits[:cfg.Colors] {
		for rank := 1; rank <= cfg.Ranks; rank++ {
			card := Card{Suit: suit, Rank: Rank(rank)}
			playing = append(playing, card)
			taskEligible = append(taskEligible, card)
		}
	}
	for rank := 1; rank <= cfg.Rockets; rank++ {
		playing = append(playing, Card{Suit: SuitRocket, Rank: Rank(rank)})
	}
	return playing, taskEligible
}
