package game

// Play is one card laid into the open trick by a seat.
type Play struct {
	Seat int
	Card Card
}

// ResolveTrick determines the winner of a completed trick and the card that
// won it. The first card sets the lead suit. A rocket beats any non-rocket
// regardless of rank; once a rocket has been played only a higher rocket can
// take the trick. Without rockets the highest rank in the lead suit wins.
// Ranks are unique within a suit by construction, so ties cannot occur.
func ResolveTrick(plays []Play) (winner int, best Card) {
	leadSuit := plays[0].Card.Suit
	best = plays[0].Card
	winner = plays[0].Seat
	trumpActive := leadSuit == SuitRocket

	for _, play := range plays[1:] {
		card := play.Card
		switch {
		case !trumpActive && card.Suit == SuitRocket:
			trumpActive = true
			best = card
			winner = play.Seat
		case trumpActive && card.Suit == SuitRocket && card.Rank > best.Rank:
			best = card
			winner = play.Seat
		case !trumpActive && card.Suit == leadSuit && card.Rank > best.Rank:
			best = card
			winner = play.Seat
		}
	}
	return winner, best
}

// LegalMoves computes the subset of hand that may be played onto the open
// trick. Leading allows the whole hand. Otherwise a player holding the lead
// suit must follow it, rockets included among the rest only when the player
// is void in the lead suit. Pure function; re-derivable at any point.
func LegalMoves(hand []Card, counts *SuitCounter, trick []Play) []Card {
	if len(trick) == 0 {
		return append([]Card(nil), hand...)
	}
	leadSuit := trick[0].Card.Suit
	if counts.Count(leadSuit) == 0 {
		return append([]Card(nil), hand...)
	}
	legal := make([]Card, 0, counts.Count(leadSuit))
	for _, card := range hand {
		if card.Suit == leadSuit {
			legal = append(legal, card)
		}
	}
	return legal
}

// SuitCounter tracks how many cards of each suit remain in a hand, kept in
// lockstep with the hand for O(1) follow-suit checks.
type SuitCounter struct {
	counts [MaxColors + 1]int
}

// NewSuitCounter builds a counter for an initial hand.
func NewSuitCounter(hand []Card) *SuitCounter {
	var sc SuitCounter
	for _, card := range hand {
		sc.counts[card.Suit]++
	}
	return &sc
}

// Count returns the number of held cards of the given suit.
func (sc *SuitCounter) Count(suit Suit) int {
	return sc.counts[suit]
}

// Remove records that one card of the suit left the hand.
func (sc *SuitCounter) Remove(suit Suit) {
	sc.counts[suit]--
}
