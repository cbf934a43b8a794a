package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Checksum computes a deterministic SHA-256 over the full game state. Two
// games with the same seed, configuration, and play sequence produce the same
// checksum at every point, which is how replays and paired simulations prove
// they have not diverged.
func (g *Game) Checksum() string {
	data := g.buildDeterministicRepresentation()
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// buildDeterministicRepresentation creates a canonical string form of the
// state, independent of map iteration order and wall-clock fields.
func (g *Game) buildDeterministicRepresentation() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%s|%d|%d,%d,%d,%d,%d|%s|%d|%d|%d\n",
		g.id,
		g.seed,
		g.cfg.Colors, g.cfg.Ranks, g.cfg.Rockets, g.cfg.Players, g.cfg.Tasks,
		g.state,
		g.CurrentPlayer(),
		g.commander,
		g.trickNum,
	)

	for seat, hand := range g.hands {
		sorted := append([]Card(nil), hand...)
		SortCards(sorted)
		fmt.Fprintf(&buf, "HAND:%d:", seat)
		for _, card := range sorted {
			fmt.Fprintf(&buf, "%s,", card)
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("TRICK:")
	for _, play := range g.trick {
		fmt.Fprintf(&buf, "%d=%s,", play.Seat, play.Card)
	}
	buf.WriteByte('\n')

	discards := append([]Card(nil), g.discards...)
	SortCards(discards)
	buf.WriteString("DISCARDS:")
	for _, card := range discards {
		fmt.Fprintf(&buf, "%s,", card)
	}
	buf.WriteByte('\n')

	buf.WriteString("TASKS:")
	for _, task := range g.tasks.Open() {
		fmt.Fprintf(&buf, "%s=%d,", task.Card, task.Owner)
	}
	buf.WriteByte('\n')

	completed := g.tasks.Completed()
	sort.Slice(completed, func(i, j int) bool { return completed[i].Card.Less(completed[j].Card) })
	buf.WriteString("DONE:")
	for _, task := range completed {
		fmt.Fprintf(&buf, "%s=%d,", task.Card, task.Owner)
	}
	buf.WriteByte('\n')

	if g.failure != nil {
		fmt.Fprintf(&buf, "FAILURE:%s|%d|%d\n", g.failure.Card, g.failure.Owner, g.failure.Winner)
	}

	return buf.String()
}
