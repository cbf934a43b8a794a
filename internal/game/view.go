package game

// View is an immutable snapshot of a game for external observers. Cards are
// rendered in display form so the snapshot carries no engine types that a
// consumer could mutate.
type View struct {
	GameID            string
	Config            Config
	Seed              int64
	State             State
	CurrentSeat       int
	Commander         int
	TrickNumber       int
	Trick             []PlayView
	Hands             [][]string
	OpenTasks         []TaskView
	CompletedTasks    []TaskView
	DiscardCount      int
	TerminationReason string
}

// PlayView is one trick entry in play order.
type PlayView struct {
	Seat int
	Card string
}

// TaskView is one task assignment.
type TaskView struct {
	Card  string
	Owner int
}

// View builds a snapshot of the current state.
func (g *Game) View() View {
	v := View{
		GameID:            g.id,
		Config:            g.cfg,
		Seed:              g.seed,
		State:             g.state,
		CurrentSeat:       g.CurrentPlayer(),
		Commander:         g.commander,
		TrickNumber:       g.trickNum,
		Trick:             make([]PlayView, 0, len(g.trick)),
		Hands:             make([][]string, len(g.hands)),
		OpenTasks:         taskViews(g.tasks.Open()),
		CompletedTasks:    taskViews(g.tasks.Completed()),
		DiscardCount:      len(g.discards),
		TerminationReason: g.reason,
	}
	for _, play := range g.trick {
		v.Trick = append(v.Trick, PlayView{Seat: play.Seat, Card: play.Card.String()})
	}
	for seat, hand := range g.hands {
		cards := make([]string, len(hand))
		for i, card := range hand {
			cards[i] = card.String()
		}
		v.Hands[seat] = cards
	}
	return v
}

func taskViews(tasks []Task) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = TaskView{Card: t.Card.String(), Owner: t.Owner}
	}
	return views
}
