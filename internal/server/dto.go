package server

import "github.com/schuaBob/crew-server-go/internal/game"

// WSMessage is the envelope for every websocket frame, both directions.
type WSMessage struct {
	Type   string       `json:"type"`
	GameID string       `json:"game_id,omitempty"`
	Seat   int          `json:"seat,omitempty"`
	Card   string       `json:"card,omitempty"`
	Seed   int64        `json:"seed,omitempty"`
	Config *game.Config `json:"config,omitempty"`
	Error  string       `json:"error,omitempty"`
	Data   any          `json:"data,omitempty"`
}

// StateDTO is the wire form of a game snapshot.
type StateDTO struct {
	GameID            string      `json:"game_id"`
	Config            game.Config `json:"config"`
	Seed              int64       `json:"seed"`
	State             string      `json:"state"`
	CurrentSeat       int         `json:"current_seat"`
	Commander         int         `json:"commander"`
	TrickNumber       int         `json:"trick_number"`
	Trick             []PlayDTO   `json:"trick"`
	Hands             [][]string  `json:"hands"`
	OpenTasks         []TaskDTO   `json:"open_tasks"`
	CompletedTasks    []TaskDTO   `json:"completed_tasks"`
	DiscardCount      int         `json:"discard_count"`
	TerminationReason string      `json:"termination_reason,omitempty"`
}

// PlayDTO is one trick entry.
type PlayDTO struct {
	Seat int    `json:"seat"`
	Card string `json:"card"`
}

// TaskDTO is one task assignment.
type TaskDTO struct {
	Card  string `json:"card"`
	Owner int    `json:"owner"`
}

// OutcomeDTO is the wire form of a turn outcome.
type OutcomeDTO struct {
	Kind           string    `json:"kind"`
	TrickWinner    int       `json:"trick_winner"`
	CompletedTasks []TaskDTO `json:"completed_tasks,omitempty"`
	OffendingCard  string    `json:"offending_card,omitempty"`
	IntendedOwner  int       `json:"intended_owner,omitempty"`
	ActualWinner   int       `json:"actual_winner,omitempty"`
}

func stateDTO(v game.View) StateDTO {
	dto := StateDTO{
		GameID:            v.GameID,
		Config:            v.Config,
		Seed:              v.Seed,
		State:             v.State.String(),
		CurrentSeat:       v.CurrentSeat,
		Commander:         v.Commander,
		TrickNumber:       v.TrickNumber,
		Trick:             make([]PlayDTO, 0, len(v.Trick)),
		Hands:             v.Hands,
		OpenTasks:         taskDTOs(v.OpenTasks),
		CompletedTasks:    taskDTOs(v.CompletedTasks),
		DiscardCount:      v.DiscardCount,
		TerminationReason: v.TerminationReason,
	}
	for _, play := range v.Trick {
		dto.Trick = append(dto.Trick, PlayDTO{Seat: play.Seat, Card: play.Card})
	}
	return dto
}

func taskDTOs(tasks []game.TaskView) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = TaskDTO{Card: t.Card, Owner: t.Owner}
	}
	return dtos
}

func outcomeDTO(o game.TurnOutcome) OutcomeDTO {
	dto := OutcomeDTO{
		Kind:        o.Kind.String(),
		TrickWinner: o.TrickWinner,
	}
	for _, task := range o.CompletedTasks {
		dto.CompletedTasks = append(dto.CompletedTasks, TaskDTO{Card: task.Card.String(), Owner: task.Owner})
	}
	if o.Failure != nil {
		dto.OffendingCard = o.Failure.Card.String()
		dto.IntendedOwner = o.Failure.Owner
		dto.ActualWinner = o.Failure.Winner
	}
	return dto
}
