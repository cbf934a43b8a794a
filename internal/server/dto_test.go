package server

import (
	"testing"

	"github.com/schuaBob/crew-server-go/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDTOMirrorsView(t *testing.T) {
	g, err := game.NewGame("dto-game", game.DefaultConfig(), 31, nil)
	require.NoError(t, err)

	dto := stateDTO(g.View())
	assert.Equal(t, "dto-game", dto.GameID)
	assert.Equal(t, "IN_PROGRESS", dto.State)
	assert.Equal(t, g.CurrentPlayer(), dto.CurrentSeat)
	assert.Equal(t, g.Commander(), dto.Commander)
	assert.Len(t, dto.Hands, 3)
	assert.Len(t, dto.OpenTasks, 3)
	assert.Empty(t, dto.CompletedTasks)
	assert.Equal(t, 0, dto.DiscardCount)
}

func TestOutcomeDTOCarriesFailure(t *testing.T) {
	outcome := game.TurnOutcome{
		Kind:        game.OutcomeLost,
		TrickWinner: 0,
		Failure: &game.TaskFailure{
			Card:   game.Card{Suit: game.SuitBlue, Rank: 5},
			Owner:  2,
			Winner: 0,
		},
	}

	dto := outcomeDTO(outcome)
	assert.Equal(t, "LOST", dto.Kind)
	assert.Equal(t, "B5", dto.OffendingCard)
	assert.Equal(t, 2, dto.IntendedOwner)
	assert.Equal(t, 0, dto.ActualWinner)
}

func TestOutcomeDTOCompletedTasks(t *testing.T) {
	outcome := game.TurnOutcome{
		Kind:        game.OutcomeTaskCompleted,
		TrickWinner: 1,
		CompletedTasks: []game.Task{
			{Card: game.Card{Suit: game.SuitGreen, Rank: 2}, Owner: 1},
		},
	}

	dto := outcomeDTO(outcome)
	assert.Equal(t, "TASK_COMPLETED", dto.Kind)
	require.Len(t, dto.CompletedTasks, 1)
	assert.Equal(t, "G2", dto.CompletedTasks[0].Card)
	assert.Equal(t, 1, dto.CompletedTasks[0].Owner)
}
