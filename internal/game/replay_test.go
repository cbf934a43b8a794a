package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedGame plays a full game while recording it, returning both.
func recordedGame(t *testing.T, cfg Config, seed int64) (*Game, *Replay) {
	t.Helper()
	g, err := NewGame("replay-src", cfg, seed, nil)
	require.NoError(t, err)

	replay := NewReplay(g.ID(), seed, cfg)
	rng := rand.New(rand.NewSource(seed))
	for !g.IsTerminal() {
		seat := g.CurrentPlayer()
		legal := g.LegalMoves(seat)
		card := legal[rng.Intn(len(legal))]
		_, err := g.Apply(seat, card)
		require.NoError(t, err)
		replay.RecordPlay(Play{Seat: seat, Card: card})
	}
	replay.Checksum = g.Checksum()
	return g, replay
}

func TestReplayResimulate(t *testing.T) {
	original, replay := recordedGame(t, DefaultConfig(), 65535)

	rebuilt, err := replay.Resimulate()
	require.NoError(t, err)
	assert.Equal(t, original.State(), rebuilt.State())
	assert.Equal(t, original.Checksum(), rebuilt.Checksum())
	assert.Equal(t, original.CompletedTasks(), rebuilt.CompletedTasks())
}

func TestReplayDetectsTampering(t *testing.T) {
	_, replay := recordedGame(t, DefaultConfig(), 77)

	replay.Seed++
	_, err := replay.Resimulate()
	require.Error(t, err, "a different seed must not reproduce the recorded game")
}

func TestReplaySaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	_, replay := recordedGame(t, DefaultConfig(), 123)

	require.NoError(t, replay.SaveToFile(dir))

	loaded, err := LoadReplayFromFile(dir, replay.GameID)
	require.NoError(t, err)
	assert.Equal(t, replay.GameID, loaded.GameID)
	assert.Equal(t, replay.Seed, loaded.Seed)
	assert.Equal(t, replay.Config, loaded.Config)
	assert.Equal(t, replay.Plays, loaded.Plays)
	assert.Equal(t, replay.Checksum, loaded.Checksum)

	rebuilt, err := loaded.Resimulate()
	require.NoError(t, err)
	assert.True(t, rebuilt.IsTerminal())
}

func TestLoadReplayMissingFile(t *testing.T) {
	_, err := LoadReplayFromFile(t.TempDir(), "nope")
	require.Error(t, err)
}

func TestReplayRecorder(t *testing.T) {
	dir := t.TempDir()
	recorder := NewReplayRecorder(nil, dir)

	cfg := Config{Colors: 1, Ranks: 3, Rockets: 0, Players: 3, Tasks: 1}
	g, err := NewGame("rec", cfg, 9, nil)
	require.NoError(t, err)

	recorder.StartRecording(g.ID(), g.Seed(), cfg)
	assert.True(t, recorder.IsRecording(g.ID()))

	for !g.IsTerminal() {
		seat := g.CurrentPlayer()
		card := g.LegalMoves(seat)[0]
		_, err := g.Apply(seat, card)
		require.NoError(t, err)
		recorder.RecordPlay(g.ID(), Play{Seat: seat, Card: card})
	}
	recorder.Finalize(g.ID(), g.Checksum())

	replay, ok := recorder.GetReplay(g.ID())
	require.True(t, ok)
	assert.Len(t, replay.Plays, 3)

	require.NoError(t, recorder.SaveReplay(g.ID()))
	assert.False(t, recorder.IsRecording(g.ID()))

	loaded, err := recorder.LoadReplay(g.ID())
	require.NoError(t, err)
	rebuilt, err := loaded.Resimulate()
	require.NoError(t, err)
	assert.Equal(t, g.State(), rebuilt.State())
}

func TestReplayRecorderDisabled(t *testing.T) {
	recorder := NewReplayRecorder(nil, t.TempDir())
	recorder.StartRecording("x", 1, DefaultConfig())
	recorder.StopRecording("x")
	recorder.RecordPlay("x", Play{Seat: 0, Card: Card{SuitBlue, 1}})

	replay, ok := recorder.GetReplay("x")
	require.True(t, ok)
	assert.Empty(t, replay.Plays)
}
