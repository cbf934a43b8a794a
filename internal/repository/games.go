package repository

import (
	"context"
	"fmt"
	"time"
)

// GameRecord is one finished game's summary row.
type GameRecord struct {
	ID         string
	Seed       int64
	Colors     int
	Ranks      int
	Rockets    int
	Players    int
	Tasks      int
	Outcome    string
	Tricks     int
	Reason     string
	StartedAt  time.Time
	FinishedAt time.Time
}

const gameResultsSchema = `
CREATE TABLE IF NOT EXISTS game_results (
	id          TEXT PRIMARY KEY,
	seed        BIGINT NOT NULL,
	colors      INT NOT NULL,
	ranks       INT NOT NULL,
	rockets     INT NOT NULL,
	players     INT NOT NULL,
	tasks       INT NOT NULL,
	outcome     TEXT NOT NULL,
	tricks      INT NOT NULL,
	reason      TEXT NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
)`

// GameRepository persists finished game results.
type GameRepository struct {
	db *DB
}

// NewGameRepository creates a repository over the shared pool.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

// EnsureSchema creates the results table when missing.
func (r *GameRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, gameResultsSchema); err != nil {
		return fmt.Errorf("failed to ensure game_results schema: %w", err)
	}
	return nil
}

// SaveResult inserts one finished game.
func (r *GameRepository) SaveResult(ctx context.Context, rec GameRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO game_results
			(id, seed, colors, ranks, rockets, players, tasks, outcome, tricks, reason, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.Seed, rec.Colors, rec.Ranks, rec.Rockets, rec.Players,
		rec.Tasks, rec.Outcome, rec.Tricks, rec.Reason, rec.StartedAt, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game result %s: %w", rec.ID, err)
	}
	return nil
}

// GetResult fetches one finished game by ID.
func (r *GameRepository) GetResult(ctx context.Context, id string) (GameRecord, error) {
	var rec GameRecord
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, seed, colors, ranks, rockets, players, tasks, outcome, tricks, reason, started_at, finished_at
		FROM game_results WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Seed, &rec.Colors, &rec.Ranks, &rec.Rockets, &rec.Players,
		&rec.Tasks, &rec.Outcome, &rec.Tricks, &rec.Reason, &rec.StartedAt, &rec.FinishedAt)
	if err != nil {
		return GameRecord{}, fmt.Errorf("failed to load game result %s: %w", id, err)
	}
	return rec, nil
}
