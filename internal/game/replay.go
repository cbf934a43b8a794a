package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Replay is the complete recipe for rebuilding a game: the seed and
// configuration fix the deal, and the recorded plays fix everything else.
type Replay struct {
	GameID   string
	Seed     int64
	Config   Config
	Plays    []Play
	Checksum string // final-state checksum, set when the game ends
}

// NewReplay creates an empty replay for a game.
func NewReplay(gameID string, seed int64, cfg Config) *Replay {
	return &Replay{
		GameID: gameID,
		Seed:   seed,
		Config: cfg,
		Plays:  make([]Play, 0, cfg.DeckSize()),
	}
}

// RecordPlay appends one applied play.
func (r *Replay) RecordPlay(play Play) {
	r.Plays = append(r.Plays, play)
}

// Resimulate rebuilds the game from scratch and re-applies every recorded
// play. When the replay carries a final checksum, the rebuilt state is
// verified against it.
func (r *Replay) Resimulate() (*Game, error) {
	g, err := NewGame(r.GameID, r.Config, r.Seed, nil)
	if err != nil {
		return nil, fmt.Errorf("resimulate %s: %w", r.GameID, err)
	}
	for i, play := range r.Plays {
		if _, err := g.Apply(play.Seat, play.Card); err != nil {
			return nil, fmt.Errorf("resimulate %s: play %d (%s by seat %d): %w",
				r.GameID, i, play.Card, play.Seat, err)
		}
	}
	if r.Checksum != "" && g.Checksum() != r.Checksum {
		return nil, fmt.Errorf("resimulate %s: state checksum mismatch", r.GameID)
	}
	return g, nil
}

// SaveToFile saves the replay to a gzipped gob file under directory.
func (r *Replay) SaveToFile(directory string) error {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", r.GameID))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := gob.NewEncoder(gzipWriter)
	metadata := replayMetadata{
		GameID:    r.GameID,
		Timestamp: time.Now(),
		Version:   1,
		PlayCount: len(r.Plays),
	}
	if err := encoder.Encode(&metadata); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// LoadReplayFromFile loads a replay previously written by SaveToFile.
func LoadReplayFromFile(directory, gameID string) (*Replay, error) {
	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", gameID))
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)
	var metadata replayMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if metadata.Version != 1 {
		return nil, fmt.Errorf("unsupported replay version: %d", metadata.Version)
	}
	var replay Replay
	if err := decoder.Decode(&replay); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &replay, nil
}

// replayMetadata describes a saved replay file.
type replayMetadata struct {
	GameID    string
	Timestamp time.Time
	Version   int
	PlayCount int
}

// ReplayRecorder manages replay recording across games.
type ReplayRecorder struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	replays map[string]*Replay
	enabled map[string]bool
	saveDir string
}

// NewReplayRecorder creates a recorder that saves into saveDir.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	return &ReplayRecorder{
		logger:  logger,
		replays: make(map[string]*Replay),
		enabled: make(map[string]bool),
		saveDir: saveDir,
	}
}

// StartRecording begins recording a game.
func (rr *ReplayRecorder) StartRecording(gameID string, seed int64, cfg Config) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.replays[gameID] = NewReplay(gameID, seed, cfg)
	rr.enabled[gameID] = true

	if rr.logger != nil {
		rr.logger.Info("started replay recording",
			zap.String("game_id", gameID),
			zap.Int64("seed", seed),
		)
	}
}

// StopRecording stops recording a game without discarding what was captured.
func (rr *ReplayRecorder) StopRecording(gameID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	rr.enabled[gameID] = false
}

// RecordPlay records one applied play if recording is enabled.
func (rr *ReplayRecorder) RecordPlay(gameID string, play Play) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if !rr.enabled[gameID] {
		return
	}
	replay := rr.replays[gameID]
	if replay == nil {
		return
	}
	replay.RecordPlay(play)
}

// Finalize stamps the final-state checksum onto the replay.
func (rr *ReplayRecorder) Finalize(gameID, checksum string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if replay := rr.replays[gameID]; replay != nil {
		replay.Checksum = checksum
	}
}

// GetReplay returns the in-memory replay for a game.
func (rr *ReplayRecorder) GetReplay(gameID string) (*Replay, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	replay, exists := rr.replays[gameID]
	return replay, exists
}

// SaveReplay saves a replay to disk and removes it from memory.
func (rr *ReplayRecorder) SaveReplay(gameID string) error {
	rr.mu.Lock()
	replay, exists := rr.replays[gameID]
	if !exists {
		rr.mu.Unlock()
		return fmt.Errorf("no replay found for game %s", gameID)
	}
	delete(rr.replays, gameID)
	delete(rr.enabled, gameID)
	rr.mu.Unlock()

	if err := replay.SaveToFile(rr.saveDir); err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}

	if rr.logger != nil {
		rr.logger.Info("saved replay to disk",
			zap.String("game_id", gameID),
			zap.Int("play_count", len(replay.Plays)),
			zap.String("directory", rr.saveDir),
		)
	}
	return nil
}

// LoadReplay loads a replay from disk.
func (rr *ReplayRecorder) LoadReplay(gameID string) (*Replay, error) {
	replay, err := LoadReplayFromFile(rr.saveDir, gameID)
	if err != nil {
		return nil, err
	}
	if rr.logger != nil {
		rr.logger.Info("loaded replay from disk",
			zap.String("game_id", gameID),
			zap.Int("play_count", len(replay.Plays)),
		)
	}
	return replay, nil
}

// ClearReplay drops a replay from memory without saving.
func (rr *ReplayRecorder) ClearReplay(gameID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	delete(rr.replays, gameID)
	delete(rr.enabled, gameID)
}

// IsRecording reports whether recording is enabled for a game.
func (rr *ReplayRecorder) IsRecording(gameID string) bool {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	return rr.enabled[gameID]
}
