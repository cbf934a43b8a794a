package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/schuaBob/crew-server-go/internal/bots"
	"github.com/schuaBob/crew-server-go/internal/game"
	"go.uber.org/zap"
)

var (
	games   = flag.Int("games", 100, "number of games to simulate")
	seed    = flag.Int64("seed", 65535, "seed of the first game; subsequent games increment it")
	colors  = flag.Int("colors", 4, "number of color suits")
	ranks   = flag.Int("ranks", 9, "ranks per color suit")
	rockets = flag.Int("rockets", 4, "number of rocket cards")
	players = flag.Int("players", 3, "number of players")
	tasks   = flag.Int("tasks", 3, "number of tasks")
	policy  = flag.String("policy", "random", "policy to play with: random or task-chaser")
	verbose = flag.Bool("v", false, "log every play")
)

func main() {
	flag.Parse()

	logCfg := zap.NewDevelopmentConfig()
	if !*verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := game.Config{
		Colors:  *colors,
		Ranks:   *ranks,
		Rockets: *rockets,
		Players: *players,
		Tasks:   *tasks,
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("bad game parameters", zap.Error(err))
	}

	wins, losses := 0, 0
	for i := 0; i < *games; i++ {
		gameSeed := *seed + int64(i)
		won, err := runGame(cfg, gameSeed, logger)
		if err != nil {
			logger.Fatal("simulation failed",
				zap.Int64("seed", gameSeed),
				zap.Error(err),
			)
		}
		if won {
			wins++
		} else {
			losses++
		}
	}

	logger.Info("simulation complete",
		zap.String("policy", *policy),
		zap.Int("games", *games),
		zap.Int("wins", wins),
		zap.Int("losses", losses),
		zap.Float64("win_rate", float64(wins)/float64(*games)),
	)
}

func runGame(cfg game.Config, gameSeed int64, logger *zap.Logger) (bool, error) {
	var gameLogger *zap.Logger
	if *verbose {
		gameLogger = logger
	}
	g, err := game.NewGame("sim-"+strconv.FormatInt(gameSeed, 10), cfg, gameSeed, gameLogger)
	if err != nil {
		return false, err
	}

	pol := newPolicy(*policy, gameSeed)
	for !g.IsTerminal() {
		seat := g.CurrentPlayer()
		legal := g.LegalMoves(seat)
		if len(legal) == 0 {
			return false, fmt.Errorf("seat %d has no legal moves in a live game", seat)
		}
		card := pol.ChooseCard(g, seat, legal)
		if _, err := g.Apply(seat, card); err != nil {
			return false, err
		}
	}

	if *verbose {
		logger.Info("game finished",
			zap.Int64("seed", gameSeed),
			zap.String("outcome", g.State().String()),
			zap.Int("tricks", g.TrickNumber()),
			zap.String("reason", g.TerminationReason()),
		)
	}
	return g.State() == game.StateWon, nil
}

func newPolicy(name string, seed int64) bots.Policy {
	switch name {
	case "task-chaser":
		return bots.NewTaskChaser(seed)
	default:
		return bots.NewRandom(seed)
	}
}
