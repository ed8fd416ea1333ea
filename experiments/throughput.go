// Package experiments measures engine throughput across
// configurations by self-play, persisting per-move search metrics.
package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"solver/engine"
	"solver/searcher"
	"solver/tictactoe"
)

// RunThroughput plays numGames of tictactoe self-play per config and
// writes the per-move metrics of both sides to out.
func RunThroughput(configs []Config, numGames int, out *Writer) error {
	start := time.Now()

	gameID := 0
	for _, cfg := range configs {
		log.Info().Str("config", cfg.Name).Int("games", numGames).Msg("running matchup")
		for i := 0; i < numGames; i++ {
			gameID++
			rows, value, err := playGame(int32(gameID), cfg)
			if err != nil {
				return fmt.Errorf("config %s game %d: %w", cfg.Name, i+1, err)
			}
			log.Info().Str("config", cfg.Name).Int("game", gameID).Float64("value", value).Msg("game finished")
			if err := out.WriteGame(gameID, rows); err != nil {
				return err
			}
		}
	}

	return out.WriteSetup(Setup{
		Configs:   configs,
		NumGames:  numGames,
		StartTime: start,
		EndTime:   time.Now(),
		Duration:  time.Since(start),
	})
}

// metered wraps an engine so every move contributes a row.
type metered struct {
	mcts  *searcher.MCTS[tictactoe.Position]
	roots int
	game  int32
	step  *int32
	rows  *[]MoveRow
}

func (a *metered) Act(gs tictactoe.Position) (string, error) {
	var label string
	var err error
	if a.roots > 1 {
		label, err = a.mcts.ActParallel(gs, a.roots)
	} else {
		label, err = a.mcts.Act(gs)
	}
	if err != nil {
		return "", err
	}

	*a.step++
	m := a.mcts.Metrics()
	*a.rows = append(*a.rows, MoveRow{
		Game:       a.game,
		Step:       *a.step,
		Player:     gs.Player().String(),
		Label:      label,
		DurationMs: m.Duration.Milliseconds(),
		Descents:   m.Descents,
		Rollouts:   m.Rollouts,
		Chunks:     m.Chunks,
		Sims:       m.Sims,
		TreeReused: m.TreeReused,
	})
	return label, nil
}

func playGame(gameID int32, cfg Config) ([]MoveRow, float64, error) {
	var rows []MoveRow
	var step int32

	newAgent := func() engine.Agent[tictactoe.Position] {
		options := []searcher.Option{searcher.WithDuration(cfg.Duration)}
		if cfg.MaxSim > 0 {
			options = append(options, searcher.WithMaxSim(cfg.MaxSim))
		}
		m := searcher.NewMCTS[tictactoe.Position](options...).CollectMetrics()
		return &metered{mcts: m, roots: cfg.Roots, game: gameID, step: &step, rows: &rows}
	}

	e := engine.NewLocal(newAgent(), newAgent(), tictactoe.New())
	value, err := e.Run()
	if err != nil {
		return nil, 0, err
	}
	return rows, value, nil
}
