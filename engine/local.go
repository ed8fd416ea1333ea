// Package engine drives games between agents on top of the searcher.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"solver/game"
)

// Agent picks a move label for a position.
type Agent[T game.Position[T]] interface {
	Act(gs T) (string, error)
}

// LocalEngine alternates two agents on one board until the game ends.
type LocalEngine[T game.Position[T]] struct {
	// OnMove, when set, observes every played move.
	OnMove func(turn int, player game.Player, label string, state T)

	agents map[game.Player]Agent[T]
	state  T
}

func NewLocal[T game.Position[T]](maximizer, minimizer Agent[T], start T) *LocalEngine[T] {
	if maximizer == nil || minimizer == nil {
		panic("engine: both agents are required")
	}
	return &LocalEngine[T]{
		agents: map[game.Player]Agent[T]{
			game.Maximizer: maximizer,
			game.Minimizer: minimizer,
		},
		state: start,
	}
}

// State returns the current position.
func (e *LocalEngine[T]) State() T {
	return e.state
}

// Run plays the game out and returns its terminal value.
func (e *LocalEngine[T]) Run() (float64, error) {
	for turn := 1; ; turn++ {
		if v, over := e.state.Terminal(); over {
			log.Info().Float64("value", v).Int("turns", turn-1).Msg("game over")
			return v, nil
		}

		player := e.state.Player()
		label, err := e.agents[player].Act(e.state)
		if err != nil {
			return 0, fmt.Errorf("engine: turn %d (%s): %w", turn, player, err)
		}

		next, ok := applyLabel(e.state, label)
		if !ok {
			return 0, fmt.Errorf("engine: turn %d (%s): agent played unknown label %q", turn, player, label)
		}
		log.Info().Int("turn", turn).Stringer("player", player).Str("label", label).Msg("move played")

		e.state = next
		if e.OnMove != nil {
			e.OnMove(turn, player, label, next)
		}
	}
}

func applyLabel[T game.Position[T]](gs T, label string) (T, bool) {
	for _, a := range gs.Actions() {
		if a.Label == label {
			return a.Next, true
		}
	}
	var zero T
	return zero, false
}
