package searcher

import (
	"golang.org/x/exp/rand"

	"solver/game"
)

// rollout plays uniformly random moves from gs until the game ends and
// returns the terminal value. Uniform play is intentional: it keeps
// the estimator unbiased for the UCB machinery above it.
func rollout[T game.Position[T]](gs T, rng *rand.Rand) float64 {
	for {
		if v, ok := gs.Terminal(); ok {
			return v
		}
		acts := gs.Actions()
		if len(acts) == 0 {
			panic("searcher: non-terminal position with no actions")
		}
		gs = acts[rng.Intn(len(acts))].Next
	}
}

// rollouts sums n independent rollouts from the same position.
func rollouts[T game.Position[T]](n int, gs T, rng *rand.Rand) float64 {
	var sum float64
	for i := 0; i < n; i++ {
		sum += rollout(gs, rng)
	}
	return sum
}
