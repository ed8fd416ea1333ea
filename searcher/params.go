package searcher

import (
	"math"
	"time"

	"solver/game"
)

// MCParams holds the tunables of a search. Zero values are never used
// directly; construct via DefaultParams and adjust with options.
type MCParams struct {
	Exploitation  float64       // UCB mean weight (c1)
	Exploration   float64       // UCB spread weight (c2)
	Alpha         float64       // lower value bound
	Beta          float64       // upper value bound
	Duration      time.Duration // soft search deadline
	MaxSim        float64       // hard cap on root sims
	NumRolls      int           // base rollouts per leaf expansion
	SimsPerRoll   float64       // root sims per extra rollout
	ExtraCache    int           // table size hint above carry-over
	AdvanceChunks int           // descents per cancellation check
	Background    bool          // false turns the search into a no-op
	Uniform       bool          // exploration-only selection at the root
	Inert         bool          // new terminals must not prune parents
	Seed          uint64        // RNG seed; 0 seeds from the clock
}

func DefaultParams() MCParams {
	return MCParams{
		Exploitation:  1,
		Exploration:   math.Sqrt(8),
		Alpha:         -1,
		Beta:          1,
		Duration:      time.Second,
		MaxSim:        1e8,
		NumRolls:      1,
		SimsPerRoll:   1e6,
		ExtraCache:    100000,
		AdvanceChunks: 100,
		Background:    true,
	}
}

type Option func(p *MCParams)

func WithExploitation(c1 float64) Option {
	return func(p *MCParams) {
		p.Exploitation = c1
	}
}

func WithExploration(c2 float64) Option {
	return func(p *MCParams) {
		if c2 >= 0 {
			p.Exploration = c2
		}
	}
}

func WithBounds(alpha, beta float64) Option {
	return func(p *MCParams) {
		if alpha < beta {
			p.Alpha = alpha
			p.Beta = beta
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(p *MCParams) {
		if duration > 0 {
			p.Duration = duration
		}
	}
}

func WithMaxSim(maxsim float64) Option {
	return func(p *MCParams) {
		if maxsim > 0 {
			p.MaxSim = maxsim
		}
	}
}

func WithNumRolls(n int) Option {
	return func(p *MCParams) {
		if n > 0 {
			p.NumRolls = n
		}
	}
}

func WithSimsPerRoll(sims float64) Option {
	return func(p *MCParams) {
		if sims > 0 {
			p.SimsPerRoll = sims
		}
	}
}

func WithExtraCache(extra int) Option {
	return func(p *MCParams) {
		if extra >= 0 {
			p.ExtraCache = extra
		}
	}
}

func WithAdvanceChunks(chunks int) Option {
	return func(p *MCParams) {
		if chunks > 0 {
			p.AdvanceChunks = chunks
		}
	}
}

func WithBackground(background bool) Option {
	return func(p *MCParams) {
		p.Background = background
	}
}

func WithUniform(uniform bool) Option {
	return func(p *MCParams) {
		p.Uniform = uniform
	}
}

func WithInert(inert bool) Option {
	return func(p *MCParams) {
		p.Inert = inert
	}
}

func WithSeed(seed uint64) Option {
	return func(p *MCParams) {
		p.Seed = seed
	}
}

// playerBound is the best value pl could hope for.
func (p MCParams) playerBound(pl game.Player) float64 {
	if pl == game.Maximizer {
		return p.Beta
	}
	return p.Alpha
}

// objective folds values the way pl prefers them.
func (p MCParams) objective(pl game.Player) func(a, b float64) float64 {
	if pl == game.Maximizer {
		return math.Max
	}
	return math.Min
}

// perspective maps a Maximizer-scale value onto pl's own scale.
func perspective(pl game.Player, v float64) float64 {
	if pl == game.Minimizer {
		return -v
	}
	return v
}
