package searcher

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"solver/game"
)

// ErrNoMove is returned when the root has no legal move to offer:
// a terminal or degenerate position.
var ErrNoMove = errors.New("searcher: no legal move")

// MCTS is the engine facade. It owns the parameters and the carry-over
// cache threaded from one move to the next. BestActions and LessEvil
// may be replaced before the first call; nil picks the defaults.
type MCTS[T game.Position[T]] struct {
	BestActions Selector[T]
	LessEvil    LessEvil[T]

	params  MCParams
	cache   *Cache[T]
	seed    uint64
	lastRun SearchMetrics
	collect bool
}

func NewMCTS[T game.Position[T]](options ...Option) *MCTS[T] {
	params := DefaultParams()
	for _, option := range options {
		option(&params)
	}
	m := &MCTS[T]{params: params, seed: params.Seed}
	if m.seed == 0 {
		m.seed = uint64(time.Now().UnixNano())
	}
	return m
}

// CollectMetrics turns on per-search accounting, readable afterwards
// via Metrics.
func (m *MCTS[T]) CollectMetrics() *MCTS[T] {
	m.collect = true
	return m
}

// Metrics returns the accounting of the last completed search.
func (m *MCTS[T]) Metrics() SearchMetrics {
	return m.lastRun
}

func (m *MCTS[T]) Params() MCParams {
	return m.params
}

// newRng hands out a generator with a fresh stream; successive calls
// stay disjoint so parallel roots never share a sequence.
func (m *MCTS[T]) newRng() *rand.Rand {
	seed := m.seed
	m.seed += 0x9e3779b97f4a7c15
	return rand.New(rand.NewSource(seed))
}

func (m *MCTS[T]) collector() MetricsCollector {
	if m.collect {
		return NewMetricsCollector()
	}
	return NewNoMetricsCollector()
}

// Act searches gs and plays a move: it returns the chosen label and
// keeps the part of the tree reachable through it for the next call.
func (m *MCTS[T]) Act(gs T) (string, error) {
	if _, over := gs.Terminal(); over {
		return "", ErrNoMove
	}
	acts := gs.Actions()
	if len(acts) == 0 {
		return "", ErrNoMove
	}
	if len(acts) == 1 {
		// A forced move needs no search; the cache still narrows.
		m.cache = m.cache.filter(game.FilterFor(gs, acts[0].Label))
		return acts[0].Label, nil
	}

	collector := m.collector()
	collector.Start()
	s := newSearch(gs, m.params, m.cache, m.newRng(), nil, collector)
	join := s.advanceUntil()
	sleepFor(m.params.Duration, m.params.Background)
	if err := join(); err != nil {
		return "", err
	}
	m.lastRun = collector.Complete(rootSims[T](s.table.get(gs)))

	chosen, err := m.choose(gs, s)
	if err != nil {
		return "", err
	}

	m.cache = s.table.snapshot().filter(game.FilterFor(gs, chosen.Label))
	log.Debug().
		Str("label", chosen.Label).
		Stringer("player", gs.Player()).
		Int("cache", m.cache.Len()).
		Msg("move chosen")
	return chosen.Label, nil
}

// choose applies the root policy to a finished search.
func (m *MCTS[T]) choose(gs T, s *search[T]) (game.Action[T], error) {
	selector := m.BestActions
	if selector == nil {
		selector = defaultBestActions[T]
	}
	candidates := selector(s)
	switch len(candidates) {
	case 0:
		return game.Action[T]{}, ErrNoMove
	case 1:
		return candidates[0], nil
	}

	lessEvil := m.LessEvil
	if lessEvil == nil {
		lessEvil = m.defaultLessEvil
	}
	return lessEvil(gs, candidates), nil
}

// Think ponders gs in the background. The returned stop function joins
// the worker and folds the tree into the carry-over cache, so a
// following Act starts warm.
func (m *MCTS[T]) Think(gs T) func() error {
	if _, over := gs.Terminal(); over || gs.NumActions() == 0 {
		return func() error { return nil }
	}

	s := newSearch(gs, m.params, m.cache, m.newRng(), nil, NewNoMetricsCollector())
	join := s.advanceUntil()
	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			err = join()
			if err == nil {
				m.cache = s.table.snapshot()
			}
		})
		return err
	}
}

// ActParallel runs n independent searches from gs with disjoint RNG
// streams and node tables, then selects by lower confidence bound over
// the per-move aggregates.
func (m *MCTS[T]) ActParallel(gs T, n int) (string, error) {
	if n <= 1 {
		return m.Act(gs)
	}
	if _, over := gs.Terminal(); over {
		return "", ErrNoMove
	}
	acts := gs.Actions()
	if len(acts) == 0 {
		return "", ErrNoMove
	}
	if len(acts) == 1 {
		m.cache = m.cache.filter(game.FilterFor(gs, acts[0].Label))
		return acts[0].Label, nil
	}

	// Roots share nothing: the cache's nodes are mutable, so seeding
	// more than one live table from it would race.
	searches := make([]*search[T], n)
	joins := make([]func() error, n)
	for i := range searches {
		searches[i] = newSearch[T](gs, m.params, nil, m.newRng(), nil, NewNoMetricsCollector())
		joins[i] = searches[i].advanceUntil()
	}
	sleepFor(m.params.Duration, m.params.Background)
	var firstErr error
	for _, join := range joins {
		if err := join(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return "", firstErr
	}

	candidates := m.combine(gs, acts, searches)
	chosen := candidates[0]
	if len(candidates) > 1 {
		lessEvil := m.LessEvil
		if lessEvil == nil {
			lessEvil = m.defaultLessEvil
		}
		chosen = lessEvil(gs, candidates)
	}

	m.cache = searches[0].table.snapshot().filter(game.FilterFor(gs, chosen.Label))
	return chosen.Label, nil
}

// combine aggregates per-move wins and sims across the roots and
// applies the LCB selector on the sums. A move proven terminal in any
// root keeps its proven value instead of the sampled bound.
func (m *MCTS[T]) combine(gs T, acts []game.Action[T], searches []*search[T]) []game.Action[T] {
	player := gs.Player()
	logA := math.Log(float64(gs.NumActions()))

	bestval := math.Inf(-1)
	best := acts[0]
	found := false
	for _, a := range acts {
		var wins, sims float64
		proven := false
		var provenVal float64
		for _, s := range searches {
			if nd, cached := s.table.lookup(a.Next); cached {
				if v, isTerm := terminalValue[T](nd); isTerm {
					proven = true
					provenVal = v
					continue
				}
			}
			if root, ok := s.table.get(gs).(*trunk[T]); ok {
				if pm, inQueue := root.moveq.find(a.Next); inQueue {
					wins += pm.subwins
					sims += pm.subsims
				}
			}
		}

		var v float64
		switch {
		case proven:
			v = perspective(player, provenVal)
		case sims > 0:
			abs := m.params.Exploitation*(wins/sims) -
				m.params.Exploration*math.Sqrt(logA/sims)
			v = perspective(player, abs)
		default:
			continue
		}
		if v > bestval {
			bestval = v
			best = a
			found = true
		}
	}

	if !found {
		return acts
	}
	return []game.Action[T]{best}
}

// sleepFor blocks the foreground for the soft deadline. Foreground
// waiting only makes sense when a worker is actually running.
func sleepFor(d time.Duration, background bool) {
	if background && d > 0 {
		time.Sleep(d)
	}
}
