package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"solver/game"
)

// search is the state of one search: the table, the RNG, and the
// per-chunk rollout tuning. It is owned by a single worker goroutine.
type search[T game.Position[T]] struct {
	params    MCParams
	table     *nodeTable[T]
	rng       *rand.Rand
	rootGs    T
	numRolls  int
	sqrtRolls float64
	metrics   MetricsCollector
}

// newSearch builds a search over rootGs seeded from cache. restrict,
// when non-nil, limits the root's children to the given positions
// (least-evil runs over the losing candidates only).
func newSearch[T game.Position[T]](rootGs T, params MCParams, cache *Cache[T], rng *rand.Rand, restrict []T, metrics MetricsCollector) *search[T] {
	s := &search[T]{
		params:    params,
		table:     newNodeTable(cache, params.ExtraCache),
		rng:       rng,
		rootGs:    rootGs,
		numRolls:  params.NumRolls,
		sqrtRolls: math.Sqrt(float64(params.NumRolls)),
		metrics:   metrics,
	}
	if cache.Len() > 0 {
		metrics.ReusedTree()
	}
	if restrict != nil {
		s.table.put(rootGs, &bud[T]{pending: restrict})
	}
	return s
}

// exploit is the c1 weight in effect at the given depth: uniform mode
// drops the mean term at the root so samples spread across moves.
func (s *search[T]) exploit(depth int) float64 {
	if s.params.Uniform && depth == 0 {
		return 0
	}
	return s.params.Exploitation
}

// advance performs one descent from gs: down the highest-priority
// trunk children to a bud, expand one child there, roll out, and
// propagate the score back up. It returns the Maximizer-scale delta
// for the parent and the node that now represents gs.
func (s *search[T]) advance(gs T, nd node[T], depth int) (float64, node[T]) {
	switch n := nd.(type) {
	case *inertTerminal[T]:
		return n.value * s.sqrtRolls, n
	case *provenTerminal[T]:
		return n.value * s.sqrtRolls, n
	case *bud[T]:
		if len(n.pending) > 0 {
			return s.expandLeaf(n), n
		}
		t := s.budToTrunk(gs, n, s.exploit(depth))
		s.table.put(gs, t)
		return s.advance(gs, t, depth)
	case *trunk[T]:
		return s.advanceTrunk(gs, n, depth)
	}
	panic("searcher: unknown node variant " + nd.variant())
}

// expandLeaf samples the bud's next pending child once: numRolls
// rollouts, the child registered in the table, the stats recorded on
// the bud's done list. The bud's own node in the table is unchanged
// in variant, so no put is needed.
func (s *search[T]) expandLeaf(b *bud[T]) float64 {
	ngs := b.pending[0]
	w := rollouts(s.numRolls, ngs, s.rng) / s.sqrtRolls
	s.metrics.AddRollouts(int64(s.numRolls))

	if v, ok := ngs.Terminal(); ok {
		if _, done := s.table.lookup(ngs); !done {
			if s.params.Inert {
				s.table.put(ngs, &inertTerminal[T]{value: v})
			} else {
				s.table.put(ngs, &provenTerminal[T]{value: v})
			}
		}
	} else if !s.table.has(ngs) {
		s.table.put(ngs, mkBud(ngs))
	}

	b.done = append(b.done, leafStat[T]{pos: ngs, wins: w, sqrtRolls: s.sqrtRolls})
	b.pending = b.pending[1:]
	return w
}

// advanceTrunk recurses into the highest-priority child and absorbs
// the outcome: proven-terminal children leave the queue and tighten
// worstcase (or decide the trunk outright when the mover can force
// their own bound); anything else is reinserted with a refreshed
// priority.
func (s *search[T]) advanceTrunk(gs T, t *trunk[T], depth int) (float64, node[T]) {
	pm := t.popMax()
	d, child := s.advance(pm.pmove, s.table.get(pm.pmove), depth+1)

	if term, ok := child.(*provenTerminal[T]); ok {
		player := gs.Player()
		if term.value == s.params.playerBound(player) {
			// The mover can force this child: the trunk is decided.
			children := make([]T, 0, 1+len(t.terminals)+t.moveq.Len())
			children = append(children, pm.pmove)
			children = append(children, t.terminals...)
			for _, rest := range t.moveq {
				children = append(children, rest.pmove)
			}
			won := &provenTerminal[T]{value: term.value, children: children}
			s.table.put(gs, won)
			return d, won
		}

		t.terminals = append(t.terminals, pm.pmove)
		t.worstcase = s.params.objective(player)(t.worstcase, term.value)
		if t.moveq.Len() == 0 {
			// Every child is proven: the trunk's value is the best
			// the mover can still get.
			decided := &provenTerminal[T]{value: t.worstcase, children: t.terminals}
			s.table.put(gs, decided)
			return d, decided
		}
	} else {
		pm.subsims += s.sqrtRolls
		pm.subwins += d
		pm.priority = s.priority(gs, s.exploit(depth), pm.subwins, pm.subsims)
		t.pushMove(pm)
	}

	t.sims += s.sqrtRolls
	t.wins += d
	return d, t
}

// retuneRolls recomputes the per-leaf rollout count from the root's
// accumulated sims. Called only at chunk boundaries so sqrtRolls is
// constant within a chunk and the trunk sums stay consistent.
func (s *search[T]) retuneRolls() {
	var sims float64
	if t, ok := s.table.get(s.rootGs).(*trunk[T]); ok {
		sims = t.sims
	}
	s.numRolls = int(sims/s.params.SimsPerRoll) + s.params.NumRolls
	s.sqrtRolls = math.Sqrt(float64(s.numRolls))
}
