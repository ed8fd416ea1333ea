package searcher

import (
	"container/heap"
	"math"

	"solver/game"
)

// node is the tagged union over a position's search state. Variants
// only ever refine: a bud becomes a trunk or a terminal, a trunk a
// terminal, and terminals are final.
type node[T game.Position[T]] interface {
	variant() string
}

// inertTerminal is a finished position whose value must not be used
// as a proof against its parent. Only least-evil searches create it.
type inertTerminal[T game.Position[T]] struct {
	value float64
}

func (*inertTerminal[T]) variant() string { return "inert-terminal" }

// provenTerminal is a finished position with a proven value. Its
// presence may collapse the parent. children carries the child
// positions of a collapsed trunk for move replay; it is nil for
// positions that were terminal on their own.
type provenTerminal[T game.Position[T]] struct {
	value    float64
	children []T
}

func (*provenTerminal[T]) variant() string { return "terminal" }

// leafStat records one expansion of a child: the rollout score sum
// pre-divided by sqrt(numrolls), and sqrt(numrolls) itself. Storing
// the pair in this normalized form keeps the UCB arithmetic scale-free
// when the per-leaf rollout count grows during the search.
type leafStat[T game.Position[T]] struct {
	pos       T
	wins      float64
	sqrtRolls float64
}

// bud is a partially expanded position: done holds the children
// sampled exactly once, pending the children not yet sampled.
type bud[T game.Position[T]] struct {
	done    []leafStat[T]
	pending []T
}

func (*bud[T]) variant() string { return "bud" }

func mkBud[T game.Position[T]](gs T) *bud[T] {
	acts := gs.Actions()
	pending := make([]T, len(acts))
	for i, a := range acts {
		pending[i] = a.Next
	}
	return &bud[T]{pending: pending}
}

// trunk is a fully expanded position. moveq holds the non-terminal
// children ordered by selection priority; terminals the children
// already proven. worstcase is the proven bound the opponent could
// hold the mover to, seeded with the opponent's own best bound.
type trunk[T game.Position[T]] struct {
	sims      float64
	wins      float64
	moveq     moveQueue[T]
	terminals []T
	worstcase float64
}

func (*trunk[T]) variant() string { return "trunk" }

// budToTrunk converts a fully sampled bud. exploit is the c1 weight in
// effect at this depth (zeroed at the root in uniform mode).
func (s *search[T]) budToTrunk(gs T, b *bud[T], exploit float64) *trunk[T] {
	if len(b.done) == 0 {
		panic("searcher: non-terminal position with no actions")
	}

	t := &trunk[T]{
		worstcase: s.params.playerBound(gs.Player().Opponent()),
		moveq:     make(moveQueue[T], 0, len(b.done)),
	}
	for _, d := range b.done {
		t.sims += d.sqrtRolls
		t.wins += d.wins
		t.moveq = append(t.moveq, prioMove[T]{
			subsims: d.sqrtRolls,
			subwins: d.wins,
			pmove:   d.pos,
		})
	}
	for i := range t.moveq {
		pm := &t.moveq[i]
		pm.priority = s.priority(gs, exploit, pm.subwins, pm.subsims)
	}
	heap.Init(&t.moveq)
	return t
}

// priority is the selection key for a child with accumulated score
// subwins over subsims, under the parent gs. Maximizer parents order
// by the bound directly, Minimizer parents by its negation.
func (s *search[T]) priority(gs T, exploit, subwins, subsims float64) float64 {
	absval := exploit*(subwins/subsims) +
		s.params.Exploration*math.Sqrt(math.Log(float64(gs.NumActions()))/subsims)
	if gs.Player() == game.Minimizer {
		return -absval
	}
	return absval
}

// lcb is the readout counterpart of priority: the spread term enters
// with the opposite sign, giving a proven-ish floor for the mover.
func (s *search[T]) lcb(gs T, subwins, subsims float64) float64 {
	absval := s.params.Exploitation*(subwins/subsims) -
		s.params.Exploration*math.Sqrt(math.Log(float64(gs.NumActions()))/subsims)
	if gs.Player() == game.Minimizer {
		return -absval
	}
	return absval
}

// terminalValue extracts the value from either terminal variant.
func terminalValue[T game.Position[T]](nd node[T]) (float64, bool) {
	switch n := nd.(type) {
	case *provenTerminal[T]:
		return n.value, true
	case *inertTerminal[T]:
		return n.value, true
	}
	return 0, false
}
