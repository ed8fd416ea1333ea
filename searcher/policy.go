package searcher

import (
	"math"

	"solver/game"
)

// Selector picks the candidate moves at the root once the worker has
// stopped. A multi-move result is arbitrated by the least-evil policy.
type Selector[T game.Position[T]] func(s *search[T]) []game.Action[T]

// LessEvil arbitrates among candidate moves that all appear to lose.
type LessEvil[T game.Position[T]] func(rootGs T, candidates []game.Action[T]) game.Action[T]

// defaultBestActions reads the root after the search and ranks its
// moves. Decided roots return every move proven to the root's value;
// trunks return the single best lower-confidence-bound move unless the
// proven worstcase already beats it, in which case the whole proven
// set is handed to least-evil.
func defaultBestActions[T game.Position[T]](s *search[T]) []game.Action[T] {
	acts := s.rootGs.Actions()

	switch root := s.table.get(s.rootGs).(type) {
	case *provenTerminal[T], *inertTerminal[T]:
		v, _ := terminalValue[T](root)
		var out []game.Action[T]
		for _, a := range acts {
			nd, ok := s.table.lookup(a.Next)
			if !ok {
				continue
			}
			if cv, isTerm := terminalValue[T](nd); isTerm && cv == v {
				out = append(out, a)
			}
		}
		return out

	case *bud[T]:
		// The deadline hit before the root was fully expanded: fall
		// back to the most sampled child, or to every move when
		// nothing was sampled at all.
		if len(root.done) == 0 {
			return acts
		}
		stats := make(map[T]leafStat[T], len(root.done))
		for _, d := range root.done {
			stats[d.pos] = d
		}
		var best []game.Action[T]
		bestRolls := math.Inf(-1)
		for _, a := range acts {
			d, ok := stats[a.Next]
			if ok && d.sqrtRolls > bestRolls {
				bestRolls = d.sqrtRolls
				best = []game.Action[T]{a}
			}
		}
		return best

	case *trunk[T]:
		return s.selectFromTrunk(root, acts)
	}
	return nil
}

func (s *search[T]) selectFromTrunk(root *trunk[T], acts []game.Action[T]) []game.Action[T] {
	player := s.rootGs.Player()

	bestval := math.Inf(-1)
	var best game.Action[T]
	found := false
	for _, a := range acts {
		pm, ok := root.moveq.find(a.Next)
		if !ok {
			continue
		}
		if v := s.lcb(s.rootGs, pm.subwins, pm.subsims); v > bestval {
			bestval = v
			best = a
			found = true
		}
	}

	// worstcase is a proved bound; when it already beats the best
	// unproven floor, the proven moves are the better bet and the
	// whole set goes to least-evil.
	if found && bestval > perspective(player, root.worstcase) {
		return []game.Action[T]{best}
	}

	var proven []game.Action[T]
	for _, a := range acts {
		for _, tp := range root.terminals {
			if a.Next == tp {
				proven = append(proven, a)
				break
			}
		}
	}
	if len(proven) == 0 && found {
		return []game.Action[T]{best}
	}
	return proven
}

// defaultLessEvil reruns the search over the candidates only, with
// terminals stored inert so proven losses cannot collapse the root,
// and picks the candidate with the best lower confidence bound. Ties
// keep action order. Only rollout values enter the bound, so losses of
// equal value are not told apart by how many plies they take.
func (m *MCTS[T]) defaultLessEvil(rootGs T, candidates []game.Action[T]) game.Action[T] {
	params := m.params
	params.Inert = true
	params.Uniform = false

	restrict := make([]T, len(candidates))
	for i, a := range candidates {
		restrict[i] = a.Next
	}

	s := newSearch(rootGs, params, nil, m.newRng(), restrict, NewNoMetricsCollector())
	join := s.advanceUntil()
	sleepFor(params.Duration, params.Background)
	if err := join(); err != nil {
		// A failing capability during arbitration falls back to the
		// first candidate; the main search already succeeded.
		return candidates[0]
	}

	best := candidates[0]
	bestval := math.Inf(-1)
	switch root := s.table.get(rootGs).(type) {
	case *trunk[T]:
		for _, a := range candidates {
			pm, ok := root.moveq.find(a.Next)
			if !ok {
				continue
			}
			if v := s.lcb(rootGs, pm.subwins, pm.subsims); v > bestval {
				bestval = v
				best = a
			}
		}
	case *bud[T]:
		for _, a := range candidates {
			for _, d := range root.done {
				if d.pos == a.Next && d.sqrtRolls > bestval {
					bestval = d.sqrtRolls
					best = a
				}
			}
		}
	}
	return best
}
