package searcher

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"solver/game"
)

// advanceUntil launches the background worker advancing the tree in
// chunks of AdvanceChunks descents. The returned join sets the stop
// flag, blocks until the worker finishes its current chunk, and
// reports any game-capability failure. With Background disabled the
// search is a no-op and join returns immediately.
func (s *search[T]) advanceUntil() func() error {
	if !s.params.Background {
		return func() error { return nil }
	}

	var stop atomic.Bool
	done := make(chan struct{})
	var workerErr error

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				workerErr = fmt.Errorf("searcher: game capability failed: %v", r)
			}
		}()

		for {
			root := s.table.get(s.rootGs)
			if s.exhausted(root) {
				return
			}
			s.retuneRolls()
			for i := 0; i < s.params.AdvanceChunks; i++ {
				_, root = s.advance(s.rootGs, root, 0)
				s.metrics.AddDescent()
			}
			s.metrics.AddChunk()
			if stop.Load() {
				return
			}
		}
	}()

	return func() error {
		stop.Store(true)
		<-done
		root := s.table.get(s.rootGs)
		log.Debug().
			Str("root", root.variant()).
			Float64("sims", rootSims[T](root)).
			Int("table", s.table.len()).
			Msg("search stopped")
		return workerErr
	}
}

// exhausted is the worker's stop predicate: a decided root, or a root
// trunk past the simulation cap.
func (s *search[T]) exhausted(root node[T]) bool {
	if _, over := s.rootGs.Terminal(); over {
		return true
	}
	if _, ok := terminalValue[T](root); ok {
		return true
	}
	if t, ok := root.(*trunk[T]); ok {
		return t.sims > s.params.MaxSim
	}
	return false
}

func rootSims[T game.Position[T]](nd node[T]) float64 {
	if t, ok := nd.(*trunk[T]); ok {
		return t.sims
	}
	return 0
}
