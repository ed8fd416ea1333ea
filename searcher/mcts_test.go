package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"solver/game"
	"solver/tictactoe"
)

func quickMCTS(options ...Option) *MCTS[testPos] {
	base := []Option{
		WithDuration(40 * time.Millisecond),
		WithAdvanceChunks(8),
		WithSeed(17),
	}
	return NewMCTS[testPos](append(base, options...)...)
}

func TestActFindsTheWin(t *testing.T) {
	g := oneShotWin()
	m := quickMCTS()

	label, err := m.Act(g.pos("root"))
	require.NoError(t, err)
	require.Equal(t, "A", label, "The immediate win must be found under any budget")
}

func TestActProvesTheMate(t *testing.T) {
	g := mateInTwo()
	m := quickMCTS()

	label, err := m.Act(g.pos("root"))
	require.NoError(t, err)
	require.Equal(t, "A", label, "The forced mate dominates the safe draw")
}

func TestActAllLosingRunsLeastEvil(t *testing.T) {
	g := allLosing()
	m := quickMCTS()

	label, err := m.Act(g.pos("root"))
	require.NoError(t, err)
	require.Contains(t, []string{"A", "B"}, label,
		"Least-evil arbitration still yields a playable move")
}

func TestActEdgeCases(t *testing.T) {
	t.Run("terminal root has no move", func(t *testing.T) {
		g := oneShotWin()
		m := quickMCTS()
		_, err := m.Act(g.pos("A"))
		require.ErrorIs(t, err, ErrNoMove)
	})

	t.Run("degenerate root has no move", func(t *testing.T) {
		g := &gameSpec{
			children:  map[string][]string{},
			terminals: map[string]float64{},
		}
		m := quickMCTS()
		_, err := m.Act(g.pos("root"))
		require.ErrorIs(t, err, ErrNoMove)
	})

	t.Run("a single legal move skips the search", func(t *testing.T) {
		g := &gameSpec{
			children:  map[string][]string{"root": {"only"}, "only": {}},
			terminals: map[string]float64{"only": 0},
		}
		m := NewMCTS[testPos](WithDuration(5 * time.Second))

		start := time.Now()
		label, err := m.Act(g.pos("root"))
		require.NoError(t, err)
		require.Equal(t, "only", label)
		require.Less(t, time.Since(start), time.Second,
			"A forced move must not burn the search deadline")
	})
}

func TestActCarryOver(t *testing.T) {
	g := oneShotWin()
	g.filters = map[string][]game.ActionFilter[testPos]{
		"root": {{
			Label: "A",
			Keep:  func(p testPos) bool { return p.id == "A" },
		}},
	}
	m := quickMCTS()

	label, err := m.Act(g.pos("root"))
	require.NoError(t, err)
	require.Equal(t, "A", label)

	require.Positive(t, m.cache.Len(), "Work reachable through the move is kept")
	for _, e := range m.cache.entries {
		require.Equal(t, "A", e.pos.id,
			"Positions pruned by the move's filter must not survive")
	}
}

func TestThink(t *testing.T) {
	m := NewMCTS[tictactoe.Position](WithAdvanceChunks(20), WithSeed(23))

	stop := m.Think(tictactoe.New())
	time.Sleep(60 * time.Millisecond)
	require.NoError(t, stop())
	require.Positive(t, m.cache.Len(), "Pondering warms the carry-over cache")
	require.NoError(t, stop(), "Stopping twice is harmless")

	t.Run("thinking on a finished game is a no-op", func(t *testing.T) {
		g := oneShotWin()
		m := NewMCTS[testPos]()
		stop := m.Think(g.pos("A"))
		require.NoError(t, stop())
	})
}

func TestActParallel(t *testing.T) {
	g := oneShotWin()
	m := quickMCTS()

	label, err := m.ActParallel(g.pos("root"), 4)
	require.NoError(t, err)
	require.Equal(t, "A", label, "Every root agrees on the immediate win")

	t.Run("falls back to a single search", func(t *testing.T) {
		label, err := quickMCTS().ActParallel(g.pos("root"), 1)
		require.NoError(t, err)
		require.Equal(t, "A", label)
	})
}

func TestMetricsCollection(t *testing.T) {
	m := NewMCTS[tictactoe.Position](
		WithDuration(40*time.Millisecond),
		WithAdvanceChunks(10),
		WithSeed(29),
	).CollectMetrics()

	_, err := m.Act(tictactoe.New())
	require.NoError(t, err)

	got := m.Metrics()
	require.Positive(t, got.Descents, "Descents are counted")
	require.Positive(t, got.Rollouts, "Rollouts are counted")
	require.Positive(t, got.Chunks, "Chunks are counted")
	require.Positive(t, got.Sims, "The root accumulated sims")
	require.False(t, got.TreeReused, "The first search starts cold")

	_, err = m.Act(tictactoe.New().Actions()[0].Next)
	require.NoError(t, err)
	require.True(t, m.Metrics().TreeReused, "The second search starts from the cache")
}
