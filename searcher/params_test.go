package searcher

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"solver/game"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	require.Equal(t, 1.0, p.Exploitation)
	require.InDelta(t, math.Sqrt(8), p.Exploration, 1e-12)
	require.Equal(t, -1.0, p.Alpha)
	require.Equal(t, 1.0, p.Beta)
	require.Equal(t, time.Second, p.Duration)
	require.Equal(t, 1e8, p.MaxSim)
	require.Equal(t, 1, p.NumRolls)
	require.Equal(t, 1e6, p.SimsPerRoll)
	require.Equal(t, 100000, p.ExtraCache)
	require.Equal(t, 100, p.AdvanceChunks)
	require.True(t, p.Background)
	require.False(t, p.Uniform)
	require.False(t, p.Inert)
}

func TestOptions(t *testing.T) {
	p := testParams(
		WithExploitation(0.5),
		WithExploration(2),
		WithBounds(0, 1),
		WithDuration(50*time.Millisecond),
		WithMaxSim(1000),
		WithNumRolls(4),
		WithSimsPerRoll(100),
		WithExtraCache(10),
		WithAdvanceChunks(7),
		WithBackground(false),
		WithUniform(true),
		WithInert(true),
		WithSeed(99),
	)

	require.Equal(t, 0.5, p.Exploitation)
	require.Equal(t, 2.0, p.Exploration)
	require.Equal(t, 0.0, p.Alpha)
	require.Equal(t, 1.0, p.Beta)
	require.Equal(t, 50*time.Millisecond, p.Duration)
	require.Equal(t, 1000.0, p.MaxSim)
	require.Equal(t, 4, p.NumRolls)
	require.Equal(t, 100.0, p.SimsPerRoll)
	require.Equal(t, 10, p.ExtraCache)
	require.Equal(t, 7, p.AdvanceChunks)
	require.False(t, p.Background)
	require.True(t, p.Uniform)
	require.True(t, p.Inert)
	require.Equal(t, uint64(99), p.Seed)
}

func TestOptionGuards(t *testing.T) {
	p := testParams(
		WithDuration(-time.Second),
		WithMaxSim(0),
		WithNumRolls(0),
		WithBounds(2, 1),
		WithAdvanceChunks(-1),
	)
	d := DefaultParams()

	require.Equal(t, d.Duration, p.Duration, "Nonsense values keep the defaults")
	require.Equal(t, d.MaxSim, p.MaxSim)
	require.Equal(t, d.NumRolls, p.NumRolls)
	require.Equal(t, d.Alpha, p.Alpha)
	require.Equal(t, d.Beta, p.Beta)
	require.Equal(t, d.AdvanceChunks, p.AdvanceChunks)
}

func TestPlayerBound(t *testing.T) {
	p := DefaultParams()
	require.Equal(t, p.Beta, p.playerBound(game.Maximizer))
	require.Equal(t, p.Alpha, p.playerBound(game.Minimizer))

	require.Equal(t, 2.0, p.objective(game.Maximizer)(1, 2))
	require.Equal(t, 1.0, p.objective(game.Minimizer)(1, 2))
}
