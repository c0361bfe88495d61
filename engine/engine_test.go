package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// S1: 3x3 board, totalBads = 1, reveal (1,1) as clue 1. Every other cell
// gets probability 1/8; the clue cell itself is 0.
func TestScenarioS1(t *testing.T) {
	e := Configure(3, 3, 1)
	require.NoError(t, e.Reveal(1, 1, Clue(1)))
	require.NoError(t, e.Recompute())

	probs := e.Probabilities()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				assert.InDelta(t, 0.0, probs[y][x], eps)
				continue
			}
			assert.InDelta(t, 1.0/8.0, probs[y][x], eps, "cell (%d,%d)", x, y)
		}
	}
}

// S2: 3x1 board, totalBads = 1, reveal (1,0) as clue 2. The clue's two
// neighbors both have remaining == len(holes), so they're forced bad, but
// totalBads = 1 contradicts two forced-bad cells: the engine must surface
// unsatisfiable and reset.
func TestScenarioS2(t *testing.T) {
	e := Configure(3, 1, 1)
	require.NoError(t, e.Reveal(1, 0, Clue(2)))

	err := e.Recompute()
	require.Error(t, err)
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, KindUnsatisfiable, ee.Kind)

	// Engine reset itself; replaying from scratch must be possible.
	require.NoError(t, e.Reveal(1, 0, Clue(2)))
}

// S3: 3x3 board, totalBads = 2, reveal (0,0) and (2,2) each as clue 1. The
// two clue cells are 0; (1,1), the only hole adjacent to both, carries the
// combined mass of configurations that put a bomb there.
func TestScenarioS3(t *testing.T) {
	e := Configure(3, 3, 2)
	require.NoError(t, e.Reveal(0, 0, Clue(1)))
	require.NoError(t, e.Reveal(2, 2, Clue(1)))
	require.NoError(t, e.Recompute())

	probs := e.Probabilities()
	assert.InDelta(t, 0.0, probs[0][0], eps)
	assert.InDelta(t, 0.0, probs[2][2], eps)

	sum := 0.0
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			sum += probs[y][x]
		}
	}
	assert.InDelta(t, 2.0, sum, eps)
}

// S4: 2x2 board, totalBads = 1, reveal (0,0) as clue 1. The remaining three
// cells split the single bomb evenly.
func TestScenarioS4(t *testing.T) {
	e := Configure(2, 2, 1)
	require.NoError(t, e.Reveal(0, 0, Clue(1)))
	require.NoError(t, e.Recompute())

	probs := e.Probabilities()
	assert.InDelta(t, 0.0, probs[0][0], eps)
	assert.InDelta(t, 1.0/3.0, probs[0][1], eps)
	assert.InDelta(t, 1.0/3.0, probs[1][0], eps)
	assert.InDelta(t, 1.0/3.0, probs[1][1], eps)
}

// S5: 4x4 board, totalBads = 3, no reveals. Every cell shares the budget
// evenly via the sunken partition.
func TestScenarioS5(t *testing.T) {
	e := Configure(4, 4, 3)
	require.NoError(t, e.Recompute())

	probs := e.Probabilities()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.InDelta(t, 3.0/16.0, probs[y][x], eps, "cell (%d,%d)", x, y)
		}
	}

	diag := e.Diagnostics()
	assert.Equal(t, 1, diag.Partitions)
	assert.Equal(t, 1, diag.SunkenPartitions)
}

// S6: continuing from S4, revealing (1,1) as clue 1 splits the bomb evenly
// between the two cells still adjacent to both clues, forcing nothing.
func TestScenarioS6(t *testing.T) {
	e := Configure(2, 2, 1)
	require.NoError(t, e.Reveal(0, 0, Clue(1)))
	require.NoError(t, e.Recompute())
	require.NoError(t, e.Reveal(1, 1, Clue(1)))
	require.NoError(t, e.Recompute())

	probs := e.Probabilities()
	assert.InDelta(t, 0.0, probs[0][0], eps)
	assert.InDelta(t, 0.0, probs[1][1], eps)
	assert.InDelta(t, 0.5, probs[0][1], eps)
	assert.InDelta(t, 0.5, probs[1][0], eps)
}

// Forced cells: an all-neighbors-bad clue on a 3x1 board with a large
// enough bad budget should mark both neighbors bad outright rather than
// reporting a fractional probability.
func TestForcedBadCascade(t *testing.T) {
	e := Configure(3, 1, 2)
	require.NoError(t, e.Reveal(1, 0, Clue(2)))
	require.NoError(t, e.Recompute())

	probs := e.Probabilities()
	assert.InDelta(t, 1.0, probs[0][0], eps)
	assert.InDelta(t, 1.0, probs[0][2], eps)
	assert.InDelta(t, 0.0, probs[0][1], eps)
}

// Forced safe: a clue with remaining == 0 immediately marks every neighbor
// safe, and Recompute must not contradict that. The 4x4 board leaves seven
// cells outside the clue's 3x3 neighborhood to hold the single bad item.
func TestForcedSafeCascade(t *testing.T) {
	e := Configure(4, 4, 1)
	require.NoError(t, e.Reveal(1, 1, Clue(0)))
	require.NoError(t, e.Recompute())

	probs := e.Probabilities()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.InDelta(t, 0.0, probs[y][x], eps, "cell (%d,%d)", x, y)
		}
	}
}

// Every probability must land in [0, 1], and the probabilities of every
// still-unopened cell must sum to the number of bad items still
// unaccounted for.
func TestInvariantProbabilitiesSumToResidualBudget(t *testing.T) {
	e := Configure(4, 4, 3)
	require.NoError(t, e.Reveal(0, 0, Clue(1)))
	require.NoError(t, e.Recompute())

	probs := e.Probabilities()
	sum := 0.0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p := probs[y][x]
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			sum += p
		}
	}
	assert.InDelta(t, 3.0, sum, eps)
}

// Recompute must be idempotent: calling it twice in a row without an
// intervening reveal must not change the probability matrix.
func TestRecomputeIdempotent(t *testing.T) {
	e := Configure(3, 3, 2)
	require.NoError(t, e.Reveal(0, 0, Clue(1)))
	require.NoError(t, e.Reveal(2, 2, Clue(1)))
	require.NoError(t, e.Recompute())
	first := e.Probabilities()

	require.NoError(t, e.Recompute())
	second := e.Probabilities()

	assert.Equal(t, first, second)
}

// Two engines fed the identical reveal sequence must produce bit-identical
// probability matrices: every map-derived slice the kernels walk is sorted
// before use.
func TestDeterministic(t *testing.T) {
	build := func() [][]float64 {
		e := Configure(4, 4, 3)
		_ = e.Reveal(0, 0, Clue(1))
		_ = e.Reveal(3, 0, Clue(1))
		_ = e.Reveal(0, 3, Clue(2))
		_ = e.Recompute()
		return e.Probabilities()
	}
	a := build()
	b := build()
	assert.Equal(t, a, b)
}

// The fast partition kernel and the naive oracle kernel must agree within
// floating-point tolerance on any board small enough for the oracle to
// enumerate directly.
func TestOracleEquivalence(t *testing.T) {
	cases := []struct {
		name    string
		width   int
		height  int
		bads    int
		reveals [][3]int // x, y, clue value
	}{
		{"single-clue-3x3", 3, 3, 1, [][3]int{{1, 1, 1}}},
		{"two-clues-3x3", 3, 3, 2, [][3]int{{0, 0, 1}, {2, 2, 1}}},
		{"corner-clue-2x2", 2, 2, 1, [][3]int{{0, 0, 1}}},
		{"no-reveals-4x4", 4, 4, 3, nil},
		{"dense-clues-4x4", 4, 4, 4, [][3]int{{0, 0, 1}, {3, 0, 1}, {0, 3, 1}, {3, 3, 1}}},
		// A 1x10 strip: clue(1) at x=1 and clue(0) at x=3 cascade to force
		// x=0 known-bad (the clue(0) forces x=2 safe, shrinking x=1's
		// constraint down to a single remaining hole equal to its own
		// remaining count). A further clue(1) at x=6 leaves an unresolved
		// partition and x=8,9 unconstrained, so the oracle is exercised
		// with a nonzero known-bad count, a nonzero partition badness, and
		// nonzero free cells all at once.
		{"forced-bad-with-free-cells", 10, 1, 3, [][3]int{{1, 0, 1}, {3, 0, 0}, {6, 0, 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := Configure(tc.width, tc.height, tc.bads)
			for _, r := range tc.reveals {
				require.NoError(t, e.Reveal(r[0], r[1], Clue(r[2])))
			}
			require.NoError(t, e.Recompute())
			fast := e.Probabilities()
			oracle := e.runOracleKernel()

			for y := 0; y < tc.height; y++ {
				for x := 0; x < tc.width; x++ {
					assert.InDelta(t, oracle[y][x], fast[y][x], eps, "cell (%d,%d)", x, y)
				}
			}
		})
	}
}

// An out-of-bounds reveal must be rejected without mutating anything.
func TestRevealOutOfBounds(t *testing.T) {
	e := Configure(3, 3, 1)
	err := e.Reveal(5, 5, Clue(0))
	require.Error(t, err)
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, KindOutOfBounds, ee.Kind)
}

// Revealing the same cell a second time with a different value triggers a
// reset-and-replay and reports KindInconsistentReveal.
func TestInconsistentReveal(t *testing.T) {
	e := Configure(3, 3, 2)
	require.NoError(t, e.Reveal(1, 1, Clue(1)))
	err := e.Reveal(1, 1, Clue(2))
	require.Error(t, err)
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, KindInconsistentReveal, ee.Kind)

	require.NoError(t, e.Recompute())
	probs := e.Probabilities()
	assert.InDelta(t, 0.0, probs[1][1], eps)
}

// RecomputeAsync must deliver the same result as a synchronous Recompute.
func TestRecomputeAsync(t *testing.T) {
	e := Configure(3, 3, 1)
	require.NoError(t, e.Reveal(1, 1, Clue(1)))

	done := e.RecomputeAsync(nil)
	err := <-done
	require.NoError(t, err)

	probs := e.Probabilities()
	assert.InDelta(t, 1.0/8.0, probs[0][0], eps)
}
