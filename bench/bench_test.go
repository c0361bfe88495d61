package bench

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunProducesBucketsAndTotals(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	result := Run(rng, Params{
		Width: 5, Height: 4,
		Bombs: 2, Rupoors: 1,
		SafeX: 2, SafeY: 2,
		Trials: 25,
	})

	require.NotEmpty(t, result.Buckets)
	assert.Greater(t, result.TotalClicks, 0)

	for prob, b := range result.Buckets {
		assert.GreaterOrEqual(t, prob, 0.0)
		assert.LessOrEqual(t, prob, 1.0)
		assert.GreaterOrEqual(t, b.Plays, b.GoneBad)
	}
}

func TestLinesAreSortedAndTabSeparated(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	result := Run(rng, Params{
		Width: 5, Height: 5,
		Bombs: 3, Rupoors: 1,
		SafeX: 0, SafeY: 0,
		Trials: 20,
	})

	lines := result.Lines()
	last := -1.0
	for _, line := range lines {
		parts := strings.Split(line, "\t")
		require.Len(t, parts, 3)
		var prob float64
		_, err := fmt.Sscan(parts[0], &prob)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, prob, last)
		last = prob
	}
}
