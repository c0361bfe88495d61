// Package bench implements the self-play benchmark protocol from
// spec.md 6: repeatedly generate a fresh board, dig the lowest-probability
// unopened cell, and record how often each distinct probability value
// actually went bad, reconstructed from
// original_source/benchmark.cpp's Benchmark::run/singleRun.
package bench

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/torgeiws/thrilldigger/board"
	"github.com/torgeiws/thrilldigger/engine"
	"github.com/torgeiws/thrilldigger/internal/logx"
	"github.com/torgeiws/thrilldigger/ledger"
)

// Params configures both the board generator and the number of trials to
// run; it is the Go analogue of the source's ProblemParameters.
type Params struct {
	Width, Height  int
	Bombs, Rupoors int
	SafeX, SafeY   int
	Trials         int
}

// bucket accumulates, for one distinct probability value, how many times
// the engine offered it as the best move and how many of those reveals
// turned out bad, matching probabilityCount/probabilityGoneBad in the
// source.
type bucket struct {
	Plays   int
	GoneBad int
}

// Result is the aggregate outcome of a benchmark run: per-probability-
// bucket statistics, plus the running totals the source also tracks
// (total clicks, total bad spots, total rupees banked across trials).
type Result struct {
	Buckets     map[float64]*bucket
	TotalClicks int
	TotalBad    int
	TotalRupees int
}

// Lines renders Result's buckets as "probability \t plays \t
// empirical-bad-rate" rows, sorted by probability ascending, matching the
// source's std::cout loop over probabilityCount.keys().
func (r *Result) Lines() []string {
	keys := make([]float64, 0, len(r.Buckets))
	for k := range r.Buckets {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		b := r.Buckets[k]
		rate := float64(b.GoneBad) / float64(b.Plays)
		lines = append(lines, fmt.Sprintf("%g\t%d\t%g", k, b.Plays, rate))
	}
	return lines
}

// Run executes Params.Trials independent play-throughs and aggregates
// their outcomes.
func Run(rng *rand.Rand, p Params) *Result {
	result := &Result{Buckets: make(map[float64]*bucket)}

	for i := 0; i < p.Trials; i++ {
		runOne(rng, p, result)
	}
	return result
}

func runOne(rng *rand.Rand, p Params, result *Result) {
	b := board.Generate(rng, p.Width, p.Height, p.Bombs, p.Rupoors, p.SafeX, p.SafeY)
	e := engine.Configure(p.Width, p.Height, p.Bombs+p.Rupoors)
	l := ledger.New()

	clicks := 0
	badSpots := 0

	if err := e.Recompute(); err != nil {
		logx.Warnf("bench: initial recompute unsatisfiable: %v", err)
		return
	}

	for !b.HasWon() {
		x, y, prob, found := pickLowestProbability(e, p.Width, p.Height)
		if !found {
			break
		}

		clicks++
		bk, ok := result.Buckets[prob]
		if !ok {
			bk = &bucket{}
			result.Buckets[prob] = bk
		}
		bk.Plays++

		state := b.Cell(x, y)
		if state.IsBomb() {
			badSpots++
			bk.GoneBad++
			break
		}
		if state.IsRupoor() {
			badSpots++
			bk.GoneBad++
		} else {
			b.MarkRevealed(x, y)
		}
		l.Apply(state)

		if err := e.Reveal(x, y, state); err != nil {
			logx.Warnf("bench: reveal error at (%d,%d): %v", x, y, err)
			break
		}
		if err := e.Recompute(); err != nil {
			logx.Warnf("bench: recompute unsatisfiable after (%d,%d): %v", x, y, err)
			break
		}
	}

	result.TotalClicks += clicks
	result.TotalBad += badSpots
	result.TotalRupees += l.Rupees()
}

// pickLowestProbability scans every still-unopened cell in column-major
// order (lowest y, then lowest x) and returns the one with the lowest
// probability, matching the source's tie-break exactly.
func pickLowestProbability(e *engine.Engine, width, height int) (x, y int, prob float64, found bool) {
	probs := e.Probabilities()
	lowest := 1.0
	found = false
	for yy := 0; yy < height; yy++ {
		for xx := 0; xx < width; xx++ {
			if !e.IsUnopened(xx, yy) {
				continue
			}
			p := probs[yy][xx]
			if !found || p < lowest {
				lowest = p
				x, y = xx, yy
				found = true
			}
		}
	}
	return x, y, lowest, found
}
