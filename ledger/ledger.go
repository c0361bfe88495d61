// Package ledger reconstructs the rupee accounting the original self-play
// benchmark kept alongside the solver: a running total that gains on
// reward tiles and takes a flat penalty, floored at zero, on a rupoor.
package ledger

import "github.com/torgeiws/thrilldigger/engine"

// rupoorPenalty is the flat deduction a rupoor reveal applies, floored at
// zero, matching original_source/benchmark.cpp's
// "rupees = std::max(rupees - 10, 0)".
const rupoorPenalty = 10

// tierValue is indexed by engine.CellState.RewardTier()'s tier index
// (green, blue, red, silver), matching
// original_source/benchmark.cpp's singleRun tier values exactly. The
// source's second, unreachable green=300 branch is dropped.
var tierValue = [4]int{1, 5, 20, 100}

// Ledger accumulates rupees across a single play-through: reward tiles
// add their tier value, a rupoor subtracts the flat penalty (never below
// zero), and a bomb neither adds nor subtracts, matching the source's
// singleRun, which breaks out of its loop on a bomb before touching
// rupees at all.
type Ledger struct {
	rupees int
}

// New returns an empty ledger.
func New() *Ledger { return &Ledger{} }

// Rupees reports the current accumulated total.
func (l *Ledger) Rupees() int { return l.rupees }

// Apply credits or debits the ledger for a single revealed cell's state.
// A bomb reveal leaves the total unchanged, as does a clue.
func (l *Ledger) Apply(state engine.CellState) {
	switch {
	case state.IsBomb():
		return
	case state.IsRupoor():
		l.rupees -= rupoorPenalty
		if l.rupees < 0 {
			l.rupees = 0
		}
	default:
		if tier, ok := state.RewardTier(); ok {
			l.rupees += tierValue[tier]
		}
	}
}

// Reset zeroes the ledger for a fresh play-through.
func (l *Ledger) Reset() { l.rupees = 0 }
