package engine

import "context"

// Engine owns one game's worth of solver state: the revealed grid, the
// constraint store derived from it, and the probability matrix produced by
// the most recent Recompute. It is single-threaded internally; see
// RecomputeAsync for the intended dispatch pattern.
type Engine struct {
	width, height int
	totalBads     int

	cells []CellState // flat width*height, indexed by hole

	knownBad   map[int]bool
	knownSafe  map[int]bool
	constrOpen map[int]bool // constrainedUnopened
	freeOpen   map[int]bool // unconstrainedUnopened

	imposing     map[int]map[int]struct{} // hole -> set of constraint IDs
	constraintAt map[int]int              // hole of a revealed clue -> constraint id
	constraints  []*constraint             // append-only pool
	active       map[int]bool              // ids with remaining > 0, not retired

	probabilities []float64 // flat width*height
	diag          Diagnostics

	lastX, lastY int // coordinate of the most recent Reveal, for KindUnsatisfiable reporting
}

// Configure constructs an empty Engine: a width*height grid with every
// cell undug and unconstrained, and a fixed global bad-item budget.
func Configure(width, height, totalBads int) *Engine {
	e := &Engine{width: width, height: height, totalBads: totalBads}
	e.resetState()
	return e
}

func (e *Engine) resetState() {
	n := e.width * e.height
	e.cells = make([]CellState, n)
	for i := range e.cells {
		e.cells[i] = Undug()
	}
	e.knownBad = make(map[int]bool)
	e.knownSafe = make(map[int]bool)
	e.constrOpen = make(map[int]bool)
	e.freeOpen = make(map[int]bool, n)
	e.imposing = make(map[int]map[int]struct{}, n)
	e.constraintAt = make(map[int]int)
	e.constraints = nil
	e.active = make(map[int]bool)
	e.probabilities = make([]float64, n)
	for i := 0; i < n; i++ {
		e.freeOpen[i] = true
	}
}

func (e *Engine) inBounds(x, y int) bool {
	return x >= 0 && x < e.width && y >= 0 && y < e.height
}

func (e *Engine) holeAt(x, y int) int { return y*e.width + x }

func (e *Engine) coordsOf(h int) (x, y int) { return h % e.width, h / e.width }

func (e *Engine) neighbors(x, y int) [][2]int {
	out := make([][2]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if e.inBounds(nx, ny) {
				out = append(out, [2]int{nx, ny})
			}
		}
	}
	return out
}

// Reveal forwards a reveal to the constraint store. Out-of-bounds
// coordinates are rejected without mutating any state. A reveal that
// contradicts the cell's existing revealed state triggers a full
// reset-and-replay using the new value as authoritative.
func (e *Engine) Reveal(x, y int, state CellState) error {
	if !e.inBounds(x, y) {
		return newEngineError(KindOutOfBounds, x, y, "coordinate out of bounds")
	}
	h := e.holeAt(x, y)
	prior := e.cells[h]
	if !prior.IsUndug() && prior != state {
		e.cells[h] = Undug()
		e.replayAll(h, state)
		e.lastX, e.lastY = x, y
		return newEngineError(KindInconsistentReveal, x, y, "reveal conflicts with prior state")
	}
	e.setCell(x, y, state)
	e.lastX, e.lastY = x, y
	return nil
}

// replayAll performs the reset described in spec.md 4.7: clear every
// derived structure, reseed the unconstrained-unopened set with every
// hole, put the new authoritative value at (x, y)'s hole, then replay
// every non-undug cell, that one included, in hole order.
func (e *Engine) replayAll(h int, newState CellState) {
	width, height, totalBads := e.width, e.height, e.totalBads
	saved := e.cells
	e.resetState()
	e.width, e.height, e.totalBads = width, height, totalBads
	saved[h] = newState
	for i, st := range saved {
		if st.IsUndug() {
			continue
		}
		x, y := e.coordsOf(i)
		e.setCell(x, y, st)
	}
}

// Recompute rebuilds partitions from the current constraint store and runs
// the fast partition kernel, populating the probability matrix. It runs to
// completion synchronously; there are no suspension points.
//
// Per spec.md 7, a constraint store with no satisfiable configuration
// (Diagnostics.TotalWeight == 0) is treated as an inconsistent reveal on the
// most recently revealed cell: the engine wipes itself back to an empty
// board (preserving its dimensions and bad-item budget) and returns a
// KindUnsatisfiable error naming that cell, so the caller knows a reset
// happened and replay from scratch is required.
func (e *Engine) Recompute() error {
	partitions, sunken := e.buildPartitions()
	e.runPartitionKernel(partitions, sunken)

	if e.diag.TotalWeight != 0 {
		return nil
	}

	x, y := e.lastX, e.lastY
	width, height, totalBads := e.width, e.height, e.totalBads
	e.resetState()
	e.width, e.height, e.totalBads = width, height, totalBads
	return newEngineError(KindUnsatisfiable, x, y, "no configuration satisfies the revealed constraints")
}

// RecomputeAsync launches Recompute on its own goroutine and delivers its
// error over the returned channel before closing it, mirroring the source's
// QThread + done() signal pairing. The caller must not call Probabilities
// until the channel closes. Cancellation is not supported mid-enumeration;
// a caller that wants to abandon the recompute should discard the Engine.
func (e *Engine) RecomputeAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- e.Recompute()
	}()
	return done
}

// Probabilities returns the current width*height probability matrix,
// indexed [y][x]. Revealed or known-safe cells report 0.0; known-bad cells
// report 1.0.
func (e *Engine) Probabilities() [][]float64 {
	out := make([][]float64, e.height)
	for y := 0; y < e.height; y++ {
		out[y] = make([]float64, e.width)
		for x := 0; x < e.width; x++ {
			out[y][x] = e.probabilities[e.holeAt(x, y)]
		}
	}
	return out
}

// Diagnostics reports the counters from the most recent Recompute.
func (e *Engine) Diagnostics() Diagnostics { return e.diag }

// IsUnopened reports whether (x, y) has not yet been revealed.
func (e *Engine) IsUnopened(x, y int) bool {
	return e.cells[e.holeAt(x, y)].IsUndug()
}
