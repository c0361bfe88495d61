package engine

// setCell records a reveal against already-consistent state (the
// reset-and-replay path in Reveal handles conflicts before calling this).
// It implements spec.md 4.1's set_cell: build a fresh constraint for a
// clue, decrementing its remaining count for already-known-bad neighbors
// and wiring it into the imposing set of every still-unopened neighbor;
// mark the clue cell itself safe; cascade safety if the fresh constraint's
// remaining count is already zero. A bad reveal instead calls markBad
// directly.
func (e *Engine) setCell(x, y int, state CellState) {
	e.cells[e.holeAt(x, y)] = state

	if state.IsBad() {
		e.markBad(x, y)
		return
	}

	n, isClue := state.IsClue()
	if !isClue {
		// Reward tiers behave like a safe reveal with no clue: no
		// constraint, no neighbor bookkeeping beyond marking this cell safe.
		e.markSafe(x, y)
		return
	}

	id := len(e.constraints)
	c := newConstraint(id, x, y, n)
	e.constraints = append(e.constraints, c)
	e.constraintAt[e.holeAt(x, y)] = id

	self := e.holeAt(x, y)
	delete(e.constrOpen, self)
	delete(e.freeOpen, self)

	for _, nb := range e.neighbors(x, y) {
		nh := e.holeAt(nb[0], nb[1])
		if e.knownBad[nh] {
			c.remaining--
			continue
		}
		if !e.cells[nh].IsUndug() {
			continue
		}
		e.imposeOn(nh, id)
		if !e.knownSafe[nh] {
			c.addHole(nh)
			e.constrOpen[nh] = true
		}
		delete(e.freeOpen, nh)
	}

	e.markSafe(x, y)

	if c.remaining == 0 {
		for _, h := range c.holeList() {
			e.markSafe(e.coordsOfHole(h))
		}
		e.retire(c)
		return
	}
	e.active[id] = true
}

func (e *Engine) coordsOfHole(h int) (int, int) { return e.coordsOf(h) }

func (e *Engine) imposeOn(hole, constraintID int) {
	set, ok := e.imposing[hole]
	if !ok {
		set = make(map[int]struct{})
		e.imposing[hole] = set
	}
	set[constraintID] = struct{}{}
}

func (e *Engine) retire(c *constraint) {
	c.retired = true
	delete(e.active, c.id)
	// Drop the constraint from every hole's imposing set eagerly so that
	// later partition rebuilds never see a tombstoned constraint id; this
	// is what keeps "sunken mid-enumeration" partitions (spec.md 4.4) from
	// ever arising here.
	for h := range c.holes {
		if set, ok := e.imposing[h]; ok {
			delete(set, c.id)
		}
	}
}

// markBad implements spec.md 4.1's mark_bad: record the hole as known-bad,
// remove it from both unopened sets, fix its probability at 1.0, and for
// every neighboring active constraint that still references the hole,
// remove it and decrement remaining, cascading a forced-safe resolution
// if remaining hits zero.
func (e *Engine) markBad(x, y int) {
	h := e.holeAt(x, y)
	e.knownBad[h] = true
	delete(e.constrOpen, h)
	delete(e.freeOpen, h)
	e.probabilities[h] = 1.0

	for _, nb := range e.neighbors(x, y) {
		nh := e.holeAt(nb[0], nb[1])
		cid, ok := e.constraintAt[nh]
		if !ok {
			continue
		}
		c := e.constraints[cid]
		if c.retired || !c.removeHole(h) {
			continue
		}
		if set, ok := e.imposing[h]; ok {
			delete(set, cid)
		}
		c.remaining--
		if c.remaining == 0 {
			for _, rh := range c.holeList() {
				rx, ry := e.coordsOfHole(rh)
				e.markSafe(rx, ry)
			}
			e.retire(c)
		}
	}
}

// markSafe implements spec.md 4.1's mark_safe: record the hole as
// known-safe, remove it from both unopened sets, fix its probability at
// 0.0, and for every neighboring active constraint that references the
// hole, remove it; if the constraint's remaining count now equals its
// shrunk hole count, every remaining hole is forced bad.
func (e *Engine) markSafe(x, y int) {
	h := e.holeAt(x, y)
	e.knownSafe[h] = true
	delete(e.constrOpen, h)
	delete(e.freeOpen, h)
	e.probabilities[h] = 0.0

	for _, nb := range e.neighbors(x, y) {
		nh := e.holeAt(nb[0], nb[1])
		cid, ok := e.constraintAt[nh]
		if !ok {
			continue
		}
		c := e.constraints[cid]
		if c.retired || !c.removeHole(h) {
			continue
		}
		if set, ok := e.imposing[h]; ok {
			delete(set, cid)
		}
		if c.remaining == len(c.holes) {
			for _, rh := range c.holeList() {
				rx, ry := e.coordsOfHole(rh)
				e.markBad(rx, ry)
			}
			e.retire(c)
		}
	}
}
