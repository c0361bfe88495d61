package engine

// configIterator is the naive, per-cell reference kernel from spec.md 4.3.
// It walks every bit vector over the constrained-unopened holes whose
// Hamming weight falls in [lo, hi], lexicographically by combination of
// 1-bit positions, writing true/false directly into an occupancy map.
type configIterator struct {
	holes []int // sorted constrained-unopened holes
	lo, hi int
	k      int
	comb   []int // current combination of indices into holes, size k
	more   bool // another call to Next will produce a combination
}

func newConfigIterator(holes []int, lo, hi int) *configIterator {
	it := &configIterator{holes: holes, lo: lo, hi: hi, k: lo}
	it.resetComb()
	it.more = it.k <= it.hi && it.k <= len(holes)
	return it
}

func (it *configIterator) resetComb() {
	it.comb = make([]int, it.k)
	for i := range it.comb {
		it.comb[i] = i
	}
}

// HasNext reports whether Next will produce another configuration.
func (it *configIterator) HasNext() bool { return it.more }

// Next writes the current combination's occupancy into occ (indexed the
// same way as it.holes) and returns the configuration's Hamming weight,
// then advances to the following combination.
func (it *configIterator) Next(occ map[int]bool) int {
	n := len(it.holes)
	k := it.k

	for _, h := range it.holes {
		occ[h] = false
	}
	for _, idx := range it.comb {
		occ[it.holes[idx]] = true
	}
	weight := k

	it.advance(n)
	return weight
}

func (it *configIterator) advance(n int) {
	k := it.k
	if k == 0 {
		it.nextK(n)
		return
	}
	i := k - 1
	for i >= 0 && it.comb[i] == n-k+i {
		i--
	}
	if i < 0 {
		it.nextK(n)
		return
	}
	it.comb[i]++
	for j := i + 1; j < k; j++ {
		it.comb[j] = it.comb[j-1] + 1
	}
	it.more = true
}

func (it *configIterator) nextK(n int) {
	it.k++
	if it.k > it.hi {
		it.more = false
		return
	}
	if it.k > n {
		it.more = false
		return
	}
	it.resetComb()
	it.more = true
}

// runOracleKernel is the reference implementation used only to cross-check
// the fast partition kernel (spec.md 8, oracle equivalence). It enumerates
// every cell-level configuration rather than partition-level tuples and is
// only practical for small constrained sets.
func (e *Engine) runOracleKernel() [][]float64 {
	holes := make([]int, 0, len(e.constrOpen))
	for h := range e.constrOpen {
		holes = append(holes, h)
	}
	sortInts(holes)

	free := make([]int, 0, len(e.freeOpen))
	for h := range e.freeOpen {
		free = append(free, h)
	}
	sortInts(free)

	knownBadCount := len(e.knownBad)
	B := e.totalBads - knownBadCount

	lo := maxInt(0, B-len(free))
	hi := minInt(len(holes), B)

	activeIDs := make([]int, 0, len(e.active))
	for id := range e.active {
		activeIDs = append(activeIDs, id)
	}
	sortInts(activeIDs)

	probs := make([]float64, e.width*e.height)
	occ := make(map[int]bool, len(holes))
	var totalWeight float64

	if lo <= hi && lo <= len(holes) {
		it := newConfigIterator(holes, lo, hi)
		for {
			k := it.Next(occ)

			if validateOccupancy(e, activeIDs, occ) {
				w := choose(len(free), B-k)
				totalWeight += w
				for _, h := range holes {
					if occ[h] {
						probs[h] += w
					}
				}
				if len(free) > 0 {
					contrib := w * float64(B-k) / float64(len(free))
					for _, h := range free {
						probs[h] += contrib
					}
				}
			}
			if !it.HasNext() {
				break
			}
		}
	}

	out := make([][]float64, e.height)
	for y := 0; y < e.height; y++ {
		out[y] = make([]float64, e.width)
	}
	if totalWeight == 0 {
		return out
	}
	for h := 0; h < e.width*e.height; h++ {
		x, y := e.coordsOf(h)
		switch {
		case e.knownBad[h]:
			out[y][x] = 1.0
		case e.knownSafe[h]:
			out[y][x] = 0.0
		case e.constrOpen[h] || e.freeOpen[h]:
			out[y][x] = probs[h] / totalWeight
		}
	}
	return out
}

func validateOccupancy(e *Engine, activeIDs []int, occ map[int]bool) bool {
	for _, id := range activeIDs {
		c := e.constraints[id]
		seen := 0
		for h := range c.holes {
			if occ[h] {
				seen++
			}
		}
		if seen != c.remaining {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
