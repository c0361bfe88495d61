package engine

// runPartitionKernel is the fast kernel from spec.md 4.4/4.5: it walks
// every feasible assignment of bad-counts to partitions, validates each
// against the active constraints, and accumulates weighted per-cell
// marginals. Infeasible branches (where the running sum of bad-counts
// already exceeds the residual budget, or cannot possibly reach it) are
// pruned without reaching the validator.
func (e *Engine) runPartitionKernel(parts []*partition, sunken *partition) {
	budget := e.totalBads - len(e.knownBad)

	activeIDs := make([]int, 0, len(e.active))
	for id := range e.active {
		activeIDs = append(activeIDs, id)
	}
	sortInts(activeIDs)

	// For each active constraint, which partitions (by index into parts)
	// contribute to its bad count; the sunken partition never does, since
	// its imposing set is empty by construction.
	contributors := make(map[int][]int, len(activeIDs))
	for _, id := range activeIDs {
		contributors[id] = nil
	}
	for i, p := range parts {
		for _, id := range p.constraintIDs {
			contributors[id] = append(contributors[id], i)
		}
	}

	n := len(parts)
	caps := make([]int, n)
	for i, p := range parts {
		caps[i] = len(p.holes)
	}

	assignment := make([]int, n)
	probs := make([]float64, e.width*e.height)
	var totalWeight float64
	var totalIterations, legalIterations int64

	remainingCap := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		remainingCap[i] = remainingCap[i+1] + caps[i]
	}

	sunkenCap := 0
	if sunken != nil {
		sunkenCap = len(sunken.holes)
	}

	var visit func(i, used int)
	visit = func(i, used int) {
		if i == n {
			sunkenB := budget - used
			if sunken != nil {
				if sunkenB < 0 || sunkenB > sunkenCap {
					return
				}
			} else if sunkenB != 0 {
				return
			}
			totalIterations++

			valid := true
			for _, id := range activeIDs {
				c := e.constraints[id]
				sum := 0
				for _, pi := range contributors[id] {
					sum += assignment[pi]
				}
				if sum != c.remaining {
					valid = false
					break
				}
			}
			if !valid {
				return
			}
			legalIterations++

			weight := 1.0
			for i2, p := range parts {
				weight *= choose(len(p.holes), assignment[i2])
			}
			if sunken != nil {
				weight *= choose(sunkenCap, sunkenB)
			}
			totalWeight += weight

			for i2, p := range parts {
				if len(p.holes) == 0 {
					continue
				}
				contrib := weight * float64(assignment[i2]) / float64(len(p.holes))
				for _, h := range p.holes {
					probs[h] += contrib
				}
			}
			if sunken != nil && sunkenCap > 0 {
				contrib := weight * float64(sunkenB) / float64(sunkenCap)
				for _, h := range sunken.holes {
					probs[h] += contrib
				}
			}
			return
		}

		// Prune: even assigning the max to every remaining partition
		// (including this one) cannot reach the budget, accounting for
		// the sunken slack if any.
		maxReachable := used + remainingCap[i]
		minNeeded := budget - sunkenCap
		if sunken == nil {
			minNeeded = budget
		}
		if maxReachable < minNeeded {
			return
		}

		for b := 0; b <= caps[i]; b++ {
			if used+b > budget {
				break
			}
			assignment[i] = b
			visit(i+1, used+b)
		}
	}
	visit(0, 0)

	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			h := e.holeAt(x, y)
			if !e.constrOpen[h] && !e.freeOpen[h] {
				continue
			}
			e.probabilities[h] = probs[h]
		}
	}

	e.finalize(totalWeight)

	e.diag = Diagnostics{
		TotalWeight:      totalWeight,
		TotalIterations:  totalIterations,
		LegalIterations:  legalIterations,
		Partitions:       n + boolToInt(sunken != nil),
		SunkenPartitions: boolToInt(sunken != nil),
		ConstrainedCells: len(e.constrOpen),
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// finalize applies spec.md 4.5's finalization step: cells whose
// accumulated weight equals totalWeight are forced bad, cells whose
// accumulated weight is zero are forced safe, and everything else is
// normalized by totalWeight. totalWeight == 0 signals an unsatisfiable
// state; finalize then leaves everything untouched, and Recompute wipes
// the engine back to an empty board and returns KindUnsatisfiable.
func (e *Engine) finalize(totalWeight float64) {
	if totalWeight == 0 {
		return
	}
	for h := 0; h < e.width*e.height; h++ {
		if !e.constrOpen[h] && !e.freeOpen[h] {
			continue
		}
		x, y := e.coordsOf(h)
		switch {
		case e.probabilities[h] == totalWeight:
			e.markBad(x, y)
			e.probabilities[h] = 1.0
		case e.probabilities[h] == 0:
			e.markSafe(x, y)
		default:
			e.probabilities[h] /= totalWeight
		}
	}
}
