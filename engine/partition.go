package engine

import "strconv"

// partition is an equivalence class of unopened, constrained holes that
// share the exact same imposing set of constraints, plus the special
// "sunken" partition of unconstrained-unopened holes (constraintIDs nil).
// badness is not written by runPartitionKernel, which keeps each
// partition's bad count for the current configuration in its own
// assignment slice.
type partition struct {
	constraintIDs []int // sorted, nil for the sunken partition
	holes         []int // sorted hole indices
	badness       int
}

func (p *partition) key() string {
	if len(p.constraintIDs) == 0 {
		return ""
	}
	buf := make([]byte, 0, 8*len(p.constraintIDs))
	for i, id := range p.constraintIDs {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(id), 10)
	}
	return string(buf)
}

// buildPartitions rebuilds the partition list from scratch, grouping every
// currently constrained-unopened hole by its imposing set (spec.md 4.2).
// The sunken partition (unconstrained-unopened holes) is returned
// separately rather than prepended, since the two enumeration kernels
// treat it specially rather than iterating over it directly.
func (e *Engine) buildPartitions() (constrained []*partition, sunken *partition) {
	byKey := make(map[string]*partition)
	keys := make([]string, 0)

	holes := make([]int, 0, len(e.constrOpen))
	for h := range e.constrOpen {
		holes = append(holes, h)
	}
	sortInts(holes)

	for _, h := range holes {
		ids := make([]int, 0, len(e.imposing[h]))
		for id := range e.imposing[h] {
			ids = append(ids, id)
		}
		sortInts(ids)
		p := &partition{constraintIDs: ids}
		k := p.key()
		existing, ok := byKey[k]
		if !ok {
			byKey[k] = p
			keys = append(keys, k)
			existing = p
		}
		existing.holes = append(existing.holes, h)
	}

	sortStrings(keys)
	constrained = make([]*partition, 0, len(keys))
	for _, k := range keys {
		constrained = append(constrained, byKey[k])
	}

	if len(e.freeOpen) > 0 {
		fh := make([]int, 0, len(e.freeOpen))
		for h := range e.freeOpen {
			fh = append(fh, h)
		}
		sortInts(fh)
		sunken = &partition{holes: fh}
	}

	return constrained, sunken
}

func sortStrings(a []string) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
