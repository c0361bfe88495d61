package engine

import "fmt"

// Diagnostics reports the per-Recompute counters from spec.md 6's
// diagnostic output: the total configuration weight found satisfiable,
// how many candidate configurations the kernel visited, how many passed
// validation, and the shape of the partition list that produced them.
type Diagnostics struct {
	TotalWeight      float64
	TotalIterations  int64
	LegalIterations  int64
	Partitions       int
	SunkenPartitions int
	ConstrainedCells int
}

// String renders the tab-separated diagnostic line from spec.md 6:
// totalWeight \t totalIterations \t legalIterations \t partitions \t
// sunkenPartitions \t constrainedCells.
func (d Diagnostics) String() string {
	return fmt.Sprintf("%g\t%d\t%d\t%d\t%d\t%d",
		d.TotalWeight, d.TotalIterations, d.LegalIterations,
		d.Partitions, d.SunkenPartitions, d.ConstrainedCells)
}
