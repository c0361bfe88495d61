package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/torgeiws/thrilldigger/bench"
	"github.com/torgeiws/thrilldigger/internal/logx"
)

func newBenchCmd() *cobra.Command {
	var width, height, bombs, rupoors, trials int
	var seed int64

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "run the self-play benchmark and report per-probability bad rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			logx.Infof("bench: running %d trials on a %dx%d board (%d bombs, %d rupoors, seed=%d)",
				trials, width, height, bombs, rupoors, seed)
			result := bench.Run(rng, bench.Params{
				Width: width, Height: height,
				Bombs: bombs, Rupoors: rupoors,
				SafeX: width / 2, SafeY: height / 2,
				Trials: trials,
			})
			for _, line := range result.Lines() {
				fmt.Println(line)
			}
			fmt.Printf("clicks=%d bad=%d rupees=%d\n", result.TotalClicks, result.TotalBad, result.TotalRupees)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 6, "board width")
	cmd.Flags().IntVar(&height, "height", 5, "board height")
	cmd.Flags().IntVar(&bombs, "bombs", 3, "number of bombs")
	cmd.Flags().IntVar(&rupoors, "rupoors", 2, "number of rupoors")
	cmd.Flags().IntVar(&trials, "trials", 1000, "number of self-play trials")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed; 0 picks one from the current time")
	return cmd
}
