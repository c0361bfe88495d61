package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/torgeiws/thrilldigger/board"
	"github.com/torgeiws/thrilldigger/engine"
	"github.com/torgeiws/thrilldigger/internal/logx"
	"github.com/torgeiws/thrilldigger/ledger"
)

func newPlayCmd() *cobra.Command {
	var width, height, bombs, rupoors int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "play an interactive game against a freshly generated board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(width, height, bombs, rupoors)
		},
	}
	cmd.Flags().IntVar(&width, "width", 6, "board width")
	cmd.Flags().IntVar(&height, "height", 5, "board height")
	cmd.Flags().IntVar(&bombs, "bombs", 3, "number of bombs")
	cmd.Flags().IntVar(&rupoors, "rupoors", 2, "number of rupoors")
	return cmd
}

// runPlay implements the console loop the teacher's msgame package used
// to drive: prompt for a coordinate, reveal it against the oracle board,
// print the updated probability grid, and report the ledger and outcome
// when the game ends.
func runPlay(width, height, bombs, rupoors int) error {
	safeX, safeY := width/2, height/2
	rng := rand.New(rand.NewSource(int64(os.Getpid())))
	b := board.Generate(rng, width, height, bombs, rupoors, safeX, safeY)
	e := engine.Configure(width, height, bombs+rupoors)
	l := ledger.New()

	reader := bufio.NewReader(os.Stdin)
	if err := e.Recompute(); err != nil {
		return errors.Wrap(err, "initial recompute")
	}

	for !b.HasWon() {
		printGrid(e)

		x, y, err := promptCoordinate(reader, width, height)
		if err != nil {
			return err
		}

		state := b.Cell(x, y)
		if err := e.Reveal(x, y, state); err != nil {
			var ee *engine.EngineError
			if errors.As(err, &ee) && ee.Kind == engine.KindOutOfBounds {
				fmt.Printf("reveal rejected: %s\n", ee.Kind)
				continue
			}
			return err
		}
		l.Apply(state)

		if state.IsBad() {
			fmt.Printf("you dug up a %s. final rupees: %d\n", state, l.Rupees())
			return nil
		}
		b.MarkRevealed(x, y)

		if err := e.Recompute(); err != nil {
			log.Warnf("recompute reported unsatisfiable constraints: %v", err)
			fmt.Println("the engine detected a contradiction and has reset; continue digging")
			continue
		}
		logx.Diagnostics(x, y, e.Diagnostics().String())
	}

	fmt.Printf("you cleared the board! final rupees: %d\n", l.Rupees())
	return nil
}

func printGrid(e *engine.Engine) {
	probs := e.Probabilities()
	for y := range probs {
		row := make([]string, len(probs[y]))
		for x, p := range probs[y] {
			if !e.IsUnopened(x, y) {
				row[x] = "  . "
			} else {
				row[x] = fmt.Sprintf("%.2f", p)
			}
		}
		fmt.Println(strings.Join(row, " "))
	}
}

func promptCoordinate(reader *bufio.Reader, width, height int) (x, y int, err error) {
	for {
		fmt.Printf("dig (x y), 0-%d 0-%d: ", width-1, height-1)
		line, readErr := reader.ReadString('\n')
		if readErr != nil {
			return 0, 0, errors.Wrap(readErr, "reading input")
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Println("expected two integers")
			continue
		}
		x, errX := strconv.Atoi(fields[0])
		y, errY := strconv.Atoi(fields[1])
		if errX != nil || errY != nil || x < 0 || x >= width || y < 0 || y >= height {
			fmt.Println("coordinate out of range")
			continue
		}
		return x, y, nil
	}
}
