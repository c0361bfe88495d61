// Package board implements the oracle board generator and lookup API
// consumed by the self-play benchmark and the interactive console game: a
// concrete grid of bombs, rupoors, and reward tiles, with the true
// per-cell state available for the engine's caller to reveal.
package board

import (
	"math/rand"

	"github.com/torgeiws/thrilldigger/engine"
)

// rewardTier names one of the four non-bad collectible tiers a safe cell
// can carry in place of a clue, and the rupee value a ledger credits for
// digging it.
type rewardTier int

const (
	tierGreen rewardTier = iota
	tierBlue
	tierRed
	tierSilver
)

var tierWeight = map[rewardTier]int{
	tierGreen:  60,
	tierBlue:   25,
	tierRed:    10,
	tierSilver: 5,
}

var tierOrder = []rewardTier{tierGreen, tierBlue, tierRed, tierSilver}

func (t rewardTier) state() engine.CellState {
	switch t {
	case tierGreen:
		return engine.RewardGreen()
	case tierBlue:
		return engine.RewardBlue()
	case tierRed:
		return engine.RewardRed()
	case tierSilver:
		return engine.RewardSilver()
	default:
		return engine.RewardGreen()
	}
}

// rewardFraction is the share of non-bad cells that carry a reward tile
// instead of a plain clue number; the rest surface a clue computed from
// their neighbor bad count, exactly as every safe cell does in
// spec.md's model.
const rewardFraction = 0.35

type kind int

const (
	kindSafe kind = iota
	kindBomb
	kindRupoor
	kindReward
)

type cell struct {
	k     kind
	tier  rewardTier
	badNb int // adjacent bomb+rupoor count, meaningful only for kindSafe
}

// Board is a fully-determined grid: the true location of every bomb,
// rupoor, and reward tile. Its cells never change after Generate; HasWon
// is computed from the reveals recorded through MarkRevealed.
type Board struct {
	width, height int
	cells         []cell
	safeCells     int // non-bad cells, the count HasWon needs
	revealedSafe  map[int]bool
}

// Generate places bombs and rupoors uniformly at random, excluding the
// 3x3 neighborhood around (safeX, safeY), then distributes reward tiles
// over the remaining safe cells, grounded in HerbHall-cli-play's
// placeMines retry-until-placed loop rather than the teacher's
// percentage-roll loop. Placement retries until every bad item is placed,
// so bombs+rupoors must not exceed the number of cells outside that
// neighborhood; Generate does not check this and does not return otherwise.
func Generate(rng *rand.Rand, width, height, bombs, rupoors int, safeX, safeY int) *Board {
	n := width * height
	b := &Board{
		width:        width,
		height:       height,
		cells:        make([]cell, n),
		revealedSafe: make(map[int]bool),
	}

	excluded := make(map[int]bool)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := safeX+dx, safeY+dy
			if x >= 0 && x < width && y >= 0 && y < height {
				excluded[y*width+x] = true
			}
		}
	}

	placeRandom := func(k kind, count int) {
		placed := 0
		for placed < count {
			h := rng.Intn(n)
			if excluded[h] || b.cells[h].k != kindSafe {
				continue
			}
			b.cells[h].k = k
			placed++
		}
	}
	placeRandom(kindBomb, bombs)
	placeRandom(kindRupoor, rupoors)

	for h := range b.cells {
		if b.cells[h].k != kindSafe {
			continue
		}
		if rng.Float64() < rewardFraction {
			b.cells[h].k = kindReward
			b.cells[h].tier = pickTier(rng)
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			h := y*width + x
			if b.cells[h].k != kindSafe {
				continue
			}
			b.cells[h].badNb = countBadNeighbors(b, x, y)
		}
	}

	for _, c := range b.cells {
		if c.k != kindBomb && c.k != kindRupoor {
			b.safeCells++
		}
	}

	return b
}

func pickTier(rng *rand.Rand) rewardTier {
	total := 0
	for _, t := range tierOrder {
		total += tierWeight[t]
	}
	roll := rng.Intn(total)
	for _, t := range tierOrder {
		w := tierWeight[t]
		if roll < w {
			return t
		}
		roll -= w
	}
	return tierGreen
}

func countBadNeighbors(b *Board, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= b.width || ny < 0 || ny >= b.height {
				continue
			}
			nc := b.cells[ny*b.width+nx]
			if nc.k == kindBomb || nc.k == kindRupoor {
				count++
			}
		}
	}
	return count
}

// Cell reports the true state of (x, y), the way an oracle lookup does
// for the self-play benchmark: the caller is expected to feed this
// straight into Engine.Reveal.
func (b *Board) Cell(x, y int) engine.CellState {
	h := y*b.width + x
	c := b.cells[h]
	switch c.k {
	case kindBomb:
		return engine.Bomb()
	case kindRupoor:
		return engine.Rupoor()
	case kindReward:
		return c.tier.state()
	default:
		return engine.Clue(c.badNb)
	}
}

// MarkRevealed records that (x, y) has been dug, for HasWon's bookkeeping.
// HasWon counts every recorded cell as a safe one, so callers record only
// non-bad cells.
func (b *Board) MarkRevealed(x, y int) {
	b.revealedSafe[y*b.width+x] = true
}

// HasWon reports whether every non-bad cell has been revealed.
func (b *Board) HasWon() bool {
	return len(b.revealedSafe) >= b.safeCells
}

// Width and Height report the grid's dimensions.
func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }
