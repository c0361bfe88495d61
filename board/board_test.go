package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torgeiws/thrilldigger/engine"
)

func TestGenerateExcludesSafeZone(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := Generate(rng, 8, 8, 10, 3, 4, 4)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := 4+dx, 4+dy
			state := b.Cell(x, y)
			assert.False(t, state.IsBad(), "cell (%d,%d) in safe zone must not be bad", x, y)
		}
	}
}

func TestGeneratePlacesExactCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	width, height := 8, 8
	bombs, rupoors := 6, 4
	b := Generate(rng, width, height, bombs, rupoors, 0, 0)

	gotBombs, gotRupoors := 0, 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			switch b.Cell(x, y) {
			case engine.Bomb():
				gotBombs++
			case engine.Rupoor():
				gotRupoors++
			}
		}
	}
	assert.Equal(t, bombs, gotBombs)
	assert.Equal(t, rupoors, gotRupoors)
}

func TestHasWonRequiresEverySafeCell(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	width, height := 3, 3
	b := Generate(rng, width, height, 1, 0, 0, 0)

	require.False(t, b.HasWon())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if b.Cell(x, y).IsBad() {
				continue
			}
			b.MarkRevealed(x, y)
		}
	}
	assert.True(t, b.HasWon())
}

func TestClueMatchesTrueNeighborCount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	width, height := 6, 6
	b := Generate(rng, width, height, 5, 2, 0, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			state := b.Cell(x, y)
			n, ok := state.IsClue()
			if !ok {
				continue
			}
			want := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					if b.Cell(nx, ny).IsBad() {
						want++
					}
				}
			}
			assert.Equal(t, want, n, "clue mismatch at (%d,%d)", x, y)
		}
	}
}
