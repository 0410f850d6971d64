package ai

import (
	"context"
	"math"
	"math/rand"

	"lukechampine.com/frand"

	"github.com/nelhage/connect4/c4"
)

type RandomAI struct {
	r *rand.Rand
}

func (r *RandomAI) GetMove(_ context.Context, p *c4.Position) (c4.Move, error) {
	moves := p.LegalMoves()
	if len(moves) == 0 {
		return 0, ErrNoMoves
	}
	return moves[r.r.Intn(len(moves))], nil
}

// NewRandom returns a player that picks uniformly among legal moves. A
// zero seed picks one at random.
func NewRandom(seed int64) Player {
	if seed == 0 {
		seed = int64(frand.Uint64n(math.MaxInt64))
	}
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}
