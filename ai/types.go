package ai

import (
	"context"
	"errors"

	"github.com/nelhage/connect4/c4"
)

// ErrNoMoves is returned when asked to move in a position with no
// legal moves.
var ErrNoMoves = errors.New("no legal moves")

type Player interface {
	GetMove(ctx context.Context, p *c4.Position) (c4.Move, error)
}
