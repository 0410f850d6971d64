package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/nelhage/connect4/c4"
)

func ParseMove(move string) (c4.Move, error) {
	move = strings.TrimSpace(move)
	col, err := strconv.Atoi(move)
	if err != nil {
		return 0, fmt.Errorf("bad move %q", move)
	}
	if col < 0 || col >= c4.Cols {
		return 0, fmt.Errorf("bad move %q: %w", move, c4.ErrBadColumn)
	}
	return c4.Move(col), nil
}

func FormatMove(m c4.Move) string {
	return strconv.Itoa(m.Column())
}

// ParseMoves parses a space-separated move record.
func ParseMoves(record string) ([]c4.Move, error) {
	var ms []c4.Move
	for i, w := range strings.Fields(record) {
		m, err := ParseMove(w)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func FormatMoves(ms []c4.Move) string {
	return strings.Join(lo.Map(ms, func(m c4.Move, _ int) string {
		return FormatMove(m)
	}), " ")
}

// Replay plays a move record from the empty board.
func Replay(record string) (*c4.Position, error) {
	ms, err := ParseMoves(record)
	if err != nil {
		return nil, err
	}
	p := c4.New()
	for i, m := range ms {
		p, err = p.Move(m)
		if err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i+1, FormatMove(m), err)
		}
	}
	return p, nil
}
