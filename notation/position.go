package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nelhage/connect4/c4"
)

const (
	emptyCell = '.'
	oneCell   = 'x'
	twoCell   = 'o'
)

// ParsePosition parses a board written as rows separated by '/', top
// row first, using '.' for empty cells, 'x' for player one and 'o' for
// player two. The side to move is implied by the piece counts.
func ParsePosition(s string) (*c4.Position, error) {
	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != c4.Rows {
		return nil, fmt.Errorf("bad position: %d rows", len(rows))
	}
	board := make([][]c4.Color, c4.Rows)
	for i, r := range rows {
		row, err := parseRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		board[c4.Rows-1-i] = row
	}
	p, err := c4.FromBoard(board)
	if err != nil {
		return nil, fmt.Errorf("bad position: %w", err)
	}
	return p, nil
}

func parseRow(r string) ([]c4.Color, error) {
	if len(r) != c4.Cols {
		return nil, fmt.Errorf("bad length: %d", len(r))
	}
	row := make([]c4.Color, c4.Cols)
	for i := 0; i < len(r); i++ {
		switch r[i] {
		case emptyCell:
			row[i] = c4.NoColor
		case oneCell:
			row[i] = c4.One
		case twoCell:
			row[i] = c4.Two
		default:
			return nil, fmt.Errorf("bad cell %q", r[i])
		}
	}
	return row, nil
}

func FormatPosition(p *c4.Position) string {
	var rows []string
	for r := c4.Rows - 1; r >= 0; r-- {
		var b strings.Builder
		for c := 0; c < c4.Cols; c++ {
			switch p.At(r, c) {
			case c4.One:
				b.WriteByte(oneCell)
			case c4.Two:
				b.WriteByte(twoCell)
			default:
				b.WriteByte(emptyCell)
			}
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "/")
}

// FromMatrix builds a position from rows of +1/-1/0 values, bottom row
// first.
func FromMatrix(m [][]int) (*c4.Position, error) {
	board := make([][]c4.Color, len(m))
	for r, row := range m {
		board[r] = make([]c4.Color, len(row))
		for c, v := range row {
			switch v {
			case 0, 1, -1:
				board[r][c] = c4.Color(v)
			default:
				return nil, errors.New("bad cell value")
			}
		}
	}
	return c4.FromBoard(board)
}

// Parse accepts either a position or a move record.
func Parse(s string) (*c4.Position, error) {
	if strings.Contains(s, "/") {
		return ParsePosition(s)
	}
	return Replay(s)
}
