package c4

import (
	"errors"
	"strings"

	"github.com/cespare/xxhash"
)

const (
	Rows    = 6
	Cols    = 7
	Connect = 4
	Cells   = Rows * Cols
)

// Window is a line of Connect cells, as indices into the board.
type Window [Connect]int

// Windows lists every horizontal, vertical and diagonal line of
// Connect cells on the board.
var Windows = computeWindows()

// Key identifies a position by its contents. The side to move is a
// function of the pieces on the board, so equal keys mean equal
// positions.
type Key [Cells]Color

type Position struct {
	board  Key
	height [Cols]int8

	move   int
	over   bool
	winner Color
}

type Successor struct {
	Move     Move
	Position *Position
}

var (
	ErrFloatingPiece = errors.New("piece above an empty cell")
	ErrPieceCount    = errors.New("piece counts are not reachable")
	ErrDoubleWin     = errors.New("both players have connected four")
	ErrMoveAfterWin  = errors.New("piece played after the game was won")
)

func New() *Position {
	return &Position{}
}

// FromBoard initializes a Position from a board given as a slice of
// rows, numbered from the bottom up, each of which is a slice of Cols
// colors.
func FromBoard(rows [][]Color) (*Position, error) {
	if len(rows) != Rows {
		return nil, errors.New("wrong number of rows")
	}
	p := New()
	ones, twos := 0, 0
	for r, row := range rows {
		if len(row) != Cols {
			return nil, errors.New("wrong number of columns")
		}
		for c, cell := range row {
			switch cell {
			case NoColor:
				continue
			case One:
				ones++
			case Two:
				twos++
			default:
				return nil, errors.New("bad cell")
			}
			if int(p.height[c]) != r {
				return nil, ErrFloatingPiece
			}
			p.board[index(r, c)] = cell
			p.height[c]++
		}
	}
	if ones != twos && ones != twos+1 {
		return nil, ErrPieceCount
	}
	p.move = ones + twos

	winners := make(map[Color]bool)
	for _, w := range Windows {
		if c := p.lineOwner(w); c != NoColor {
			winners[c] = true
		}
	}
	switch {
	case winners[One] && winners[Two]:
		return nil, ErrDoubleWin
	case winners[One]:
		if ones != twos+1 {
			return nil, ErrMoveAfterWin
		}
		p.over, p.winner = true, One
	case winners[Two]:
		if ones != twos {
			return nil, ErrMoveAfterWin
		}
		p.over, p.winner = true, Two
	case p.move == Cells:
		p.over = true
	}
	return p, nil
}

func index(row, col int) int {
	return row*Cols + col
}

func (p *Position) At(row, col int) Color {
	return p.board[index(row, col)]
}

// Cell returns the contents of a cell by board index, as used in
// Windows.
func (p *Position) Cell(i int) Color {
	return p.board[i]
}

// Height returns the number of pieces in a column.
func (p *Position) Height(col int) int {
	return int(p.height[col])
}

func (p *Position) ToMove() Color {
	if p.move%2 == 0 {
		return One
	}
	return Two
}

func (p *Position) MoveNumber() int {
	return p.move
}

func (p *Position) Key() Key {
	return p.board
}

func (p *Position) Hash() uint64 {
	var buf [Cells]byte
	for i, c := range p.board {
		buf[i] = byte(c)
	}
	return xxhash.Sum64(buf[:])
}

func (p *Position) GameOver() (over bool, winner Color) {
	return p.over, p.winner
}

// Winner reports the winner of a finished game; NoColor with ok set
// means a draw.
func (p *Position) Winner() (winner Color, ok bool) {
	return p.winner, p.over
}

func (p *Position) LegalMoves() []Move {
	if p.over {
		return nil
	}
	ms := make([]Move, 0, Cols)
	for c := 0; c < Cols; c++ {
		if p.height[c] < Rows {
			ms = append(ms, Move(c))
		}
	}
	return ms
}

// Successors returns one child position per legal move, in ascending
// column order.
func (p *Position) Successors() []Successor {
	ms := p.LegalMoves()
	out := make([]Successor, 0, len(ms))
	for _, m := range ms {
		child, e := p.Move(m)
		if e != nil {
			panic("Successors: " + e.Error())
		}
		out = append(out, Successor{Move: m, Position: child})
	}
	return out
}

func (p *Position) Move(m Move) (*Position, error) {
	if p.over {
		return nil, ErrGameOver
	}
	if !m.Valid() {
		return nil, ErrBadColumn
	}
	c := m.Column()
	r := int(p.height[c])
	if r >= Rows {
		return nil, ErrColumnFull
	}
	next := *p
	color := p.ToMove()
	next.board[index(r, c)] = color
	next.height[c]++
	next.move++
	if next.connects(r, c, color) {
		next.over, next.winner = true, color
	} else if next.move == Cells {
		next.over = true
	}
	return &next, nil
}

func (p *Position) lineOwner(w Window) Color {
	c := p.board[w[0]]
	if c == NoColor {
		return NoColor
	}
	for _, i := range w[1:] {
		if p.board[i] != c {
			return NoColor
		}
	}
	return c
}

func (p *Position) connects(row, col int, color Color) bool {
	dirs := [...][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		n := 1
		n += p.run(row, col, d[0], d[1], color)
		n += p.run(row, col, -d[0], -d[1], color)
		if n >= Connect {
			return true
		}
	}
	return false
}

func (p *Position) run(row, col, dr, dc int, color Color) int {
	n := 0
	for {
		row, col = row+dr, col+dc
		if row < 0 || row >= Rows || col < 0 || col >= Cols {
			return n
		}
		if p.board[index(row, col)] != color {
			return n
		}
		n++
	}
}

func (p *Position) String() string {
	var out strings.Builder
	for r := Rows - 1; r >= 0; r-- {
		for c := 0; c < Cols; c++ {
			switch p.At(r, c) {
			case One:
				out.WriteByte('x')
			case Two:
				out.WriteByte('o')
			default:
				out.WriteByte('.')
			}
		}
		out.WriteByte('\n')
	}
	return out.String()
}

func computeWindows() []Window {
	var out []Window
	dirs := [...][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			for _, d := range dirs {
				er, ec := r+d[0]*(Connect-1), c+d[1]*(Connect-1)
				if er < 0 || er >= Rows || ec < 0 || ec >= Cols {
					continue
				}
				var w Window
				for i := range w {
					w[i] = index(r+d[0]*i, c+d[1]*i)
				}
				out = append(out, w)
			}
		}
	}
	return out
}
