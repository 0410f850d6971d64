package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nelhage/connect4/c4"
	"github.com/nelhage/connect4/notation"
)

type Player interface {
	GetMove(ctx context.Context, p *c4.Position) (c4.Move, error)
}

type Glyphs struct {
	One, Two, Empty string
}

type CLI struct {
	moves []c4.Move
	p     *c4.Position

	Start  *c4.Position
	Glyphs *Glyphs
	Out    io.Writer
	One    Player
	Two    Player
}

var DefaultGlyphs = Glyphs{
	One:   "X",
	Two:   "O",
	Empty: ".",
}

var UnicodeGlyphs = Glyphs{
	One:   "●",
	Two:   "○",
	Empty: "·",
}

// Play runs a game to completion and returns the final position. Illegal
// moves are reported and the same side is asked again; errors from a
// player end the game.
func (c *CLI) Play(ctx context.Context) (*c4.Position, error) {
	c.moves = nil
	c.p = c.Start
	if c.p == nil {
		c.p = c4.New()
	}
	for {
		c.render()
		if over, winner := c.p.GameOver(); over {
			fmt.Fprintf(c.Out, "Game Over! ")
			if winner == c4.NoColor {
				fmt.Fprintf(c.Out, "Draw.\n")
			} else {
				fmt.Fprintf(c.Out, "%s wins.\n", winner)
			}
			fmt.Fprintf(c.Out, "moves: %s\n", notation.FormatMoves(c.moves))
			return c.p, nil
		}
		pl := c.One
		if c.p.ToMove() == c4.Two {
			pl = c.Two
		}
		m, e := pl.GetMove(ctx, c.p)
		if e != nil {
			return c.p, fmt.Errorf("%s: %w", c.p.ToMove(), e)
		}
		p, e := c.p.Move(m)
		if e != nil {
			fmt.Fprintln(c.Out, "illegal move:", e)
			continue
		}
		fmt.Fprintf(c.Out, "%d. %s plays %s\n", c.p.MoveNumber()+1, c.p.ToMove(), notation.FormatMove(m))
		c.p = p
		c.moves = append(c.moves, m)
	}
}

func (c *CLI) Moves() []c4.Move {
	return c.moves
}

func (c *CLI) render() {
	RenderBoard(c.Glyphs, c.Out, c.p)
}

func RenderBoard(g *Glyphs, out io.Writer, p *c4.Position) {
	if g == nil {
		g = &DefaultGlyphs
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "[%s to play]\n", p.ToMove())
	w := tabwriter.NewWriter(out, 2, 8, 1, ' ', 0)
	for r := c4.Rows - 1; r >= 0; r-- {
		fmt.Fprintf(w, "|\t")
		for col := 0; col < c4.Cols; col++ {
			switch cell := p.At(r, col); cell {
			case c4.One:
				fmt.Fprintf(w, "%s\t", g.One)
			case c4.Two:
				fmt.Fprintf(w, "%s\t", g.Two)
			case c4.NoColor:
				fmt.Fprintf(w, "%s\t", g.Empty)
			default:
				panic(fmt.Sprintf("bad cell %v", cell))
			}
		}
		fmt.Fprintf(w, "|\n")
	}
	fmt.Fprintf(w, "\t")
	for col := 0; col < c4.Cols; col++ {
		fmt.Fprintf(w, "%d\t", col)
	}
	fmt.Fprintf(w, "\n")
	w.Flush()
}
