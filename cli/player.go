package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/samber/lo"

	"github.com/nelhage/connect4/c4"
	"github.com/nelhage/connect4/notation"
)

// LineReader is the input side of a human player. *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
}

type prompter interface {
	SetPrompt(string)
}

func NewCLIPlayer(out io.Writer, in LineReader) Player {
	return &cliPlayer{out, in}
}

// NewReadlinePlayer returns a human player reading from the terminal,
// and a function to release it.
func NewReadlinePlayer(out io.Writer) (Player, func() error, error) {
	l, err := readline.NewEx(&readline.Config{
		Stdout:          out,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, nil, err
	}
	return NewCLIPlayer(out, l), l.Close, nil
}

type cliPlayer struct {
	out io.Writer
	in  LineReader
}

func Prompt(p *c4.Position) string {
	cols := lo.Map(p.LegalMoves(), func(m c4.Move, _ int) string {
		return notation.FormatMove(m)
	})
	return fmt.Sprintf("Kindly enter your move [%s]: ", strings.Join(cols, " "))
}

func (c *cliPlayer) GetMove(ctx context.Context, p *c4.Position) (c4.Move, error) {
	prompt := Prompt(p)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if pr, ok := c.in.(prompter); ok {
			pr.SetPrompt(prompt)
		} else {
			fmt.Fprint(c.out, prompt)
		}
		line, err := c.in.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				return 0, context.Canceled
			}
			return 0, err
		}
		m, err := notation.ParseMove(line)
		if err != nil {
			fmt.Fprintln(c.out, "parse error:", err)
			continue
		}
		if _, err := p.Move(m); err != nil {
			fmt.Fprintln(c.out, "illegal move:", err)
			continue
		}
		return m, nil
	}
}
