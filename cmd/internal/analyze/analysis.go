package analyze

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nelhage/connect4/ai"
	"github.com/nelhage/connect4/c4"
	"github.com/nelhage/connect4/cli"
	"github.com/nelhage/connect4/notation"
	"github.com/nelhage/connect4/rpc"
)

type Analyzer interface {
	Analyze(ctx context.Context, out io.Writer, p *c4.Position) error
}

type minimaxAnalysis struct {
	cmd     *Command
	ai      *ai.MinimaxAI
	weights *ai.Weights
}

func (m *minimaxAnalysis) Analyze(ctx context.Context, out io.Writer, p *c4.Position) error {
	if !m.cmd.quiet {
		cli.RenderBoard(nil, out, p)
		if m.cmd.explain {
			ai.ExplainScore(m.weights, out, p)
		}
	}
	if m.cmd.eval {
		fmt.Fprintf(out, " value=%+.4f\n", m.ai.Config().Evaluate(p))
		return nil
	}
	a, err := m.ai.Analyze(ctx, p)
	if err != nil {
		return err
	}
	var pruned []string
	if m.cmd.listPruned {
		for _, pp := range a.Pruned {
			pruned = append(pruned, notation.FormatPosition(pp))
		}
	}
	report(out, &rpc.Response{
		Move:     a.Move.Column(),
		Value:    a.Value,
		Exact:    a.Exact,
		Children: children(a.Moves),
		Stats:    a.Stats,
		Pruned:   pruned,
	})

	if !m.cmd.quiet {
		fmt.Fprintln(out, "Resulting position:")
		cli.RenderBoard(nil, out, a.Position)
		if m.cmd.explain {
			ai.ExplainScore(m.weights, out, a.Position)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func children(ms []ai.ScoredMove) []rpc.Child {
	out := make([]rpc.Child, 0, len(ms))
	for _, sm := range ms {
		out = append(out, rpc.Child{Move: sm.Move.Column(), Value: sm.Value})
	}
	return out
}

type remoteAnalysis struct {
	cmd    *Command
	cfg    ai.MinimaxConfig
	client *rpc.Client
}

func (r *remoteAnalysis) Analyze(ctx context.Context, out io.Writer, p *c4.Position) error {
	if !r.cmd.quiet {
		cli.RenderBoard(nil, out, p)
	}
	resp, err := r.client.Analyze(ctx, &rpc.Request{
		Position:   notation.FormatPosition(p),
		Depth:      r.cfg.Depth,
		Prune:      r.cfg.Prune,
		ListPruned: r.cmd.listPruned,
	})
	if err != nil {
		return err
	}
	report(out, resp)
	return nil
}

func describe(v float64) string {
	switch {
	case ai.IsWin(v) && v > 0:
		return "one wins"
	case ai.IsWin(v):
		return "two wins"
	case v > 0:
		return "one is better"
	case v < 0:
		return "two is better"
	}
	return "even"
}

func report(out io.Writer, r *rpc.Response) {
	pr := message.NewPrinter(language.English)
	pr.Fprintf(out, "AI analysis:\n")
	for _, c := range r.Children {
		mark := " "
		if c.Move == r.Move {
			mark = "*"
		}
		pr.Fprintf(out, " %s move=%d value=%+.4f\n", mark, c.Move, c.Value)
	}
	exact := "estimated"
	if r.Exact {
		exact = "exact"
	}
	pr.Fprintf(out, " best=%d value=%+.4f (%s, %s)\n", r.Move, r.Value, exact, describe(r.Value))
	pr.Fprintf(out, " visited=%d evaluated=%d terminal=%d cutoffs=%d pruned=%d\n",
		r.Stats.Visited, r.Stats.Evaluated, r.Stats.Terminal, r.Stats.Cutoffs, r.Stats.Pruned)
	for _, p := range r.Pruned {
		fmt.Fprintf(out, " pruned %s\n", p)
	}
	fmt.Fprintln(out)
}
