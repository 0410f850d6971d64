package analyze

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/nelhage/connect4/ai"
	"github.com/nelhage/connect4/c4"
	"github.com/nelhage/connect4/cmd/internal/opt"
	"github.com/nelhage/connect4/notation"
	"github.com/nelhage/connect4/rpc"
)

type Command struct {
	/* Output options */
	quiet      bool
	listPruned bool

	/* Options to select the position */
	moves     string
	variation string

	/* Options for the minimax engine  */
	eval    bool
	explain bool
	mmopt   opt.Minimax

	/* Ask a running server instead of searching locally */
	remote string
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Evaluate a Connect Four position" }
func (*Command) Usage() string {
	return `analyze [options] POSITION
analyze [options] -moves RECORD

Search a position and report the value of every move. POSITION lists the
six rows top first, separated by '/', using '.', 'x' and 'o'; RECORD is
a space-separated list of columns played from the empty board.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.quiet, "quiet", false, "don't print board diagrams")
	flags.BoolVar(&c.listPruned, "list-pruned", false, "print every position alpha-beta skipped")

	flags.StringVar(&c.moves, "moves", "", "analyze the position after this move record")
	flags.StringVar(&c.variation, "variation", "", "apply the listed moves after the given position")

	flags.BoolVar(&c.eval, "evaluate", false, "only show static evaluation")
	flags.BoolVar(&c.explain, "explain", false, "explain scoring")

	c.mmopt.AddFlags(flags)

	flags.StringVar(&c.remote, "remote", "", "address of a connect4 server to analyze with")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.Debug(c.mmopt.Debug)
	p, err := c.position(flag.Args())
	if err != nil {
		log.Error().Err(err).Msg("position")
		return subcommands.ExitUsageError
	}
	if c.variation != "" {
		p, err = applyVariation(p, c.variation)
		if err != nil {
			log.Error().Err(err).Msg("-variation")
			return subcommands.ExitUsageError
		}
	}
	cfg, err := c.mmopt.BuildConfig()
	if err != nil {
		log.Error().Err(err).Msg("engine options")
		return subcommands.ExitUsageError
	}
	w, _ := ai.ParseWeights(c.mmopt.Weights)

	var an Analyzer
	if c.remote != "" {
		cc, err := grpc.NewClient(c.remote, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			log.Error().Err(err).Str("remote", c.remote).Msg("dial")
			return subcommands.ExitFailure
		}
		defer cc.Close()
		an = &remoteAnalysis{cmd: c, cfg: cfg, client: rpc.NewClient(cc)}
	} else {
		an = &minimaxAnalysis{cmd: c, ai: ai.NewMinimax(cfg), weights: &w}
	}
	if err := an.Analyze(ctx, os.Stdout, p); err != nil {
		log.Error().Err(err).Msg("analyze")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Command) position(args []string) (*c4.Position, error) {
	if c.moves != "" {
		if len(args) != 0 {
			return nil, errUsage
		}
		return notation.Replay(c.moves)
	}
	if len(args) != 1 {
		return nil, errUsage
	}
	return notation.Parse(args[0])
}

func applyVariation(p *c4.Position, variant string) (*c4.Position, error) {
	ms, err := notation.ParseMoves(variant)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		p, err = p.Move(m)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

var errUsage = errors.New("need exactly one of POSITION or -moves RECORD")
