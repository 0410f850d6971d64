package play

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/connect4/ai"
	"github.com/nelhage/connect4/c4"
	"github.com/nelhage/connect4/cli"
	"github.com/nelhage/connect4/cmd/internal/opt"
	"github.com/nelhage/connect4/logs"
	"github.com/nelhage/connect4/notation"
)

type Command struct {
	one     string
	two     string
	debug   int
	limit   time.Duration
	weights string
	start   string
	db      string

	unicode bool

	human cli.Player
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play Connect Four from the command line" }
func (*Command) Usage() string {
	return `play [flags]

Play Connect Four on the command-line, against a human or AI. Players are
human, rand[:SEED], minimax[:DEPTH] or prune[:DEPTH].
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	conf := opt.Config()
	flags.StringVar(&c.one, "one", "human", "player one")
	flags.StringVar(&c.two, "two", "prune", "player two")
	flags.IntVar(&c.debug, "debug", conf.GetInt("debug"), "debug level")
	flags.DurationVar(&c.limit, "limit", 0, "ai time limit per move")
	flags.StringVar(&c.weights, "weights", conf.GetString("weights"), "JSON-encoded evaluation weights")
	flags.StringVar(&c.start, "start", "", "position or move record to start from")
	flags.StringVar(&c.db, "db", conf.GetString("db"), "sqlite database to record the game in")

	flags.BoolVar(&c.unicode, "unicode", false, "render board with utf8 glyphs")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.Debug(c.debug)
	w, err := ai.ParseWeights(c.weights)
	if err != nil {
		log.Error().Err(err).Msg("-weights")
		return subcommands.ExitUsageError
	}
	var start *c4.Position
	if c.start != "" {
		if start, err = notation.Parse(c.start); err != nil {
			log.Error().Err(err).Msg("-start")
			return subcommands.ExitUsageError
		}
	}
	var closers []func() error
	defer func() {
		for _, cl := range closers {
			cl()
		}
	}()
	one, err := c.parsePlayer(c.one, &w, &closers)
	if err != nil {
		log.Error().Err(err).Msg("-one")
		return subcommands.ExitUsageError
	}
	two, err := c.parsePlayer(c.two, &w, &closers)
	if err != nil {
		log.Error().Err(err).Msg("-two")
		return subcommands.ExitUsageError
	}

	st := &cli.CLI{
		Start:  start,
		Out:    os.Stdout,
		One:    one,
		Two:    two,
		Glyphs: glyphs(c.unicode),
	}
	final, err := st.Play(ctx)
	if err != nil {
		log.Error().Err(err).Msg("play")
		return subcommands.ExitFailure
	}
	if c.db != "" && start == nil {
		repo, err := logs.Open(c.db)
		if err != nil {
			log.Error().Err(err).Str("db", c.db).Msg("open game log")
			return subcommands.ExitFailure
		}
		defer repo.Close()
		if err := repo.InsertGame(logs.NewGame(c.one, c.two, st.Moves(), final)); err != nil {
			log.Error().Err(err).Msg("record game")
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}

func glyphs(unicode bool) *cli.Glyphs {
	if unicode {
		return &cli.UnicodeGlyphs
	}
	return &cli.DefaultGlyphs
}

type aiWrapper struct {
	limit time.Duration
	p     ai.Player
}

func (a *aiWrapper) GetMove(ctx context.Context, p *c4.Position) (c4.Move, error) {
	if a.limit == 0 {
		return a.p.GetMove(ctx, p)
	}
	ctx, cancel := context.WithTimeout(ctx, a.limit)
	defer cancel()
	return a.p.GetMove(ctx, p)
}

func (c *Command) parsePlayer(s string, w *ai.Weights, closers *[]func() error) (cli.Player, error) {
	spec, err := opt.ParsePlayer(s)
	if err != nil {
		return nil, err
	}
	if spec.Kind == opt.KindHuman {
		// Both sides share one terminal.
		if c.human == nil {
			p, closer, err := cli.NewReadlinePlayer(os.Stdout)
			if err != nil {
				return nil, err
			}
			*closers = append(*closers, closer)
			c.human = p
		}
		return c.human, nil
	}
	p, err := spec.Build(0, c.debug, w)
	if err != nil {
		return nil, err
	}
	return &aiWrapper{c.limit, p}, nil
}
