package selfplay

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"lukechampine.com/frand"

	"github.com/nelhage/connect4/ai"
	"github.com/nelhage/connect4/cmd/internal/opt"
	"github.com/nelhage/connect4/logs"
	"github.com/nelhage/connect4/notation"
)

type Command struct {
	p1   string
	p2   string
	seed int64

	games  int
	cutoff int
	swap   bool

	opening string
	weights string

	debug   int
	threads int

	db      string
	summary string
	verbose bool
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two AIs against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	conf := opt.Config()
	flags.StringVar(&c.p1, "p1", "prune", "player 1 (rand[:SEED], minimax[:DEPTH], prune[:DEPTH])")
	flags.StringVar(&c.p2, "p2", "rand", "player 2")

	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.games, "games", 10, "number of games to play per color")
	flags.IntVar(&c.cutoff, "cutoff", 0, "cut games off after how many plies")
	flags.BoolVar(&c.swap, "swap", true, "swap colors each game")
	flags.StringVar(&c.opening, "opening", "", "move record to start every game from")
	flags.StringVar(&c.weights, "weights", conf.GetString("weights"), "JSON-encoded evaluation weights")
	flags.IntVar(&c.debug, "debug", conf.GetInt("debug"), "debug level")
	flags.IntVar(&c.threads, "threads", conf.GetInt("threads"), "number of parallel threads")
	flags.StringVar(&c.db, "db", conf.GetString("db"), "sqlite database to record games in")
	flags.StringVar(&c.summary, "summary", "", "write summary JSON file")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.Debug(c.debug)
	if c.seed == 0 {
		c.seed = int64(frand.Uint64n(math.MaxInt64))
	}
	p1, err := opt.ParsePlayer(c.p1)
	if err != nil {
		log.Error().Err(err).Msg("-p1")
		return subcommands.ExitUsageError
	}
	p2, err := opt.ParsePlayer(c.p2)
	if err != nil {
		log.Error().Err(err).Msg("-p2")
		return subcommands.ExitUsageError
	}
	opening, err := notation.ParseMoves(c.opening)
	if err != nil {
		log.Error().Err(err).Msg("-opening")
		return subcommands.ExitUsageError
	}
	w, err := ai.ParseWeights(c.weights)
	if err != nil {
		log.Error().Err(err).Msg("-weights")
		return subcommands.ExitUsageError
	}

	cfg := &Config{
		Games:   c.games,
		Verbose: c.verbose,
		Opening: opening,
		P1:      p1,
		P2:      p2,
		Weights: &w,
		Debug:   c.debug,
		Swap:    c.swap,
		Threads: c.threads,
		Seed:    c.seed,
		Cutoff:  c.cutoff,
	}
	if c.db != "" {
		repo, err := logs.Open(c.db)
		if err != nil {
			log.Error().Err(err).Str("db", c.db).Msg("open game log")
			return subcommands.ExitFailure
		}
		defer repo.Close()
		cfg.Repo = repo
	}

	st, err := Simulate(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("simulate")
		return subcommands.ExitFailure
	}

	if c.summary != "" {
		if err := c.writeSummary(c.summary, &st); err != nil {
			log.Error().Err(err).Msg("writing summary")
		}
	}

	log.Info().
		Int("games", st.Count()).
		Int64("seed", c.seed).
		Int("draws", st.Draws).
		Int("cutoff", st.Cutoff).
		Int("one", st.One).
		Int("two", st.Two).
		Msg("done")
	printSummary(&st, p1, p2)

	a, b := int64(st.Players[0].Wins), int64(st.Players[1].Wins)
	if a < b {
		a, b = b, a
	}
	log.Info().Float64("p", binomTest(a, b, 0.5)).Msg("one-sided binomial test")

	return subcommands.ExitSuccess
}

func printSummary(st *Stats, p1, p2 opt.PlayerSpec) {
	pr := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(os.Stderr, 2, 4, 2, ' ', 0)
	pr.Fprintf(tw, "\tone\ttwo\tsum\n")
	pr.Fprintf(tw, "p1 %s\t%d\t%d\t%d\n", p1, st.Players[0].OneWins, st.Players[0].TwoWins, st.Players[0].Wins)
	pr.Fprintf(tw, "p2 %s\t%d\t%d\t%d\n", p2, st.Players[1].OneWins, st.Players[1].TwoWins, st.Players[1].Wins)
	pr.Fprintf(tw, "sum\t%d\t%d\t%d\n",
		st.Players[0].OneWins+st.Players[1].OneWins,
		st.Players[0].TwoWins+st.Players[1].TwoWins,
		st.Players[0].Wins+st.Players[1].Wins,
	)
	pr.Fprintf(tw, "draws\t\t\t%d\n", st.Draws)
	tw.Flush()
}

type Summary struct {
	Cmdline []string
	Player1 string
	Player2 string
	Seed    int64
	Stats   *Stats
}

func (c *Command) writeSummary(path string, stats *Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	summary := Summary{
		Cmdline: os.Args,
		Player1: c.p1,
		Player2: c.p2,
		Seed:    c.seed,
		Stats:   stats,
	}

	bs, err := json.MarshalIndent(&summary, "", "  ")
	if err != nil {
		return err
	}
	if _, err := f.Write(bs); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
