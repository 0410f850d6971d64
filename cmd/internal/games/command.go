package games

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/nelhage/connect4/cmd/internal/opt"
	"github.com/nelhage/connect4/logs"
)

type Command struct {
	db        string
	limit     int
	standings bool
}

func (*Command) Name() string     { return "games" }
func (*Command) Synopsis() string { return "List recorded games and standings" }
func (*Command) Usage() string {
	return `games [-limit N] [-standings] -db GAMES.db
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.db, "db", opt.Config().GetString("db"), "sqlite game log")
	flags.IntVar(&c.limit, "limit", 20, "number of recent games to list")
	flags.BoolVar(&c.standings, "standings", false, "show per-player standings instead of games")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.db == "" {
		log.Error().Msg("Must supply a game database")
		return subcommands.ExitUsageError
	}
	repo, err := logs.Open(c.db)
	if err != nil {
		log.Error().Err(err).Str("db", c.db).Msg("open")
		return subcommands.ExitFailure
	}
	defer repo.Close()

	if c.standings {
		err = printStandings(os.Stdout, repo)
	} else {
		err = printGames(os.Stdout, repo, c.limit)
	}
	if err != nil {
		log.Error().Err(err).Msg("query")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printGames(out io.Writer, repo *logs.Repository, limit int) error {
	gs, err := repo.RecentGames(limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\ttime\tone\ttwo\tresult\tplies\tmoves\n")
	for _, g := range gs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			g.ID, g.Timestamp.Format("2006-01-02 15:04"), g.Player1, g.Player2,
			g.Result, g.Plies, g.Moves)
	}
	return tw.Flush()
}

func printStandings(out io.Writer, repo *logs.Repository) error {
	ss, err := repo.Standings()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "player\tgames\twins\tlosses\tdraws\n")
	for _, s := range ss {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", s.Player, s.Games, s.Wins, s.Losses, s.Draws)
	}
	return tw.Flush()
}
