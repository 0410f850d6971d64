package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/subcommands"

	"github.com/nelhage/connect4/cmd/internal/analyze"
	"github.com/nelhage/connect4/cmd/internal/games"
	"github.com/nelhage/connect4/cmd/internal/opt"
	"github.com/nelhage/connect4/cmd/internal/play"
	"github.com/nelhage/connect4/cmd/internal/selfplay"
	"github.com/nelhage/connect4/cmd/internal/serve"
)

var (
	config   = flag.String("config", "", "config file (yaml, json or toml)")
	logLevel = flag.String("log-level", "info", "log level")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")
	subcommands.Register(&serve.Command{}, "")
	subcommands.Register(&games.Command{}, "")

	flag.Parse()
	if err := opt.Init(*config); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	if err := opt.Logging(*logLevel, opt.Config().GetInt("debug")); err != nil {
		fmt.Fprintln(os.Stderr, "-log-level:", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	status := subcommands.Execute(ctx)
	cancel()
	os.Exit(int(status))
}
