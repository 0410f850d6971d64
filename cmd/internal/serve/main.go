package serve

import (
	"context"
	"flag"
	"fmt"
	"net"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"

	"github.com/nelhage/connect4/ai"
	"github.com/nelhage/connect4/cmd/internal/opt"
	"github.com/nelhage/connect4/rpc"
)

type Command struct {
	port     int
	maxConns int
	mmopt    opt.Minimax
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve position analysis via GRPC" }
func (*Command) Usage() string {
	return `serve [flags]

-depth and -prune apply to requests that do not set them; -weights
tunes the evaluator for every request.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	conf := opt.Config()
	flags.IntVar(&c.port, "port", conf.GetInt("port"), "bind port")
	flags.IntVar(&c.maxConns, "max-conns", conf.GetInt("max-conns"), "maximum simultaneous connections (0 for no limit)")
	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.Debug(c.mmopt.Debug)
	cfg, err := c.mmopt.BuildConfig()
	if err != nil {
		log.Error().Err(err).Msg("engine options")
		return subcommands.ExitUsageError
	}
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.port))
	if err != nil {
		log.Error().Err(err).Int("port", c.port).Msg("failed to listen")
		return subcommands.ExitFailure
	}
	if c.maxConns > 0 {
		lis = netutil.LimitListener(lis, c.maxConns)
	}
	grpcServer := grpc.NewServer()
	srv := newServer(cfg)
	rpc.Register(grpcServer, srv)

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()
	log.Info().Int("port", c.port).Int("max-conns", c.maxConns).Msg("listening")
	if err := grpcServer.Serve(lis); err != nil {
		log.Error().Err(err).Msg("serve")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func newServer(cfg ai.MinimaxConfig) *rpc.Server {
	srv := rpc.NewServer(cfg.Depth, cfg.Evaluate)
	srv.DefaultPrune = cfg.Prune
	srv.Debug = cfg.Debug
	return srv
}
