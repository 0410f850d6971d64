package opt

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/nelhage/connect4/ai"
)

var conf = defaults()

func defaults() *viper.Viper {
	v := viper.New()
	v.SetDefault("debug", 0)
	v.SetDefault("depth", "4")
	v.SetDefault("prune", true)
	v.SetDefault("weights", "")
	v.SetDefault("db", "")
	v.SetDefault("port", 55431)
	v.SetDefault("threads", 4)
	v.SetDefault("max-conns", 64)
	v.SetEnvPrefix("connect4")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Init loads settings from path, if not empty, on top of the defaults
// and CONNECT4_* environment variables. It must run before any
// subcommand registers its flags.
func Init(path string) error {
	v := defaults()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	conf = v
	return nil
}

// Config exposes the loaded settings; flag defaults are drawn from it.
func Config() *viper.Viper {
	return conf
}

type Minimax struct {
	Debug   int
	Depth   string
	Prune   bool
	Weights string
}

func (o *Minimax) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&o.Debug, "debug", conf.GetInt("debug"), "debug level")
	flags.StringVar(&o.Depth, "depth", conf.GetString("depth"), "search depth, or 'full' to search to the end of the game")
	flags.BoolVar(&o.Prune, "prune", conf.GetBool("prune"), "use alpha-beta pruning")
	flags.StringVar(&o.Weights, "weights", conf.GetString("weights"), "JSON-encoded evaluation weights")
}

func (o *Minimax) BuildConfig() (ai.MinimaxConfig, error) {
	d, err := ai.ParseDepth(o.Depth)
	if err != nil {
		return ai.MinimaxConfig{}, err
	}
	w, err := ai.ParseWeights(o.Weights)
	if err != nil {
		return ai.MinimaxConfig{}, err
	}
	return ai.MinimaxConfig{
		Depth:    d,
		Prune:    o.Prune,
		Debug:    o.Debug,
		Evaluate: ai.MakeEvaluator(&w),
	}, nil
}

// Logging sends logs to stderr in console format at level, raised to
// debug when debug is positive.
func Logging(level string, debug int) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	if debug > 0 && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

// Debug raises the log level to debug for a positive -debug flag.
func Debug(level int) {
	if level > 0 && zerolog.GlobalLevel() > zerolog.DebugLevel {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
