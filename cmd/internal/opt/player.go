package opt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nelhage/connect4/ai"
)

type Kind int

const (
	KindHuman Kind = iota
	KindRandom
	KindMinimax
	KindPrune
)

var kindNames = map[string]Kind{
	"human":   KindHuman,
	"rand":    KindRandom,
	"random":  KindRandom,
	"minimax": KindMinimax,
	"prune":   KindPrune,
}

// PlayerSpec describes a player on the command line:
//
//	human
//	rand[:SEED]
//	minimax[:DEPTH]
//	prune[:DEPTH]
//
// where DEPTH is a number of plies or "full".
type PlayerSpec struct {
	Kind  Kind
	Seed  int64
	Depth ai.Depth
}

func ParsePlayer(s string) (PlayerSpec, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(s), ":")
	kind, ok := kindNames[strings.ToLower(name)]
	if !ok {
		return PlayerSpec{}, fmt.Errorf("unknown player %q", s)
	}
	ps := PlayerSpec{Kind: kind}
	switch kind {
	case KindHuman:
		if hasArg {
			return PlayerSpec{}, fmt.Errorf("player %q: human takes no argument", s)
		}
	case KindRandom:
		if hasArg {
			seed, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return PlayerSpec{}, fmt.Errorf("player %q: bad seed: %w", s, err)
			}
			ps.Seed = seed
		}
	case KindMinimax, KindPrune:
		d := conf.GetString("depth")
		if hasArg {
			d = arg
		}
		depth, err := ai.ParseDepth(d)
		if err != nil {
			return PlayerSpec{}, fmt.Errorf("player %q: %w", s, err)
		}
		ps.Depth = depth
	}
	return ps, nil
}

func (ps PlayerSpec) String() string {
	switch ps.Kind {
	case KindHuman:
		return "human"
	case KindRandom:
		if ps.Seed == 0 {
			return "rand"
		}
		return fmt.Sprintf("rand:%d", ps.Seed)
	case KindMinimax:
		return "minimax:" + ps.Depth.String()
	case KindPrune:
		return "prune:" + ps.Depth.String()
	}
	return fmt.Sprintf("PlayerSpec(%d)", int(ps.Kind))
}

// Build constructs a computer player. seed replaces a zero Seed for
// random players; w may be nil for the default weights. Human players
// need a terminal and are built by the caller.
func (ps PlayerSpec) Build(seed int64, debug int, w *ai.Weights) (ai.Player, error) {
	switch ps.Kind {
	case KindRandom:
		if ps.Seed != 0 {
			seed = ps.Seed
		}
		return ai.NewRandom(seed), nil
	case KindMinimax, KindPrune:
		return ai.NewMinimax(ai.MinimaxConfig{
			Depth:    ps.Depth,
			Prune:    ps.Kind == KindPrune,
			Debug:    debug,
			Evaluate: ai.MakeEvaluator(w),
		}), nil
	}
	return nil, fmt.Errorf("player %s cannot be built here", ps)
}
