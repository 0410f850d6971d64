package selfplay

import (
	"fmt"

	"github.com/nelhage/connect4/ai"
	"github.com/nelhage/connect4/cmd/internal/opt"
)

// AIFactory builds a fresh player for each game.
type AIFactory interface {
	GetPlayer(seed int64) ai.Player
	String() string
}

type specFactory struct {
	spec    opt.PlayerSpec
	debug   int
	weights *ai.Weights
}

func (f *specFactory) GetPlayer(seed int64) ai.Player {
	p, err := f.spec.Build(seed, f.debug, f.weights)
	if err != nil {
		panic(fmt.Sprintf("build %s: %v", f.spec, err))
	}
	return p
}

func (f *specFactory) String() string {
	return f.spec.String()
}

func buildFactory(cfg *Config, spec opt.PlayerSpec) (AIFactory, error) {
	if spec.Kind == opt.KindHuman {
		return nil, fmt.Errorf("selfplay: %s cannot play unattended", spec)
	}
	return &specFactory{spec: spec, debug: cfg.Debug, weights: cfg.Weights}, nil
}
