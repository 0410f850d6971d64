package ai

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/nelhage/connect4/c4"
	"github.com/nelhage/connect4/notation"
)

// SearchFunc computes the value of a position, as Minimax does.
type SearchFunc func(p *c4.Position, d Depth) float64

// SelectMove searches every successor of p to depth d and returns the
// best one for the side to move: the maximum for player one, the
// minimum for player two. Ties go to the earliest successor.
func SelectMove(p *c4.Position, d Depth, search SearchFunc) (c4.Move, *c4.Position, float64, error) {
	succs := p.Successors()
	values := make([]float64, 0, len(succs))
	i, err := selectBest(context.Background(), p, succs, func(succ c4.Successor) (float64, error) {
		v := search(succ.Position, d)
		values = append(values, v)
		return v, nil
	})
	if err != nil {
		return 0, nil, 0, err
	}
	return succs[i].Move, succs[i].Position, values[i], nil
}

func selectBest(ctx context.Context, p *c4.Position, succs []c4.Successor, value func(c4.Successor) (float64, error)) (int, error) {
	if len(succs) == 0 {
		return 0, ErrNoMoves
	}
	maximize := p.ToMove() == c4.One
	best := -1
	bestValue := worst(maximize)
	for i, succ := range succs {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		v, err := value(succ)
		if err != nil {
			return 0, err
		}
		if best < 0 ||
			(maximize && v > bestValue) ||
			(!maximize && v < bestValue) {
			best, bestValue = i, v
		}
	}
	return best, nil
}

type MinimaxConfig struct {
	Depth Depth
	Prune bool
	Debug int

	Evaluate EvaluationFunc
}

type MinimaxAI struct {
	cfg MinimaxConfig
}

type ScoredMove struct {
	Move  c4.Move
	Value float64
}

type Analysis struct {
	Move     c4.Move
	Position *c4.Position
	Value    float64
	// Exact is set when no line was cut off by the depth limit.
	Exact bool

	Moves  []ScoredMove
	Pruned []*c4.Position
	Stats  Stats
}

func NewMinimax(cfg MinimaxConfig) *MinimaxAI {
	if cfg.Evaluate == nil {
		cfg.Evaluate = DefaultEvaluate
	}
	return &MinimaxAI{cfg: cfg}
}

func (m *MinimaxAI) Config() MinimaxConfig {
	return m.cfg
}

// GetMove searches to the configured depth. Under a deadline it
// deepens one ply at a time instead, and when the deadline passes it
// plays the move from the deepest search that finished, or the first
// legal move if none did.
func (m *MinimaxAI) GetMove(ctx context.Context, p *c4.Position) (c4.Move, error) {
	if _, limited := ctx.Deadline(); !limited {
		a, err := m.Analyze(ctx, p)
		if err != nil {
			return 0, err
		}
		return a.Move, nil
	}

	moves := p.LegalMoves()
	if len(moves) == 0 {
		return 0, ErrNoMoves
	}
	best := moves[0]
	limit, bounded := m.cfg.Depth.Limit()
	if !bounded {
		limit = c4.Cells - p.MoveNumber()
	}
	for d := 0; d <= limit; d++ {
		a, err := m.analyze(ctx, p, Bounded(d))
		if errors.Is(err, context.DeadlineExceeded) {
			if m.cfg.Debug > 0 {
				log.Debug().Int("depth", d).Int("move", best.Column()).Msg("[minimax] time cutoff")
			}
			break
		}
		if err != nil {
			return 0, err
		}
		best = a.Move
		if a.Exact {
			break
		}
	}
	return best, nil
}

// SelectMove returns the chosen move along with the position it leads
// to.
func (m *MinimaxAI) SelectMove(p *c4.Position) (c4.Move, *c4.Position, error) {
	a, err := m.Analyze(context.Background(), p)
	if err != nil {
		return 0, nil, err
	}
	return a.Move, a.Position, nil
}

// Analyze searches every move of p to the configured depth. It stops
// with ctx.Err() once ctx is done.
func (m *MinimaxAI) Analyze(ctx context.Context, p *c4.Position) (*Analysis, error) {
	return m.analyze(ctx, p, m.cfg.Depth)
}

func (m *MinimaxAI) analyze(ctx context.Context, p *c4.Position, depth Depth) (*Analysis, error) {
	var a Analysis
	succs := p.Successors()
	i, err := selectBest(ctx, p, succs, func(succ c4.Successor) (float64, error) {
		var v float64
		var st Stats
		var err error
		if m.cfg.Prune {
			var pruned []*c4.Position
			v, pruned, st, err = pruneContext(ctx, succ.Position, depth, m.cfg.Evaluate)
			a.Pruned = append(a.Pruned, pruned...)
		} else {
			v, st, err = searchContext(ctx, succ.Position, depth, m.cfg.Evaluate)
		}
		if err != nil {
			return 0, err
		}
		a.Stats.Add(st)
		a.Moves = append(a.Moves, ScoredMove{Move: succ.Move, Value: v})
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	a.Pruned = lo.UniqBy(a.Pruned, func(p *c4.Position) c4.Key {
		return p.Key()
	})
	a.Stats.Pruned = uint64(len(a.Pruned))
	a.Move = succs[i].Move
	a.Position = succs[i].Position
	a.Value = a.Moves[i].Value
	a.Exact = a.Stats.Exact()

	if m.cfg.Debug > 0 {
		ev := log.Debug().
			Str("position", notation.FormatPosition(p)).
			Stringer("depth", depth).
			Bool("prune", m.cfg.Prune).
			Int("move", a.Move.Column()).
			Float64("value", a.Value).
			Bool("exact", a.Exact).
			Uint64("visited", a.Stats.Visited).
			Uint64("evaluated", a.Stats.Evaluated)
		if m.cfg.Prune {
			ev = ev.Uint64("cutoffs", a.Stats.Cutoffs).Uint64("pruned", a.Stats.Pruned)
		}
		ev.Msg("[minimax] analyze")
	}
	if m.cfg.Debug > 1 {
		for _, sm := range a.Moves {
			log.Debug().Int("move", sm.Move.Column()).Float64("value", sm.Value).Msg("[minimax]  candidate")
		}
	}
	return &a, nil
}

// IsWin reports whether a value is an exact win for either side.
func IsWin(v float64) bool {
	return math.Abs(v) == 1
}
