package ai

import (
	"context"
	"math"

	"github.com/samber/lo"

	"github.com/nelhage/connect4/c4"
)

// Stats counts the work done by a single search.
type Stats struct {
	Visited   uint64
	Evaluated uint64
	Terminal  uint64
	Cutoffs   uint64
	Pruned    uint64
}

func (s *Stats) Add(o Stats) {
	s.Visited += o.Visited
	s.Evaluated += o.Evaluated
	s.Terminal += o.Terminal
	s.Cutoffs += o.Cutoffs
	s.Pruned += o.Pruned
}

// Exact reports whether the search reached only finished games, so
// its value is the game-theoretic one rather than an estimate.
func (s *Stats) Exact() bool {
	return s.Evaluated == 0
}

// checkInterval is how many interior nodes a search visits between
// looks at its context.
const checkInterval = 1 << 10

type searcher struct {
	ctx      context.Context
	evaluate EvaluationFunc
	st       Stats
	// err is set once the context is done; every frame then unwinds
	// and the partial value is discarded.
	err error
}

func newSearcher(ctx context.Context, eval EvaluationFunc) *searcher {
	if eval == nil {
		eval = DefaultEvaluate
	}
	return &searcher{ctx: ctx, evaluate: eval}
}

func (s *searcher) visit() bool {
	s.st.Visited++
	if s.st.Visited%checkInterval == 0 {
		s.err = s.ctx.Err()
	}
	return s.err == nil
}

// Minimax returns the minimax value of p, searching d plies and
// estimating with eval where the depth runs out.
func Minimax(p *c4.Position, d Depth, eval EvaluationFunc) float64 {
	v, _ := MinimaxStats(p, d, eval)
	return v
}

func MinimaxStats(p *c4.Position, d Depth, eval EvaluationFunc) (float64, Stats) {
	v, st, _ := searchContext(context.Background(), p, d, eval)
	return v, st
}

// searchContext is MinimaxStats, abandoned with ctx.Err() once ctx is
// done.
func searchContext(ctx context.Context, p *c4.Position, d Depth, eval EvaluationFunc) (float64, Stats, error) {
	s := newSearcher(ctx, eval)
	v := s.minimax(p, d)
	return v, s.st, s.err
}

// MinimaxPrune computes the same value as Minimax using alpha-beta
// pruning. It also returns the successor positions that were never
// expanded because of a cutoff, each listed once.
func MinimaxPrune(p *c4.Position, d Depth, eval EvaluationFunc) (float64, []*c4.Position) {
	v, pruned, _ := MinimaxPruneStats(p, d, eval)
	return v, pruned
}

func MinimaxPruneStats(p *c4.Position, d Depth, eval EvaluationFunc) (float64, []*c4.Position, Stats) {
	v, pruned, st, _ := pruneContext(context.Background(), p, d, eval)
	return v, pruned, st
}

func pruneContext(ctx context.Context, p *c4.Position, d Depth, eval EvaluationFunc) (float64, []*c4.Position, Stats, error) {
	s := newSearcher(ctx, eval)
	v, pruned := s.prune(p, d, math.Inf(-1), math.Inf(1))
	if s.err != nil {
		return 0, nil, s.st, s.err
	}
	pruned = lo.UniqBy(pruned, func(p *c4.Position) c4.Key {
		return p.Key()
	})
	s.st.Pruned = uint64(len(pruned))
	return v, pruned, s.st, nil
}

// leaf returns the value of p if the search stops here. Finished games
// take priority over the depth limit.
func (s *searcher) leaf(p *c4.Position, d Depth) (float64, bool) {
	if over, winner := p.GameOver(); over {
		s.st.Terminal++
		return float64(winner), true
	}
	if d.Exhausted() {
		s.st.Evaluated++
		return s.evaluate(p), true
	}
	return 0, false
}

func (s *searcher) minimax(p *c4.Position, d Depth) float64 {
	if v, ok := s.leaf(p, d); ok {
		return v
	}
	if !s.visit() {
		return 0
	}

	maximize := p.ToMove() == c4.One
	best := worst(maximize)
	for _, succ := range p.Successors() {
		v := s.minimax(succ.Position, d.Next())
		if s.err != nil {
			return 0
		}
		if maximize {
			best = math.Max(best, v)
		} else {
			best = math.Min(best, v)
		}
	}
	return best
}

func (s *searcher) prune(p *c4.Position, d Depth, α, β float64) (float64, []*c4.Position) {
	if v, ok := s.leaf(p, d); ok {
		return v, nil
	}
	if !s.visit() {
		return 0, nil
	}

	maximize := p.ToMove() == c4.One
	best := worst(maximize)
	var pruned []*c4.Position
	succs := p.Successors()
	for i, succ := range succs {
		v, sub := s.prune(succ.Position, d.Next(), α, β)
		if s.err != nil {
			return 0, nil
		}
		pruned = append(pruned, sub...)
		if maximize {
			best = math.Max(best, v)
			α = math.Max(α, v)
		} else {
			best = math.Min(best, v)
			β = math.Min(β, v)
		}
		if β <= α {
			s.st.Cutoffs++
			for _, rest := range succs[i+1:] {
				pruned = append(pruned, rest.Position)
			}
			break
		}
	}
	return best, pruned
}

func worst(maximize bool) float64 {
	if maximize {
		return math.Inf(-1)
	}
	return math.Inf(1)
}
