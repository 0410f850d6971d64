package selfplay

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/nelhage/connect4/ai"
	"github.com/nelhage/connect4/c4"
	"github.com/nelhage/connect4/cmd/internal/opt"
	"github.com/nelhage/connect4/logs"
	"github.com/nelhage/connect4/notation"
)

type Config struct {
	Games int

	Verbose bool

	// Opening is played from the empty board before either player moves.
	Opening []c4.Move

	P1, P2  opt.PlayerSpec
	Weights *ai.Weights
	Debug   int

	Swap    bool
	Threads int
	Seed    int64
	// Cutoff ends a game after this many plies; zero means never.
	Cutoff int

	// Repo, if set, receives every finished or cut-off game.
	Repo *logs.Repository
}

type Stats struct {
	Players [2]struct {
		Wins    int
		OneWins int
		TwoWins int
	}
	One, Two int
	Draws    int
	Cutoff   int

	Games []Result `json:"-"`
}

func (s *Stats) Count() int {
	return s.One + s.Two + s.Draws + s.Cutoff
}

func (s *Stats) Merge(other *Stats) Stats {
	out := *s
	for i := range out.Players {
		out.Players[i].Wins += other.Players[i].Wins
		out.Players[i].OneWins += other.Players[i].OneWins
		out.Players[i].TwoWins += other.Players[i].TwoWins
	}
	out.One += other.One
	out.Two += other.Two
	out.Draws += other.Draws
	out.Cutoff += other.Cutoff
	out.Games = append(append([]Result(nil), s.Games...), other.Games...)
	return out
}

type gameSpec struct {
	i       int
	seed    int64
	p1color c4.Color
}

type Result struct {
	spec     gameSpec
	Initial  *c4.Position
	Position *c4.Position
	Moves    []c4.Move
	Winner   c4.Color
	// P1Color is the color player one played.
	P1Color c4.Color
}

func (s *Stats) add(r *Result) {
	switch r.Winner {
	case c4.One:
		s.One++
	case c4.Two:
		s.Two++
	default:
		if over, _ := r.Position.GameOver(); over {
			s.Draws++
		} else {
			s.Cutoff++
		}
	}
	if r.Winner != c4.NoColor {
		pst := &s.Players[0]
		if r.Winner != r.P1Color {
			pst = &s.Players[1]
		}
		if r.Winner == c4.One {
			pst.OneWins++
		} else {
			pst.TwoWins++
		}
		pst.Wins++
	}
	s.Games = append(s.Games, *r)
}

// Simulate plays every configured game and tallies the results. Games
// run on c.Threads workers; each game's players are seeded from c.Seed,
// so a given configuration always produces the same games.
func Simulate(ctx context.Context, c *Config) (Stats, error) {
	var st Stats
	f1, err := buildFactory(c, c.P1)
	if err != nil {
		return st, err
	}
	f2, err := buildFactory(c, c.P2)
	if err != nil {
		return st, err
	}
	initial := c4.New()
	for i, m := range c.Opening {
		if initial, err = initial.Move(m); err != nil {
			return st, fmt.Errorf("opening move %d: %w", i+1, err)
		}
	}
	threads := c.Threads
	if threads < 1 {
		threads = 1
	}

	grp, ctx := errgroup.WithContext(ctx)
	gc := make(chan gameSpec)
	rc := make(chan Result)
	grp.Go(func() error {
		defer close(gc)
		r := rand.New(rand.NewSource(c.Seed))
		n := c.Games
		if c.Swap {
			n *= 2
		}
		for g := 0; g < n; g++ {
			spec := gameSpec{i: g, seed: r.Int63(), p1color: c4.One}
			if c.Swap && g%2 == 1 {
				spec.p1color = c4.Two
			}
			select {
			case gc <- spec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < threads; i++ {
		grp.Go(func() error {
			return worker(ctx, c, initial, f1, f2, gc, rc)
		})
	}
	var werr error
	go func() {
		werr = grp.Wait()
		close(rc)
	}()

	for r := range rc {
		if c.Verbose {
			log.Info().
				Int("game", r.spec.i).
				Int("plies", r.Position.MoveNumber()).
				Stringer("p1", r.P1Color).
				Stringer("winner", r.Winner).
				Msg("game")
		}
		st.add(&r)
	}
	if werr != nil {
		return st, werr
	}
	sort.Slice(st.Games, func(i, j int) bool {
		return st.Games[i].spec.i < st.Games[j].spec.i
	})

	if c.Repo != nil {
		if err := c.Repo.InsertGames(gameLogs(f1, f2, c.Opening, st.Games)); err != nil {
			return st, fmt.Errorf("write games: %w", err)
		}
	}
	return st, nil
}

func worker(ctx context.Context, c *Config, initial *c4.Position, f1, f2 AIFactory, games <-chan gameSpec, out chan<- Result) error {
	for g := range games {
		r := rand.New(rand.NewSource(g.seed))
		one, two := f1.GetPlayer(r.Int63()), f2.GetPlayer(r.Int63())
		if g.p1color != c4.One {
			one, two = two, one
		}

		res := Result{spec: g, Initial: initial, P1Color: g.p1color}
		p := initial
		for c.Cutoff == 0 || len(res.Moves) < c.Cutoff {
			if over, _ := p.GameOver(); over {
				break
			}
			pl := one
			if p.ToMove() == c4.Two {
				pl = two
			}
			m, err := pl.GetMove(ctx, p)
			if err != nil {
				return fmt.Errorf("game %d: get move: %w", g.i, err)
			}
			next, err := p.Move(m)
			if err != nil {
				return fmt.Errorf("game %d: illegal move %s: %w", g.i, notation.FormatMove(m), err)
			}
			p = next
			res.Moves = append(res.Moves, m)
		}
		if over, w := p.GameOver(); over {
			res.Winner = w
		}
		res.Position = p

		select {
		case out <- res:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func gameLogs(f1, f2 AIFactory, opening []c4.Move, rs []Result) []*logs.Game {
	n1, n2 := "p1:"+f1.String(), "p2:"+f2.String()
	out := make([]*logs.Game, 0, len(rs))
	for _, r := range rs {
		one, two := n1, n2
		if r.P1Color != c4.One {
			one, two = two, one
		}
		moves := append(append([]c4.Move(nil), opening...), r.Moves...)
		out = append(out, logs.NewGame(one, two, moves, r.Position))
	}
	return out
}
