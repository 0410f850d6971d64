package rpc

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nelhage/connect4/ai"
	"github.com/nelhage/connect4/notation"
)

type cacheKey struct {
	hash       uint64
	depth      ai.Depth
	prune      bool
	listPruned bool
}

type cacheEntry struct {
	key  cacheKey
	resp *structpb.Struct
}

// CacheSize is the number of responses a Server remembers. Entries
// live in a fixed table indexed by position hash; a new entry replaces
// whatever occupied its slot.
const CacheSize = 1 << 12

type Server struct {
	// DefaultDepth and DefaultPrune apply to requests that do not
	// set depth or prune.
	DefaultDepth ai.Depth
	DefaultPrune bool
	Evaluate     ai.EvaluationFunc
	Debug        int

	mu    sync.Mutex
	cache []cacheEntry
	hits  uint64
}

func NewServer(defaultDepth ai.Depth, eval ai.EvaluationFunc) *Server {
	return &Server{
		DefaultDepth: defaultDepth,
		Evaluate:     eval,
		cache:        make([]cacheEntry, CacheSize),
	}
}

func (s *Server) slot(k cacheKey) *cacheEntry {
	if len(s.cache) == 0 {
		return nil
	}
	return &s.cache[k.hash%uint64(len(s.cache))]
}

func (s *Server) lookup(k cacheKey) *structpb.Struct {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.slot(k)
	if e == nil || e.resp == nil || e.key != k {
		return nil
	}
	s.hits++
	return e.resp
}

func (s *Server) store(k cacheKey, v *structpb.Struct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.slot(k); e != nil {
		*e = cacheEntry{key: k, resp: v}
	}
}

// CacheHits reports how many requests were answered from the cache.
func (s *Server) CacheHits() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

func (s *Server) Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := DecodeRequest(in, Request{Depth: s.DefaultDepth, Prune: s.DefaultPrune})
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	p, err := notation.ParsePosition(req.Position)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	key := cacheKey{p.Hash(), req.Depth, req.Prune, req.ListPruned}
	if out := s.lookup(key); out != nil {
		return out, nil
	}

	player := ai.NewMinimax(ai.MinimaxConfig{
		Depth:    req.Depth,
		Prune:    req.Prune,
		Debug:    s.Debug,
		Evaluate: s.Evaluate,
	})
	a, err := player.Analyze(ctx, p)
	switch {
	case errors.Is(err, ai.ErrNoMoves):
		return nil, status.Error(codes.FailedPrecondition, "game is over")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, status.FromContextError(err).Err()
	case err != nil:
		return nil, status.Error(codes.Internal, err.Error())
	}

	resp := Response{
		Move:  a.Move.Column(),
		Value: a.Value,
		Exact: a.Exact,
		Stats: a.Stats,
	}
	for _, sm := range a.Moves {
		resp.Children = append(resp.Children, Child{Move: sm.Move.Column(), Value: sm.Value})
	}
	if req.ListPruned {
		for _, pp := range a.Pruned {
			resp.Pruned = append(resp.Pruned, notation.FormatPosition(pp))
		}
	}
	out, err := resp.Encode()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	s.store(key, out)

	if s.Debug > 0 {
		log.Debug().
			Str("position", req.Position).
			Stringer("depth", req.Depth).
			Bool("prune", req.Prune).
			Int("move", resp.Move).
			Float64("value", resp.Value).
			Msg("[rpc] analyze")
	}
	return out, nil
}
