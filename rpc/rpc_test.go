package rpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nelhage/connect4/ai"
)

const board3 = "......./......./......./......./......./..xox.."

func startServer(t *testing.T) (*Server, *Client) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(ai.Bounded(2), nil)
	gs := grpc.NewServer()
	Register(gs, srv)
	go gs.Serve(lis)
	t.Cleanup(gs.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { cc.Close() })
	return srv, NewClient(cc)
}

func TestAnalyze(t *testing.T) {
	srv, client := startServer(t)
	ctx := context.Background()

	resp, err := client.Analyze(ctx, &Request{Position: board3, Depth: ai.Bounded(2)})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Move)
	assert.InDelta(t, -0.15611814345991562, resp.Value, 1e-12)
	assert.False(t, resp.Exact)
	require.Len(t, resp.Children, 7)
	for i, c := range resp.Children {
		assert.Equal(t, i, c.Move)
	}
	assert.Equal(t, resp.Value, resp.Children[3].Value)
	assert.NotZero(t, resp.Stats.Evaluated)
	assert.Empty(t, resp.Pruned)

	again, err := client.Analyze(ctx, &Request{Position: board3, Depth: ai.Bounded(2)})
	require.NoError(t, err)
	assert.Equal(t, resp, again)
	assert.Equal(t, uint64(1), srv.CacheHits())
}

func TestAnalyzePruned(t *testing.T) {
	_, client := startServer(t)
	resp, err := client.Analyze(context.Background(), &Request{
		Position:   board3,
		Depth:      ai.Bounded(2),
		Prune:      true,
		ListPruned: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Move)
	assert.Len(t, resp.Pruned, 106)
	assert.Equal(t, uint64(106), resp.Stats.Pruned)
	assert.NotZero(t, resp.Stats.Cutoffs)
}

func TestAnalyzeErrors(t *testing.T) {
	_, client := startServer(t)
	ctx := context.Background()

	_, err := client.Analyze(ctx, &Request{Position: "not a board", Depth: ai.Bounded(1)})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	over := "......./......./...x.../...xo../...xo../...xo.."
	_, err = client.Analyze(ctx, &Request{Position: over, Depth: ai.Bounded(1)})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestDefaultDepth(t *testing.T) {
	srv := NewServer(ai.Bounded(1), nil)
	in, err := structpb.NewStruct(map[string]interface{}{"position": board3})
	require.NoError(t, err)
	out, err := srv.Analyze(context.Background(), in)
	require.NoError(t, err)
	resp := DecodeResponse(out)
	// Depth one searches each child and evaluates its seven successors.
	assert.Equal(t, uint64(49), resp.Stats.Evaluated)

	_, err = srv.Analyze(context.Background(), &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

type flaky struct {
	srv   *Server
	fails int
	calls int
}

func (f *flaky) Invoke(ctx context.Context, method string, args, reply interface{}, _ ...grpc.CallOption) error {
	f.calls++
	if f.calls <= f.fails {
		return status.Error(codes.Unavailable, "warming up")
	}
	out, err := f.srv.Analyze(ctx, args.(*structpb.Struct))
	if err != nil {
		return err
	}
	proto.Merge(reply.(proto.Message), out)
	return nil
}

func (f *flaky) NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, status.Error(codes.Unimplemented, "no streams")
}

func TestClientRetries(t *testing.T) {
	cc := &flaky{srv: NewServer(ai.Bounded(1), nil), fails: 2}
	client := NewClient(cc)
	client.Delay = time.Millisecond
	resp, err := client.Analyze(context.Background(), &Request{Position: board3, Depth: ai.Bounded(1)})
	require.NoError(t, err)
	assert.Equal(t, 3, cc.calls)
	assert.Len(t, resp.Children, 7)

	cc = &flaky{srv: NewServer(ai.Bounded(1), nil), fails: 10}
	client = NewClient(cc)
	client.Delay = time.Millisecond
	client.Attempts = 3
	_, err = client.Analyze(context.Background(), &Request{Position: board3, Depth: ai.Bounded(1)})
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.Equal(t, 3, cc.calls)
}

func TestNoRetryOnBadRequest(t *testing.T) {
	cc := &flaky{srv: NewServer(ai.Bounded(1), nil)}
	client := NewClient(cc)
	_, err := client.Analyze(context.Background(), &Request{Position: "x", Depth: ai.Bounded(1)})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, 1, cc.calls)
}

func TestRequestRoundTrip(t *testing.T) {
	req := &Request{Position: board3, Depth: ai.Unbounded, Prune: true}
	s, err := req.Encode()
	require.NoError(t, err)
	back, err := DecodeRequest(s, Request{Depth: ai.Bounded(3)})
	require.NoError(t, err)
	assert.Equal(t, req, back)

	s.Fields["depth"] = structpb.NewStringValue("deep")
	_, err = DecodeRequest(s, Request{Depth: ai.Bounded(3)})
	assert.Error(t, err)
}

func TestRequestDefaults(t *testing.T) {
	s, err := structpb.NewStruct(map[string]interface{}{"position": board3})
	require.NoError(t, err)
	r, err := DecodeRequest(s, Request{Depth: ai.Bounded(3), Prune: true})
	require.NoError(t, err)
	assert.Equal(t, ai.Bounded(3), r.Depth)
	assert.True(t, r.Prune)

	s.Fields["prune"] = structpb.NewBoolValue(false)
	r, err = DecodeRequest(s, Request{Depth: ai.Bounded(3), Prune: true})
	require.NoError(t, err)
	assert.False(t, r.Prune)
}

func TestDefaultPrune(t *testing.T) {
	srv := NewServer(ai.Bounded(2), nil)
	srv.DefaultPrune = true
	in, err := structpb.NewStruct(map[string]interface{}{"position": board3})
	require.NoError(t, err)
	out, err := srv.Analyze(context.Background(), in)
	require.NoError(t, err)
	resp := DecodeResponse(out)
	assert.Equal(t, 3, resp.Move)
	assert.Equal(t, uint64(106), resp.Stats.Pruned)
	assert.NotZero(t, resp.Stats.Cutoffs)
}

func TestCacheBounded(t *testing.T) {
	srv := NewServer(ai.Bounded(1), nil)
	srv.cache = make([]cacheEntry, 1)
	analyze := func(pos string) {
		in, err := (&Request{Position: pos, Depth: ai.Bounded(1)}).Encode()
		require.NoError(t, err)
		_, err = srv.Analyze(context.Background(), in)
		require.NoError(t, err)
	}
	other := "......./......./......./......./......./...x..."

	analyze(board3)
	analyze(board3)
	assert.Equal(t, uint64(1), srv.CacheHits())
	analyze(other)
	analyze(board3)
	assert.Equal(t, uint64(1), srv.CacheHits())
	assert.Len(t, srv.cache, 1)
	assert.Len(t, NewServer(ai.Bounded(1), nil).cache, CacheSize)
}

func TestAnalyzeDeadline(t *testing.T) {
	srv, client := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := client.Analyze(ctx, &Request{Position: "......./......./......./......./......./.......", Depth: ai.Bounded(12)})
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
	assert.Less(t, time.Since(start), 5*time.Second)

	// The server itself stops searching, not just the client waiting.
	in, err := (&Request{Position: "......./......./......./......./......./.......", Depth: ai.Bounded(12)}).Encode()
	require.NoError(t, err)
	sctx, scancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer scancel()
	start = time.Now()
	_, err = srv.Analyze(sctx, in)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, uint64(0), srv.CacheHits())
}
