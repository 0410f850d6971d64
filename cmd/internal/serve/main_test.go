package serve

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nelhage/connect4/ai"
	"github.com/nelhage/connect4/rpc"
)

func TestServeLimited(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	lis = netutil.LimitListener(lis, 2)

	gs := grpc.NewServer()
	rpc.Register(gs, newServer(ai.MinimaxConfig{Depth: ai.Bounded(1), Prune: true}))
	go gs.Serve(lis)
	defer gs.Stop()

	cc, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer cc.Close()

	// No depth in the request: the server's default applies.
	in, err := structpb.NewStruct(map[string]interface{}{
		"position": "......./......./......./......./......./..xox..",
	})
	require.NoError(t, err)
	out := new(structpb.Struct)
	require.NoError(t, cc.Invoke(context.Background(), rpc.AnalyzeMethod, in, out))
	resp := rpc.DecodeResponse(out)
	assert.Equal(t, 3, resp.Move)
	assert.Len(t, resp.Children, 7)
	assert.InDelta(t, -0.024390243902439025, resp.Value, 1e-12)

	// Nor prune: the server's -prune applies.
	in.Fields["depth"] = structpb.NewStringValue("2")
	out = new(structpb.Struct)
	require.NoError(t, cc.Invoke(context.Background(), rpc.AnalyzeMethod, in, out))
	resp = rpc.DecodeResponse(out)
	assert.Equal(t, 3, resp.Move)
	assert.Equal(t, uint64(106), resp.Stats.Pruned)

	plain := newServer(ai.MinimaxConfig{Depth: ai.Bounded(1)})
	assert.False(t, plain.DefaultPrune)
}
