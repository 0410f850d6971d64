package rpc

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type Client struct {
	cc grpc.ClientConnInterface

	Attempts uint
	Delay    time.Duration
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc, Attempts: 5, Delay: 100 * time.Millisecond}
}

// Analyze calls the server, retrying while it is unavailable.
func (c *Client) Analyze(ctx context.Context, req *Request) (*Response, error) {
	in, err := req.Encode()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	err = retry.Do(
		func() error {
			return c.cc.Invoke(ctx, AnalyzeMethod, in, out)
		},
		retry.Context(ctx),
		retry.Attempts(c.Attempts),
		retry.Delay(c.Delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return status.Code(err) == codes.Unavailable
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Err(err).Uint("n", n).Msg("[rpc] analyze-retry")
		}),
	)
	if err != nil {
		return nil, err
	}
	return DecodeResponse(out), nil
}
