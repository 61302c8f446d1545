package sulGrpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Default deadline of a single call to a remote probe
const DefaultCallTimeout = 30 * time.Second

// A probe driving a system under test served over gRPC. Implements sul.Probe.
type Client struct {
	cc      grpc.ClientConnInterface
	conn    *grpc.ClientConn
	timeout time.Duration
}

// Connect to a probe server. The connection is insecure unless the options provide credentials.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("sulGrpc: failed to connect to %v: %w", addr, err)
	}
	c := NewClient(conn)
	c.conn = conn
	return c, nil
}

// Create a client using an existing connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{
		cc:      cc,
		timeout: DefaultCallTimeout,
	}
}

func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

func (c *Client) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.cc.Invoke(ctx, ResetMethod, &emptypb.Empty{}, &emptypb.Empty{})
}

func (c *Client) Step(input string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	out := &wrapperspb.StringValue{}
	if err := c.cc.Invoke(ctx, StepMethod, wrapperspb.String(input), out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

// Close the connection if the client created it
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
