// File: socket/pushpull.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package socket

import (
	"context"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/reactor"
)

// NewPush prepares a PUSH socket: the fan-out half of a pipeline,
// load-balancing messages across connected PULL peers.
func NewPush(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*Push] {
	return newBuilder(ctx, zmq.PUSH, reactor.DirSend, "push", endpoint, opts,
		func(s *Socket) *Push { return &Push{Socket: s} })
}

// Push is the async wrapper of a PUSH socket.
type Push struct {
	*Socket
}

// Send queues a multipart message for the next available PULL peer.
func (p *Push) Send(ctx context.Context, msg api.Message) error {
	return p.send(ctx, msg)
}

// NewPull prepares a PULL socket: the collecting half of a pipeline.
func NewPull(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*Pull] {
	return newBuilder(ctx, zmq.PULL, reactor.DirRecv, "pull", endpoint, opts,
		func(s *Socket) *Pull { return &Pull{Socket: s} })
}

// Pull is the async wrapper of a PULL socket.
type Pull struct {
	*Socket
}

// Recv returns the next pipelined multipart message.
func (p *Pull) Recv(ctx context.Context) (api.Message, error) {
	return p.recv(ctx)
}

// C exposes the delivery channel.
func (p *Pull) C() <-chan api.Message {
	return p.channel()
}
