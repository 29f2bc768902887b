// File: socket/pair.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package socket

import (
	"context"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/reactor"
)

// NewPair prepares a PAIR socket: an exclusive bidirectional link between
// exactly two peers, mostly used over inproc endpoints.
func NewPair(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*Pair] {
	return newBuilder(ctx, zmq.PAIR, reactor.DirBoth, "pair", endpoint, opts,
		func(s *Socket) *Pair { return &Pair{Socket: s} })
}

// Pair is the async wrapper of a PAIR socket.
type Pair struct {
	*Socket
}

// Send queues a multipart message for the peer.
func (p *Pair) Send(ctx context.Context, msg api.Message) error {
	return p.send(ctx, msg)
}

// Recv returns the next multipart message from the peer.
func (p *Pair) Recv(ctx context.Context) (api.Message, error) {
	return p.recv(ctx)
}

// C exposes the delivery channel.
func (p *Pair) C() <-chan api.Message {
	return p.channel()
}
