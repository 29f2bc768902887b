// File: socket/dealerrouter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package socket

import (
	"context"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/reactor"
)

// NewDealer prepares a DEALER socket: an asynchronous REQ without the
// alternation constraint. Outbound messages round-robin across peers.
func NewDealer(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*Dealer] {
	return newBuilder(ctx, zmq.DEALER, reactor.DirBoth, "dealer", endpoint, opts,
		func(s *Socket) *Dealer { return &Dealer{Socket: s} })
}

// Dealer is the async wrapper of a DEALER socket.
type Dealer struct {
	*Socket
}

// Send queues a multipart message.
func (d *Dealer) Send(ctx context.Context, msg api.Message) error {
	return d.send(ctx, msg)
}

// Recv returns the next multipart message.
func (d *Dealer) Recv(ctx context.Context) (api.Message, error) {
	return d.recv(ctx)
}

// C exposes the delivery channel.
func (d *Dealer) C() <-chan api.Message {
	return d.channel()
}

// NewRouter prepares a ROUTER socket: an asynchronous REP addressing peers
// explicitly. Inbound messages are prefixed with the peer identity frame;
// outbound messages must carry it back as their first frame.
func NewRouter(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*Router] {
	return newBuilder(ctx, zmq.ROUTER, reactor.DirBoth, "router", endpoint, opts,
		func(s *Socket) *Router { return &Router{Socket: s} })
}

// Router is the async wrapper of a ROUTER socket.
type Router struct {
	*Socket
}

// Send routes a multipart message to the peer named by the first frame.
func (r *Router) Send(ctx context.Context, msg api.Message) error {
	return r.send(ctx, msg)
}

// Recv returns the next identity-prefixed multipart message.
func (r *Router) Recv(ctx context.Context) (api.Message, error) {
	return r.recv(ctx)
}

// C exposes the delivery channel.
func (r *Router) C() <-chan api.Message {
	return r.channel()
}
