// File: socket/reqrep.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package socket

import (
	"context"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/reactor"
)

// NewRequest prepares a REQ socket. Pair it with a Reply or Router socket;
// by convention the requester connects. The engine enforces strict
// send/recv alternation: violating it fails with a state error.
//
//	req, err := socket.NewRequest(ctx, "tcp://127.0.0.1:5555").Connect()
//	err = req.Send(context.Background(), api.NewMessage("question"))
//	reply, err := req.Recv(context.Background())
func NewRequest(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*Request] {
	return newBuilder(ctx, zmq.REQ, reactor.DirBoth, "req", endpoint, opts,
		func(s *Socket) *Request { return &Request{Socket: s} })
}

// Request is the async wrapper of a REQ socket.
type Request struct {
	*Socket
}

// Send issues the request. Must alternate with Recv.
func (r *Request) Send(ctx context.Context, msg api.Message) error {
	return r.send(ctx, msg)
}

// Recv collects the reply to the previous Send.
func (r *Request) Recv(ctx context.Context) (api.Message, error) {
	return r.recv(ctx)
}

// NewReply prepares a REP socket. Pair it with a Request or Dealer socket;
// by convention the replier binds. The engine enforces strict recv/send
// alternation.
//
//	rep, err := socket.NewReply(ctx, "tcp://127.0.0.1:5555").Bind()
//	msg, err := rep.Recv(context.Background())
//	err = rep.Send(context.Background(), api.NewMessage("answer"))
func NewReply(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*Reply] {
	return newBuilder(ctx, zmq.REP, reactor.DirBoth, "rep", endpoint, opts,
		func(s *Socket) *Reply { return &Reply{Socket: s} })
}

// Reply is the async wrapper of a REP socket.
type Reply struct {
	*Socket
}

// Recv collects the next request. Must alternate with Send.
func (r *Reply) Recv(ctx context.Context) (api.Message, error) {
	return r.recv(ctx)
}

// C exposes the request channel for select-based serving.
func (r *Reply) C() <-chan api.Message {
	return r.channel()
}

// Send answers the request received last.
func (r *Reply) Send(ctx context.Context, msg api.Message) error {
	return r.send(ctx, msg)
}
