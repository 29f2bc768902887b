// File: socket/subscribe.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package socket

import (
	"context"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/reactor"
)

// NewSubscribe prepares a SUB socket. Pair it with a Publish or XPublish
// socket; by convention the subscriber connects. A SUB socket delivers
// nothing until at least one topic is subscribed.
//
//	sub, err := socket.NewSubscribe(ctx, "tcp://127.0.0.1:5555", socket.WithSubscribe("topic")).Connect()
//	msg, err := sub.Recv(context.Background())
func NewSubscribe(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*Subscribe] {
	return newBuilder(ctx, zmq.SUB, reactor.DirRecv, "sub", endpoint, opts,
		func(s *Socket) *Subscribe { return &Subscribe{Socket: s} })
}

// Subscribe is the async wrapper of a SUB socket.
type Subscribe struct {
	*Socket
}

// Subscribe adds a topic filter. Multiple topics may be active at once.
func (s *Subscribe) Subscribe(topic string) error {
	return s.Raw(func(raw *zmq.Socket) error { return raw.SetSubscribe(topic) })
}

// Unsubscribe removes a previously added topic filter.
func (s *Subscribe) Unsubscribe(topic string) error {
	return s.Raw(func(raw *zmq.Socket) error { return raw.SetUnsubscribe(topic) })
}

// Recv returns the next matching multipart message.
func (s *Subscribe) Recv(ctx context.Context) (api.Message, error) {
	return s.recv(ctx)
}

// C exposes the delivery channel for select-based consumption.
func (s *Subscribe) C() <-chan api.Message {
	return s.channel()
}
