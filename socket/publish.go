// File: socket/publish.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package socket

import (
	"context"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/reactor"
)

// NewPublish prepares a PUB socket. Pair it with a Subscribe or XSubscribe
// socket; by convention the publisher binds.
//
//	pub, err := socket.NewPublish(ctx, "tcp://127.0.0.1:5555").Bind()
//	err = pub.Send(context.Background(), api.NewMessage("topic", "broadcast message"))
func NewPublish(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*Publish] {
	return newBuilder(ctx, zmq.PUB, reactor.DirSend, "pub", endpoint, opts,
		func(s *Socket) *Publish { return &Publish{Socket: s} })
}

// Publish is the async wrapper of a PUB socket. PUB sockets fan a message
// out to every subscriber whose filter matches its first frame.
type Publish struct {
	*Socket
}

// Send publishes a multipart message. The first frame is the topic
// subscribers filter on.
func (p *Publish) Send(ctx context.Context, msg api.Message) error {
	return p.send(ctx, msg)
}
