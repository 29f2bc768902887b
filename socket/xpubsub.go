// File: socket/xpubsub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// XPUB/XSUB expose the raw subscription traffic of PUB/SUB, which is what
// forwarding proxies are built from.

package socket

import (
	"context"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/reactor"
)

// Subscription frame prefixes on the XPUB/XSUB wire.
const (
	subscribeByte   = 0x01
	unsubscribeByte = 0x00
)

// NewXPublish prepares an XPUB socket: a publisher that also receives its
// subscribers' subscription messages.
func NewXPublish(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*XPublish] {
	return newBuilder(ctx, zmq.XPUB, reactor.DirBoth, "xpub", endpoint, opts,
		func(s *Socket) *XPublish { return &XPublish{Socket: s} })
}

// XPublish is the async wrapper of an XPUB socket.
type XPublish struct {
	*Socket
}

// Send publishes a multipart message.
func (p *XPublish) Send(ctx context.Context, msg api.Message) error {
	return p.send(ctx, msg)
}

// Recv returns the next subscription event: a single frame whose first
// byte is 0x01 (subscribe) or 0x00 (unsubscribe) followed by the topic.
func (p *XPublish) Recv(ctx context.Context) (api.Message, error) {
	return p.recv(ctx)
}

// C exposes the subscription event channel.
func (p *XPublish) C() <-chan api.Message {
	return p.channel()
}

// NewXSubscribe prepares an XSUB socket: a subscriber whose subscriptions
// are sent explicitly as messages rather than set as options.
func NewXSubscribe(ctx *reactor.Context, endpoint string, opts ...Option) *Builder[*XSubscribe] {
	return newBuilder(ctx, zmq.XSUB, reactor.DirBoth, "xsub", endpoint, opts,
		func(s *Socket) *XSubscribe { return &XSubscribe{Socket: s} })
}

// XSubscribe is the async wrapper of an XSUB socket.
type XSubscribe struct {
	*Socket
}

// Subscribe sends an upstream subscription for topic.
func (s *XSubscribe) Subscribe(ctx context.Context, topic string) error {
	return s.send(ctx, subscriptionFrame(subscribeByte, topic))
}

// Unsubscribe sends an upstream unsubscription for topic.
func (s *XSubscribe) Unsubscribe(ctx context.Context, topic string) error {
	return s.send(ctx, subscriptionFrame(unsubscribeByte, topic))
}

// Send forwards an arbitrary message upstream (proxy use).
func (s *XSubscribe) Send(ctx context.Context, msg api.Message) error {
	return s.send(ctx, msg)
}

// Recv returns the next matching multipart message.
func (s *XSubscribe) Recv(ctx context.Context) (api.Message, error) {
	return s.recv(ctx)
}

// C exposes the delivery channel.
func (s *XSubscribe) C() <-chan api.Message {
	return s.channel()
}

func subscriptionFrame(prefix byte, topic string) api.Message {
	frame := make([]byte, 0, len(topic)+1)
	frame = append(frame, prefix)
	frame = append(frame, topic...)
	return api.NewMessageBytes(frame)
}
