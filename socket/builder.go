// File: socket/builder.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Builder creates, configures and attaches raw sockets, then registers
// them with the context's reactor.

package socket

import (
	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/reactor"
)

// Builder prepares one socket of pattern type S. Obtain one from the
// pattern constructors (NewPublish, NewSubscribe, ...) and finish with
// Bind or Connect.
type Builder[S any] struct {
	ctx      *reactor.Context
	typ      zmq.Type
	dir      reactor.Direction
	name     string
	endpoint string
	opts     []Option
	wrap     func(*Socket) S
}

func newBuilder[S any](ctx *reactor.Context, typ zmq.Type, dir reactor.Direction, name, endpoint string, opts []Option, wrap func(*Socket) S) *Builder[S] {
	return &Builder[S]{
		ctx:      ctx,
		typ:      typ,
		dir:      dir,
		name:     name,
		endpoint: endpoint,
		opts:     opts,
		wrap:     wrap,
	}
}

// With appends more options.
func (b *Builder[S]) With(opts ...Option) *Builder[S] {
	b.opts = append(b.opts, opts...)
	return b
}

// Bind attaches the socket as the binding side of its endpoint.
func (b *Builder[S]) Bind() (S, error) {
	return b.attach(true)
}

// Connect attaches the socket as the connecting side of its endpoint.
func (b *Builder[S]) Connect() (S, error) {
	return b.attach(false)
}

func (b *Builder[S]) attach(bind bool) (S, error) {
	var zero S

	raw, err := b.ctx.NewRawSocket(b.typ)
	if err != nil {
		return zero, api.NewError(api.ErrCodeEngine, b.name+" create", err)
	}
	// Default; WithLinger may override it below.
	if err := raw.SetLinger(0); err != nil {
		raw.Close()
		return zero, api.NewError(api.ErrCodeEngine, b.name+" linger", err)
	}
	for _, opt := range b.opts {
		if err := opt(raw); err != nil {
			raw.Close()
			return zero, api.NewError(api.ErrCodeEngine, b.name+" option", err)
		}
	}

	op := b.name + " connect"
	if bind {
		op = b.name + " bind"
		err = raw.Bind(b.endpoint)
	} else {
		err = raw.Connect(b.endpoint)
	}
	if err != nil {
		raw.Close()
		return zero, api.NewError(api.ErrCodeEngine, op, err)
	}

	h, err := b.ctx.Reactor().Register(raw, b.dir, b.name)
	if err != nil {
		raw.Close()
		return zero, err
	}
	return b.wrap(&Socket{h: h}), nil
}
