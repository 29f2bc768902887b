// File: reactor/context.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Context couples one engine context with its owning reactor.

package reactor

import (
	"sync"

	"github.com/google/uuid"
	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
)

// Context owns a *zmq.Context and the single Reactor goroutine driving
// every socket created from it. inproc endpoints only connect within the
// same Context.
type Context struct {
	zctx *zmq.Context
	r    *Reactor

	closeOnce sync.Once
	closeErr  error
}

// NewContext creates an engine context and starts its reactor.
func NewContext(cfg Config) (*Context, error) {
	zctx, err := zmq.NewContext()
	if err != nil {
		return nil, api.NewError(api.ErrCodeEngine, "new context", err)
	}
	// Unique per reactor so several Contexts coexist in one process.
	wake := "inproc://hzmq-wake-" + uuid.NewString()
	r, err := newReactor(zctx, cfg, wake)
	if err != nil {
		_ = zctx.Term()
		return nil, err
	}
	return &Context{zctx: zctx, r: r}, nil
}

// Reactor returns the polling reactor of this context.
func (c *Context) Reactor() *Reactor { return c.r }

// Raw exposes the engine context for direct engine calls, in case callers
// need options this wrapper does not cover.
func (c *Context) Raw() *zmq.Context { return c.zctx }

// NewRawSocket creates an unregistered raw socket. Callers normally go
// through the socket package builders instead.
func (c *Context) NewRawSocket(t zmq.Type) (*zmq.Socket, error) {
	return c.zctx.NewSocket(t)
}

// Close stops the reactor (closing every registered socket) and then
// terminates the engine context. The reactor is stopped first so
// termination cannot block on a socket owned by the poll loop.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		c.r.Stop()
		c.closeErr = c.zctx.Term()
	})
	return c.closeErr
}
