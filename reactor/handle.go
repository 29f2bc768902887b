// File: reactor/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Handle is the message-passing accessor for a socket confined to the
// polling goroutine.

package reactor

import (
	"context"
	"sync/atomic"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
)

// Handle gives channel-based access to one registered socket. It is safe
// for concurrent use; the underlying raw socket never is, which is exactly
// why every operation below is forwarded to the polling goroutine.
type Handle struct {
	r       *Reactor
	st      *sockState
	canSend bool
	canRecv bool
	closed  atomic.Bool
}

// Send blocks until the engine accepted the frames, ctx is done, or the
// socket failed. When the engine's send high-water mark is reached the
// message is queued and Send waits for writability. A canceled ctx only
// abandons the wait: frames already queued may still reach the engine.
func (h *Handle) Send(ctx context.Context, msg api.Message) error {
	if !h.canSend {
		return api.NewError(api.ErrCodeInvalidArgument, "send", api.ErrNotSupported)
	}
	if msg.Len() == 0 {
		return api.ErrEmptyMessage
	}
	if h.closed.Load() {
		return api.ErrSocketClosed
	}

	cmd := command{op: opSend, id: h.st.id, st: h.st, msg: msg, done: make(chan error, 1)}
	select {
	case h.r.cmds <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-h.r.doneC:
		return api.ErrReactorStopped
	}
	h.r.kick()

	select {
	case err := <-cmd.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-h.r.doneC:
		return api.ErrReactorStopped
	}
}

// Recv returns the next inbound multipart message. It reports the close
// reason once the delivery channel is exhausted after a close or failure.
func (h *Handle) Recv(ctx context.Context) (api.Message, error) {
	if !h.canRecv {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "recv", api.ErrNotSupported)
	}
	select {
	case msg, ok := <-h.st.recvC:
		if !ok {
			return nil, h.st.closeReason()
		}
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// C exposes the delivery channel for select-based consumption. The channel
// is closed when the socket closes, the reactor stops, or a receive fails.
func (h *Handle) C() <-chan api.Message {
	return h.st.recvC
}

// Exec runs fn against the raw socket on the polling goroutine and returns
// its error. All runtime option access goes through here.
func (h *Handle) Exec(fn func(*zmq.Socket) error) error {
	if h.closed.Load() {
		return api.ErrSocketClosed
	}
	return h.r.submit(command{op: opExec, id: h.st.id, st: h.st, fn: fn, done: make(chan error, 1)})
}

// Close deregisters and closes the raw socket. Idempotent.
func (h *Handle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := h.r.submit(command{op: opClose, id: h.st.id, st: h.st, done: make(chan error, 1)})
	if err == api.ErrReactorStopped {
		// Reactor shutdown already closed the raw socket.
		return nil
	}
	return err
}
