// File: api/interfaces.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Send/receive contracts implemented by the socket wrappers.

package api

import "context"

// Sender is the outbound half of an async socket. Send blocks until the
// engine accepted the frames, the context is done, or the socket fails.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Receiver is the inbound half of an async socket. C exposes the delivery
// channel for select-based consumption; the channel is closed when the
// socket closes or the reactor stops.
type Receiver interface {
	Recv(ctx context.Context) (Message, error)
	C() <-chan Message
}

// Closer releases the socket. Close is idempotent.
type Closer interface {
	Close() error
}
