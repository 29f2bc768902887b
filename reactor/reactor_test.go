// File: reactor/reactor_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reactor contract: registration, round trips, runtime option access,
// waiter failure on stop.

package reactor

import (
	"context"
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-zmq/api"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := NewContext(DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

func registerPair(t *testing.T, ctx *Context, endpoint string) (*Handle, *Handle) {
	t.Helper()

	bindSock, err := ctx.NewRawSocket(zmq.PAIR)
	require.NoError(t, err)
	require.NoError(t, bindSock.SetLinger(0))
	require.NoError(t, bindSock.Bind(endpoint))
	bound, err := ctx.Reactor().Register(bindSock, DirBoth, "pair")
	require.NoError(t, err)

	connSock, err := ctx.NewRawSocket(zmq.PAIR)
	require.NoError(t, err)
	require.NoError(t, connSock.SetLinger(0))
	require.NoError(t, connSock.Connect(endpoint))
	connected, err := ctx.Reactor().Register(connSock, DirBoth, "pair")
	require.NoError(t, err)

	return bound, connected
}

func TestPairRoundTrip(t *testing.T) {
	ctx := newTestContext(t)
	a, b := registerPair(t, ctx, "inproc://reactor-roundtrip")

	bg := context.Background()
	require.NoError(t, a.Send(bg, api.NewMessage("ping", "1")))

	recvCtx, cancel := context.WithTimeout(bg, 5*time.Second)
	defer cancel()
	msg, err := b.Recv(recvCtx)
	require.NoError(t, err)
	assert.True(t, msg.Equal(api.NewMessage("ping", "1")))

	require.NoError(t, b.Send(bg, api.NewMessage("pong")))
	msg, err = a.Recv(recvCtx)
	require.NoError(t, err)
	assert.Equal(t, "pong", msg.Topic())
}

func TestChannelConsumption(t *testing.T) {
	ctx := newTestContext(t)
	a, b := registerPair(t, ctx, "inproc://reactor-chan")

	bg := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, a.Send(bg, api.NewMessage("n")))
	}

	got := 0
	deadline := time.After(5 * time.Second)
	for got < 3 {
		select {
		case _, ok := <-b.C():
			require.True(t, ok)
			got++
		case <-deadline:
			t.Fatal("timed out draining delivery channel")
		}
	}
}

func TestExecRuntimeOption(t *testing.T) {
	ctx := newTestContext(t)
	a, _ := registerPair(t, ctx, "inproc://reactor-exec")

	require.NoError(t, a.Exec(func(s *zmq.Socket) error {
		return s.SetSndhwm(123)
	}))

	var hwm int
	require.NoError(t, a.Exec(func(s *zmq.Socket) error {
		var err error
		hwm, err = s.GetSndhwm()
		return err
	}))
	assert.Equal(t, 123, hwm)
}

func TestDirectionGuards(t *testing.T) {
	ctx := newTestContext(t)

	sock, err := ctx.NewRawSocket(zmq.PULL)
	require.NoError(t, err)
	require.NoError(t, sock.SetLinger(0))
	require.NoError(t, sock.Bind("inproc://reactor-dir"))
	h, err := ctx.Reactor().Register(sock, DirRecv, "pull")
	require.NoError(t, err)

	err = h.Send(context.Background(), api.NewMessage("x"))
	assert.ErrorIs(t, err, api.ErrNotSupported)
}

func TestSendEmptyMessage(t *testing.T) {
	ctx := newTestContext(t)
	a, _ := registerPair(t, ctx, "inproc://reactor-empty")

	err := a.Send(context.Background(), api.Message{})
	assert.ErrorIs(t, err, api.ErrEmptyMessage)
}

func TestStopFailsWaiters(t *testing.T) {
	ctx := newTestContext(t)
	_, b := registerPair(t, ctx, "inproc://reactor-stop")

	errC := make(chan error, 1)
	go func() {
		_, err := b.Recv(context.Background())
		errC <- err
	}()

	time.Sleep(50 * time.Millisecond)
	ctx.Reactor().Stop()

	select {
	case err := <-errC:
		assert.ErrorIs(t, err, api.ErrReactorStopped)
	case <-time.After(5 * time.Second):
		t.Fatal("blocked receiver was not released by Stop")
	}
}

// Slot ids are reused after a close. A command issued against the old
// registration must not reach the slot's new occupant, even when it was
// already in flight when the close landed.
func TestStaleCommandMissesReusedSlot(t *testing.T) {
	ctx := newTestContext(t)
	r := ctx.Reactor()

	first, err := ctx.NewRawSocket(zmq.PAIR)
	require.NoError(t, err)
	require.NoError(t, first.SetLinger(0))
	ha, err := r.Register(first, DirBoth, "pair")
	require.NoError(t, err)

	staleSt := ha.st
	staleID := ha.st.id
	require.NoError(t, ha.Close())

	second, err := ctx.NewRawSocket(zmq.PAIR)
	require.NoError(t, err)
	require.NoError(t, second.SetLinger(0))
	hb, err := r.Register(second, DirBoth, "pair")
	require.NoError(t, err)
	require.Equal(t, staleID, hb.st.id, "free-list must hand the slot back")

	touched := false
	err = r.submit(command{
		op:   opExec,
		id:   staleID,
		st:   staleSt,
		fn:   func(*zmq.Socket) error { touched = true; return nil },
		done: make(chan error, 1),
	})
	assert.ErrorIs(t, err, api.ErrSocketClosed)
	assert.False(t, touched, "stale command must not run against the new socket")

	// The new registration is untouched and still serviceable.
	require.NoError(t, hb.Exec(func(*zmq.Socket) error { return nil }))
}

func TestHandleCloseIdempotent(t *testing.T) {
	ctx := newTestContext(t)
	a, _ := registerPair(t, ctx, "inproc://reactor-close")

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	err := a.Exec(func(*zmq.Socket) error { return nil })
	assert.ErrorIs(t, err, api.ErrSocketClosed)
}
