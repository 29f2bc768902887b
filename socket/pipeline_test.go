// File: socket/pipeline_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package socket

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-zmq/api"
)

func TestPushPullOrdering(t *testing.T) {
	ctx := newTestContext(t)

	push, err := NewPush(ctx, "inproc://pipeline").Bind()
	require.NoError(t, err)
	pull, err := NewPull(ctx, "inproc://pipeline").Connect()
	require.NoError(t, err)

	waitCtx := timeoutCtx(t, 10*time.Second)

	const n = 16
	for i := 0; i < n; i++ {
		require.NoError(t, push.Send(waitCtx, api.NewMessage(fmt.Sprintf("m%d", i))))
	}

	// A single puller preserves pipeline order.
	for i := 0; i < n; i++ {
		msg, err := pull.Recv(waitCtx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("m%d", i), msg.Topic())
	}
}

func TestPairEcho(t *testing.T) {
	ctx := newTestContext(t)

	left, err := NewPair(ctx, "inproc://pair-echo").Bind()
	require.NoError(t, err)
	right, err := NewPair(ctx, "inproc://pair-echo").Connect()
	require.NoError(t, err)

	waitCtx := timeoutCtx(t, 10*time.Second)

	require.NoError(t, left.Send(waitCtx, api.NewMessage("marco")))
	msg, err := right.Recv(waitCtx)
	require.NoError(t, err)
	require.NoError(t, right.Send(waitCtx, msg.Append([]byte("polo"))))

	echo, err := left.Recv(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, "marco", echo.Topic())
	assert.Equal(t, "polo", echo.FrameString(1))
}

func TestPullSendRejected(t *testing.T) {
	ctx := newTestContext(t)

	pull, err := NewPull(ctx, "inproc://pipeline-dir").Bind()
	require.NoError(t, err)

	// PULL is receive-only; its Socket core refuses raw sends too.
	err = pull.h.Send(timeoutCtx(t, time.Second), api.NewMessage("x"))
	assert.ErrorIs(t, err, api.ErrNotSupported)
}
