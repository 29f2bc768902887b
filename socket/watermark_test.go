// File: socket/watermark_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// High-water-mark option round trips on both sides of the PUB/SUB and
// REQ/REP pairings.

package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubSubWatermarks(t *testing.T) {
	ctx := newTestContext(t)

	pub, err := NewPublish(ctx, "tcp://127.0.0.1:*", WithSendHWM(100)).Bind()
	require.NoError(t, err)

	endpoint, err := pub.LastEndpoint()
	require.NoError(t, err)
	require.NotEmpty(t, endpoint)

	sub, err := NewSubscribe(ctx, endpoint, WithReceiveHWM(100)).Connect()
	require.NoError(t, err)

	sndhwm, err := pub.SendHWM()
	require.NoError(t, err)
	assert.Equal(t, 100, sndhwm)

	rcvhwm, err := sub.ReceiveHWM()
	require.NoError(t, err)
	assert.Equal(t, 100, rcvhwm)
}

func TestReqRepWatermarks(t *testing.T) {
	ctx := newTestContext(t)

	rep, err := NewReply(ctx, "tcp://127.0.0.1:*",
		WithReceiveHWM(100),
		WithSendHWM(200),
	).Bind()
	require.NoError(t, err)

	endpoint, err := rep.LastEndpoint()
	require.NoError(t, err)

	req, err := NewRequest(ctx, endpoint,
		WithReceiveHWM(100),
		WithSendHWM(200),
	).Connect()
	require.NoError(t, err)

	for _, s := range []*Socket{rep.Socket, req.Socket} {
		rcvhwm, err := s.ReceiveHWM()
		require.NoError(t, err)
		assert.Equal(t, 100, rcvhwm)

		sndhwm, err := s.SendHWM()
		require.NoError(t, err)
		assert.Equal(t, 200, sndhwm)
	}
}

func TestRuntimeWatermarkSetters(t *testing.T) {
	ctx := newTestContext(t)

	pub, err := NewPublish(ctx, "inproc://hwm-runtime").Bind()
	require.NoError(t, err)

	require.NoError(t, pub.SetSendHWM(42))
	v, err := pub.SendHWM()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	require.NoError(t, pub.SetReceiveHWM(43))
	v, err = pub.ReceiveHWM()
	require.NoError(t, err)
	assert.Equal(t, 43, v)
}
