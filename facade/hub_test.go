// File: facade/hub_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/zap"
)

func TestHubLifecycle(t *testing.T) {
	hub, err := New(nil)
	require.NoError(t, err)

	require.NotNil(t, hub.Context())
	require.NotNil(t, hub.Metrics())

	require.NoError(t, hub.Close())
	require.NoError(t, hub.Close(), "Close must be idempotent")
}

func TestHubEnableZAPTwiceReplacesHandler(t *testing.T) {
	hub, err := New(nil)
	require.NoError(t, err)
	defer hub.Close()

	require.NoError(t, hub.EnableZAP(zap.AllowAll{}))

	// The ZAP endpoint is fixed, so the second handler can only bind once
	// the first one released it.
	require.NoError(t, hub.EnableZAP(zap.NewCurveAllowList()))

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	require.NotNil(t, hub.auth)
}

func TestHubRequestReply(t *testing.T) {
	hub, err := New(&Config{
		PollInterval: 10 * time.Millisecond,
		ChannelSize:  8,
		PollCPU:      -1,
		Registry:     prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	defer hub.Close()

	rep, err := hub.Reply("inproc://hub-reqrep")
	require.NoError(t, err)

	req, err := hub.Request("inproc://hub-reqrep")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, req.Send(ctx, api.NewMessage("hello")))

	question, err := rep.Recv(ctx)
	require.NoError(t, err)
	require.Equal(t, "hello", question.FrameString(0))

	require.NoError(t, rep.Send(ctx, api.NewMessage("world")))

	answer, err := req.Recv(ctx)
	require.NoError(t, err)
	require.Equal(t, "world", answer.FrameString(0))
}

func TestHubSubscribeDefaultsToAllTopics(t *testing.T) {
	hub, err := New(nil)
	require.NoError(t, err)
	defer hub.Close()

	pub, err := hub.Publish("inproc://hub-pubsub")
	require.NoError(t, err)

	sub, err := hub.Subscribe("inproc://hub-pubsub", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// PUB drops until the subscription propagates; retry until delivery.
	var got api.Message
	for got == nil {
		require.NoError(t, pub.Send(ctx, api.NewMessage("anything")))
		rctx, rcancel := context.WithTimeout(ctx, 100*time.Millisecond)
		m, err := sub.Recv(rctx)
		rcancel()
		if err == nil {
			got = m
			break
		}
		if ctx.Err() != nil {
			t.Fatal("subscriber never received a message")
		}
	}
	require.Equal(t, "anything", got.FrameString(0))
}
