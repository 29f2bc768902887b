// File: socket/socket_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared helpers for the pattern tests.

package socket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-zmq/reactor"
)

func newTestContext(t *testing.T) *reactor.Context {
	t.Helper()
	ctx, err := reactor.NewContext(reactor.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

func timeoutCtx(t *testing.T, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}
