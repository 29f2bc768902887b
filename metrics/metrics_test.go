// File: metrics/metrics_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.MessagesSent.Add(3)
	m.SocketsActive.Set(2)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.MessagesSent))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SocketsActive))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["hzmq_messages_sent_total"])
	assert.True(t, names["hzmq_sockets_active"])
}

func TestNewNilRegisterer(t *testing.T) {
	m := New(nil)
	m.PollCycles.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PollCycles))
}
