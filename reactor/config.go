// File: reactor/config.go
// Package reactor defines configuration for the polling goroutine.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/momentics/hioload-zmq/internal/logging"
	"github.com/momentics/hioload-zmq/metrics"
)

// Config holds parameters immutable per reactor.
type Config struct {
	PollInterval   time.Duration    // Upper bound on one zmq_poll sleep; also bounds resume latency for paused reads
	ChannelSize    int              // Capacity of per-socket delivery channels
	CommandBacklog int              // Capacity of the command channel feeding the poll loop
	PinPolling     bool             // Whether to lock and pin the polling goroutine's OS thread
	PollCPU        int              // CPU index for pinning; -1 locks the thread without binding
	Logger         *zerolog.Logger  // Optional logger; defaults to the library base logger
	Metrics        *metrics.Metrics // Optional metric sink; defaults to unregistered metrics
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		PollInterval:   50 * time.Millisecond,
		ChannelSize:    64,
		CommandBacklog: 128,
		PinPolling:     false,
		PollCPU:        -1,
	}
}

func (c *Config) normalize() {
	if c.PollInterval <= 0 {
		c.PollInterval = 50 * time.Millisecond
	}
	if c.ChannelSize <= 0 {
		c.ChannelSize = 64
	}
	if c.CommandBacklog <= 0 {
		c.CommandBacklog = 128
	}
	if c.Logger == nil {
		l := logging.Component("reactor")
		c.Logger = &l
	}
	if c.Metrics == nil {
		c.Metrics = metrics.New(nil)
	}
}
