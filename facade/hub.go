// File: facade/hub.go
// Unified facade layer for the hioload-zmq library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Hub struct, which aggregates the core components of
// the hioload-zmq library behind a single facade. It initializes logging,
// metrics, the engine context, and the polling reactor from immutable
// configuration, exposes builders for every socket pattern with conventional
// attachment (servers bind, clients connect), and manages an optional ZAP
// authentication handler.

package facade

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-zmq/internal/logging"
	"github.com/momentics/hioload-zmq/metrics"
	"github.com/momentics/hioload-zmq/reactor"
	"github.com/momentics/hioload-zmq/socket"
	"github.com/momentics/hioload-zmq/zap"
)

// Config holds parameters immutable per hub.
type Config struct {
	PollInterval time.Duration         // Poll loop sleep bound; 0 selects the reactor default
	ChannelSize  int                   // Capacity of per-socket delivery channels
	PinPolling   bool                  // Whether to pin the polling goroutine's OS thread
	PollCPU      int                   // CPU index for pinning; -1 locks the thread without binding
	Registry     prometheus.Registerer // Metric registry; nil leaves metrics unregistered
	LogLevel     string                // Base log level ("debug", "info", ...); empty reads HZMQ_LOG_LEVEL
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		PollInterval: 0, // reactor default: 50ms
		ChannelSize:  64,
		PinPolling:   false,
		PollCPU:      -1,
		Registry:     nil,
		LogLevel:     "",
	}
}

// Hub is the main facade type. One Hub owns one engine context and one
// reactor; every socket created through it shares that reactor.
type Hub struct {
	ctx  *reactor.Context
	mets *metrics.Metrics

	config *Config

	mu     sync.RWMutex // Protects auth and closed
	auth   *zap.Handler
	closed bool
}

// New constructs a Hub with the given configuration. It configures the base
// logger, builds the metric sink, and starts the engine context with its
// reactor. A nil cfg selects DefaultConfig.
func New(cfg *Config) (*Hub, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logging.Configure(logging.Config{Level: cfg.LogLevel})
	mets := metrics.New(cfg.Registry)

	rcfg := reactor.DefaultConfig()
	if cfg.PollInterval > 0 {
		rcfg.PollInterval = cfg.PollInterval
	}
	if cfg.ChannelSize > 0 {
		rcfg.ChannelSize = cfg.ChannelSize
	}
	rcfg.PinPolling = cfg.PinPolling
	rcfg.PollCPU = cfg.PollCPU
	rcfg.Metrics = mets

	ctx, err := reactor.NewContext(rcfg)
	if err != nil {
		return nil, err
	}

	return &Hub{ctx: ctx, mets: mets, config: cfg}, nil
}

// Context returns the engine context for callers that need builders or
// options the facade does not cover.
func (h *Hub) Context() *reactor.Context { return h.ctx }

// Metrics returns the hub's metric sink.
func (h *Hub) Metrics() *metrics.Metrics { return h.mets }

// EnableZAP starts a ZAP handler on this hub's context. Call it before
// binding any socket that carries a ZAP domain. Enabling twice replaces
// the previous handler; the old one is stopped first because both need
// the same fixed inproc endpoint.
func (h *Hub) EnableZAP(auth zap.Authenticator) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.auth != nil {
		if err := h.auth.Close(); err != nil {
			return err
		}
		h.auth = nil
	}
	handler, err := zap.NewHandler(h.ctx, auth)
	if err != nil {
		return err
	}
	h.auth = handler
	return nil
}

// Publish binds a PUB socket on endpoint.
func (h *Hub) Publish(endpoint string, opts ...socket.Option) (*socket.Publish, error) {
	return socket.NewPublish(h.ctx, endpoint, opts...).Bind()
}

// Subscribe connects a SUB socket to endpoint with the given topic
// subscriptions. No topics means subscribe to everything.
func (h *Hub) Subscribe(endpoint string, topics []string, opts ...socket.Option) (*socket.Subscribe, error) {
	if len(topics) == 0 {
		topics = []string{""}
	}
	opts = append(opts, socket.WithSubscribe(topics...))
	return socket.NewSubscribe(h.ctx, endpoint, opts...).Connect()
}

// XPublish binds an XPUB socket on endpoint.
func (h *Hub) XPublish(endpoint string, opts ...socket.Option) (*socket.XPublish, error) {
	return socket.NewXPublish(h.ctx, endpoint, opts...).Bind()
}

// XSubscribe connects an XSUB socket to endpoint.
func (h *Hub) XSubscribe(endpoint string, opts ...socket.Option) (*socket.XSubscribe, error) {
	return socket.NewXSubscribe(h.ctx, endpoint, opts...).Connect()
}

// Request connects a REQ socket to endpoint.
func (h *Hub) Request(endpoint string, opts ...socket.Option) (*socket.Request, error) {
	return socket.NewRequest(h.ctx, endpoint, opts...).Connect()
}

// Reply binds a REP socket on endpoint.
func (h *Hub) Reply(endpoint string, opts ...socket.Option) (*socket.Reply, error) {
	return socket.NewReply(h.ctx, endpoint, opts...).Bind()
}

// Push connects a PUSH socket to endpoint.
func (h *Hub) Push(endpoint string, opts ...socket.Option) (*socket.Push, error) {
	return socket.NewPush(h.ctx, endpoint, opts...).Connect()
}

// Pull binds a PULL socket on endpoint.
func (h *Hub) Pull(endpoint string, opts ...socket.Option) (*socket.Pull, error) {
	return socket.NewPull(h.ctx, endpoint, opts...).Bind()
}

// Dealer connects a DEALER socket to endpoint.
func (h *Hub) Dealer(endpoint string, opts ...socket.Option) (*socket.Dealer, error) {
	return socket.NewDealer(h.ctx, endpoint, opts...).Connect()
}

// Router binds a ROUTER socket on endpoint.
func (h *Hub) Router(endpoint string, opts ...socket.Option) (*socket.Router, error) {
	return socket.NewRouter(h.ctx, endpoint, opts...).Bind()
}

// PairBind binds a PAIR socket on endpoint.
func (h *Hub) PairBind(endpoint string, opts ...socket.Option) (*socket.Pair, error) {
	return socket.NewPair(h.ctx, endpoint, opts...).Bind()
}

// PairConnect connects a PAIR socket to endpoint.
func (h *Hub) PairConnect(endpoint string, opts ...socket.Option) (*socket.Pair, error) {
	return socket.NewPair(h.ctx, endpoint, opts...).Connect()
}

// Shutdown closes the hub, giving up when ctx expires. The teardown keeps
// running in the background after a timeout; it cannot be abandoned
// mid-flight safely.
func (h *Hub) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- h.Close() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the ZAP handler if one runs, then shuts down the reactor and
// terminates the engine context. Every socket created through the hub is
// closed by the reactor shutdown. Close is idempotent.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	auth := h.auth
	h.auth = nil
	h.mu.Unlock()

	if auth != nil {
		_ = auth.Close()
	}
	return h.ctx.Close()
}
