// File: zap/zap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package zap implements a ZeroMQ Authentication Protocol (ZAP) 1.0 handler.
// The engine performs the security handshake itself; when a socket carries a
// ZAP domain the engine forwards each connection's credentials to the
// handler bound on inproc://zeromq.zap.01 and honors its verdict. The
// handler here serves that endpoint through this library's own Reply
// socket, so it runs on the same reactor as everything else.
package zap

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/curve"
	"github.com/momentics/hioload-zmq/internal/logging"
	"github.com/momentics/hioload-zmq/reactor"
	"github.com/momentics/hioload-zmq/socket"
)

// Endpoint is where the engine looks for a ZAP handler, fixed by the
// ZAP specification.
const Endpoint = "inproc://zeromq.zap.01"

// Version is the only ZAP version this handler speaks.
const Version = "1.0"

// ZAP status codes.
const (
	StatusAllowed = "200"
	StatusDenied  = "400"
	StatusError   = "500"
)

// Mechanism names as they appear in requests.
const (
	MechanismNull  = "NULL"
	MechanismPlain = "PLAIN"
	MechanismCurve = "CURVE"
)

// Request is one decoded ZAP authentication request.
type Request struct {
	Version     string
	RequestID   []byte
	Domain      string
	Address     string
	Identity    []byte
	Mechanism   string
	Credentials [][]byte
}

// CurveClientKey returns the connecting client's public key in Z85 form
// when the request uses the CURVE mechanism.
func (r *Request) CurveClientKey() (string, bool) {
	if r.Mechanism != MechanismCurve || len(r.Credentials) < 1 || len(r.Credentials[0]) != curve.RawKeySize {
		return "", false
	}
	key, err := curve.Z85Encode(r.Credentials[0])
	if err != nil {
		return "", false
	}
	return key, true
}

// PlainCredentials returns username and password for PLAIN requests.
func (r *Request) PlainCredentials() (username, password string, ok bool) {
	if r.Mechanism != MechanismPlain || len(r.Credentials) < 2 {
		return "", "", false
	}
	return string(r.Credentials[0]), string(r.Credentials[1]), true
}

func parseRequest(msg api.Message) (*Request, error) {
	if msg.Len() < 6 {
		return nil, fmt.Errorf("zap request has %d frames, need at least 6", msg.Len())
	}
	req := &Request{
		Version:   msg.FrameString(0),
		RequestID: msg.Frame(1),
		Domain:    msg.FrameString(2),
		Address:   msg.FrameString(3),
		Identity:  msg.Frame(4),
		Mechanism: msg.FrameString(5),
	}
	if req.Version != Version {
		return nil, fmt.Errorf("unsupported zap version %q", req.Version)
	}
	for _, f := range msg.Frames()[6:] {
		req.Credentials = append(req.Credentials, f)
	}
	return req, nil
}

// Handler serves ZAP requests until closed. Start it before binding any
// socket that carries a ZAP domain.
type Handler struct {
	rep    *socket.Reply
	auth   Authenticator
	log    zerolog.Logger
	cancel context.CancelFunc
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithLogger overrides the handler's logger.
func WithLogger(log zerolog.Logger) HandlerOption {
	return func(h *Handler) { h.log = log }
}

// NewHandler binds the ZAP endpoint and starts serving with auth's
// verdicts. Only one handler may exist per Context.
func NewHandler(ctx *reactor.Context, auth Authenticator, opts ...HandlerOption) (*Handler, error) {
	if auth == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "zap handler", api.ErrInvalidArgument)
	}

	rep, err := socket.NewReply(ctx, Endpoint).Bind()
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	h := &Handler{
		rep:    rep,
		auth:   auth,
		log:    logging.Component("zap"),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	go h.serve(runCtx)
	h.log.Debug().Msg("zap handler listening")
	return h, nil
}

// Close stops serving and releases the endpoint. Idempotent.
func (h *Handler) Close() error {
	h.closeOnce.Do(func() {
		h.cancel()
		h.closeErr = h.rep.Close()
		<-h.done
	})
	return h.closeErr
}

func (h *Handler) serve(ctx context.Context) {
	defer close(h.done)
	for {
		msg, err := h.rep.Recv(ctx)
		if err != nil {
			return
		}
		if err := h.rep.Send(ctx, h.process(msg)); err != nil {
			return
		}
	}
}

func (h *Handler) process(msg api.Message) api.Message {
	req, err := parseRequest(msg)
	if err != nil {
		h.log.Warn().Err(err).Msg("malformed zap request")
		return reply(requestIDOf(msg), StatusError, err.Error(), "", nil)
	}

	dec, err := h.auth.Authenticate(req)
	if err != nil {
		h.log.Error().Err(err).Str("domain", req.Domain).Str("address", req.Address).
			Msg("authenticator failed")
		return reply(req.RequestID, StatusError, "authentication error", "", nil)
	}

	if !dec.Allow {
		text := dec.StatusText
		if text == "" {
			text = "Denied"
		}
		h.log.Info().Str("domain", req.Domain).Str("address", req.Address).
			Str("mechanism", req.Mechanism).Msg("connection denied")
		return reply(req.RequestID, StatusDenied, text, "", nil)
	}

	text := dec.StatusText
	if text == "" {
		text = "OK"
	}
	h.log.Debug().Str("domain", req.Domain).Str("address", req.Address).
		Str("mechanism", req.Mechanism).Str("user", dec.UserID).Msg("connection allowed")
	return reply(req.RequestID, StatusAllowed, text, dec.UserID, dec.Metadata)
}

// reply assembles the six-frame ZAP response.
func reply(requestID []byte, status, text, userID string, metadata map[string]string) api.Message {
	return api.NewMessageBytes(
		[]byte(Version),
		requestID,
		[]byte(status),
		[]byte(text),
		[]byte(userID),
		encodeMetadata(metadata),
	)
}

// requestIDOf salvages the request id frame from a message too malformed
// to parse, so the engine can still correlate the error reply.
func requestIDOf(msg api.Message) []byte {
	if msg.Len() >= 2 {
		return msg.Frame(1)
	}
	return nil
}
