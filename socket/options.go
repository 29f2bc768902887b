// File: socket/options.go
// Package socket defines functional options applied before Bind/Connect.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package socket

import (
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/curve"
)

// Option configures a raw socket before it is attached. Options run in
// declaration order on the goroutine building the socket, before any
// reactor registration, so they may touch the raw socket directly.
type Option func(*zmq.Socket) error

// WithSendHWM caps queued-but-undelivered outbound messages per peer.
// Applied before attach so it affects the first connections too.
func WithSendHWM(value int) Option {
	return func(s *zmq.Socket) error { return s.SetSndhwm(value) }
}

// WithReceiveHWM caps queued inbound messages per peer.
func WithReceiveHWM(value int) Option {
	return func(s *zmq.Socket) error { return s.SetRcvhwm(value) }
}

// WithCurveServer makes the socket the CURVE server side using kp.
func WithCurveServer(kp curve.KeyPair) Option {
	return func(s *zmq.Socket) error {
		if err := s.SetCurveServer(1); err != nil {
			return err
		}
		if err := s.SetCurveSecretkey(kp.Secret); err != nil {
			return err
		}
		return s.SetCurvePublickey(kp.Public)
	}
}

// WithCurveClient makes the socket a CURVE client of the server identified
// by serverKey, authenticating with kp.
func WithCurveClient(serverKey string, kp curve.KeyPair) Option {
	return func(s *zmq.Socket) error {
		if err := s.SetCurveServerkey(serverKey); err != nil {
			return err
		}
		if err := s.SetCurveSecretkey(kp.Secret); err != nil {
			return err
		}
		return s.SetCurvePublickey(kp.Public)
	}
}

// WithZapDomain activates ZAP authentication under the given domain.
func WithZapDomain(domain string) Option {
	return func(s *zmq.Socket) error { return s.SetZapDomain(domain) }
}

// WithSubscribe adds topic filters before attach (SUB sockets).
func WithSubscribe(topics ...string) Option {
	return func(s *zmq.Socket) error {
		for _, topic := range topics {
			if err := s.SetSubscribe(topic); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithIdentity sets the routing identity (DEALER/ROUTER/REQ).
func WithIdentity(identity string) Option {
	return func(s *zmq.Socket) error { return s.SetIdentity(identity) }
}

// WithLinger overrides the close linger period. The builder defaults to
// zero so Close never blocks on undelivered messages.
func WithLinger(d time.Duration) Option {
	return func(s *zmq.Socket) error { return s.SetLinger(d) }
}

// WithSendTimeout bounds engine-side blocking sends (raw access only;
// wrapper sends already honor their context).
func WithSendTimeout(d time.Duration) Option {
	return func(s *zmq.Socket) error { return s.SetSndtimeo(d) }
}

// WithReceiveTimeout bounds engine-side blocking receives.
func WithReceiveTimeout(d time.Duration) Option {
	return func(s *zmq.Socket) error { return s.SetRcvtimeo(d) }
}
