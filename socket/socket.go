// File: socket/socket.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Socket is the common core embedded by every pattern wrapper: lifecycle,
// runtime option access and the raw-socket escape hatch. All raw access is
// marshalled onto the polling goroutine via the reactor handle.

package socket

import (
	"context"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
	"github.com/momentics/hioload-zmq/reactor"
)

// Socket is the common core of every pattern wrapper.
type Socket struct {
	h *reactor.Handle
}

// Pattern wrappers satisfy the api contracts matching their direction.
var (
	_ api.Sender   = (*Publish)(nil)
	_ api.Sender   = (*Push)(nil)
	_ api.Receiver = (*Subscribe)(nil)
	_ api.Receiver = (*Pull)(nil)
	_ api.Sender   = (*Pair)(nil)
	_ api.Receiver = (*Pair)(nil)
	_ api.Closer   = (*Socket)(nil)
)

// Raw runs fn against the underlying engine socket on the polling
// goroutine, for options this wrapper does not cover. fn must not retain
// the socket.
func (s *Socket) Raw(fn func(*zmq.Socket) error) error {
	return s.h.Exec(fn)
}

// Close detaches the socket from the reactor and closes it. Idempotent.
func (s *Socket) Close() error {
	return s.h.Close()
}

// LastEndpoint reports the endpoint the socket actually bound to, which
// resolves wildcard ports such as "tcp://127.0.0.1:*".
func (s *Socket) LastEndpoint() (endpoint string, err error) {
	err = s.h.Exec(func(raw *zmq.Socket) error {
		var e error
		endpoint, e = raw.GetLastEndpoint()
		return e
	})
	return
}

// SetSendHWM sets the send high-water mark: the hard limit on messages the
// engine queues in memory for any single peer before sends block or drop.
// Changing it after connections exist only affects later peers.
func (s *Socket) SetSendHWM(value int) error {
	return s.h.Exec(func(raw *zmq.Socket) error { return raw.SetSndhwm(value) })
}

// SendHWM returns the send high-water mark.
func (s *Socket) SendHWM() (value int, err error) {
	err = s.h.Exec(func(raw *zmq.Socket) error {
		var e error
		value, e = raw.GetSndhwm()
		return e
	})
	return
}

// SetReceiveHWM sets the receive high-water mark.
func (s *Socket) SetReceiveHWM(value int) error {
	return s.h.Exec(func(raw *zmq.Socket) error { return raw.SetRcvhwm(value) })
}

// ReceiveHWM returns the receive high-water mark.
func (s *Socket) ReceiveHWM() (value int, err error) {
	err = s.h.Exec(func(raw *zmq.Socket) error {
		var e error
		value, e = raw.GetRcvhwm()
		return e
	})
	return
}

// SetCurveServer flags the socket as the CURVE server side.
func (s *Socket) SetCurveServer(enabled bool) error {
	v := 0
	if enabled {
		v = 1
	}
	return s.h.Exec(func(raw *zmq.Socket) error { return raw.SetCurveServer(v) })
}

// SetCurvePublicKey sets the socket's own CURVE public key (Z85 or 32-byte
// raw, per engine rules).
func (s *Socket) SetCurvePublicKey(key string) error {
	return s.h.Exec(func(raw *zmq.Socket) error { return raw.SetCurvePublickey(key) })
}

// SetCurveSecretKey sets the socket's own CURVE secret key.
func (s *Socket) SetCurveSecretKey(key string) error {
	return s.h.Exec(func(raw *zmq.Socket) error { return raw.SetCurveSecretkey(key) })
}

// SetCurveServerKey sets the public key of the CURVE server to connect to.
func (s *Socket) SetCurveServerKey(key string) error {
	return s.h.Exec(func(raw *zmq.Socket) error { return raw.SetCurveServerkey(key) })
}

// SetZapDomain sets the ZAP domain, activating authentication for
// connections on this socket once a ZAP handler is running.
func (s *Socket) SetZapDomain(domain string) error {
	return s.h.Exec(func(raw *zmq.Socket) error { return raw.SetZapDomain(domain) })
}

// send and recv back the typed wrappers' pattern methods.

func (s *Socket) send(ctx context.Context, msg api.Message) error {
	return s.h.Send(ctx, msg)
}

func (s *Socket) recv(ctx context.Context) (api.Message, error) {
	return s.h.Recv(ctx)
}

func (s *Socket) channel() <-chan api.Message {
	return s.h.C()
}
