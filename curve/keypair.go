// File: curve/keypair.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package curve handles CURVE security key material: generation through the
// engine, Z85 text encoding, and public-key derivation that works even when
// the engine was built without CURVE support.
package curve

import (
	"errors"
	"fmt"

	zmq "github.com/pebbe/zmq4"
	"golang.org/x/crypto/curve25519"
)

// Key sizes: raw keys are 32 bytes, Z85 text keys 40 characters.
const (
	RawKeySize = 32
	Z85KeySize = 40
)

var errKeySize = errors.New("curve key must be 40 Z85 characters")

// KeyPair holds one CURVE key pair in Z85 text form.
type KeyPair struct {
	Public string
	Secret string
}

// NewKeyPair generates a fresh key pair through the engine. It fails when
// the engine was built without CURVE support.
func NewKeyPair() (KeyPair, error) {
	pub, sec, err := zmq.NewCurveKeypair()
	if err != nil {
		return KeyPair{}, fmt.Errorf("curve keypair: %w", err)
	}
	return KeyPair{Public: pub, Secret: sec}, nil
}

// Available reports whether the engine supports CURVE security.
func Available() bool {
	_, _, err := zmq.NewCurveKeypair()
	return err == nil
}

// DerivePublic recovers the Z85 public key belonging to a Z85 secret key
// using curve25519 scalar-base multiplication. Equivalent to the engine's
// own derivation but independent of its CURVE build flag.
func DerivePublic(secret string) (string, error) {
	if len(secret) != Z85KeySize {
		return "", errKeySize
	}
	raw, err := Z85Decode(secret)
	if err != nil {
		return "", err
	}
	pub, err := curve25519.X25519(raw, curve25519.Basepoint)
	if err != nil {
		return "", fmt.Errorf("derive public key: %w", err)
	}
	return Z85Encode(pub)
}

// FromSecret builds a full key pair from a Z85 secret key.
func FromSecret(secret string) (KeyPair, error) {
	pub, err := DerivePublic(secret)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Public: pub, Secret: secret}, nil
}

// Z85Encode renders raw key bytes as Z85 text. len(raw) must be a multiple
// of four.
func Z85Encode(raw []byte) (string, error) {
	if len(raw)%4 != 0 {
		return "", fmt.Errorf("z85 encode: input length %d not a multiple of 4", len(raw))
	}
	return zmq.Z85encode(string(raw)), nil
}

// Z85Decode parses Z85 text back to raw bytes. len(text) must be a
// multiple of five; a 40-character key yields the 32 raw bytes the
// engine expects.
func Z85Decode(text string) ([]byte, error) {
	if len(text)%5 != 0 {
		return nil, fmt.Errorf("z85 decode: input length %d not a multiple of 5", len(text))
	}
	return []byte(zmq.Z85decode(text)), nil
}

// String redacts the secret key.
func (kp KeyPair) String() string {
	return fmt.Sprintf("KeyPair{Public: %s, Secret: [REDACTED]}", kp.Public)
}
