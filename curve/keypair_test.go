// File: curve/keypair_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package curve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyPair(t *testing.T) {
	if !Available() {
		t.Skip("engine built without CURVE support")
	}

	kp, err := NewKeyPair()
	require.NoError(t, err)

	assert.Len(t, kp.Public, Z85KeySize)
	assert.Len(t, kp.Secret, Z85KeySize)
	assert.NotEqual(t, kp.Public, kp.Secret)
}

func TestDerivePublicMatchesEngine(t *testing.T) {
	if !Available() {
		t.Skip("engine built without CURVE support")
	}

	kp, err := NewKeyPair()
	require.NoError(t, err)

	derived, err := DerivePublic(kp.Secret)
	require.NoError(t, err)
	assert.Equal(t, kp.Public, derived)

	full, err := FromSecret(kp.Secret)
	require.NoError(t, err)
	assert.Equal(t, kp, full)
}

func TestDerivePublicRejectsBadKey(t *testing.T) {
	_, err := DerivePublic("too-short")
	assert.ErrorIs(t, err, errKeySize)
}

func TestZ85RoundTrip(t *testing.T) {
	// Reference vector from the Z85 specification.
	raw := []byte{0x86, 0x4F, 0xD2, 0x6F, 0xB5, 0x59, 0xF7, 0x5B}

	text, err := Z85Encode(raw)
	require.NoError(t, err)
	assert.Equal(t, "HelloWorld", text)

	back, err := Z85Decode(text)
	require.NoError(t, err)
	assert.Equal(t, raw, back)

	_, err = Z85Encode([]byte{1, 2, 3})
	assert.Error(t, err)

	_, err = Z85Decode("abc")
	assert.Error(t, err)
}

func TestStringRedactsSecret(t *testing.T) {
	kp := KeyPair{Public: "public-part", Secret: "secret-part"}
	s := kp.String()
	assert.Contains(t, s, "public-part")
	assert.Contains(t, s, "[REDACTED]")
	assert.False(t, strings.Contains(s, "secret-part"))
}
