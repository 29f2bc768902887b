// File: api/message_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFrames(t *testing.T) {
	m := NewMessage("topic", "payload")
	require.Equal(t, 2, m.Len())
	assert.Equal(t, "topic", m.Topic())
	assert.Equal(t, []byte("payload"), m.Frame(1))
	assert.Nil(t, m.Frame(2))
	assert.Equal(t, "", m.FrameString(-1))
}

func TestMessageAppendAndEqual(t *testing.T) {
	m := NewMessageBytes([]byte("a")).Append([]byte("b"))
	assert.True(t, m.Equal(NewMessage("a", "b")))
	assert.False(t, m.Equal(NewMessage("a")))
	assert.False(t, m.Equal(NewMessage("a", "c")))
}

func TestErrorCode(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(ErrCodeState, "send", cause)

	assert.Equal(t, "send: state: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeState, CodeOf(err))
	assert.Equal(t, ErrCodeEngine, CodeOf(cause))
	assert.Equal(t, ErrCodeOK, CodeOf(nil))
}
