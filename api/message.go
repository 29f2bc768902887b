// File: api/message.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Multipart message value type exchanged with the messaging engine.

package api

import (
	"bytes"
	"fmt"
	"strings"
)

// Message is a multipart message: an ordered list of frames as the engine
// delivers or accepts them. A nil or empty Message is not sendable.
type Message [][]byte

// NewMessage builds a Message from string frames.
func NewMessage(frames ...string) Message {
	m := make(Message, 0, len(frames))
	for _, f := range frames {
		m = append(m, []byte(f))
	}
	return m
}

// NewMessageBytes builds a Message from byte-slice frames. The slices are
// retained, not copied.
func NewMessageBytes(frames ...[]byte) Message {
	return Message(frames)
}

// Frames returns the raw frame list.
func (m Message) Frames() [][]byte { return m }

// Len returns the number of frames.
func (m Message) Len() int { return len(m) }

// Frame returns frame i, or nil when out of range.
func (m Message) Frame(i int) []byte {
	if i < 0 || i >= len(m) {
		return nil
	}
	return m[i]
}

// FrameString returns frame i as a string, or "" when out of range.
func (m Message) FrameString(i int) string {
	return string(m.Frame(i))
}

// Topic returns the first frame as a string. By PUB/SUB convention the
// first frame carries the topic the subscriber filtered on.
func (m Message) Topic() string {
	return m.FrameString(0)
}

// Append returns the message extended with an extra frame.
func (m Message) Append(frame []byte) Message {
	return append(m, frame)
}

// Equal reports frame-wise equality with other.
func (m Message) Equal(other Message) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if !bytes.Equal(m[i], other[i]) {
			return false
		}
	}
	return true
}

// String renders the message for logs; frames are shown verbatim and
// separated, so binary frames may produce unprintable output.
func (m Message) String() string {
	parts := make([]string, 0, len(m))
	for _, f := range m {
		parts = append(parts, string(f))
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, " | "))
}
