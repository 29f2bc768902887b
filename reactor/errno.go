// File: reactor/errno.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Engine errno classification.

package reactor

import (
	"syscall"

	zmq "github.com/pebbe/zmq4"

	"github.com/momentics/hioload-zmq/api"
)

func isEAGAIN(err error) bool {
	return zmq.AsErrno(err) == zmq.Errno(syscall.EAGAIN)
}

func isEINTR(err error) bool {
	return zmq.AsErrno(err) == zmq.Errno(syscall.EINTR)
}

func isEFSM(err error) bool {
	return zmq.AsErrno(err) == zmq.EFSM
}

// codeFor maps an engine error to a wrapper error code. EFSM covers
// REQ/REP ordering violations, ETERM a terminating context.
func codeFor(err error) api.ErrorCode {
	switch zmq.AsErrno(err) {
	case zmq.EFSM:
		return api.ErrCodeState
	case zmq.ETERM:
		return api.ErrCodeTerminated
	default:
		return api.ErrCodeEngine
	}
}
