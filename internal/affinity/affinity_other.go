//go:build !linux
// +build !linux

// File: internal/affinity/affinity_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CPU binding is Linux-only; elsewhere the thread is merely locked.

package affinity

import "runtime"

// PinCurrentThread locks the calling goroutine to its OS thread.
func PinCurrentThread(cpu int) (undo func(), err error) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread, nil
}
